package sheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// Hydrate restores the persisted state. When nothing is stored, or the stored
// blob cannot be decoded or repeats an id, it seeds from the dataset and
// writes the result. A broken snapshot never fails Hydrate; only a failing
// seed source does. Ids or counters repaired on load are written back so
// generated ids survive a restart.
func (s *Service) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.states.Load(ctx)
	if err == nil {
		err = state.CheckIDs()
	}
	switch {
	case err == nil:
		restored, repaired := s.normalize(state)
		s.state = restored
		s.log.InfoContext(ctx, "state restored",
			slog.Int("topics", len(s.state.Topics)),
			slog.Bool("dark_mode", s.state.DarkMode),
			slog.Bool("repaired", repaired),
		)
		if repaired {
			s.persist(ctx, "hydrate")
		}
		return observe("hydrate", nil)
	case errors.Is(err, domain.ErrNotFound):
		s.log.InfoContext(ctx, "no saved state, seeding")
	default:
		s.log.WarnContext(ctx, "discarding saved state, seeding",
			slog.String("error", err.Error()),
		)
	}

	if err := s.seedLocked(ctx); err != nil {
		return observe("hydrate", err)
	}
	s.persist(ctx, "hydrate")
	return observe("hydrate", nil)
}

// Reset clears the persisted slot and starts over from the seed dataset.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.states.Clear(ctx); err != nil {
		return observe("reset", fmt.Errorf("clear state: %w", err))
	}
	if err := s.seedLocked(ctx); err != nil {
		return observe("reset", err)
	}
	s.persist(ctx, "reset")

	s.log.InfoContext(ctx, "state reset", slog.Int("topics", len(s.state.Topics)))
	return observe("reset", nil)
}

func (s *Service) seedLocked(ctx context.Context) error {
	topics, err := s.seeds.InitialTopics(ctx)
	if err != nil {
		return fmt.Errorf("seed topics: %w", err)
	}
	s.state, _ = s.normalize(domain.State{Topics: topics})
	return nil
}

// normalize repairs what older snapshots may lack: topic ids, non-nil
// question lists and counters. repaired reports whether an id was assigned
// or a counter corrected.
func (s *Service) normalize(state domain.State) (_ domain.State, repaired bool) {
	state = state.Clone()
	for i := range state.Topics {
		t := &state.Topics[i]
		if t.ID == "" {
			t.ID = s.newID()
			repaired = true
		}
		total, completed := t.TotalQuestions, t.CompletedQuestions
		t.Recount()
		if t.TotalQuestions != total || t.CompletedQuestions != completed {
			repaired = true
		}
	}
	return state, repaired
}
