package sheet

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// SetTopics replaces the topic list wholesale. It exists to commit a new
// topic and question order: the submitted topic ids must be exactly the
// current ids, and every topic must carry exactly its current question ids.
// Titles, links and completion may change; membership may not.
func (s *Service) SetTopics(ctx context.Context, topics []domain.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := sameTopicSet(s.state.Topics, topics); err != nil {
		return observe("set_topics", err)
	}

	s.setTopicsLocked(ctx, topics)
	return observe("set_topics", nil)
}

func (s *Service) setTopicsLocked(ctx context.Context, topics []domain.Topic) {
	next := make([]domain.Topic, len(topics))
	for i, t := range topics {
		next[i] = t.Clone()
		next[i].Recount()
	}
	s.state.Topics = next
	s.persist(ctx, "set_topics")

	s.log.DebugContext(ctx, "topics replaced", slog.Int("count", len(next)))
}

func sameTopicSet(current, next []domain.Topic) error {
	if len(current) != len(next) {
		return domain.NewValidationError("topics", "must contain exactly the existing topics")
	}

	want := make(map[string]domain.Topic, len(current))
	for _, t := range current {
		want[t.ID] = t
	}

	var errs domain.FieldErrors
	for _, t := range next {
		cur, ok := want[t.ID]
		if !ok {
			return domain.NewValidationError("topics", "unknown or duplicate topic id "+t.ID)
		}
		delete(want, t.ID)

		if reason := sameQuestionSet(cur.Questions, t.Questions); reason != "" {
			errs.Add("questions", "topic "+t.ID+": "+reason)
		}
	}
	return errs.Err()
}

// sameQuestionSet reports why next is not a permutation of current, or ""
// when it is.
func sameQuestionSet(current, next []domain.Question) string {
	if len(current) != len(next) {
		return "must contain exactly the existing questions"
	}

	want := make(map[string]struct{}, len(current))
	for _, q := range current {
		want[q.ID] = struct{}{}
	}
	for _, q := range next {
		if q.ID == "" {
			return "every question needs an id"
		}
		if _, ok := want[q.ID]; !ok {
			return "unknown or duplicate question id " + q.ID
		}
		delete(want, q.ID)
	}
	return ""
}
