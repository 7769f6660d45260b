// Package sheet owns the in-memory checklist and every operation that
// mutates it. Each successful mutation writes the whole state through the
// state repository.
package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/dndsheet/internal/domain"
	"github.com/heartmarshall/dndsheet/pkg/idgen"
)

type stateRepo interface {
	Load(ctx context.Context) (domain.State, error)
	Save(ctx context.Context, s domain.State) error
	Clear(ctx context.Context) error
}

type seedSource interface {
	InitialTopics(ctx context.Context) ([]domain.Topic, error)
}

// Service is the checklist store. The zero value is not usable; call
// NewService and then Hydrate.
type Service struct {
	mu    sync.Mutex
	state domain.State

	states stateRepo
	seeds  seedSource
	newID  idgen.Func
	log    *slog.Logger
}

// NewService creates a new sheet service. newID generates topic and question
// ids; pass idgen.New outside of tests.
func NewService(
	log *slog.Logger,
	states stateRepo,
	seeds seedSource,
	newID idgen.Func,
) *Service {
	return &Service{
		state:  domain.State{Topics: []domain.Topic{}},
		states: states,
		seeds:  seeds,
		newID:  newID,
		log:    log.With("service", "sheet"),
	}
}

// persist writes the current state. Failures are logged and counted but the
// in-memory mutation stands. Caller holds s.mu.
func (s *Service) persist(ctx context.Context, op string) {
	start := time.Now()
	err := s.states.Save(ctx, s.state)
	observePersist(time.Since(start), err)

	if err != nil {
		s.log.WarnContext(ctx, "persist state",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
	}
}

// topicIndex resolves a topic id or returns a wrapped ErrNotFound. Caller holds s.mu.
func (s *Service) topicIndex(id string) (int, error) {
	i := s.state.TopicIndex(id)
	if i == -1 {
		return -1, fmt.Errorf("topic %s: %w", id, domain.ErrNotFound)
	}
	return i, nil
}

// questionIndex resolves a question inside the topic at ti. Caller holds s.mu.
func (s *Service) questionIndex(ti int, questionID string) (int, error) {
	qi := s.state.Topics[ti].QuestionIndex(questionID)
	if qi == -1 {
		return -1, fmt.Errorf("question %s in topic %s: %w", questionID, s.state.Topics[ti].ID, domain.ErrNotFound)
	}
	return qi, nil
}
