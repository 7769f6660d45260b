package sheet

import (
	"context"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// State returns a deep copy of the whole sheet.
func (s *Service) State(_ context.Context) domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Topic returns a copy of one topic.
func (s *Service) Topic(_ context.Context, id string) (domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, err := s.topicIndex(id)
	if err != nil {
		return domain.Topic{}, err
	}
	return s.state.Topics[ti].Clone(), nil
}
