package sheet

import (
	"context"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// ReorderTopics applies a finished topic drag. Unknown or equal ids are a
// silent no-op; moved reports whether anything changed.
func (s *Service) ReorderTopics(ctx context.Context, activeID, overID string) (moved bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topics, ok := domain.Move(s.state.Topics, domain.TopicID, activeID, overID)
	if !ok {
		mutationsTotal.WithLabelValues("reorder_topics", "noop").Inc()
		return false
	}

	s.setTopicsLocked(ctx, topics)
	mutationsTotal.WithLabelValues("reorder_topics", "ok").Inc()
	return true
}

// ReorderQuestions applies a finished question drag inside one topic and
// commits it as a full-sequence replace. Unknown question ids are a silent
// no-op; an unknown topic is reported as not found.
func (s *Service) ReorderQuestions(ctx context.Context, topicID, activeID, overID string) (moved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, err := s.topicIndex(topicID)
	if err != nil {
		return false, observe("reorder_questions", err)
	}

	questions, ok := domain.Move(s.state.Topics[ti].Questions, domain.QuestionID, activeID, overID)
	if !ok {
		mutationsTotal.WithLabelValues("reorder_questions", "noop").Inc()
		return false, nil
	}

	if _, err := s.editQuestionLocked(ctx, topicID, QuestionUpdate{Questions: questions}, ""); err != nil {
		return false, observe("reorder_questions", err)
	}
	return true, observe("reorder_questions", nil)
}
