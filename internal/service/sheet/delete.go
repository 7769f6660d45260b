package sheet

import (
	"context"
	"log/slog"
	"slices"
)

// DeleteTopic removes the topic together with all of its questions.
func (s *Service) DeleteTopic(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, err := s.topicIndex(id)
	if err != nil {
		return observe("delete_topic", err)
	}

	removed := s.state.Topics[ti].TotalQuestions
	s.state.Topics = slices.Delete(s.state.Topics, ti, ti+1)
	s.persist(ctx, "delete_topic")

	s.log.InfoContext(ctx, "topic deleted",
		slog.String("topic_id", id),
		slog.Int("questions", removed),
	)

	return observe("delete_topic", nil)
}

// DeleteQuestion removes one question from a topic.
func (s *Service) DeleteQuestion(ctx context.Context, topicID, questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ti, err := s.topicIndex(topicID)
	if err != nil {
		return observe("delete_question", err)
	}
	qi, err := s.questionIndex(ti, questionID)
	if err != nil {
		return observe("delete_question", err)
	}

	topic := &s.state.Topics[ti]
	topic.Questions = slices.Delete(topic.Questions, qi, qi+1)
	topic.Recount()
	s.persist(ctx, "delete_question")

	s.log.InfoContext(ctx, "question deleted",
		slog.String("topic_id", topicID),
		slog.String("question_id", questionID),
	)

	return observe("delete_question", nil)
}
