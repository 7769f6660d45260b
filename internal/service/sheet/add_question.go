package sheet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// AddQuestion appends a question with a fresh id to the topic.
func (s *Service) AddQuestion(ctx context.Context, input AddQuestionInput) (domain.Question, error) {
	if err := input.Validate(); err != nil {
		return domain.Question{}, observe("add_question", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ti, err := s.topicIndex(input.TopicID)
	if err != nil {
		return domain.Question{}, observe("add_question", err)
	}

	topic := &s.state.Topics[ti]
	q := domain.Question{
		ID:    s.newID(),
		Title: strings.TrimSpace(input.Title),
		Link:  strings.TrimSpace(input.Link),
	}
	topic.Questions = append(topic.Questions, q)
	topic.Recount()
	s.persist(ctx, "add_question")

	s.log.InfoContext(ctx, "question added",
		slog.String("topic_id", topic.ID),
		slog.String("question_id", q.ID),
	)

	return q, observe("add_question", nil)
}
