package sheet

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// EditQuestion updates a topic's questions. With update.Questions set the
// whole sequence is replaced and questionID is ignored; this is how a
// finished drag is committed. Otherwise the set fields of update are merged
// into the question with questionID, keeping length and order.
func (s *Service) EditQuestion(ctx context.Context, topicID string, update QuestionUpdate, questionID string) (domain.Topic, error) {
	if err := update.Validate(); err != nil {
		return domain.Topic{}, observe("edit_question", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	topic, err := s.editQuestionLocked(ctx, topicID, update, questionID)
	return topic, observe("edit_question", err)
}

// SetQuestionCompleted marks a question done or not done.
func (s *Service) SetQuestionCompleted(ctx context.Context, topicID, questionID string, done bool) (domain.Topic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	topic, err := s.editQuestionLocked(ctx, topicID, QuestionUpdate{Completed: ptr(done)}, questionID)
	return topic, observe("set_completed", err)
}

func (s *Service) editQuestionLocked(ctx context.Context, topicID string, update QuestionUpdate, questionID string) (domain.Topic, error) {
	ti, err := s.topicIndex(topicID)
	if err != nil {
		return domain.Topic{}, err
	}
	topic := &s.state.Topics[ti]

	if update.replacesSequence() {
		topic.Questions = slices.Clone(update.Questions)
		topic.Recount()
		s.persist(ctx, "edit_question")

		s.log.DebugContext(ctx, "questions replaced",
			slog.String("topic_id", topic.ID),
			slog.Int("count", topic.TotalQuestions),
		)
		return topic.Clone(), nil
	}

	qi, err := s.questionIndex(ti, questionID)
	if err != nil {
		return domain.Topic{}, err
	}

	q := &topic.Questions[qi]
	if update.Title != nil {
		q.Title = strings.TrimSpace(*update.Title)
	}
	if update.Link != nil {
		q.Link = strings.TrimSpace(*update.Link)
	}
	if update.Completed != nil {
		q.Completed = *update.Completed
	}
	topic.Recount()
	s.persist(ctx, "edit_question")

	s.log.InfoContext(ctx, "question updated",
		slog.String("topic_id", topic.ID),
		slog.String("question_id", q.ID),
	)

	return topic.Clone(), nil
}
