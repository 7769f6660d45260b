package sheet

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// EditTopic replaces the topic's title. Questions and counters are untouched.
func (s *Service) EditTopic(ctx context.Context, input EditTopicInput) (domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return domain.Topic{}, observe("edit_topic", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ti, err := s.topicIndex(input.ID)
	if err != nil {
		return domain.Topic{}, observe("edit_topic", err)
	}

	topic := &s.state.Topics[ti]
	topic.Title = strings.TrimSpace(input.Title)
	s.persist(ctx, "edit_topic")

	s.log.InfoContext(ctx, "topic renamed",
		slog.String("topic_id", topic.ID),
		slog.String("title", topic.Title),
	)

	return topic.Clone(), observe("edit_topic", nil)
}
