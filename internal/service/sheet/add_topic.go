package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// AddTopic appends an empty topic to the end of the list.
func (s *Service) AddTopic(ctx context.Context, input AddTopicInput) (domain.Topic, error) {
	if err := input.Validate(); err != nil {
		return domain.Topic{}, observe("add_topic", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = s.newID()
	}
	if s.state.TopicIndex(id) != -1 {
		return domain.Topic{}, observe("add_topic", fmt.Errorf("topic %s: %w", id, domain.ErrAlreadyExists))
	}

	topic := domain.Topic{
		ID:        id,
		Title:     strings.TrimSpace(input.Title),
		Questions: []domain.Question{},
	}
	s.state.Topics = append(s.state.Topics, topic)
	s.persist(ctx, "add_topic")

	s.log.InfoContext(ctx, "topic added",
		slog.String("topic_id", topic.ID),
		slog.String("title", topic.Title),
	)

	return topic.Clone(), observe("add_topic", nil)
}
