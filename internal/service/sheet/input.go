package sheet

import (
	"strings"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// AddTopicInput holds the parameters for adding a topic.
// An empty ID asks the store to generate one.
type AddTopicInput struct {
	Title string
	ID    string
}

// Validate checks all fields and collects all errors.
func (i AddTopicInput) Validate() error {
	var errs domain.FieldErrors

	if strings.TrimSpace(i.Title) == "" {
		errs.Add("title", "required")
	}
	if i.ID != "" && strings.TrimSpace(i.ID) == "" {
		errs.Add("id", "must not be blank")
	}

	return errs.Err()
}

// AddQuestionInput holds the parameters for adding a question to a topic.
type AddQuestionInput struct {
	TopicID string
	Title   string
	Link    string
}

// Validate checks all fields and collects all errors.
func (i AddQuestionInput) Validate() error {
	var errs domain.FieldErrors

	if i.TopicID == "" {
		errs.Add("topic_id", "required")
	}
	if strings.TrimSpace(i.Title) == "" {
		errs.Add("title", "required")
	}

	return errs.Err()
}

// EditTopicInput holds the parameters for renaming a topic.
type EditTopicInput struct {
	ID    string
	Title string
}

// Validate checks all fields and collects all errors.
func (i EditTopicInput) Validate() error {
	var errs domain.FieldErrors

	if i.ID == "" {
		errs.Add("id", "required")
	}
	if strings.TrimSpace(i.Title) == "" {
		errs.Add("title", "required")
	}

	return errs.Err()
}

// QuestionUpdate is the payload of EditQuestion. It works in one of two
// modes: a non-nil Questions replaces the topic's whole question sequence,
// otherwise the non-nil fields are merged into a single question.
type QuestionUpdate struct {
	Questions []domain.Question

	Title     *string
	Link      *string // ptr("") clears the link
	Completed *bool
}

func (u QuestionUpdate) replacesSequence() bool {
	return u.Questions != nil
}

// Validate checks all fields and collects all errors.
func (u QuestionUpdate) Validate() error {
	var errs domain.FieldErrors

	if u.replacesSequence() {
		if u.Title != nil || u.Link != nil || u.Completed != nil {
			errs.Add("input", "questions cannot be combined with field updates")
		}
		seen := make(map[string]struct{}, len(u.Questions))
		for _, q := range u.Questions {
			if q.ID == "" {
				errs.Add("questions", "every question needs an id")
				break
			}
			if _, dup := seen[q.ID]; dup {
				errs.Add("questions", "duplicate question id "+q.ID)
				break
			}
			seen[q.ID] = struct{}{}
		}
	} else {
		if u.Title == nil && u.Link == nil && u.Completed == nil {
			errs.Add("input", "at least one field must be provided")
		}
		if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
			errs.Add("title", "required")
		}
	}

	return errs.Err()
}

func ptr[T any](v T) *T {
	return &v
}
