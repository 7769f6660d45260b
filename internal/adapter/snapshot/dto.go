package snapshot

import (
	"fmt"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// Wire shapes of the persisted blob: { "topics": [...], "darkMode": bool }.
// Field names match what the web client wrote to local storage. Topics is a
// pointer so a blob without the key can be told apart from an empty sheet.

type stateDTO struct {
	Topics   *[]topicDTO `json:"topics"   cbor:"topics"`
	DarkMode bool        `json:"darkMode" cbor:"darkMode"`
}

type topicDTO struct {
	ID                 string        `json:"id,omitempty"       cbor:"id,omitempty"`
	Title              string        `json:"title"              cbor:"title"`
	Questions          []questionDTO `json:"questions"          cbor:"questions"`
	TotalQuestions     int           `json:"totalQuestions"     cbor:"totalQuestions"`
	CompletedQuestions int           `json:"completedQuestions" cbor:"completedQuestions"`
}

type questionDTO struct {
	ID        string `json:"id"                  cbor:"id"`
	Title     string `json:"title"               cbor:"title"`
	Link      string `json:"link"                cbor:"link"`
	Completed bool   `json:"completed,omitempty" cbor:"completed,omitempty"`
}

func toDTO(s domain.State) stateDTO {
	topics := make([]topicDTO, len(s.Topics))
	out := stateDTO{Topics: &topics, DarkMode: s.DarkMode}
	for i, t := range s.Topics {
		qs := make([]questionDTO, len(t.Questions))
		for j, q := range t.Questions {
			qs[j] = questionDTO{ID: q.ID, Title: q.Title, Link: q.Link, Completed: q.Completed}
		}
		topics[i] = topicDTO{
			ID:                 t.ID,
			Title:              t.Title,
			Questions:          qs,
			TotalQuestions:     t.TotalQuestions,
			CompletedQuestions: t.CompletedQuestions,
		}
	}
	return out
}

func toDomainState(d stateDTO) (domain.State, error) {
	if d.Topics == nil {
		return domain.State{}, fmt.Errorf("%w: blob has no topics", domain.ErrMalformed)
	}

	out := domain.State{
		Topics:   make([]domain.Topic, len(*d.Topics)),
		DarkMode: d.DarkMode,
	}
	for i, t := range *d.Topics {
		qs := make([]domain.Question, len(t.Questions))
		for j, q := range t.Questions {
			qs[j] = domain.Question{ID: q.ID, Title: q.Title, Link: q.Link, Completed: q.Completed}
		}
		out.Topics[i] = domain.Topic{
			ID:                 t.ID,
			Title:              t.Title,
			Questions:          qs,
			TotalQuestions:     t.TotalQuestions,
			CompletedQuestions: t.CompletedQuestions,
		}
	}
	return out, nil
}
