package rest

import "github.com/heartmarshall/dndsheet/internal/domain"

// StateResponse is the JSON shape of the whole sheet. Field names follow the
// persisted blob so clients can treat both the same way.
type StateResponse struct {
	Topics   []TopicDTO `json:"topics"`
	DarkMode bool       `json:"darkMode"`
}

// TopicDTO is a topic on the wire.
type TopicDTO struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Questions          []QuestionDTO `json:"questions"`
	TotalQuestions     int           `json:"totalQuestions"`
	CompletedQuestions int           `json:"completedQuestions"`
}

// QuestionDTO is a question on the wire.
type QuestionDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Link      string `json:"link"`
	Completed bool   `json:"completed"`
}

// NewStateResponse converts the domain state to its wire shape.
func NewStateResponse(s domain.State) StateResponse {
	out := StateResponse{Topics: make([]TopicDTO, len(s.Topics)), DarkMode: s.DarkMode}
	for i, t := range s.Topics {
		out.Topics[i] = NewTopicDTO(t)
	}
	return out
}

// NewTopicDTO converts a topic to its wire shape.
func NewTopicDTO(t domain.Topic) TopicDTO {
	qs := make([]QuestionDTO, len(t.Questions))
	for i, q := range t.Questions {
		qs[i] = questionToDTO(q)
	}
	return TopicDTO{
		ID:                 t.ID,
		Title:              t.Title,
		Questions:          qs,
		TotalQuestions:     t.TotalQuestions,
		CompletedQuestions: t.CompletedQuestions,
	}
}

func questionToDTO(q domain.Question) QuestionDTO {
	return QuestionDTO{ID: q.ID, Title: q.Title, Link: q.Link, Completed: q.Completed}
}

// Counters sent by clients are ignored; the store recounts.
func topicsFromDTO(in []TopicDTO) []domain.Topic {
	out := make([]domain.Topic, len(in))
	for i, t := range in {
		out[i] = domain.Topic{
			ID:        t.ID,
			Title:     t.Title,
			Questions: questionsFromDTO(t.Questions),
		}
	}
	return out
}

func questionsFromDTO(in []QuestionDTO) []domain.Question {
	out := make([]domain.Question, len(in))
	for i, q := range in {
		out[i] = domain.Question{ID: q.ID, Title: q.Title, Link: q.Link, Completed: q.Completed}
	}
	return out
}
