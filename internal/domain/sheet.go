package domain

import (
	"fmt"
	"slices"
)

// Question is a single practice item inside a topic.
// Membership is defined by containment in Topic.Questions.
type Question struct {
	ID        string
	Title     string
	Link      string
	Completed bool
}

// Topic is a named, ordered group of questions.
// TotalQuestions and CompletedQuestions are derived from Questions; call
// Recount after touching the question list.
type Topic struct {
	ID                 string
	Title              string
	Questions          []Question
	TotalQuestions     int
	CompletedQuestions int
}

// State is the whole persisted sheet: ordered topics plus the UI preference.
type State struct {
	Topics   []Topic
	DarkMode bool
}

// Recount recomputes the denormalized counters from the question list.
func (t *Topic) Recount() {
	t.TotalQuestions = len(t.Questions)
	done := 0
	for _, q := range t.Questions {
		if q.Completed {
			done++
		}
	}
	t.CompletedQuestions = done
}

// QuestionIndex returns the position of the question with the given id, or -1.
func (t *Topic) QuestionIndex(id string) int {
	return slices.IndexFunc(t.Questions, func(q Question) bool { return q.ID == id })
}

// Clone returns a deep copy of the topic.
func (t Topic) Clone() Topic {
	t.Questions = slices.Clone(t.Questions)
	if t.Questions == nil {
		t.Questions = []Question{}
	}
	return t
}

// TopicIndex returns the position of the topic with the given id, or -1.
func (s *State) TopicIndex(id string) int {
	return slices.IndexFunc(s.Topics, func(t Topic) bool { return t.ID == id })
}

// Clone returns a deep copy of the state, safe to hand to readers.
func (s State) Clone() State {
	topics := make([]Topic, len(s.Topics))
	for i, t := range s.Topics {
		topics[i] = t.Clone()
	}
	return State{Topics: topics, DarkMode: s.DarkMode}
}

// CheckIDs reports a state whose ids break membership: a repeated topic id,
// or a question id that is empty or repeated within its topic. Topics without
// an id are accepted; they predate generated topic ids and get one on load.
// The error wraps ErrMalformed.
func (s State) CheckIDs() error {
	topics := make(map[string]struct{}, len(s.Topics))
	for _, t := range s.Topics {
		if t.ID != "" {
			if _, dup := topics[t.ID]; dup {
				return fmt.Errorf("%w: duplicate topic id %q", ErrMalformed, t.ID)
			}
			topics[t.ID] = struct{}{}
		}

		questions := make(map[string]struct{}, len(t.Questions))
		for _, q := range t.Questions {
			if q.ID == "" {
				return fmt.Errorf("%w: topic %q has a question without id", ErrMalformed, t.Title)
			}
			if _, dup := questions[q.ID]; dup {
				return fmt.Errorf("%w: duplicate question id %q in topic %q", ErrMalformed, q.ID, t.Title)
			}
			questions[q.ID] = struct{}{}
		}
	}
	return nil
}

// TopicID returns the topic's id. Used as the key function for Move.
func TopicID(t Topic) string { return t.ID }

// QuestionID returns the question's id. Used as the key function for Move.
func QuestionID(q Question) string { return q.ID }

// SeedRecord is one flat row of the bundled question dataset.
type SeedRecord struct {
	SourceID int64
	Topic    string
	Title    string
	URL      string
}
