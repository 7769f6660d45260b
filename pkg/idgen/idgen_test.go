package idgen

import (
	"testing"

	"github.com/google/uuid"
)

func TestNew_UniqueAndParsable(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := New()
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("id %q is not a UUID: %v", id, err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestSequence(t *testing.T) {
	t.Parallel()

	next := Sequence("t")
	for _, want := range []string{"t1", "t2", "t3"} {
		if got := next(); got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}

	other := Sequence("q")
	if got := other(); got != "q1" {
		t.Errorf("independent sequence: got %q, want %q", got, "q1")
	}
}
