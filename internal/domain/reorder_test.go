package domain

import (
	"slices"
	"testing"
)

func ids(qs []Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.ID
	}
	return out
}

func questions(idList ...string) []Question {
	out := make([]Question, len(idList))
	for i, id := range idList {
		out[i] = Question{ID: id, Title: "q-" + id}
	}
	return out
}

func TestMove(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		active   string
		over     string
		wantIDs  []string
		wantMove bool
	}{
		{name: "forward", active: "a", over: "c", wantIDs: []string{"b", "c", "a", "d"}, wantMove: true},
		{name: "backward", active: "d", over: "b", wantIDs: []string{"a", "d", "b", "c"}, wantMove: true},
		{name: "to end", active: "a", over: "d", wantIDs: []string{"b", "c", "d", "a"}, wantMove: true},
		{name: "to start", active: "c", over: "a", wantIDs: []string{"c", "a", "b", "d"}, wantMove: true},
		{name: "adjacent swap", active: "b", over: "c", wantIDs: []string{"a", "c", "b", "d"}, wantMove: true},
		{name: "same id", active: "b", over: "b", wantIDs: []string{"a", "b", "c", "d"}, wantMove: false},
		{name: "unknown active", active: "x", over: "b", wantIDs: []string{"a", "b", "c", "d"}, wantMove: false},
		{name: "unknown over", active: "a", over: "x", wantIDs: []string{"a", "b", "c", "d"}, wantMove: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := questions("a", "b", "c", "d")
			got, ok := Move(in, QuestionID, tt.active, tt.over)

			if ok != tt.wantMove {
				t.Fatalf("ok: got %v, want %v", ok, tt.wantMove)
			}
			if !slices.Equal(ids(got), tt.wantIDs) {
				t.Errorf("order: got %v, want %v", ids(got), tt.wantIDs)
			}
			if !slices.Equal(ids(in), []string{"a", "b", "c", "d"}) {
				t.Errorf("input was mutated: %v", ids(in))
			}
		})
	}
}

func TestMove_PreservesMembershipAndLandsOnOverIndex(t *testing.T) {
	t.Parallel()

	base := []string{"q1", "q2", "q3", "q4", "q5", "q6"}
	in := questions(base...)

	for from, active := range base {
		for to, over := range base {
			if from == to {
				continue
			}
			got, ok := Move(in, QuestionID, active, over)
			if !ok {
				t.Fatalf("Move(%s, %s) reported no move", active, over)
			}

			gotIDs := ids(got)
			if gotIDs[to] != active {
				t.Errorf("Move(%s, %s): index %d holds %s, want %s", active, over, to, gotIDs[to], active)
			}

			sorted := slices.Clone(gotIDs)
			slices.Sort(sorted)
			if !slices.Equal(sorted, base) {
				t.Errorf("Move(%s, %s) changed membership: %v", active, over, gotIDs)
			}

			// Relative order of the untouched items is unchanged.
			rest := slices.DeleteFunc(slices.Clone(gotIDs), func(id string) bool { return id == active })
			wantRest := slices.DeleteFunc(slices.Clone(base), func(id string) bool { return id == active })
			if !slices.Equal(rest, wantRest) {
				t.Errorf("Move(%s, %s) reordered bystanders: %v", active, over, rest)
			}
		}
	}
}

func TestMove_Topics(t *testing.T) {
	t.Parallel()

	in := []Topic{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}
	got, ok := Move(in, TopicID, "t3", "t1")
	if !ok {
		t.Fatal("expected a move")
	}
	if got[0].ID != "t3" || got[1].ID != "t1" || got[2].ID != "t2" {
		t.Errorf("unexpected order: %v", got)
	}
}
