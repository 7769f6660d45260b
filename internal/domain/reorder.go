package domain

import "slices"

// Move applies a finished drag gesture to an ordered list. The item with
// activeID is removed and reinserted at the index overID occupied before the
// move; everything in between shifts by one.
//
// The input slice is never modified. ok is false, and items is returned as is,
// when either id is missing or both ids are the same.
func Move[T any](items []T, idOf func(T) string, activeID, overID string) (moved []T, ok bool) {
	if activeID == overID {
		return items, false
	}

	from := slices.IndexFunc(items, func(it T) bool { return idOf(it) == activeID })
	to := slices.IndexFunc(items, func(it T) bool { return idOf(it) == overID })
	if from == -1 || to == -1 {
		return items, false
	}

	out := slices.Clone(items)
	it := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, it)
	return out, true
}
