// Package idgen produces the opaque identifiers used for topics and questions.
package idgen

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Func returns a new identifier on every call.
type Func func() string

// New returns a random (v4) UUID string. 122 bits of entropy keep collisions
// out of reach for any realistic store size.
func New() string {
	return uuid.NewString()
}

// Sequence returns a deterministic generator yielding prefix1, prefix2, ...
// Safe for concurrent use.
func Sequence(prefix string) Func {
	var n atomic.Int64
	return func() string {
		return prefix + strconv.FormatInt(n.Add(1), 10)
	}
}
