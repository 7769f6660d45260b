// Package slottest holds the behaviour every snapshot.Slot implementation
// must share. Backend packages call Run from their own tests.
package slottest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dndsheet/internal/adapter/snapshot"
	"github.com/heartmarshall/dndsheet/internal/domain"
)

// Run exercises a Slot. newSlot must return an empty slot on every call.
func Run(t *testing.T, newSlot func(t *testing.T) snapshot.Slot) {
	t.Helper()
	ctx := context.Background()

	t.Run("get on empty slot is not found", func(t *testing.T) {
		slot := newSlot(t)

		_, err := slot.Get(ctx, "ns")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("put then get", func(t *testing.T) {
		slot := newSlot(t)

		require.NoError(t, slot.Put(ctx, "ns", []byte(`{"topics":[]}`)))
		got, err := slot.Get(ctx, "ns")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"topics":[]}`), got)
	})

	t.Run("put overwrites", func(t *testing.T) {
		slot := newSlot(t)

		require.NoError(t, slot.Put(ctx, "ns", []byte("first")))
		require.NoError(t, slot.Put(ctx, "ns", []byte("second")))
		got, err := slot.Get(ctx, "ns")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), got)
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		slot := newSlot(t)

		require.NoError(t, slot.Put(ctx, "a", []byte("A")))
		require.NoError(t, slot.Put(ctx, "b", []byte("B")))

		got, err := slot.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("A"), got)

		require.NoError(t, slot.Delete(ctx, "b"))
		_, err = slot.Get(ctx, "b")
		require.ErrorIs(t, err, domain.ErrNotFound)

		got, err = slot.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, []byte("A"), got)
	})

	t.Run("delete missing is not an error", func(t *testing.T) {
		slot := newSlot(t)
		require.NoError(t, slot.Delete(ctx, "never-written"))
	})

	t.Run("ping", func(t *testing.T) {
		slot := newSlot(t)
		require.NoError(t, slot.Ping(ctx))
	})

	t.Run("state round trip through repo", func(t *testing.T) {
		slot := newSlot(t)
		repo := snapshot.New(slot, snapshot.JSONCodec{}, "")

		want := domain.State{
			Topics: []domain.Topic{{
				ID:    "t1",
				Title: "Arrays",
				Questions: []domain.Question{
					{ID: "1", Title: "Two Sum", Link: "https://x/1", Completed: true},
					{ID: "2", Title: "3Sum", Link: "https://x/2"},
				},
				TotalQuestions:     2,
				CompletedQuestions: 1,
			}},
			DarkMode: true,
		}
		require.NoError(t, repo.Save(ctx, want))

		got, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
