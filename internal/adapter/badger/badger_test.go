package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dndsheet/internal/adapter/snapshot"
	"github.com/heartmarshall/dndsheet/internal/adapter/snapshot/slottest"
)

func TestSlot_InMemory(t *testing.T) {
	slottest.Run(t, func(t *testing.T) snapshot.Slot {
		s, err := Open(InMemoryConfig())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestSlot_OnDisk(t *testing.T) {
	slottest.Run(t, func(t *testing.T) snapshot.Slot {
		cfg := DefaultConfig(t.TempDir())
		cfg.SyncWrites = false
		s, err := Open(cfg)
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

func TestSlot_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "dsa-store", []byte("payload")))
	require.NoError(t, s.Close())

	reopened, err := Open(DefaultConfig(dir))
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "dsa-store")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestOpen_RequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open(Config{})
	require.Error(t, err)
}

func TestSlot_PingAfterClose(t *testing.T) {
	t.Parallel()

	s, err := Open(InMemoryConfig())
	require.NoError(t, err)
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
	require.Error(t, s.Ping(context.Background()))
}
