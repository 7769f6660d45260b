package snapshot

import (
	"context"
	"slices"
	"sync"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// MemorySlot is a process-local Slot for tests and throwaway sessions.
type MemorySlot struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemorySlot creates an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{data: make(map[string][]byte)}
}

func (m *MemorySlot) Get(_ context.Context, namespace string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.data[namespace]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slices.Clone(b), nil
}

func (m *MemorySlot) Put(_ context.Context, namespace string, payload []byte) error {
	m.mu.Lock()
	m.data[namespace] = slices.Clone(payload)
	m.mu.Unlock()
	return nil
}

func (m *MemorySlot) Delete(_ context.Context, namespace string) error {
	m.mu.Lock()
	delete(m.data, namespace)
	m.mu.Unlock()
	return nil
}

func (m *MemorySlot) Ping(context.Context) error { return nil }

func (m *MemorySlot) Close() error { return nil }
