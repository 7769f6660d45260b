// Package snapshot persists the whole sheet state as a single blob under a
// fixed namespace key. Storage backends only need to implement Slot.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// DefaultNamespace is the key the web client used for its local storage entry.
const DefaultNamespace = "dsa-store"

// Slot is a durable single-value cell keyed by namespace.
// Get returns domain.ErrNotFound when nothing has been stored yet.
type Slot interface {
	Get(ctx context.Context, namespace string) ([]byte, error)
	Put(ctx context.Context, namespace string, payload []byte) error
	Delete(ctx context.Context, namespace string) error
	Ping(ctx context.Context) error
	Close() error
}

// Repo stores domain.State through a Slot and a Codec.
type Repo struct {
	slot      Slot
	codec     Codec
	namespace string
}

// New creates a Repo. An empty namespace falls back to DefaultNamespace.
func New(slot Slot, codec Codec, namespace string) *Repo {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Repo{slot: slot, codec: codec, namespace: namespace}
}

// Load reads and decodes the stored state.
// Returns domain.ErrNotFound for an empty slot and domain.ErrMalformed when
// the blob cannot be decoded.
func (r *Repo) Load(ctx context.Context) (domain.State, error) {
	b, err := r.slot.Get(ctx, r.namespace)
	if err != nil {
		return domain.State{}, fmt.Errorf("read %s: %w", r.namespace, err)
	}
	if len(b) == 0 {
		return domain.State{}, fmt.Errorf("read %s: %w", r.namespace, domain.ErrNotFound)
	}

	s, err := r.codec.Decode(b)
	if err != nil {
		return domain.State{}, fmt.Errorf("read %s: %w", r.namespace, err)
	}
	return s, nil
}

// Save encodes and writes the full state, replacing whatever was stored.
func (r *Repo) Save(ctx context.Context, s domain.State) error {
	b, err := r.codec.Encode(s)
	if err != nil {
		return fmt.Errorf("write %s: %w", r.namespace, err)
	}
	if err := r.slot.Put(ctx, r.namespace, b); err != nil {
		return fmt.Errorf("write %s: %w", r.namespace, err)
	}
	return nil
}

// Clear removes the stored state. Clearing an empty slot is not an error.
func (r *Repo) Clear(ctx context.Context) error {
	if err := r.slot.Delete(ctx, r.namespace); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("clear %s: %w", r.namespace, err)
	}
	return nil
}

// Ping checks that the underlying storage is reachable.
func (r *Repo) Ping(ctx context.Context) error {
	return r.slot.Ping(ctx)
}

// Namespace returns the key the state is stored under.
func (r *Repo) Namespace() string { return r.namespace }
