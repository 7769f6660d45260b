package postgres

import (
	"context"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/dndsheet/internal/config"
)

const snapshotsTable = "store_snapshots"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Slot is a snapshot.Slot backed by the store_snapshots table.
type Slot struct {
	q     Querier
	close func()
}

// NewSlot wraps an existing querier. Close on the returned slot is a no-op;
// the caller owns q.
func NewSlot(q Querier) *Slot {
	return &Slot{q: q, close: func() {}}
}

// Open connects a pool, applies migrations when AutoMigrate is set and
// returns a slot that closes the pool on Close.
func Open(ctx context.Context, cfg config.PostgresConfig, log *slog.Logger) (*Slot, error) {
	if cfg.AutoMigrate {
		if err := Migrate(ctx, cfg.DSN, log); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Slot{q: pool, close: pool.Close}, nil
}

// Get returns the payload stored for namespace.
func (s *Slot) Get(ctx context.Context, namespace string) ([]byte, error) {
	query, args, err := builder.
		Select("payload").
		From(snapshotsTable).
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var payload []byte
	if err := s.q.QueryRow(ctx, query, args...).Scan(&payload); err != nil {
		return nil, mapError(err, namespace)
	}
	return payload, nil
}

// Put upserts the payload for namespace.
func (s *Slot) Put(ctx context.Context, namespace string, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	query, args, err := builder.
		Insert(snapshotsTable).
		Columns("namespace", "payload", "updated_at").
		Values(namespace, payload, sq.Expr("now()")).
		Suffix("ON CONFLICT (namespace) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, namespace)
	}
	return nil
}

// Delete removes the namespace row if present.
func (s *Slot) Delete(ctx context.Context, namespace string) error {
	query, args, err := builder.
		Delete(snapshotsTable).
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := s.q.Exec(ctx, query, args...); err != nil {
		return mapError(err, namespace)
	}
	return nil
}

// Ping checks the connection.
func (s *Slot) Ping(ctx context.Context) error {
	return s.q.Ping(ctx)
}

// Close releases the pool when the slot owns one.
func (s *Slot) Close() error {
	s.close()
	return nil
}
