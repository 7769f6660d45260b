// Package sqlite stores snapshots in a single-table SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

const table = "store_snapshots"

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Slot is a snapshot.Slot over a SQLite file.
type Slot struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string) (*Slot, error) {
	if path == "" {
		return nil, errors.New("sqlite: path is required")
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	// Single writer; also keeps ":memory:" to one shared connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: create tables: %w", err)
	}

	return &Slot{db: db}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS store_snapshots (
			namespace  TEXT PRIMARY KEY,
			payload    BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		)
	`)
	return err
}

// Get returns the payload stored for namespace.
func (s *Slot) Get(ctx context.Context, namespace string) ([]byte, error) {
	query, args, err := builder.
		Select("payload").
		From(table).
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlite: build select: %w", err)
	}

	var payload []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: %s: %w", namespace, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get %s: %w", namespace, err)
	}
	return payload, nil
}

// Put upserts the payload for namespace.
func (s *Slot) Put(ctx context.Context, namespace string, payload []byte) error {
	if payload == nil {
		payload = []byte{}
	}
	query, args, err := builder.
		Insert(table).
		Columns("namespace", "payload", "updated_at").
		Values(namespace, payload, time.Now().Unix()).
		Suffix("ON CONFLICT (namespace) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: put %s: %w", namespace, err)
	}
	return nil
}

// Delete removes the namespace row if present.
func (s *Slot) Delete(ctx context.Context, namespace string) error {
	query, args, err := builder.
		Delete(table).
		Where(sq.Eq{"namespace": namespace}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlite: build delete: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("sqlite: delete %s: %w", namespace, err)
	}
	return nil
}

// Ping checks the connection.
func (s *Slot) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Slot) Close() error {
	return s.db.Close()
}
