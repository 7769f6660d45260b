package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

// mapError converts pgx/pgconn errors to domain errors.
// context.DeadlineExceeded and context.Canceled are not mapped; they pass through.
func mapError(err error, namespace string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("snapshot %s: %w", namespace, err)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("snapshot %s: %w", namespace, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("snapshot %s: %w", namespace, domain.ErrAlreadyExists)
		case "23502", "23514": // not_null_violation, check_violation
			return fmt.Errorf("snapshot %s: %w", namespace, domain.ErrValidation)
		case "42P01": // undefined_table
			return fmt.Errorf("snapshot %s: table store_snapshots is missing, enable auto_migrate or run goose: %w", namespace, err)
		}
	}

	return fmt.Errorf("snapshot %s: %w", namespace, err)
}
