package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/heartmarshall/dndsheet/internal/domain"
)

func TestMapError_Nil(t *testing.T) {
	t.Parallel()

	if got := mapError(nil, "dsa-store"); got != nil {
		t.Errorf("mapError(nil) = %v, want nil", got)
	}
}

func TestMapError_NoRows(t *testing.T) {
	t.Parallel()

	got := mapError(pgx.ErrNoRows, "dsa-store")

	if got == nil {
		t.Fatal("mapError(ErrNoRows) = nil, want error")
	}
	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("mapError(ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
	if want := "snapshot dsa-store: not found"; got.Error() != want {
		t.Errorf("mapError(ErrNoRows).Error() = %q, want %q", got.Error(), want)
	}
}

func TestMapError_WrappedNoRows(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("scan row: %w", pgx.ErrNoRows)
	got := mapError(wrapped, "dsa-store")

	if !errors.Is(got, domain.ErrNotFound) {
		t.Errorf("mapError(wrapped ErrNoRows) does not wrap domain.ErrNotFound: %v", got)
	}
}

func TestMapError_PgCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"unique_violation", "23505", domain.ErrAlreadyExists},
		{"not_null_violation", "23502", domain.ErrValidation},
		{"check_violation", "23514", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := mapError(&pgconn.PgError{Code: tt.code}, "dsa-store")
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("mapError(code %s) does not wrap %v: %v", tt.code, tt.wantErr, got)
			}
		})
	}
}

func TestMapError_ContextErrorsPassThrough(t *testing.T) {
	t.Parallel()

	for _, ctxErr := range []error{context.DeadlineExceeded, context.Canceled} {
		got := mapError(ctxErr, "dsa-store")

		if !errors.Is(got, ctxErr) {
			t.Errorf("mapError(%v) does not wrap the context error: %v", ctxErr, got)
		}
		if errors.Is(got, domain.ErrNotFound) {
			t.Errorf("mapError(%v) should not wrap domain.ErrNotFound", ctxErr)
		}
	}
}

func TestMapError_UnknownPgError(t *testing.T) {
	t.Parallel()

	got := mapError(&pgconn.PgError{Code: "42P01", Message: "relation does not exist"}, "dsa-store")

	var unwrapped *pgconn.PgError
	if !errors.As(got, &unwrapped) {
		t.Errorf("mapError(unknown PgError) does not wrap *pgconn.PgError: %v", got)
	}
	if errors.Is(got, domain.ErrNotFound) || errors.Is(got, domain.ErrAlreadyExists) || errors.Is(got, domain.ErrValidation) {
		t.Error("mapError(unknown PgError) should not map to a domain error")
	}
}

func TestMapError_NamespaceInMessage(t *testing.T) {
	t.Parallel()

	got := mapError(errors.New("boom"), "my-sheet")

	if !strings.HasPrefix(got.Error(), "snapshot my-sheet:") {
		t.Errorf("mapError message should name the namespace, got %q", got.Error())
	}
}

func TestMapError_UndefinedTableHint(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{Code: "42P01", Message: `relation "store_snapshots" does not exist`}
	got := mapError(pgErr, "dsa-store")

	if !strings.Contains(got.Error(), "auto_migrate") {
		t.Errorf("expected migration hint, got %q", got.Error())
	}
	var target *pgconn.PgError
	if !errors.As(got, &target) {
		t.Error("original PgError should stay reachable")
	}
}
