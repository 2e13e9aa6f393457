package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by the repositories. Services translate these
// into their own domain errors at the boundary.
var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicateName    = errors.New("a user with this name already exists")
	ErrDuplicatePending = errors.New("an identical pending appointment already exists")
	// ErrStoreUnavailable marks transport/timeout failures against the store.
	// Callers may retry with backoff; the repositories never retry themselves,
	// so each call performs at most one side effect.
	ErrStoreUnavailable = errors.New("store unavailable")
)

const (
	pgUniqueViolation = "23505"
	pgFKViolation     = "23503"
)

// classify wraps a raw pgx error, folding transport-level failures into
// ErrStoreUnavailable so callers can distinguish retryable outages from
// domain failures with errors.Is.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w", op, ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation reports whether err is a Postgres unique constraint error.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
