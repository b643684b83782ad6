package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when a referenced row does not exist or belongs
	// to another user.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a write collides with a unique constraint.
	ErrConflict = errors.New("conflict")
	// ErrUpstreamUnavailable is returned when the data a computation depends
	// on cannot be read.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ValidationError names the input field that violated a constraint.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// Decimal places kept by the money and asset columns. Both hold values below
// maxAmount.
const (
	moneyPlaces = 2
	assetPlaces = 8
)

var maxAmount = decimal.New(1, 12)

// checkAmount rejects negative amounts and amounts the store would round or
// overflow.
func checkAmount(field string, amount decimal.Decimal, places int32) error {
	if amount.IsNegative() {
		return invalid(field, "must not be negative")
	}
	if !amount.Equal(amount.Truncate(places)) {
		return invalid(field, fmt.Sprintf("must have at most %d decimal places", places))
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return invalid(field, "must be less than "+maxAmount.String())
	}
	return nil
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

// translate maps store errors onto the service error kinds. what names the
// entity for the error message.
func translate(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}

	switch sqlState(err) {
	case uniqueViolation:
		return fmt.Errorf("%s: %w", what, ErrConflict)
	case foreignKeyViolation:
		return fmt.Errorf("%s reference: %w", what, ErrNotFound)
	}
	return err
}

func sqlState(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
