package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors surfaced by the repositories. Handlers map these to
// HTTP status codes.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadReference is returned when a supplied category or manufacturer
	// id violates a foreign-key constraint.
	ErrBadReference = errors.New("referenced row does not exist")
	// ErrDuplicate is returned on unique-constraint violations.
	ErrDuplicate = errors.New("duplicate row")
)

// Postgres error codes for constraint violations.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
)

// mapConstraintErr translates lib/pq constraint violations into sentinel
// errors; anything else passes through unchanged.
func mapConstraintErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgForeignKeyViolation:
			return ErrBadReference
		case pgUniqueViolation:
			return ErrDuplicate
		}
	}
	return err
}
