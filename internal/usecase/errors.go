package usecase

import (
	"errors"
	"fmt"
)

// Business failures are returned as ordinary error values. Callers match
// them with errors.Is / errors.As; nothing in this package panics for an
// expected condition.
var (
	// ErrNotFound marks a lookup against an ID that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate explicit ID, username, or tail number.
	ErrConflict = errors.New("already exists")

	// ErrDependencyBlock marks a delete refused because dependent records
	// still reference the entity.
	ErrDependencyBlock = errors.New("dependent records exist")
)

// ConstraintError reports a business-rule violation with the field and the
// rule that failed, so callers can surface an actionable reason.
type ConstraintError struct {
	Field string
	Rule  string
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Rule)
}

func constraintErr(field, format string, args ...interface{}) error {
	return &ConstraintError{Field: field, Rule: fmt.Sprintf(format, args...)}
}
