package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrIntegrity matches every *IntegrityError and a *ValidationError
	// carrying a unique violation.
	ErrIntegrity = errors.New("integrity violation")

	// ErrDuplicate matches unique-constraint violations, whether caught by
	// the pre-insert check or reported by the store.
	ErrDuplicate = errors.New("duplicate value")

	// ErrForeignKey matches writes that reference a missing row.
	ErrForeignKey = errors.New("referenced record does not exist")

	// ErrNotFound is returned by lookups by id.
	ErrNotFound = errors.New("record not found")
)

// Violation codes.
const (
	CodeRequired = "required"
	CodeRange    = "range"
	CodeLength   = "length"
	CodeChoice   = "choice"
	CodeInvalid  = "invalid"
	CodeUnique   = "unique"
)

// Violation describes one rejected field.
type Violation struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError rejects a record in full. Every violated field is listed.
type ValidationError struct {
	Kind       Kind
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Field+": "+v.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	// A duplicate caught before insert is the same integrity failure the
	// unique index would report.
	if target == ErrDuplicate || target == ErrIntegrity {
		for _, v := range e.Violations {
			if v.Code == CodeUnique {
				return true
			}
		}
	}
	return false
}

// ByField groups violation messages by field name, for form rendering.
func (e *ValidationError) ByField() map[string][]string {
	out := make(map[string][]string, len(e.Violations))
	for _, v := range e.Violations {
		out[v.Field] = append(out[v.Field], v.Message)
	}
	return out
}

// NewValidationError returns nil when there are no violations.
func NewValidationError(kind Kind, violations []Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Kind: kind, Violations: violations}
}

// Constraint kinds reported by IntegrityError.
const (
	ConstraintUnique     = "unique"
	ConstraintForeignKey = "foreign_key"
)

// IntegrityError is a write rejected by the store's own constraints.
type IntegrityError struct {
	Kind       Kind
	Constraint string
	// Field is the offending column when the store reports it.
	Field string
	Err   error
}

func (e *IntegrityError) Error() string {
	msg := fmt.Sprintf("%s %s violation", e.Kind, strings.ReplaceAll(e.Constraint, "_", " "))
	if e.Field != "" {
		msg += " on " + e.Field
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IntegrityError) Unwrap() error {
	return e.Err
}

func (e *IntegrityError) Is(target error) bool {
	switch target {
	case ErrIntegrity:
		return true
	case ErrDuplicate:
		return e.Constraint == ConstraintUnique
	case ErrForeignKey:
		return e.Constraint == ConstraintForeignKey
	}
	return false
}
