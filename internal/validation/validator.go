// Package validation decides whether a candidate catalog record may be
// persisted. Static rules live in `validate` struct tags on the entities;
// enum rules consult the catalog registry; ISBN uniqueness is checked
// against current state through an ISBNLookup.
package validation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
)

// ISBNLookup reports whether a publication with the given ISBN is stored.
type ISBNLookup interface {
	ISBNExists(ctx context.Context, isbn string) (bool, error)
}

type Validator struct {
	validate *validator.Validate
	isbns    ISBNLookup
}

// New builds a validator backed by registry. isbns may be nil, in which
// case duplicate ISBNs are left to the store's unique index.
func New(registry *catalog.Registry, isbns ISBNLookup) *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			return f.Name
		}
		return name
	})

	// A zero Date must fail `required`; returning nil marks it as missing.
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(entities.Date); ok && !d.IsZero() {
			return d.Time
		}
		return nil
	}, entities.Date{})

	if err := v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
		return registry.Valid(fl.Param(), fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register choice validation: %v", err))
	}

	return &Validator{validate: v, isbns: isbns}
}

// Validate normalizes record in place and checks it. It returns nil when
// the record is acceptable, a *catalog.ValidationError listing every
// violated field, or a wrapped error if the uniqueness lookup failed.
func (v *Validator) Validate(ctx context.Context, kind catalog.Kind, record any) error {
	Normalize(record)

	var violations []catalog.Violation
	if err := v.validate.StructCtx(ctx, record); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return fmt.Errorf("validate %s: %w", kind, err)
		}
		for _, fe := range fieldErrs {
			violations = append(violations, v.violation(fe))
		}
	}

	if p, ok := record.(*entities.Publication); ok && v.isbns != nil && !hasViolation(violations, "isbn") {
		exists, err := v.isbns.ISBNExists(ctx, p.ISBN)
		if err != nil {
			return fmt.Errorf("check isbn uniqueness: %w", err)
		}
		if exists {
			violations = append(violations, catalog.Violation{
				Field:   "isbn",
				Code:    catalog.CodeUnique,
				Message: "Publication with this ISBN already exists.",
			})
		}
	}

	return catalog.NewValidationError(kind, violations)
}

func (v *Validator) violation(fe validator.FieldError) catalog.Violation {
	out := catalog.Violation{Field: fe.Field()}

	switch fe.Tag() {
	case "required":
		out.Code = catalog.CodeRequired
		out.Message = "This field is required."
	case "max":
		out.Code = catalog.CodeLength
		out.Message = fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "len":
		out.Code = catalog.CodeLength
		out.Message = fmt.Sprintf("Ensure this value has exactly %s characters.", fe.Param())
	case "gte":
		out.Code = catalog.CodeRange
		out.Message = fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "lte":
		out.Code = catalog.CodeRange
		out.Message = fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "choice":
		out.Code = catalog.CodeChoice
		out.Message = fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	default:
		out.Code = catalog.CodeInvalid
		out.Message = "Enter a valid value."
	}
	return out
}

func hasViolation(violations []catalog.Violation, field string) bool {
	for _, v := range violations {
		if v.Field == field {
			return true
		}
	}
	return false
}
