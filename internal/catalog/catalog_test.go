package catalog

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_Choices(t *testing.T) {
	reg := DefaultRegistry()

	t.Run("unit states in display order", func(t *testing.T) {
		choices := reg.Choices(DomainUnitState)
		values := make([]string, 0, len(choices))
		for _, c := range choices {
			values = append(values, c.Value)
		}
		assert.Equal(t, []string{"nueva", "usada", "deteriorada", "retirar"}, values)
	})

	t.Run("valid and invalid values", func(t *testing.T) {
		assert.True(t, reg.Valid(DomainDiscFormat, "Vinilo"))
		assert.True(t, reg.Valid(DomainVideoFormat, "DVD"))
		assert.False(t, reg.Valid(DomainDiscFormat, "DVD"))
		assert.False(t, reg.Valid("unknown", "x"))
	})

	t.Run("labels fall back to the value", func(t *testing.T) {
		assert.Equal(t, "A retirar", reg.Label(DomainUnitState, "retirar"))
		assert.Equal(t, "mystery", reg.Label(DomainUnitState, "mystery"))
	})

	t.Run("domains are copied", func(t *testing.T) {
		domains := reg.Domains()
		domains[DomainDiscFormat][0].Value = "changed"
		assert.Equal(t, "Vinilo", reg.Choices(DomainDiscFormat)[0].Value)
	})
}

func TestRegistry_OrderClause(t *testing.T) {
	reg := DefaultRegistry()

	assert.Equal(t, "last_name, first_name, id", reg.OrderClause(KindAuthor))
	assert.Equal(t, "title, id", reg.OrderClause(KindDisc))
	assert.Equal(t, []string{"last_name", "first_name"}, reg.Order(KindAuthor))
}

func TestValidationError(t *testing.T) {
	t.Run("nil without violations", func(t *testing.T) {
		assert.NoError(t, NewValidationError(KindDisc, nil))
	})

	t.Run("matches sentinels", func(t *testing.T) {
		err := NewValidationError(KindPublication, []Violation{
			{Field: "year", Code: CodeRange, Message: "too small"},
		})
		wrapped := fmt.Errorf("create: %w", err)

		assert.ErrorIs(t, wrapped, ErrValidation)
		assert.NotErrorIs(t, wrapped, ErrDuplicate)
		assert.Contains(t, err.Error(), "year: too small")
	})

	t.Run("unique violation also matches ErrDuplicate and ErrIntegrity", func(t *testing.T) {
		err := NewValidationError(KindPublication, []Violation{
			{Field: "isbn", Code: CodeUnique, Message: "taken"},
		})
		assert.ErrorIs(t, err, ErrDuplicate)
		assert.ErrorIs(t, err, ErrIntegrity)
		assert.NotErrorIs(t, err, ErrForeignKey)
	})

	t.Run("groups messages by field", func(t *testing.T) {
		err := &ValidationError{Violations: []Violation{
			{Field: "title", Message: "a"},
			{Field: "title", Message: "b"},
			{Field: "year", Message: "c"},
		}}
		assert.Equal(t, map[string][]string{
			"title": {"a", "b"},
			"year":  {"c"},
		}, err.ByField())
	})
}

func TestIntegrityError(t *testing.T) {
	cause := errors.New("UNIQUE constraint failed: publications.isbn")
	err := &IntegrityError{Kind: KindPublication, Constraint: ConstraintUnique, Field: "isbn", Err: cause}

	assert.ErrorIs(t, err, ErrIntegrity)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrForeignKey)
	assert.Equal(t, "publication unique violation on isbn: UNIQUE constraint failed: publications.isbn", err.Error())

	fk := &IntegrityError{Kind: KindUnit, Constraint: ConstraintForeignKey}
	assert.ErrorIs(t, fk, ErrForeignKey)
	assert.Equal(t, "unit foreign key violation", fk.Error())
}
