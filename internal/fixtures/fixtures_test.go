package fixtures

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/config"
	"github.com/mrlokans/mediateca/internal/database"
)

func setupCatalog(t *testing.T) *database.Catalog {
	t.Helper()
	db, err := database.Open(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "fixtures.db"),
		LogLevel: "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewCatalog(db.DB, catalog.DefaultRegistry())
}

func TestLoadFile(t *testing.T) {
	cat := setupCatalog(t)
	ctx := context.Background()

	result, err := LoadFile(ctx, cat, "testdata/catalog.yaml")
	require.NoError(t, err)

	assert.Equal(t, 3, result[catalog.KindAuthor])
	assert.Equal(t, 2, result[catalog.KindPublication])
	assert.Equal(t, 3, result[catalog.KindUnit])
	assert.Equal(t, 1, result[catalog.KindAuthorVideo])
	assert.Equal(t, 1, result[catalog.KindAuthorDisc])
	assert.Equal(t, 12, result.Total())

	counts, err := cat.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), counts[catalog.KindAuthor])
	assert.Equal(t, int64(1), counts[catalog.KindDisc])

	pubs, err := cat.Publications.List(ctx)
	require.NoError(t, err)
	require.Len(t, pubs, 2)
	assert.Equal(t, "Cuentos de dos autores", pubs[0].Title)
	assert.Len(t, pubs[0].Authors, 2)

	available, err := cat.Publications.AvailableUnits(ctx, pubs[1].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), available)
}

func TestLoad_RollsBackOnInvalidRecord(t *testing.T) {
	cat := setupCatalog(t)
	ctx := context.Background()

	f, err := Parse(strings.NewReader(`
authors:
  - key: a
    first_name: Ana
    last_name: Ozores
    birth_date: "1850-01-01"
discs:
  - key: d
    title: Sin pistas
    format: CD
    year: 2000
    label: Sello
    tracks: 0
    genre: Pop
`))
	require.NoError(t, err)

	_, err = Load(ctx, cat, f)
	require.Error(t, err)
	assert.ErrorIs(t, err, catalog.ErrValidation)
	assert.Contains(t, err.Error(), `disc "d"`)

	empty, err := cat.Empty(ctx)
	require.NoError(t, err)
	assert.True(t, empty, "the author must be rolled back too")
}

func TestLoad_KeyErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown author", func(t *testing.T) {
		cat := setupCatalog(t)
		f := &File{Publications: []Publication{{
			Key: "p", ISBN: "9788423342006", Title: "T", Type: "libro", Year: 1950, Publisher: "P",
			Authors: []string{"nadie"},
		}}}

		_, err := Load(ctx, cat, f)
		assert.ErrorIs(t, err, ErrUnknownKey)
	})

	t.Run("duplicate author", func(t *testing.T) {
		cat := setupCatalog(t)
		f := &File{Authors: []Author{
			{Key: "x", FirstName: "A", LastName: "B", BirthDate: "1900-01-01"},
			{Key: "x", FirstName: "C", LastName: "D", BirthDate: "1900-01-01"},
		}}

		_, err := Load(ctx, cat, f)
		assert.ErrorIs(t, err, ErrDuplicateKey)
	})
}

func TestParse(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		f, err := Parse(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, f.Authors)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		_, err := Parse(strings.NewReader("authors:\n  - key: a\n    nickname: b\n"))
		assert.Error(t, err)
	})
}
