package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
)

func newPublication(isbn, title string) *entities.Publication {
	return &entities.Publication{
		ISBN:      isbn,
		Title:     title,
		Type:      entities.PublicationTypeBook,
		Year:      1985,
		Publisher: "Alfaguara",
	}
}

func addUnits(t *testing.T, cat *Catalog, pubID uint, states ...entities.UnitState) {
	t.Helper()
	for _, s := range states {
		require.NoError(t, cat.Units.Create(context.Background(), &entities.Unit{PublicationID: pubID, State: s}))
	}
}

func TestPublicationStore_UnitCounts(t *testing.T) {
	cat := setupTestCatalog(t)
	ctx := context.Background()

	pub := newPublication("9788420471839", "El amor en los tiempos del cólera")
	require.NoError(t, cat.Publications.Create(ctx, pub))
	addUnits(t, cat, pub.ID,
		entities.UnitStateNew,
		entities.UnitStateUsed,
		entities.UnitStateUsed,
		entities.UnitStateDeteriorated,
		entities.UnitStateRetire,
	)

	other := newPublication("9788420471840", "Otra")
	require.NoError(t, cat.Publications.Create(ctx, other))
	addUnits(t, cat, other.ID, entities.UnitStateNew)

	total, err := cat.Publications.TotalUnits(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	available, err := cat.Publications.AvailableUnits(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), available)

	n, err := cat.Publications.CountUnits(ctx, pub.ID, entities.UnitStateUsed)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	byState, err := cat.Publications.CountUnitsByState(ctx, pub.ID)
	require.NoError(t, err)
	assert.Equal(t, map[entities.UnitState]int64{
		entities.UnitStateNew:          1,
		entities.UnitStateUsed:         2,
		entities.UnitStateDeteriorated: 1,
		entities.UnitStateRetire:       1,
	}, byState)

	t.Run("publication without units counts zero", func(t *testing.T) {
		empty := newPublication("9788420471841", "Vacía")
		require.NoError(t, cat.Publications.Create(ctx, empty))

		total, err := cat.Publications.TotalUnits(ctx, empty.ID)
		require.NoError(t, err)
		assert.Zero(t, total)

		available, err := cat.Publications.AvailableUnits(ctx, empty.ID)
		require.NoError(t, err)
		assert.Zero(t, available)
	})

	t.Run("summaries match the per-publication counts", func(t *testing.T) {
		summaries, err := cat.Publications.Summaries(ctx)
		require.NoError(t, err)
		require.Len(t, summaries, 3)

		// Ordered by title.
		assert.Equal(t, "El amor en los tiempos del cólera", summaries[0].Title)
		assert.Equal(t, int64(5), summaries[0].TotalUnits)
		assert.Equal(t, int64(4), summaries[0].AvailableUnits)
		assert.Equal(t, "Otra", summaries[1].Title)
		assert.Equal(t, int64(1), summaries[1].TotalUnits)
		assert.Equal(t, "Vacía", summaries[2].Title)
		assert.Zero(t, summaries[2].TotalUnits)
		assert.Zero(t, summaries[2].AvailableUnits)
	})
}

func TestPublicationStore_Authors(t *testing.T) {
	cat := setupTestCatalog(t)
	ctx := context.Background()

	zafon := newAuthor("Carlos", "Ruiz Zafón")
	allende := newAuthor("Isabel", "Allende")
	require.NoError(t, cat.Authors.Create(ctx, zafon))
	require.NoError(t, cat.Authors.Create(ctx, allende))

	pub := newPublication("9788408163435", "Antología")
	pub.AuthorIDs = []uint{zafon.ID, allende.ID}
	require.NoError(t, cat.Publications.Create(ctx, pub))

	require.Len(t, pub.Authors, 2)
	assert.Equal(t, "Allende", pub.Authors[0].LastName)
	assert.Equal(t, "Ruiz Zafón", pub.Authors[1].LastName)

	t.Run("linking does not touch the authors", func(t *testing.T) {
		n, err := cat.Authors.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		got, err := cat.Authors.Get(ctx, zafon.ID)
		require.NoError(t, err)
		assert.Equal(t, "Carlos", got.FirstName)
	})

	t.Run("unknown author id is an integrity error", func(t *testing.T) {
		bad := newPublication("9788408163436", "Fantasma")
		bad.AuthorIDs = []uint{zafon.ID, 777}

		err := cat.Publications.Create(ctx, bad)
		assert.ErrorIs(t, err, catalog.ErrIntegrity)
		assert.ErrorIs(t, err, catalog.ErrForeignKey)

		exists, err := cat.Publications.ISBNExists(ctx, "9788408163436")
		require.NoError(t, err)
		assert.False(t, exists, "publication row must be rolled back with its links")
	})

	t.Run("list preloads authors", func(t *testing.T) {
		pubs, err := cat.Publications.List(ctx)
		require.NoError(t, err)
		require.Len(t, pubs, 1)
		assert.Len(t, pubs[0].Authors, 2)
	})
}

func TestPublicationStore_DuplicateISBN(t *testing.T) {
	t.Run("caught by validation", func(t *testing.T) {
		cat := setupTestCatalog(t)
		ctx := context.Background()

		require.NoError(t, cat.Publications.Create(ctx, newPublication("9788437604947", "Primera")))
		err := cat.Publications.Create(ctx, newPublication("9788437604947", "Segunda"))

		assert.ErrorIs(t, err, catalog.ErrValidation)
		assert.ErrorIs(t, err, catalog.ErrDuplicate)
		assert.ErrorIs(t, err, catalog.ErrIntegrity)
	})

	t.Run("caught by the unique index", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()
		ctx := context.Background()

		// No validator, so the insert reaches the database.
		store := NewPublicationStore(db.DB, catalog.DefaultRegistry(), nil)
		require.NoError(t, store.Create(ctx, newPublication("9788437604947", "Primera")))
		err := store.Create(ctx, newPublication("9788437604947", "Segunda"))

		var integrity *catalog.IntegrityError
		require.ErrorAs(t, err, &integrity)
		assert.Equal(t, catalog.ConstraintUnique, integrity.Constraint)
		assert.Equal(t, "isbn", integrity.Field)
		assert.ErrorIs(t, err, catalog.ErrDuplicate)
		assert.NotErrorIs(t, err, catalog.ErrValidation)

		n, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestPublicationStore_ISBNExists(t *testing.T) {
	cat := setupTestCatalog(t)
	ctx := context.Background()

	exists, err := cat.Publications.ISBNExists(ctx, "9780306406157")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, cat.Publications.Create(ctx, newPublication("9780306406157", "Algo")))

	exists, err = cat.Publications.ISBNExists(ctx, "9780306406157")
	require.NoError(t, err)
	assert.True(t, exists)
}
