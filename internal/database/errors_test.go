package database

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
)

func TestTranslateError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, translateError(catalog.KindAuthor, nil))
	})

	t.Run("unrelated errors pass through", func(t *testing.T) {
		boom := errors.New("disk I/O error")
		assert.Same(t, boom, translateError(catalog.KindAuthor, boom))
	})

	t.Run("postgres unique violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "idx_publications_isbn",
			Detail:         "Key (isbn)=(9788437604947) already exists.",
		}
		err := translateError(catalog.KindPublication, fmt.Errorf("insert: %w", pgErr))

		var integrity *catalog.IntegrityError
		require.ErrorAs(t, err, &integrity)
		assert.Equal(t, catalog.ConstraintUnique, integrity.Constraint)
		assert.Equal(t, "isbn", integrity.Field)
		assert.ErrorIs(t, err, catalog.ErrDuplicate)

		var unwrapped *pgconn.PgError
		assert.ErrorAs(t, err, &unwrapped)
	})

	t.Run("postgres foreign key violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503", ColumnName: "publication_id"}
		err := translateError(catalog.KindUnit, pgErr)

		assert.ErrorIs(t, err, catalog.ErrForeignKey)
		assert.Contains(t, err.Error(), "unit foreign key violation on publication_id")
	})

	t.Run("other postgres codes pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "40001"}
		err := translateError(catalog.KindUnit, pgErr)
		assert.NotErrorIs(t, err, catalog.ErrIntegrity)
	})

	t.Run("gorm sentinels as fallback", func(t *testing.T) {
		assert.ErrorIs(t, translateError(catalog.KindDisc, gorm.ErrDuplicatedKey), catalog.ErrDuplicate)
		assert.ErrorIs(t, translateError(catalog.KindDisc, gorm.ErrForeignKeyViolated), catalog.ErrForeignKey)
	})
}

func TestTranslateError_SQLite(t *testing.T) {
	cat := setupTestCatalog(t)
	ctx := context.Background()

	pub := &entities.Publication{
		ISBN: "9780000000002", Title: "Atlas", Type: entities.PublicationTypeBook,
		Year: 1999, Publisher: "Prensa",
	}
	require.NoError(t, cat.Publications.Create(ctx, pub))
	require.NoError(t, cat.Units.Create(ctx, &entities.Unit{PublicationID: pub.ID, State: entities.UnitStateNew}))

	t.Run("restrict on delete is a foreign key violation", func(t *testing.T) {
		raw := cat.db.WithContext(ctx).Exec("DELETE FROM publications WHERE id = ?", pub.ID).Error
		require.Error(t, raw)

		var sqliteErr sqlite3.Error
		require.ErrorAs(t, raw, &sqliteErr)
		assert.Equal(t, sqlite3.ErrConstraintTrigger, sqliteErr.ExtendedCode)

		err := translateError(catalog.KindPublication, raw)
		var integrity *catalog.IntegrityError
		require.ErrorAs(t, err, &integrity)
		assert.Equal(t, catalog.ConstraintForeignKey, integrity.Constraint)
		assert.ErrorIs(t, err, catalog.ErrForeignKey)
	})

	t.Run("dangling reference on insert", func(t *testing.T) {
		raw := cat.db.WithContext(ctx).Exec("INSERT INTO units (publication_id, state) VALUES (?, ?)", 9999, "nueva").Error
		assert.ErrorIs(t, translateError(catalog.KindUnit, raw), catalog.ErrForeignKey)
	})

	t.Run("duplicate isbn names the column", func(t *testing.T) {
		raw := cat.db.WithContext(ctx).Exec(
			"INSERT INTO publications (isbn, title, type, year, publisher) VALUES (?, ?, ?, ?, ?)",
			pub.ISBN, "Copia", "libro", 2000, "Otra",
		).Error

		var integrity *catalog.IntegrityError
		require.ErrorAs(t, translateError(catalog.KindPublication, raw), &integrity)
		assert.Equal(t, catalog.ConstraintUnique, integrity.Constraint)
		assert.Equal(t, "isbn", integrity.Field)
	})

	t.Run("other constraint codes pass through", func(t *testing.T) {
		check := sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintCheck}
		assert.NotErrorIs(t, translateError(catalog.KindDisc, check), catalog.ErrIntegrity)
	})
}

func TestSqliteColumn(t *testing.T) {
	assert.Equal(t, "isbn", sqliteColumn("UNIQUE constraint failed: publications.isbn"))
	assert.Equal(t, "author_id", sqliteColumn("UNIQUE constraint failed: t.author_id, t.video_id"))
	assert.Equal(t, "", sqliteColumn("FOREIGN KEY constraint failed"))
}
