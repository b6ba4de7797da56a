package database

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/mrlokans/mediateca/internal/catalog"
)

// PostgreSQL SQLSTATE codes for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

const sqliteForeignKeyMessage = "FOREIGN KEY constraint failed"

var pgDetailColumn = regexp.MustCompile(`^Key \(([^)]+)\)=`)

// translateError maps constraint failures reported by the store onto
// *catalog.IntegrityError. Other errors are returned unchanged.
func translateError(kind catalog.Kind, err error) error {
	if err == nil {
		return nil
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return &catalog.IntegrityError{
				Kind:       kind,
				Constraint: catalog.ConstraintUnique,
				Field:      sqliteColumn(sqliteErr.Error()),
				Err:        err,
			}
		case sqlite3.ErrConstraintForeignKey:
			return &catalog.IntegrityError{Kind: kind, Constraint: catalog.ConstraintForeignKey, Err: err}
		}
		// ON DELETE RESTRICT is enforced by an internal trigger and reports
		// SQLITE_CONSTRAINT_TRIGGER with the foreign key message.
		if sqliteErr.Code == sqlite3.ErrConstraint && strings.Contains(sqliteErr.Error(), sqliteForeignKeyMessage) {
			return &catalog.IntegrityError{Kind: kind, Constraint: catalog.ConstraintForeignKey, Err: err}
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &catalog.IntegrityError{
				Kind:       kind,
				Constraint: catalog.ConstraintUnique,
				Field:      pgColumn(pgErr),
				Err:        err,
			}
		case pgForeignKeyViolation:
			return &catalog.IntegrityError{
				Kind:       kind,
				Constraint: catalog.ConstraintForeignKey,
				Field:      pgColumn(pgErr),
				Err:        err,
			}
		}
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &catalog.IntegrityError{Kind: kind, Constraint: catalog.ConstraintUnique, Err: err}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &catalog.IntegrityError{Kind: kind, Constraint: catalog.ConstraintForeignKey, Err: err}
	}
	return err
}

// sqliteColumn extracts "isbn" from "UNIQUE constraint failed: publications.isbn".
func sqliteColumn(msg string) string {
	_, cols, ok := strings.Cut(msg, "constraint failed: ")
	if !ok {
		return ""
	}
	first, _, _ := strings.Cut(cols, ",")
	if i := strings.LastIndex(first, "."); i >= 0 {
		first = first[i+1:]
	}
	return strings.TrimSpace(first)
}

func pgColumn(pgErr *pgconn.PgError) string {
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName
	}
	if m := pgDetailColumn.FindStringSubmatch(pgErr.Detail); m != nil {
		return m[1]
	}
	return ""
}
