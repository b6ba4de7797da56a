package http

import (
	"context"
	"net/http"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/database"
	"github.com/mrlokans/mediateca/internal/entities"
)

// Store interfaces used by the controllers. Each one is the smallest slice
// of the data access layer a controller needs; the database package types
// satisfy them (see internal/interfaces).

// EntityStore lists and creates records of one kind.
type EntityStore[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, record *T) error
}

// RecordValidator checks a record without writing it. Forms use it to
// report every field when some inputs could not even be parsed.
type RecordValidator interface {
	Validate(ctx context.Context, kind catalog.Kind, record any) error
}

// PublicationReader serves the derived unit counts.
type PublicationReader interface {
	Get(ctx context.Context, id uint) (*entities.Publication, error)
	Summaries(ctx context.Context) ([]database.PublicationSummary, error)
	CountUnits(ctx context.Context, publicationID uint, exclude ...entities.UnitState) (int64, error)
	CountUnitsByState(ctx context.Context, publicationID uint) (map[entities.UnitState]int64, error)
}

// HealthChecker reports storage liveness and row counts.
type HealthChecker interface {
	Ping(ctx context.Context) error
	Counts(ctx context.Context) (map[catalog.Kind]int64, error)
}

// Flasher carries one-shot messages across the post-redirect-get.
type Flasher interface {
	SetFlash(r *http.Request, msg string)
	PopFlash(r *http.Request) string
}
