package database

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/entities"
	"github.com/mrlokans/mediateca/internal/validation"
)

// Catalog bundles the stores of every entity kind over one connection or
// transaction. All stores share a validator whose ISBN lookup reads through
// the same connection.
type Catalog struct {
	db        *gorm.DB
	registry  *catalog.Registry
	validator *validation.Validator

	Authors            *Store[entities.Author]
	Publications       *PublicationStore
	Units              *Store[entities.Unit]
	Videos             *Store[entities.Video]
	Discs              *Store[entities.Disc]
	AuthorPublications *Store[entities.AuthorPublication]
	AuthorVideos       *Store[entities.AuthorVideo]
	AuthorDiscs        *Store[entities.AuthorDisc]
}

func NewCatalog(db *gorm.DB, registry *catalog.Registry) *Catalog {
	pubs := NewPublicationStore(db, registry, nil)
	v := validation.New(registry, pubs)
	pubs.validator = v

	return &Catalog{
		db:                 db,
		registry:           registry,
		validator:          v,
		Authors:            NewStore[entities.Author](db, catalog.KindAuthor, registry, v),
		Publications:       pubs,
		Units:              NewStore[entities.Unit](db, catalog.KindUnit, registry, v, "Publication"),
		Videos:             NewStore[entities.Video](db, catalog.KindVideo, registry, v),
		Discs:              NewStore[entities.Disc](db, catalog.KindDisc, registry, v),
		AuthorPublications: NewStore[entities.AuthorPublication](db, catalog.KindAuthorPublication, registry, v, "Author", "Publication"),
		AuthorVideos:       NewStore[entities.AuthorVideo](db, catalog.KindAuthorVideo, registry, v, "Author", "Video"),
		AuthorDiscs:        NewStore[entities.AuthorDisc](db, catalog.KindAuthorDisc, registry, v, "Author", "Disc"),
	}
}

func (c *Catalog) Registry() *catalog.Registry {
	return c.registry
}

// Validator checks records without writing them.
func (c *Catalog) Validator() RecordValidator {
	return c.validator
}

// Transaction runs fn against a catalog bound to a single transaction.
// Any error returned by fn rolls everything back.
func (c *Catalog) Transaction(ctx context.Context, fn func(tx *Catalog) error) error {
	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewCatalog(tx, c.registry))
	})
}

// Ping checks that the underlying connection is alive.
func (c *Catalog) Ping(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Counts returns the number of stored rows per entity kind.
func (c *Catalog) Counts(ctx context.Context) (map[catalog.Kind]int64, error) {
	counters := []interface {
		Kind() catalog.Kind
		Count(context.Context) (int64, error)
	}{
		c.Authors, c.Publications, c.Units, c.Videos, c.Discs,
		c.AuthorPublications, c.AuthorVideos, c.AuthorDiscs,
	}

	out := make(map[catalog.Kind]int64, len(counters))
	for _, s := range counters {
		n, err := s.Count(ctx)
		if err != nil {
			return nil, err
		}
		out[s.Kind()] = n
	}
	return out, nil
}

// Empty reports whether the catalog holds no rows at all.
func (c *Catalog) Empty(ctx context.Context) (bool, error) {
	counts, err := c.Counts(ctx)
	if err != nil {
		return false, err
	}
	for _, n := range counts {
		if n > 0 {
			return false, nil
		}
	}
	return true, nil
}
