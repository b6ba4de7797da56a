// Package database provides the data access layer for the catalog.
//
// # Architecture
//
//	database/
//	├── database.go      # Connection setup (SQLite or PostgreSQL), migrations
//	├── store.go         # Generic Store[T]: validated create, ordered list, get, count
//	├── publications.go  # PublicationStore: author links, unit counts, summaries
//	├── catalog.go       # Catalog: every store over one connection or transaction
//	└── errors.go        # Driver constraint errors to catalog.IntegrityError
//
// # Usage
//
//	db, err := database.NewDatabase("./mediateca.db")
//	cat := database.NewCatalog(db.DB, catalog.DefaultRegistry())
//
//	err = cat.Authors.Create(ctx, &entities.Author{...})
//	authors, err := cat.Authors.List(ctx)
//	available, err := cat.Publications.AvailableUnits(ctx, pubID)
//
// # Errors
//
// Create returns *catalog.ValidationError when the record is rejected before
// the write and *catalog.IntegrityError when the database refuses it (unique
// index or foreign key). Both support errors.Is against the catalog
// sentinels. Anything else is a wrapped storage error.
package database
