// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - EntityStore[T]: list and create one entity kind (internal/http/stores.go)
//   - PublicationReader: derived unit counts per publication (internal/http/stores.go)
//   - HealthChecker: storage liveness and row counts (internal/http/stores.go)
//   - RecordValidator: validation without persistence (internal/http/stores.go,
//     internal/database/store.go)
//   - ISBNLookup: ISBN uniqueness against stored state (internal/validation/validator.go)
//
// ## Session Interfaces
//
//   - Flasher: one-shot messages across a redirect (internal/http/stores.go)
//
// # Adding a New Entity Kind
//
//  1. Define the entity in internal/entities/catalog.go with gorm and
//     validate tags, and append it to entities.All().
//
//  2. Add a Kind and its sort keys to the registry in internal/catalog.
//     Enum fields get a domain and a `choice=<domain>` tag.
//
//  3. Add a store to database.Catalog:
//
//     Loans: NewStore[entities.Loan](db, catalog.KindLoan, registry, v, "Unit"),
//
//  4. Register the JSON routes in router.go:
//
//     registerAPI[entities.Loan](api, "/loans", cat.Loans, validator, catalog.KindLoan)
//
//  5. Add compile-time checks:
//
//     var _ http.EntityStore[entities.Loan] = (*database.Store[entities.Loan])(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for examples.
package interfaces
