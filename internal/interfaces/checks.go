package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/mediateca/internal/auth"
	"github.com/mrlokans/mediateca/internal/database"
	"github.com/mrlokans/mediateca/internal/entities"
	"github.com/mrlokans/mediateca/internal/http"
	"github.com/mrlokans/mediateca/internal/validation"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// EntityStore implementations
var _ http.EntityStore[entities.Author] = (*database.Store[entities.Author])(nil)
var _ http.EntityStore[entities.Publication] = (*database.PublicationStore)(nil)
var _ http.EntityStore[entities.Unit] = (*database.Store[entities.Unit])(nil)
var _ http.EntityStore[entities.Video] = (*database.Store[entities.Video])(nil)
var _ http.EntityStore[entities.Disc] = (*database.Store[entities.Disc])(nil)
var _ http.EntityStore[entities.AuthorPublication] = (*database.Store[entities.AuthorPublication])(nil)
var _ http.EntityStore[entities.AuthorVideo] = (*database.Store[entities.AuthorVideo])(nil)
var _ http.EntityStore[entities.AuthorDisc] = (*database.Store[entities.AuthorDisc])(nil)

// PublicationReader implementations
var _ http.PublicationReader = (*database.PublicationStore)(nil)

// HealthChecker implementations
var _ http.HealthChecker = (*database.Catalog)(nil)

// =============================================================================
// Validation
// =============================================================================

// RecordValidator implementations
var _ http.RecordValidator = (*validation.Validator)(nil)
var _ database.RecordValidator = (*validation.Validator)(nil)

// ISBNLookup implementations
var _ validation.ISBNLookup = (*database.PublicationStore)(nil)

// =============================================================================
// Sessions
// =============================================================================

// Flasher implementations
var _ http.Flasher = (*auth.SessionManager)(nil)
