package http

import (
	"github.com/mrlokans/mediateca/internal/auth"
	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/config"
	"github.com/mrlokans/mediateca/internal/database"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog  *database.Catalog
	Registry *catalog.Registry

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string

	// Browser protection. An empty CSRFSecret disables CSRF checks.
	CSRFSecret     []byte
	SecureCookies  bool
	SessionManager *auth.SessionManager // optional, enables flash messages

	// Write access
	AuthConfig  config.Auth
	RateLimiter *auth.RateLimiter // optional
}
