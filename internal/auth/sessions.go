package auth

import (
	"database/sql"
	"net/http"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"github.com/mrlokans/mediateca/internal/config"
)

// Session data keys
const (
	SessionKeyFlash = "flash"
)

// SessionManager wraps scs.SessionManager with the flash helpers the forms use.
type SessionManager struct {
	*scs.SessionManager
}

// NewSessionManager creates a session manager backed by the SQLite catalog
// database. The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, cfg config.Auth) (*SessionManager, error) {
	// Create sessions table if it doesn't exist
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	return newSessionManager(sqlite3store.New(sqlDB), cfg), nil
}

// NewMemorySessionManager keeps sessions in process memory. Used when the
// catalog lives in PostgreSQL, which the SQLite session store cannot share.
func NewMemorySessionManager(cfg config.Auth) *SessionManager {
	return newSessionManager(memstore.New(), cfg)
}

func newSessionManager(store scs.Store, cfg config.Auth) *SessionManager {
	sm := scs.New()
	sm.Store = store

	sm.Lifetime = cfg.SessionLifetime
	sm.IdleTimeout = cfg.SessionLifetime / 2 // Half of lifetime for inactivity

	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	sm.Cookie.SameSite = http.SameSiteLaxMode // Lax so the flash survives the post-redirect-get
	sm.Cookie.Path = "/"

	return &SessionManager{SessionManager: sm}
}

// SetFlash stores a one-shot message shown on the next page load.
func (sm *SessionManager) SetFlash(r *http.Request, msg string) {
	sm.Put(r.Context(), SessionKeyFlash, msg)
}

// PopFlash returns the pending flash message and clears it.
func (sm *SessionManager) PopFlash(r *http.Request) string {
	return sm.PopString(r.Context(), SessionKeyFlash)
}
