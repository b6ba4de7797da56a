package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/mediateca/internal/auth"
	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/config"
	"github.com/mrlokans/mediateca/internal/database"
	"github.com/mrlokans/mediateca/internal/fixtures"
	http_controllers "github.com/mrlokans/mediateca/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 sends SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	// Release resources only once in-flight requests have drained
	if onShutdown != nil {
		onShutdown(ctx)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Mediateca v%s", version)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	registry := catalog.DefaultRegistry()
	cat := database.NewCatalog(db.DB, registry)

	if cfg.Fixtures.Path != "" {
		seedIfEmpty(cat, cfg.Fixtures.Path)
	}

	sessionManager, err := newSessionManager(db, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	csrfSecret, err := csrfSecret(cfg.Auth.SessionSecret)
	if err != nil {
		log.Fatalf("Failed to generate CSRF secret: %v", err)
	}

	if cfg.Auth.Mode == config.AuthModeBasic {
		if cfg.Auth.AdminPasswordHash == "" {
			log.Fatalf("AUTH_MODE=basic requires AUTH_ADMIN_PASSWORD_HASH (see the hash-password command)")
		}
		log.Printf("Write access restricted to %q", cfg.Auth.AdminUsername)
	} else {
		log.Printf("WARNING: AUTH_MODE is %q, write routes are open", cfg.Auth.Mode)
	}

	var rateLimiter *auth.RateLimiter
	if cfg.RateLimit.Enabled {
		rlCfg := auth.DefaultRateLimitConfig()
		rlCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rlCfg.Burst = cfg.RateLimit.Burst
		rateLimiter = auth.NewRateLimiter(rlCfg)
	}

	routerCfg := http_controllers.RouterConfig{
		Catalog:        cat,
		Registry:       registry,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		SessionManager: sessionManager,
		AuthConfig:     cfg.Auth,
		RateLimiter:    rateLimiter,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if rateLimiter != nil {
			rateLimiter.Stop()
		}
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}

	Serve(router, cfg, onShutdown)
}

// seedIfEmpty loads the fixture file into a fresh catalog. A populated
// catalog is left alone so restarts do not duplicate records.
func seedIfEmpty(cat *database.Catalog, path string) {
	ctx := context.Background()
	empty, err := cat.Empty(ctx)
	if err != nil {
		log.Fatalf("Failed to inspect catalog: %v", err)
	}
	if !empty {
		log.Printf("Catalog already populated, skipping fixtures from %s", path)
		return
	}

	result, err := fixtures.LoadFile(ctx, cat, path)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}
	log.Printf("Loaded %d records from %s", result.Total(), path)
}

// newSessionManager keeps sessions next to the catalog on SQLite and in
// memory otherwise.
func newSessionManager(db *database.Database, cfg *config.Config) (*auth.SessionManager, error) {
	if db.Driver != config.DriverSQLite {
		log.Printf("Sessions kept in memory for driver %s", db.Driver)
		return auth.NewMemorySessionManager(cfg.Auth), nil
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return nil, err
	}
	return auth.NewSessionManager(sqlDB, cfg.Auth)
}

func csrfSecret(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret, err := auth.GenerateSessionSecret()
	if err != nil {
		return nil, err
	}
	log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}
