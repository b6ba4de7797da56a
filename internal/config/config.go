package config

import (
	"time"

	"github.com/spf13/viper"
)

type AuthMode string

const (
	AuthModeNone  AuthMode = "none"  // Writes are open (default)
	AuthModeBasic AuthMode = "basic" // Writes require the admin account via HTTP basic auth
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Auth
		RateLimit
		Fixtures
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   string // "sqlite" or "postgres"
		Path     string // SQLite file path
		DSN      string // PostgreSQL connection string
		LogLevel string // gorm logger level: silent, error, warn, info
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
	}
	Auth struct {
		Mode              AuthMode
		AdminUsername     string
		AdminPasswordHash string // bcrypt hash, see the hash-password command
		SessionSecret     string
		SessionLifetime   time.Duration
		SecureCookies     bool // Set to false for local dev without HTTPS
		BcryptCost        int
	}
	RateLimit struct {
		Enabled           bool
		RequestsPerSecond float64 // Sustained write rate per client IP
		Burst             int
	}
	Fixtures struct {
		Path string // YAML file loaded at startup when the catalog is empty
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_driver", DriverSQLite)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")

	// Auth defaults
	v.SetDefault("auth_mode", "none")
	v.SetDefault("auth_admin_username", "admin")
	v.SetDefault("auth_admin_password_hash", "")
	v.SetDefault("auth_session_secret", "")      // Auto-generated if empty
	v.SetDefault("auth_session_lifetime", "24h") // 24 hours
	v.SetDefault("auth_secure_cookies", true)    // HTTPS-only cookies
	v.SetDefault("auth_bcrypt_cost", 12)

	// Write rate limiting
	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_rps", 2)
	v.SetDefault("rate_limit_burst", 10)

	v.SetDefault("fixtures_path", "")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:   v.GetString("DATABASE_DRIVER"),
			Path:     v.GetString("DATABASE_PATH"),
			DSN:      v.GetString("DATABASE_DSN"),
			LogLevel: v.GetString("DATABASE_LOG_LEVEL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Auth: Auth{
			Mode:              AuthMode(v.GetString("AUTH_MODE")),
			AdminUsername:     v.GetString("AUTH_ADMIN_USERNAME"),
			AdminPasswordHash: v.GetString("AUTH_ADMIN_PASSWORD_HASH"),
			SessionSecret:     v.GetString("AUTH_SESSION_SECRET"),
			SessionLifetime:   v.GetDuration("AUTH_SESSION_LIFETIME"),
			SecureCookies:     v.GetBool("AUTH_SECURE_COOKIES"),
			BcryptCost:        v.GetInt("AUTH_BCRYPT_COST"),
		},
		RateLimit: RateLimit{
			Enabled:           v.GetBool("RATE_LIMIT_ENABLED"),
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		Fixtures: Fixtures{
			Path: v.GetString("FIXTURES_PATH"),
		},
	}
}
