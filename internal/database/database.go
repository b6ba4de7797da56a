package database

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/mediateca/internal/config"
	"github.com/mrlokans/mediateca/internal/entities"
)

type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens the SQLite catalog at dbPath with default settings.
func NewDatabase(dbPath string) (*Database, error) {
	return Open(config.Database{
		Driver:   config.DriverSQLite,
		Path:     dbPath,
		LogLevel: "warn",
	})
}

// Open connects to the configured store and migrates the catalog schema.
func Open(cfg config.Database) (*Database, error) {
	var (
		dialector gorm.Dialector
		target    string
	)

	switch cfg.Driver {
	case "", config.DriverSQLite:
		dialector = sqlite.Open(sqliteDSN(cfg.Path))
		target = cfg.Path
		cfg.Driver = config.DriverSQLite
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("postgres driver requires DATABASE_DSN")
		}
		dialector = postgres.Open(cfg.DSN)
		target = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(entities.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", target)

	return &Database{DB: db, Driver: cfg.Driver}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sqliteDSN turns on foreign key enforcement, which SQLite leaves off per
// connection unless asked.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func logLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
