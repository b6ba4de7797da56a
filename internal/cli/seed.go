package cli

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/mrlokans/mediateca/internal/catalog"
	"github.com/mrlokans/mediateca/internal/config"
	"github.com/mrlokans/mediateca/internal/database"
	"github.com/mrlokans/mediateca/internal/fixtures"
)

// SeedCommand loads a YAML fixture file into the catalog.
type SeedCommand struct {
	File     string
	Database config.Database
	Force    bool
}

func NewSeedCommand(cfg config.Database) *SeedCommand {
	return &SeedCommand{Database: cfg}
}

func (cmd *SeedCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)

	fs.StringVar(&cmd.File, "file", "", "YAML fixture file to load (required)")
	fs.StringVar(&cmd.Database.Driver, "driver", cmd.Database.Driver, "Database driver: sqlite or postgres")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the SQLite database file")
	fs.StringVar(&cmd.Database.DSN, "dsn", cmd.Database.DSN, "PostgreSQL connection string")
	fs.BoolVar(&cmd.Force, "force", false, "Load even if the catalog already has records")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Load authors, publications, units, videos and discs from a YAML file.\n")
		fmt.Fprintf(os.Stderr, "The whole file is loaded in one transaction.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s seed -file ./fixtures/catalog.yaml\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s seed -file ./fixtures/catalog.yaml -db ./other.db -force\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.File == "" {
		fs.Usage()
		return fmt.Errorf("fixture file is required")
	}

	return nil
}

func (cmd *SeedCommand) Run() error {
	if _, err := os.Stat(cmd.File); os.IsNotExist(err) {
		return fmt.Errorf("fixture file does not exist: %s", cmd.File)
	}

	db, err := database.Open(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	ctx := context.Background()
	cat := database.NewCatalog(db.DB, catalog.DefaultRegistry())

	if !cmd.Force {
		empty, err := cat.Empty(ctx)
		if err != nil {
			return fmt.Errorf("failed to inspect catalog: %w", err)
		}
		if !empty {
			return fmt.Errorf("catalog is not empty, use -force to load anyway")
		}
	}

	result, err := fixtures.LoadFile(ctx, cat, cmd.File)
	if err != nil {
		return err
	}

	fmt.Printf("\n=== Seed Results ===\n")
	kinds := make([]string, 0, len(result))
	for kind := range result {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("%-20s %d\n", kind, result[catalog.Kind(kind)])
	}
	fmt.Printf("✅ Loaded %d records from %s\n", result.Total(), cmd.File)

	return nil
}
