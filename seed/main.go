package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/reinaldotineo/portfolio_api/seed/seeders"
	"github.com/reinaldotineo/portfolio_api/services"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	settings, err := services.LoadSettings()
	if err != nil {
		log.Fatalf("Invalid environment: %v", err)
	}

	defaultDriver := settings.StoreDriver
	if defaultDriver == services.StoreDriverFile {
		defaultDriver = services.StoreDriverSqlite
	}
	defaultDSN := settings.DatabaseURL
	if defaultDriver == services.StoreDriverSqlite {
		defaultDSN = settings.DBDatabase
	}

	var (
		importType = flag.String("type", "all", "What to import: all, messages, consultations")
		driver     = flag.String("driver", defaultDriver, "Target database driver: sqlite or postgres")
		dsn        = flag.String("dsn", defaultDSN, "Target database path or connection string")
		dataDir    = flag.String("data", settings.DataDir, "Directory holding messages.json and consultations.json")
		help       = flag.Bool("help", false, "Show help message")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	db, err := services.OpenDatabase(*driver, *dsn)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.WithField("driver", *driver).Info("Connected to database")

	ctx := context.Background()
	seeder := seeders.NewMainSeeder(db, *dataDir)

	switch *importType {
	case "all":
		err = seeder.SeedAll(ctx)
	case "messages":
		_, err = seeder.SeedMessagesOnly(ctx)
	case "consultations":
		_, err = seeder.SeedConsultationsOnly(ctx)
	default:
		log.Fatalf("Unknown import type: %s. Use 'all', 'messages', or 'consultations'", *importType)
	}
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
}

func showHelp() {
	fmt.Fprintln(os.Stderr, `
Lead import tool

Copies the JSON-file lead collections into the SQL store. Records already
present (by id) are skipped, so the tool can be re-run safely.

Usage: go run ./seed [flags]

Flags:
  -type string    all, messages, consultations (default "all")
  -driver string  sqlite or postgres (default from STORE_DRIVER, else sqlite)
  -dsn string     database path or URL (default DB_DATABASE / DATABASE_URL)
  -data string    directory with the JSON files (default DATA_DIR)
  -help           show this message`)
}
