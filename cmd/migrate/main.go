package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	appaccounting "github.com/kopkar/backend/internal/application/accounting"
	"github.com/kopkar/backend/internal/infrastructure/config"
	"github.com/kopkar/backend/internal/infrastructure/logger"
	"github.com/kopkar/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

// migrate applies the schema and optionally seeds the chart of accounts.
//
// Usage:
//
//	migrate [-log-level=info] up         apply the schema
//	migrate [-log-level=info] seed       apply the schema and seed accounts
func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{Level: logLevel, Format: "console", Output: "stdout"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	switch command {
	case "up":
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema migrated")
	case "seed":
		if err := persistence.AutoMigrate(db.DB); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		accountRepo := persistence.NewGormAccountRepository(db.DB)
		if err := appaccounting.SeedChartOfAccounts(context.Background(), accountRepo); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Schema migrated and chart of accounts seeded")
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: migrate [-log-level=info] <up|seed>")
}
