package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/config"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/pkg/logger"
	"github.com/jwalitptl/hospital-api/pkg/security"
)

func loadConfig(path string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
		JSON:       cfg.Log.JSON,
	})
	return cfg, log, nil
}

// openDatabase connects, creates the schema if needed and seeds the admin.
func openDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sqlx.DB, error) {
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := initDatabase(ctx, db, cfg, log); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func initDatabase(ctx context.Context, db *sqlx.DB, cfg *config.Config, log *logger.Logger) error {
	if err := postgres.Migrate(ctx, db); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	hasher := security.NewBcryptHasher(cfg.Admin.BcryptCost)
	seeded, err := postgres.SeedAdmin(ctx, db, hasher, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	if seeded {
		log.Info("seeded admin account", "username", cfg.Admin.Username)
	}
	return nil
}
