package main

import (
	"atm-locator-service/internal/adapters/repositories"
	"atm-locator-service/internal/config"
	"atm-locator-service/internal/platform/db"
	"atm-locator-service/internal/platform/obs"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"
)

// dbtool creates the geocode cache schema and preloads landmark coordinates.
func main() {
	if !config.LoadDotEnv() {
		obs.Logger.Log("msg", "no .env file found, using environment variables")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		obs.Logger.Log("msg", "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		obs.Logger.Log("msg", "open database", "err", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/landmarks.json")
	if err := initAndSeed(ctx, sqlDB, seedPath); err != nil {
		obs.Logger.Log("msg", "dbtool failed", "err", err)
		sqlDB.Close()
		os.Exit(1)
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, seedPath string) error {
	obs.Logger.Log("msg", "initializing database schema")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	n, err := repositories.SeedFromJSON(ctx, sqlDB, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	obs.Logger.Log("msg", "seeding complete", "path", seedPath, "rows", n)

	return nil
}
