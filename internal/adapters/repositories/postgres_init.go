package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the Postgres schema backing the geocode cache.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        query TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_geocode_cache_updated_at
    ON geocode_cache(updated_at);
	`

	statements := []string{
		createGeocodeCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// LandmarkSeed is a known search query and where it resolves.
type LandmarkSeed struct {
	Query string  `json:"query"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Read and validate landmark seeds from a JSON file.
// Queries are normalized the same way the geocoder normalizes cache keys.
func LoadLandmarkSeeds(jsonPath string) ([]LandmarkSeed, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("seed landmarks: read %q: %w", jsonPath, err)
	}

	var data []LandmarkSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return nil, fmt.Errorf("seed landmarks: parse json: %w", err)
	}

	rows := make([]LandmarkSeed, 0, len(data))
	for i, item := range data {
		query := strings.ToLower(strings.Join(strings.Fields(item.Query), " "))
		if query == "" {
			return nil, fmt.Errorf("seed landmarks: item at index %d: query cannot be empty", i+1)
		}
		if item.Lat < -90 || item.Lat > 90 || item.Lon < -180 || item.Lon > 180 {
			return nil, fmt.Errorf("seed landmarks: item %q: coordinate out of range (%v, %v)", query, item.Lat, item.Lon)
		}
		rows = append(rows, LandmarkSeed{Query: query, Lat: item.Lat, Lon: item.Lon})
	}

	return rows, nil
}

// Populate the geocode cache with landmark data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	if db == nil {
		return 0, errors.New("seed landmarks: DB is nil")
	}

	rows, err := LoadLandmarkSeeds(jsonPath)
	if err != nil {
		return 0, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed landmarks: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO geocode_cache (query, lat, lon)
	VALUES ($1, $2, $3)
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		updated_at = now();
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("seed landmarks: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, l := range rows {
		if _, err := stmt.ExecContext(ctx, l.Query, l.Lat, l.Lon); err != nil {
			return 0, fmt.Errorf("seed landmarks: insert query=%q: %w", l.Query, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed landmarks: commit tx: %w", err)
	}

	return len(rows), nil
}
