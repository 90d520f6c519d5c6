package cache

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/platform/obs"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLGeocodeCache is a SQL-backed cache mapping normalized search queries to coordinates.
type SQLGeocodeCache struct {
	DB *sql.DB
}

func NewSQLGeocodeCache(db *sql.DB) *SQLGeocodeCache {
	return &SQLGeocodeCache{DB: db}
}

// Fetch the cached coordinate for a query.
func (s *SQLGeocodeCache) Get(ctx context.Context, query string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "geocode.cache.Get")(&err)

	if s.DB == nil {
		return domain.Coordinates{}, false, errors.New("geocode cache: db is nil")
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Coordinates{}, false, nil
	}

	q := `
	SELECT lat, lon
    FROM geocode_cache
    WHERE query = $1;
	`

	var c domain.Coordinates
	if err := s.DB.QueryRowContext(ctx, q, query).Scan(&c.Lat, &c.Lon); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Coordinates{}, false, nil
		}
		return domain.Coordinates{}, false, fmt.Errorf("get geocode cache: query geocode_cache table: %w", err)
	}

	return c, true, nil
}

// Store a single query -> coordinate mapping.
func (s *SQLGeocodeCache) Put(ctx context.Context, query string, coord domain.Coordinates) error {
	return s.PutMany(ctx, map[string]domain.Coordinates{query: coord})
}

// Store query -> coordinate mappings in the cache.
func (s *SQLGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("geocode cache: db is nil")
	}

	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO geocode_cache (query, lat, lon)
    VALUES ($1, $2, $3)
	ON CONFLICT (query) DO UPDATE
	SET lat = EXCLUDED.lat,
		lon = EXCLUDED.lon,
		updated_at = now();
	`)
	if err != nil {
		return fmt.Errorf("insert geocode cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for key, c := range results {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("insert geocode cache: empty query key")
		}

		if _, err := stmt.ExecContext(ctx, key, c.Lat, c.Lon); err != nil {
			return fmt.Errorf("insert geocode cache query=%q: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert geocode cache commit: %w", err)
	}

	return nil
}
