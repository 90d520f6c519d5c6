package ports

import (
	"atm-locator-service/internal/domain"
	"context"
	"time"
)

// Contract for querying ATMs around a coordinate.
type ATMProvider interface {
	// Return every ATM within radiusMeters of center, unfiltered.
	NearbyATMs(ctx context.Context, center domain.Coordinates, radiusMeters int) ([]domain.ATM, error)
}

// Optional short-lived cache for raw nearby-ATM results.
type ATMCache interface {
	Get(ctx context.Context, center domain.Coordinates, radiusMeters int) ([]domain.ATM, bool, error)
	Put(ctx context.Context, center domain.Coordinates, radiusMeters int, atms []domain.ATM, ttl time.Duration) error
}
