package ports

import (
	"atm-locator-service/internal/domain"
	"context"
)

// Contract for resolving free text to a coordinate.
type Geocoder interface {
	// Return the first match for query, ok=false when nothing matched.
	Geocode(ctx context.Context, query string) (coord domain.Coordinates, ok bool, err error)
}

// Optional persistent cache consulted by geocoders before the network.
type GeocodeCache interface {
	Get(ctx context.Context, query string) (domain.Coordinates, bool, error)
	Put(ctx context.Context, query string, coord domain.Coordinates) error
}
