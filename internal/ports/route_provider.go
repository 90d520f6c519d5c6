package ports

import (
	"atm-locator-service/internal/domain"
	"context"
)

// Contract for walking routes between two coordinates.
type RouteProvider interface {
	// Return candidate routes, best first. An empty slice means no route exists.
	WalkingRoutes(ctx context.Context, from, to domain.Coordinates) ([]domain.Route, error)
}
