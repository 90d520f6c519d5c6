package ports

import (
	"atm-locator-service/internal/domain"
	"context"
)

// Locator reports the platform's current position.
type Locator interface {
	CurrentPosition(ctx context.Context) (domain.Coordinates, error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (domain.Coordinates, error)

func (f LocatorFunc) CurrentPosition(ctx context.Context) (domain.Coordinates, error) {
	return f(ctx)
}
