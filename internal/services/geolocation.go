package services

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/platform/obs"
	"atm-locator-service/internal/ports"
	"context"
	"errors"
	"fmt"
)

// FixedLocator reports a position obtained elsewhere, such as from the page.
func FixedLocator(c domain.Coordinates) ports.Locator {
	return ports.LocatorFunc(func(ctx context.Context) (domain.Coordinates, error) {
		return c, nil
	})
}

// DeniedLocator models a platform where the user refused location access.
func DeniedLocator() ports.Locator {
	return ports.LocatorFunc(func(ctx context.Context) (domain.Coordinates, error) {
		return domain.Coordinates{}, ErrGeolocationDenied
	})
}

// LocateUser resolves the user's position once, stores it and centers the map there.
// A nil locator means the platform has no geolocation support.
func (c *Controller) LocateUser(ctx context.Context, locator ports.Locator) error {
	if locator == nil {
		c.setMessage(MsgGeolocationUnsupported)
		return ErrGeolocationUnsupported
	}

	coord, err := locator.CurrentPosition(ctx)
	if err != nil {
		obs.Logger.Log("req_id", obs.RequestID(ctx), "op", "geolocation", "err", err)
		if errors.Is(err, ErrGeolocationUnsupported) {
			c.setMessage(MsgGeolocationUnsupported)
			return err
		}
		c.setMessage(MsgGeolocationDenied)
		if errors.Is(err, ErrGeolocationDenied) {
			return err
		}
		return fmt.Errorf("locate user: %w: %w", ErrGeolocationDenied, err)
	}

	c.mu.Lock()
	c.session.UserLocation = &coord
	c.mu.Unlock()

	return c.InitOrRecenter(ctx, coord)
}
