package services

import (
	"atm-locator-service/internal/platform/obs"
	"context"
	"fmt"
	"strings"
)

// Search geocodes a free-text place and shows ATMs around it.
//
// An empty query is a no-op. On success the map is re-centered and a
// second POI query is issued at the same place, after the one the
// re-center already ran.
func (c *Controller) Search(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	coord, ok, err := c.geocoder.Geocode(ctx, query)
	if err != nil {
		c.setMessage(MsgSearchFailed)
		return fmt.Errorf("search %q: %w", query, err)
	}
	if !ok {
		c.setMessage(MsgLocationNotFound)
		return ErrLocationNotFound
	}

	c.setMessage("")

	if err := c.InitOrRecenter(ctx, coord); err != nil {
		obs.Logger.Log("req_id", obs.RequestID(ctx), "op", "search.recenter", "query", query, "err", err)
	}

	return c.FindNearby(ctx, coord)
}
