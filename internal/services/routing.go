package services

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/mapview"
	"atm-locator-service/internal/platform/obs"
	"context"
	"fmt"
)

// GetDirections draws a walking route from the user's location to dest.
//
// The previous route and destination marker are cleared and the new
// destination marker is placed before the route is requested. They are not
// rolled back when routing fails.
func (c *Controller) GetDirections(ctx context.Context, dest domain.Coordinates, bank string) (err error) {
	defer obs.Time(ctx, "services.GetDirections")(&err)

	c.mu.Lock()
	s := &c.session
	if s.UserLocation == nil {
		s.Message = MsgEnableLocation
		c.mu.Unlock()
		return ErrNoUserLocation
	}
	if s.Map == nil {
		c.mu.Unlock()
		return ErrMapNotInitialized
	}
	from := *s.UserLocation

	c.clearRouteLocked()
	s.DirectionMarker = s.Map.AddMarker(mapview.Marker{
		Location: dest,
		Role:     mapview.RoleDestination,
		Title:    DestinationTitle,
		Popup: mapview.Popup{
			Title: bank + " ATM",
			Lines: []string{"Directions Active"},
		},
	})
	s.routeGen++
	gen := s.routeGen
	c.mu.Unlock()

	routes, routeErr := c.router.WalkingRoutes(ctx, from, dest)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != s.routeGen {
		return ErrStaleResponse
	}
	if routeErr != nil {
		s.Message = MsgDirectionsFailed
		return fmt.Errorf("get directions to %s: %w", dest.LatLon(), routeErr)
	}
	if len(routes) == 0 {
		s.Message = MsgNoRoute
		return ErrNoRoute
	}

	route := routes[0]
	s.RouteLayer = s.Map.AddPolyline(mapview.Polyline{
		Path:   route.Path,
		Color:  RouteColor,
		Weight: RouteWeight,
	})
	s.ActiveRoute = &route
	if len(route.Path) > 0 {
		s.Map.FitBounds(mapview.PathBound(route.Path))
	}

	summary := route.Summary()
	var target int
	s.Map.UpdateMarkersWhere(
		func(mk mapview.Marker) bool {
			return mk.Role == mapview.RolePointOfInterest &&
				mk.Popup.Directions != nil &&
				mk.Popup.Directions.Target == dest
		},
		func(mk *mapview.Marker) {
			mk.Popup.RouteInfo = summary
			mk.Popup.CloseVisible = true
			target = mk.ID
		},
	)
	if target != 0 {
		openPopup(s.Map, target)
	}

	return nil
}

// CloseDirections removes the active route and destination marker and
// resets every POI popup. Responses to routes still in flight are dropped.
func (c *Controller) CloseDirections() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.routeGen++
	c.clearRouteLocked()
}

// clearRouteLocked drops the route overlay and destination marker if present
// and hides route info on every POI popup.
func (c *Controller) clearRouteLocked() {
	s := &c.session
	if s.Map != nil {
		if s.RouteLayer != 0 {
			s.Map.RemovePolyline(s.RouteLayer)
		}
		if s.DirectionMarker != 0 {
			s.Map.RemoveMarker(s.DirectionMarker)
		}
		s.Map.UpdateMarkersWhere(
			func(mk mapview.Marker) bool { return mk.Role == mapview.RolePointOfInterest },
			func(mk *mapview.Marker) {
				mk.Popup.RouteInfo = ""
				mk.Popup.CloseVisible = false
			},
		)
	}
	s.RouteLayer = 0
	s.DirectionMarker = 0
	s.ActiveRoute = nil
}
