package services

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/mapview"
	"context"
)

// InitOrRecenter creates the map on the first coordinate and re-centers it
// afterwards, moves the Selected Location marker there, then queries ATMs
// around it.
func (c *Controller) InitOrRecenter(ctx context.Context, coord domain.Coordinates) error {
	c.mu.Lock()
	c.renderLocked(coord)
	c.mu.Unlock()

	return c.FindNearby(ctx, coord)
}

func (c *Controller) renderLocked(coord domain.Coordinates) {
	s := &c.session

	if s.Map == nil {
		s.Map = mapview.New(coord, c.opts.Zoom)
		s.Map.AddTileLayer(c.opts.Tiles)
		s.Map.Active = true
	} else {
		s.Map.SetView(coord, c.opts.Zoom)
	}

	s.Map.RemoveMarkersWhere(func(mk mapview.Marker) bool { return mk.Role == mapview.RoleSelected })
	id := s.Map.AddMarker(mapview.Marker{
		Location: coord,
		Role:     mapview.RoleSelected,
		Title:    SelectedLocationTitle,
		Popup:    mapview.Popup{Title: SelectedLocationTitle},
	})
	openPopup(s.Map, id)
}

// openPopup opens the popup of id and closes every other one.
func openPopup(m *mapview.Map, id int) {
	m.UpdateMarkersWhere(func(mapview.Marker) bool { return true }, func(mk *mapview.Marker) {
		mk.Popup.Open = mk.ID == id
	})
}
