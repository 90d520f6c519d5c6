package services

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/mapview"
	"atm-locator-service/internal/platform/obs"
	"context"
	"fmt"
	"strings"
)

// FindNearby queries ATMs around coord and redraws the POI markers,
// keeping only those whose bank matches the session filter.
func (c *Controller) FindNearby(ctx context.Context, coord domain.Coordinates) (err error) {
	defer obs.Time(ctx, "services.FindNearby")(&err)

	c.mu.Lock()
	c.session.poiGen++
	gen := c.session.poiGen
	filter := strings.ToLower(strings.TrimSpace(c.session.BankFilter))
	c.mu.Unlock()

	atms, fetchErr := c.atms.NearbyATMs(ctx, coord, c.opts.RadiusMeters)

	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.session
	if gen != s.poiGen {
		return ErrStaleResponse
	}
	if fetchErr != nil {
		s.Message = MsgATMFetchFailed
		return fmt.Errorf("find nearby atms: %w", fetchErr)
	}
	if len(atms) == 0 {
		s.Message = MsgNoATMs
		return ErrNoATMs
	}
	if s.Map == nil {
		return ErrMapNotInitialized
	}

	removed := s.Map.RemoveMarkersWhere(func(mk mapview.Marker) bool { return mk.Role != mapview.RoleSelected })
	for _, mk := range removed {
		if mk.ID == s.DirectionMarker {
			s.DirectionMarker = 0
		}
	}

	matched := 0
	for _, atm := range atms {
		if !bankMatches(atm.Bank, filter) {
			continue
		}
		s.Map.AddMarker(poiMarker(atm))
		matched++
	}

	if matched == 0 {
		s.Message = MessageForBank(filter)
		return ErrNoMatchingATMs
	}
	return nil
}

// bankMatches reports whether bank contains the lower-cased filter.
// An empty filter matches every bank.
func bankMatches(bank, filter string) bool {
	return strings.Contains(strings.ToLower(bank), filter)
}

func poiMarker(atm domain.ATM) mapview.Marker {
	return mapview.Marker{
		Location: atm.Location,
		Role:     mapview.RolePointOfInterest,
		Title:    atm.Name,
		Popup: mapview.Popup{
			Title: atm.Name,
			Lines: []string{"Bank: " + atm.Bank},
			Directions: &mapview.DirectionsAction{
				Target: atm.Location,
				Bank:   atm.Bank,
			},
		},
	}
}
