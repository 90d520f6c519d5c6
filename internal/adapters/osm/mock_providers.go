package osm

import (
	"atm-locator-service/internal/domain"
	"context"
	"sync"
)

// MockGeocoder resolves queries from a fixed table.
type MockGeocoder struct {
	mu      sync.Mutex
	places  map[string]domain.Coordinates
	Err     error
	Queries []string
}

func NewMockGeocoder(places map[string]domain.Coordinates) *MockGeocoder {
	return &MockGeocoder{places: places}
}

func (g *MockGeocoder) Geocode(ctx context.Context, query string) (domain.Coordinates, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.Queries = append(g.Queries, query)
	if g.Err != nil {
		return domain.Coordinates{}, false, g.Err
	}
	c, ok := g.places[query]
	return c, ok, nil
}

// ATMQueryCall records one NearbyATMs invocation.
type ATMQueryCall struct {
	Center       domain.Coordinates
	RadiusMeters int
}

// MockATMProvider returns the same ATMs for every query and records calls.
type MockATMProvider struct {
	mu    sync.Mutex
	ATMs  []domain.ATM
	Err   error
	Calls []ATMQueryCall
}

func (p *MockATMProvider) NearbyATMs(ctx context.Context, center domain.Coordinates, radiusMeters int) ([]domain.ATM, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls = append(p.Calls, ATMQueryCall{Center: center, RadiusMeters: radiusMeters})
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]domain.ATM(nil), p.ATMs...), nil
}

// RouteCall records one WalkingRoutes invocation.
type RouteCall struct {
	From, To domain.Coordinates
}

// MockRouteProvider returns the same routes for every request and records calls.
type MockRouteProvider struct {
	mu     sync.Mutex
	Routes []domain.Route
	Err    error
	Calls  []RouteCall
}

func (p *MockRouteProvider) WalkingRoutes(ctx context.Context, from, to domain.Coordinates) ([]domain.Route, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Calls = append(p.Calls, RouteCall{From: from, To: to})
	if p.Err != nil {
		return nil, p.Err
	}
	return append([]domain.Route(nil), p.Routes...), nil
}
