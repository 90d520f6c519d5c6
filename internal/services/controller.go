package services

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/mapview"
	"atm-locator-service/internal/ports"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

const (
	DefaultZoom         = 15
	DefaultRadiusMeters = 1000
)

type Options struct {
	Zoom         int
	RadiusMeters int
	Tiles        mapview.TileLayer
}

// Controller owns the session and runs the UI actions against it.
//
// Upstream calls run without holding the session lock. Each POI and route
// request takes a generation number and its response is applied only if no
// newer request of the same kind was issued meanwhile.
type Controller struct {
	geocoder ports.Geocoder
	atms     ports.ATMProvider
	router   ports.RouteProvider
	opts     Options

	mu      sync.Mutex
	session Session
}

func NewController(
	geocoder ports.Geocoder,
	atms ports.ATMProvider,
	router ports.RouteProvider,
	opts Options,
) *Controller {
	if opts.Zoom == 0 {
		opts.Zoom = DefaultZoom
	}
	if opts.RadiusMeters == 0 {
		opts.RadiusMeters = DefaultRadiusMeters
	}

	return &Controller{
		geocoder: geocoder,
		atms:     atms,
		router:   router,
		opts:     opts,
	}
}

// SetBankFilter stores the bank select value read by the next POI query.
func (c *Controller) SetBankFilter(bank string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.BankFilter = bank
}

// State is a point-in-time copy of the session for rendering.
type State struct {
	MapActive    bool
	Center       *domain.Coordinates
	Zoom         int
	Bounds       *orb.Bound
	Tiles        *mapview.TileLayer
	Markers      []mapview.Marker
	Polylines    []mapview.Polyline
	UserLocation *domain.Coordinates
	Route        *domain.Route
	Message      string
	BankFilter   string
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := &c.session
	st := State{
		Message:    s.Message,
		BankFilter: s.BankFilter,
	}

	if s.UserLocation != nil {
		loc := *s.UserLocation
		st.UserLocation = &loc
	}
	if s.ActiveRoute != nil {
		r := *s.ActiveRoute
		r.Path = append([]domain.Coordinates(nil), s.ActiveRoute.Path...)
		st.Route = &r
	}

	if m := s.Map; m != nil {
		center := m.Center
		st.MapActive = m.Active
		st.Center = &center
		st.Zoom = m.Zoom
		if m.Bounds != nil {
			b := *m.Bounds
			st.Bounds = &b
		}
		if m.Tiles != nil {
			t := *m.Tiles
			st.Tiles = &t
		}
		st.Markers = m.Markers()
		st.Polylines = m.Polylines()
	}

	return st
}

// FeatureCollection renders the current map, or an empty collection before the map exists.
func (c *Controller) FeatureCollection() *geojson.FeatureCollection {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Map == nil {
		return geojson.NewFeatureCollection()
	}
	return c.session.Map.FeatureCollection()
}

func (c *Controller) setMessage(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Message = msg
}
