package osm

import (
	"atm-locator-service/internal/domain"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type memGeocodeCache struct {
	m map[string]domain.Coordinates
}

func (c *memGeocodeCache) Get(ctx context.Context, query string) (domain.Coordinates, bool, error) {
	v, ok := c.m[query]
	return v, ok, nil
}

func (c *memGeocodeCache) Put(ctx context.Context, query string, coord domain.Coordinates) error {
	c.m[query] = coord
	return nil
}

type memATMCache struct {
	m map[string][]domain.ATM
}

func (c *memATMCache) Get(ctx context.Context, center domain.Coordinates, radius int) ([]domain.ATM, bool, error) {
	v, ok := c.m[center.LatLon()]
	return v, ok, nil
}

func (c *memATMCache) Put(ctx context.Context, center domain.Coordinates, radius int, atms []domain.ATM, ttl time.Duration) error {
	c.m[center.LatLon()] = atms
	return nil
}

func TestNominatimGeocode(t *testing.T) {
	var gotQuery, gotCodes, gotFormat, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("path = %q, want /search", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		gotCodes = r.URL.Query().Get("countrycodes")
		gotFormat = r.URL.Query().Get("format")
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte(`[{"lat":"14.5831","lon":"120.9794","display_name":"Rizal Park"},{"lat":"1","lon":"2"}]`))
	}))
	defer srv.Close()

	n := NewNominatim(NominatimOptions{
		BaseURL:      srv.URL,
		UserAgent:    "atm-test",
		Country:      "Philippines",
		CountryCodes: "PH",
	})

	c, ok, err := n.Geocode(context.Background(), "Rizal Park")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected a result")
	}
	if c.Lat != 14.5831 || c.Lon != 120.9794 {
		t.Errorf("coord = %+v, want first result", c)
	}
	if gotQuery != "Rizal Park, Philippines" {
		t.Errorf("q = %q", gotQuery)
	}
	if gotCodes != "PH" || gotFormat != "json" {
		t.Errorf("countrycodes=%q format=%q", gotCodes, gotFormat)
	}
	if gotUA != "atm-test" {
		t.Errorf("User-Agent = %q", gotUA)
	}
}

func TestNominatimNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	n := NewNominatim(NominatimOptions{BaseURL: srv.URL})
	_, ok, err := n.Geocode(context.Background(), "Atlantis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no result")
	}
}

func TestNominatimFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "server error", status: http.StatusBadGateway, body: "upstream down"},
		{name: "bad json", status: http.StatusOK, body: `{"oops"`},
		{name: "bad latitude", status: http.StatusOK, body: `[{"lat":"north","lon":"1"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			n := NewNominatim(NominatimOptions{BaseURL: srv.URL})
			if _, _, err := n.Geocode(context.Background(), "Rizal Park"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestNominatimStatusErrorIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	n := NewNominatim(NominatimOptions{BaseURL: srv.URL})
	_, _, err := n.Geocode(context.Background(), "Rizal Park")

	var he *httpStatusError
	if !errors.As(err, &he) {
		t.Fatalf("error %v is not an httpStatusError", err)
	}
	if he.Code != http.StatusTooManyRequests || he.Body != "slow down" {
		t.Errorf("status error = %+v", he)
	}
}

func TestNominatimUsesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`[{"lat":"14.5831","lon":"120.9794"}]`))
	}))
	defer srv.Close()

	cache := &memGeocodeCache{m: map[string]domain.Coordinates{}}
	n := NewNominatim(NominatimOptions{BaseURL: srv.URL, Cache: cache})

	for i := 0; i < 2; i++ {
		if _, ok, err := n.Geocode(context.Background(), "  Rizal   PARK "); err != nil || !ok {
			t.Fatalf("call %d: ok=%v err=%v", i, ok, err)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("upstream hits = %d, want 1", got)
	}
	if _, ok := cache.m["rizal park"]; !ok {
		t.Fatalf("cache key not normalized: %v", cache.m)
	}
}

func TestOverpassNearbyATMs(t *testing.T) {
	var gotData string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/interpreter" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotData = r.URL.Query().Get("data")
		w.Write([]byte(`{"elements":[
			{"type":"node","id":1,"lat":14.60,"lon":120.98,"tags":{"amenity":"atm","name":"BDO Ermita","operator":"BDO Unibank"}},
			{"type":"node","id":2,"lat":14.61,"lon":120.99,"tags":{"amenity":"atm"}},
			{"type":"node","id":3,"lat":14.62,"lon":121.00}
		]}`))
	}))
	defer srv.Close()

	o := NewOverpass(OverpassOptions{BaseURL: srv.URL})
	atms, err := o.NearbyATMs(context.Background(), domain.Coordinates{Lat: 14.5995, Lon: 120.9842}, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `[out:json];node["amenity"="atm"](around:1000,14.5995,120.9842);out;`
	if gotData != want {
		t.Errorf("query = %q, want %q", gotData, want)
	}

	if len(atms) != 3 {
		t.Fatalf("got %d atms, want 3", len(atms))
	}
	if atms[0].Name != "BDO Ermita" || atms[0].Bank != "BDO Unibank" {
		t.Errorf("atms[0] = %+v", atms[0])
	}
	for _, a := range atms[1:] {
		if a.Name != domain.DefaultATMName || a.Bank != domain.DefaultATMBank {
			t.Errorf("defaults not applied: %+v", a)
		}
	}
}

func TestOverpassFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	o := NewOverpass(OverpassOptions{BaseURL: srv.URL})
	if _, err := o.NearbyATMs(context.Background(), domain.Coordinates{}, 1000); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOverpassMissingElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"remark":"runtime error: Query timed out"}`))
	}))
	defer srv.Close()

	o := NewOverpass(OverpassOptions{BaseURL: srv.URL})
	if _, err := o.NearbyATMs(context.Background(), domain.Coordinates{}, 1000); err == nil {
		t.Fatalf("expected error for response without elements")
	}
}

func TestOverpassEmptyElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements":[]}`))
	}))
	defer srv.Close()

	o := NewOverpass(OverpassOptions{BaseURL: srv.URL})
	atms, err := o.NearbyATMs(context.Background(), domain.Coordinates{}, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(atms) != 0 {
		t.Fatalf("got %d atms, want 0", len(atms))
	}
}

func TestOverpassUsesCache(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"elements":[{"lat":14.6,"lon":120.98,"tags":{"operator":"BPI"}}]}`))
	}))
	defer srv.Close()

	o := NewOverpass(OverpassOptions{
		BaseURL:  srv.URL,
		Cache:    &memATMCache{m: map[string][]domain.ATM{}},
		CacheTTL: time.Minute,
	})

	center := domain.Coordinates{Lat: 14.5995, Lon: 120.9842}
	for i := 0; i < 3; i++ {
		atms, err := o.NearbyATMs(context.Background(), center, 1000)
		if err != nil || len(atms) != 1 {
			t.Fatalf("call %d: atms=%v err=%v", i, atms, err)
		}
	}

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("upstream hits = %d, want 1", got)
	}
}

func TestOSRMWalkingRoutes(t *testing.T) {
	var gotPath, gotOverview, gotGeometries string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotOverview = r.URL.Query().Get("overview")
		gotGeometries = r.URL.Query().Get("geometries")
		w.Write([]byte(`{"code":"Ok","routes":[{
			"geometry":{"type":"LineString","coordinates":[[120.9842,14.5995],[120.9850,14.6001],[120.9860,14.6010]]},
			"distance":1500,
			"duration":1200
		}]}`))
	}))
	defer srv.Close()

	o := NewOSRM(srv.URL, "atm-test", 0)
	from := domain.Coordinates{Lat: 14.5995, Lon: 120.9842}
	to := domain.Coordinates{Lat: 14.6010, Lon: 120.9860}

	routes, err := o.WalkingRoutes(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/route/v1/foot/120.9842,14.5995;120.986,14.601" {
		t.Errorf("path = %q", gotPath)
	}
	if gotOverview != "full" || gotGeometries != "geojson" {
		t.Errorf("overview=%q geometries=%q", gotOverview, gotGeometries)
	}

	if len(routes) != 1 {
		t.Fatalf("got %d routes, want 1", len(routes))
	}
	r := routes[0]
	if len(r.Path) != 3 {
		t.Fatalf("path has %d points, want 3", len(r.Path))
	}
	if r.Path[0] != from {
		t.Errorf("first point = %+v, want latitude-first %+v", r.Path[0], from)
	}
	if r.Summary() != "1.50 km | 20 mins" {
		t.Errorf("Summary() = %q", r.Summary())
	}
}

func TestOSRMNoRoutes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[]}`))
	}))
	defer srv.Close()

	routes, err := NewOSRM(srv.URL, "", 0).WalkingRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{Lat: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("got %d routes, want none", len(routes))
	}
}

func TestOSRMFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "no route status", status: http.StatusBadRequest, body: `{"code":"NoRoute"}`},
		{name: "truncated json", status: http.StatusOK, body: `{"routes":[`},
		{name: "point geometry", status: http.StatusOK, body: `{"routes":[{"geometry":{"type":"Point","coordinates":[1,2]}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewOSRM(srv.URL, "", 0).WalkingRoutes(context.Background(), domain.Coordinates{}, domain.Coordinates{})
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), "osrm route") {
				t.Errorf("error %q lacks context", err)
			}
		})
	}
}
