package mapview

import (
	"atm-locator-service/internal/domain"
	"math"

	"github.com/paulmach/orb"
)

const (
	maxZoom        = 19
	tileSize       = 256.0
	viewportWidth  = 800.0
	viewportHeight = 600.0
)

// Map is a headless map viewport owning its tile layer, markers and overlays.
// It is not safe for concurrent use; the owning session serializes access.
type Map struct {
	Center domain.Coordinates
	Zoom   int
	Active bool
	Tiles  *TileLayer
	Bounds *orb.Bound

	markers   []*Marker
	polylines []*Polyline
	nextID    int
}

func New(center domain.Coordinates, zoom int) *Map {
	return &Map{Center: center, Zoom: zoom}
}

// SetView re-centers the viewport and drops any fitted bounds.
func (m *Map) SetView(center domain.Coordinates, zoom int) {
	m.Center = center
	m.Zoom = zoom
	m.Bounds = nil
}

func (m *Map) AddTileLayer(t TileLayer) {
	m.Tiles = &t
}

// AddMarker places a marker and returns its id.
func (m *Map) AddMarker(mk Marker) int {
	m.nextID++
	mk.ID = m.nextID
	c := mk.clone()
	m.markers = append(m.markers, &c)
	return c.ID
}

// RemoveMarker reports whether a marker with the id was on the map.
func (m *Map) RemoveMarker(id int) bool {
	for i, mk := range m.markers {
		if mk.ID == id {
			m.markers = append(m.markers[:i], m.markers[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveMarkersWhere removes every marker for which remove is true and returns copies of them.
func (m *Map) RemoveMarkersWhere(remove func(Marker) bool) []Marker {
	kept := m.markers[:0]
	var removed []Marker
	for _, mk := range m.markers {
		if remove(*mk) {
			removed = append(removed, mk.clone())
			continue
		}
		kept = append(kept, mk)
	}
	for i := len(kept); i < len(m.markers); i++ {
		m.markers[i] = nil
	}
	m.markers = kept
	return removed
}

// UpdateMarkersWhere applies fn to every marker matching match.
func (m *Map) UpdateMarkersWhere(match func(Marker) bool, fn func(*Marker)) int {
	n := 0
	for _, mk := range m.markers {
		if match(*mk) {
			fn(mk)
			n++
		}
	}
	return n
}

// Markers returns copies of all markers in insertion order.
func (m *Map) Markers() []Marker {
	out := make([]Marker, 0, len(m.markers))
	for _, mk := range m.markers {
		out = append(out, mk.clone())
	}
	return out
}

func (m *Map) AddPolyline(p Polyline) int {
	m.nextID++
	p.ID = m.nextID
	p.Path = append([]domain.Coordinates(nil), p.Path...)
	m.polylines = append(m.polylines, &p)
	return p.ID
}

func (m *Map) RemovePolyline(id int) bool {
	for i, p := range m.polylines {
		if p.ID == id {
			m.polylines = append(m.polylines[:i], m.polylines[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map) Polylines() []Polyline {
	out := make([]Polyline, 0, len(m.polylines))
	for _, p := range m.polylines {
		c := *p
		c.Path = append([]domain.Coordinates(nil), p.Path...)
		out = append(out, c)
	}
	return out
}

// PathBound returns the bounding box of a latitude-first path.
func PathBound(path []domain.Coordinates) orb.Bound {
	return lineString(path).Bound()
}

// FitBounds centers the viewport on b at the largest zoom that shows all of it.
func (m *Map) FitBounds(b orb.Bound) {
	center := b.Center()
	m.Center = domain.Coordinates{Lat: center.Lat(), Lon: center.Lon()}
	m.Zoom = zoomForBounds(b)
	m.Bounds = &b
}

// zoomForBounds is the web mercator zoom that fits b into the fixed viewport.
func zoomForBounds(b orb.Bound) int {
	lngFraction := (b.Max.Lon() - b.Min.Lon()) / 360
	latFraction := (mercatorLat(b.Max.Lat()) - mercatorLat(b.Min.Lat())) / math.Pi

	zoom := float64(maxZoom)
	if lngFraction > 0 {
		zoom = math.Min(zoom, math.Log2(viewportWidth/tileSize/lngFraction))
	}
	if latFraction > 0 {
		zoom = math.Min(zoom, math.Log2(viewportHeight/tileSize/latFraction))
	}
	if zoom < 0 {
		return 0
	}
	return int(math.Floor(zoom))
}

func mercatorLat(lat float64) float64 {
	sin := math.Sin(lat * math.Pi / 180)
	radX2 := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}
