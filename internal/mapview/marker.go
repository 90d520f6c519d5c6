package mapview

import "atm-locator-service/internal/domain"

// Role tags a marker with the part it plays on the map.
type Role int

const (
	RolePointOfInterest Role = iota
	RoleSelected
	RoleDestination
)

func (r Role) String() string {
	switch r {
	case RoleSelected:
		return "selected"
	case RoleDestination:
		return "destination"
	default:
		return "poi"
	}
}

// DirectionsAction is the "Get Directions" button of a popup.
type DirectionsAction struct {
	Target domain.Coordinates
	Bank   string
}

// Popup is the content bound to a marker.
type Popup struct {
	Title        string
	Lines        []string
	Directions   *DirectionsAction
	CloseVisible bool
	RouteInfo    string
	Open         bool
}

type Marker struct {
	ID       int
	Location domain.Coordinates
	Role     Role
	Title    string
	Popup    Popup
}

func (m Marker) clone() Marker {
	out := m
	out.Popup.Lines = append([]string(nil), m.Popup.Lines...)
	if m.Popup.Directions != nil {
		d := *m.Popup.Directions
		out.Popup.Directions = &d
	}
	return out
}

// Polyline is a drawn path overlay.
type Polyline struct {
	ID     int
	Path   []domain.Coordinates
	Color  string
	Weight int
}

// TileLayer is the raster base layer of the map.
type TileLayer struct {
	URLTemplate string
	Attribution string
}
