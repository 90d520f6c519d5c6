package dto

import "atm-locator-service/internal/services"

type LatLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type LocateRequest struct {
	Lat    *float64 `json:"lat"`
	Lon    *float64 `json:"lon"`
	Denied bool     `json:"denied"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

type FilterRequest struct {
	Bank string `json:"bank"`
}

type DirectionsRequest struct {
	Lat  *float64 `json:"lat"`
	Lon  *float64 `json:"lon"`
	Bank string   `json:"bank"`
}

type DirectionsButton struct {
	Target LatLon `json:"target"`
	Bank   string `json:"bank"`
}

type PopupResponse struct {
	Title        string            `json:"title"`
	Lines        []string          `json:"lines"`
	Directions   *DirectionsButton `json:"directions,omitempty"`
	CloseVisible bool              `json:"close_visible"`
	RouteInfo    string            `json:"route_info"`
	Open         bool              `json:"open"`
}

type MarkerResponse struct {
	ID       int           `json:"id"`
	Role     string        `json:"role"`
	Location LatLon        `json:"location"`
	Title    string        `json:"title"`
	Popup    PopupResponse `json:"popup"`
}

type PolylineResponse struct {
	ID     int      `json:"id"`
	Color  string   `json:"color"`
	Weight int      `json:"weight"`
	Path   []LatLon `json:"path"`
}

type BoundsResponse struct {
	SouthWest LatLon `json:"south_west"`
	NorthEast LatLon `json:"north_east"`
}

type TilesResponse struct {
	URLTemplate string `json:"url_template"`
	Attribution string `json:"attribution"`
}

type RouteResponse struct {
	DistanceMeters  float64 `json:"distance_meters"`
	DurationSeconds float64 `json:"duration_seconds"`
	Summary         string  `json:"summary"`
}

type StateResponse struct {
	MapActive    bool               `json:"map_active"`
	Center       *LatLon            `json:"center,omitempty"`
	Zoom         int                `json:"zoom"`
	Bounds       *BoundsResponse    `json:"bounds,omitempty"`
	Tiles        *TilesResponse     `json:"tiles,omitempty"`
	Markers      []MarkerResponse   `json:"markers"`
	Polylines    []PolylineResponse `json:"polylines"`
	UserLocation *LatLon            `json:"user_location,omitempty"`
	Route        *RouteResponse     `json:"route,omitempty"`
	Message      string             `json:"message"`
	BankFilter   string             `json:"bank_filter"`
}

// FromState maps a session snapshot onto its JSON shape.
func FromState(st services.State) StateResponse {
	res := StateResponse{
		MapActive:  st.MapActive,
		Zoom:       st.Zoom,
		Markers:    make([]MarkerResponse, 0, len(st.Markers)),
		Polylines:  make([]PolylineResponse, 0, len(st.Polylines)),
		Message:    st.Message,
		BankFilter: st.BankFilter,
	}

	if st.Center != nil {
		res.Center = &LatLon{Lat: st.Center.Lat, Lon: st.Center.Lon}
	}
	if st.UserLocation != nil {
		res.UserLocation = &LatLon{Lat: st.UserLocation.Lat, Lon: st.UserLocation.Lon}
	}
	if b := st.Bounds; b != nil {
		res.Bounds = &BoundsResponse{
			SouthWest: LatLon{Lat: b.Min.Lat(), Lon: b.Min.Lon()},
			NorthEast: LatLon{Lat: b.Max.Lat(), Lon: b.Max.Lon()},
		}
	}
	if st.Tiles != nil {
		res.Tiles = &TilesResponse{URLTemplate: st.Tiles.URLTemplate, Attribution: st.Tiles.Attribution}
	}
	if st.Route != nil {
		res.Route = &RouteResponse{
			DistanceMeters:  st.Route.DistanceMeters,
			DurationSeconds: st.Route.DurationSeconds,
			Summary:         st.Route.Summary(),
		}
	}

	for _, mk := range st.Markers {
		popup := PopupResponse{
			Title:        mk.Popup.Title,
			Lines:        append([]string{}, mk.Popup.Lines...),
			CloseVisible: mk.Popup.CloseVisible,
			RouteInfo:    mk.Popup.RouteInfo,
			Open:         mk.Popup.Open,
		}
		if d := mk.Popup.Directions; d != nil {
			popup.Directions = &DirectionsButton{
				Target: LatLon{Lat: d.Target.Lat, Lon: d.Target.Lon},
				Bank:   d.Bank,
			}
		}
		res.Markers = append(res.Markers, MarkerResponse{
			ID:       mk.ID,
			Role:     mk.Role.String(),
			Location: LatLon{Lat: mk.Location.Lat, Lon: mk.Location.Lon},
			Title:    mk.Title,
			Popup:    popup,
		})
	}

	for _, p := range st.Polylines {
		path := make([]LatLon, 0, len(p.Path))
		for _, c := range p.Path {
			path = append(path, LatLon{Lat: c.Lat, Lon: c.Lon})
		}
		res.Polylines = append(res.Polylines, PolylineResponse{
			ID:     p.ID,
			Color:  p.Color,
			Weight: p.Weight,
			Path:   path,
		})
	}

	return res
}
