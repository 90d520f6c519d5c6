package osm

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/platform/obs"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type osrmResponse struct {
	Routes []struct {
		Geometry geojson.Geometry `json:"geometry"`
		Distance float64          `json:"distance"`
		Duration float64          `json:"duration"`
	} `json:"routes"`
}

// OSRM implements ports.RouteProvider with the OSRM route service.
type OSRM struct {
	client
	profile string
}

func NewOSRM(baseURL, userAgent string, timeout time.Duration) *OSRM {
	return &OSRM{
		client:  newClient(baseURL, userAgent, timeout),
		profile: "foot",
	}
}

func (o *OSRM) WalkingRoutes(ctx context.Context, from, to domain.Coordinates) (_ []domain.Route, err error) {
	defer obs.Time(ctx, "osrm.WalkingRoutes")(&err)

	path := fmt.Sprintf("/route/v1/%s/%s;%s", o.profile, from.LonLat(), to.LonLat())

	params := url.Values{}
	params.Set("overview", "full")
	params.Set("geometries", "geojson")

	var decoded osrmResponse
	if err := o.getJSON(ctx, path, params.Encode(), &decoded); err != nil {
		return nil, fmt.Errorf("osrm route %s -> %s: %w", from.LonLat(), to.LonLat(), err)
	}

	routes := make([]domain.Route, 0, len(decoded.Routes))
	for i, r := range decoded.Routes {
		ls, ok := r.Geometry.Geometry().(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("osrm route %d: geometry is %q, want LineString", i, r.Geometry.Type)
		}

		routes = append(routes, domain.Route{
			Path:            transpose(ls),
			DistanceMeters:  r.Distance,
			DurationSeconds: r.Duration,
		})
	}

	return routes, nil
}

// transpose converts provider [lon, lat] points into latitude-first coordinates.
func transpose(ls orb.LineString) []domain.Coordinates {
	out := make([]domain.Coordinates, 0, len(ls))
	for _, p := range ls {
		out = append(out, domain.Coordinates{Lat: p.Lat(), Lon: p.Lon()})
	}
	return out
}
