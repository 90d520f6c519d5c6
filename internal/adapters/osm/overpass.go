package osm

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/platform/obs"
	"atm-locator-service/internal/ports"
	"context"
	"fmt"
	"net/url"
	"time"
)

type overpassElement struct {
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

// Elements is nil when the key is absent.
type overpassResponse struct {
	Elements *[]overpassElement `json:"elements"`
}

// Overpass implements ports.ATMProvider with an Overpass interpreter query
// for amenity=atm nodes.
type Overpass struct {
	client
	cache    ports.ATMCache
	cacheTTL time.Duration
}

type OverpassOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Cache     ports.ATMCache
	CacheTTL  time.Duration
}

func NewOverpass(opts OverpassOptions) *Overpass {
	return &Overpass{
		client:   newClient(opts.BaseURL, opts.UserAgent, opts.Timeout),
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
	}
}

// ATMQuery is the Overpass QL for ATM nodes within radius meters of center.
func ATMQuery(center domain.Coordinates, radiusMeters int) string {
	return fmt.Sprintf(`[out:json];node["amenity"="atm"](around:%d,%s);out;`, radiusMeters, center.LatLon())
}

func (o *Overpass) NearbyATMs(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters int,
) (_ []domain.ATM, err error) {
	defer obs.Time(ctx, "overpass.NearbyATMs")(&err)

	if o.cache != nil {
		atms, ok, err := o.cache.Get(ctx, center, radiusMeters)
		if err != nil {
			obs.Logger.Log("op", "atm.cache.Get", "center", center.LatLon(), "err", err)
		} else if ok {
			return atms, nil
		}
	}

	params := url.Values{}
	params.Set("data", ATMQuery(center, radiusMeters))

	var decoded overpassResponse
	if err := o.getJSON(ctx, "/api/interpreter", params.Encode(), &decoded); err != nil {
		return nil, fmt.Errorf("overpass atm query around %s: %w", center.LatLon(), err)
	}

	if decoded.Elements == nil {
		return nil, fmt.Errorf("overpass atm query around %s: response has no elements", center.LatLon())
	}

	elements := *decoded.Elements
	atms := make([]domain.ATM, 0, len(elements))
	for _, e := range elements {
		atms = append(atms, domain.NewATM(
			domain.Coordinates{Lat: e.Lat, Lon: e.Lon},
			e.Tags["name"],
			e.Tags["operator"],
		))
	}

	if o.cache != nil {
		if err := o.cache.Put(ctx, center, radiusMeters, atms, o.cacheTTL); err != nil {
			obs.Logger.Log("op", "atm.cache.Put", "center", center.LatLon(), "err", err)
		}
	}

	return atms, nil
}
