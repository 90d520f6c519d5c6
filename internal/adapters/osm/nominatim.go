package osm

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/platform/obs"
	"atm-locator-service/internal/ports"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Nominatim implements ports.Geocoder against a Nominatim /search endpoint.
//
// Queries are qualified with a fixed country suffix and restricted to
// country codes. When a cache is configured it is consulted first and
// filled after a network hit.
type Nominatim struct {
	client
	country      string
	countryCodes string
	cache        ports.GeocodeCache
}

type NominatimOptions struct {
	BaseURL      string
	UserAgent    string
	Timeout      time.Duration
	Country      string
	CountryCodes string
	Cache        ports.GeocodeCache
}

func NewNominatim(opts NominatimOptions) *Nominatim {
	return &Nominatim{
		client:       newClient(opts.BaseURL, opts.UserAgent, opts.Timeout),
		country:      opts.Country,
		countryCodes: opts.CountryCodes,
		cache:        opts.Cache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace.
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func (n *Nominatim) Geocode(ctx context.Context, query string) (_ domain.Coordinates, _ bool, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	key := normalize(query)
	if key == "" {
		return domain.Coordinates{}, false, nil
	}

	if n.cache != nil {
		c, ok, err := n.cache.Get(ctx, key)
		if err != nil {
			obs.Logger.Log("op", "geocode.cache.Get", "query", key, "err", err)
		} else if ok {
			return c, true, nil
		}
	}

	q := query
	if n.country != "" {
		q = query + ", " + n.country
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", q)
	if n.countryCodes != "" {
		params.Set("countrycodes", n.countryCodes)
	}

	var results []nominatimResult
	if err := n.getJSON(ctx, "/search", params.Encode(), &results); err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("nominatim search %q: %w", query, err)
	}

	if len(results) == 0 {
		return domain.Coordinates{}, false, nil
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("nominatim search %q: parse lat %q: %w", query, first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return domain.Coordinates{}, false, fmt.Errorf("nominatim search %q: parse lon %q: %w", query, first.Lon, err)
	}
	coord := domain.Coordinates{Lat: lat, Lon: lon}

	if n.cache != nil {
		if err := n.cache.Put(ctx, key, coord); err != nil {
			obs.Logger.Log("op", "geocode.cache.Put", "query", key, "err", err)
		}
	}

	return coord, true, nil
}
