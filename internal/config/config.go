package config

import (
	"atm-locator-service/internal/domain"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration, read from the environment after .env.
type Config struct {
	Port string

	NominatimURL string
	OverpassURL  string
	OSRMURL      string
	UserAgent    string

	TileURL         string
	TileAttribution string

	SearchCountry      string
	SearchCountryCodes string
	RadiusMeters       int
	UpstreamTimeout    time.Duration

	// DefaultLocation stands in for the platform position when the client reports none.
	DefaultLocation *domain.Coordinates

	DatabaseURL string
	RedisAddr   string
	RedisDB     int
	POICacheTTL time.Duration

	AllowedOrigins []string
	SeedPath       string
}

// LoadDotEnv loads .env when present; a missing file is not an error.
func LoadDotEnv() bool {
	return godotenv.Load() == nil
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:               Get("PORT", "8080"),
		NominatimURL:       strings.TrimRight(Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"), "/"),
		OverpassURL:        strings.TrimRight(Get("OVERPASS_URL", "https://overpass-api.de"), "/"),
		OSRMURL:            strings.TrimRight(Get("OSRM_URL", "https://router.project-osrm.org"), "/"),
		UserAgent:          Get("USER_AGENT", "atm-locator-service/1.0"),
		TileURL:            Get("TILE_URL", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"),
		TileAttribution:    Get("TILE_ATTRIBUTION", "&copy; OpenStreetMap contributors"),
		SearchCountry:      Get("SEARCH_COUNTRY", "Philippines"),
		SearchCountryCodes: Get("SEARCH_COUNTRY_CODES", "PH"),
		DatabaseURL:        Get("DATABASE_URL", ""),
		RedisAddr:          Get("REDIS_ADDR", ""),
		SeedPath:           Get("SEED_PATH", "data/seeds/landmarks.json"),
	}

	var err error
	if cfg.RadiusMeters, err = getInt("POI_RADIUS_METERS", 1000); err != nil {
		return Config{}, err
	}
	if cfg.RadiusMeters <= 0 {
		return Config{}, errors.New("config: POI_RADIUS_METERS must be positive")
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.UpstreamTimeout, err = getDuration("UPSTREAM_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.POICacheTTL, err = getDuration("POI_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}

	if raw := Get("DEFAULT_LOCATION", ""); raw != "" {
		c, err := ParseLatLon(raw)
		if err != nil {
			return Config{}, fmt.Errorf("config: DEFAULT_LOCATION: %w", err)
		}
		cfg.DefaultLocation = &c
	}

	for _, o := range strings.Split(Get("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	return cfg, nil
}

// ParseLatLon parses "lat,lon".
func ParseLatLon(s string) (domain.Coordinates, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("want \"lat,lon\", got %q", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", parts[0], err)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", parts[1], err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func getInt(key string, fallback int) (int, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", key, err)
	}
	return v, nil
}
