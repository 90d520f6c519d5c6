package main

import (
	"atm-locator-service/internal/adapters/cache"
	"atm-locator-service/internal/adapters/osm"
	"atm-locator-service/internal/api"
	"atm-locator-service/internal/config"
	"atm-locator-service/internal/mapview"
	"atm-locator-service/internal/platform/db"
	"atm-locator-service/internal/platform/graceful"
	"atm-locator-service/internal/platform/obs"
	"atm-locator-service/internal/ports"
	"atm-locator-service/internal/services"
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires the OSM adapters and optional caches behind ports and starts the HTTP server.
func main() {
	if err := run(); err != nil {
		obs.Logger.Log("msg", "server exited", "err", err)
		os.Exit(1)
	}
}

func run() error {
	if !config.LoadDotEnv() {
		obs.Logger.Log("msg", "no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := graceful.Context(context.Background())
	defer cancel()

	var geocodeCache ports.GeocodeCache
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer sqlDB.Close()
		geocodeCache = cache.NewSQLGeocodeCache(sqlDB)
		obs.Logger.Log("msg", "geocode cache enabled", "backend", "postgres")
	}

	var atmCache ports.ATMCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		atmCache = cache.NewRedisATMCache(rdb)
		obs.Logger.Log("msg", "atm cache enabled", "backend", "redis", "ttl", cfg.POICacheTTL)
	}

	geocoder := osm.NewNominatim(osm.NominatimOptions{
		BaseURL:      cfg.NominatimURL,
		UserAgent:    cfg.UserAgent,
		Timeout:      cfg.UpstreamTimeout,
		Country:      cfg.SearchCountry,
		CountryCodes: cfg.SearchCountryCodes,
		Cache:        geocodeCache,
	})
	atms := osm.NewOverpass(osm.OverpassOptions{
		BaseURL:   cfg.OverpassURL,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.UpstreamTimeout,
		Cache:     atmCache,
		CacheTTL:  cfg.POICacheTTL,
	})
	routes := osm.NewOSRM(cfg.OSRMURL, cfg.UserAgent, cfg.UpstreamTimeout)

	ctrl := services.NewController(geocoder, atms, routes, services.Options{
		Zoom:         services.DefaultZoom,
		RadiusMeters: cfg.RadiusMeters,
		Tiles: mapview.TileLayer{
			URLTemplate: cfg.TileURL,
			Attribution: cfg.TileAttribution,
		},
	})

	router := api.NewRouter(ctrl, api.RouterOptions{
		AllowedOrigins:  cfg.AllowedOrigins,
		DefaultLocation: cfg.DefaultLocation,
	})

	// Write timeout covers a search that runs geocode plus two POI queries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		obs.Logger.Log("msg", "server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}
