package api

import (
	"atm-locator-service/internal/api/handlers"
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/services"
	"net/http"

	"github.com/gorilla/mux"
)

type RouterOptions struct {
	AllowedOrigins  []string
	DefaultLocation *domain.Coordinates
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
func NewRouter(ctrl *services.Controller, opts RouterOptions) http.Handler {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware, corsMiddleware(opts.AllowedOrigins))

	session := &handlers.SessionHandler{
		Ctrl:            ctrl,
		DefaultLocation: opts.DefaultLocation,
	}

	r.HandleFunc("/health", handlers.Health).Methods(http.MethodGet)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/state", session.State).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/map.geojson", session.GeoJSON).Methods(http.MethodGet, http.MethodOptions)
	apiRouter.HandleFunc("/locate", session.Locate).Methods(http.MethodPost, http.MethodOptions)
	apiRouter.HandleFunc("/search", session.Search).Methods(http.MethodPost, http.MethodOptions)
	apiRouter.HandleFunc("/filter", session.SetFilter).Methods(http.MethodPut, http.MethodOptions)
	apiRouter.HandleFunc("/directions", session.Directions).Methods(http.MethodPost, http.MethodOptions)
	apiRouter.HandleFunc("/directions", session.CloseDirections).Methods(http.MethodDelete, http.MethodOptions)

	return r
}
