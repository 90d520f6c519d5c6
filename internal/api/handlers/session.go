package handlers

import (
	"atm-locator-service/internal/api/dto"
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/platform/obs"
	"atm-locator-service/internal/ports"
	"atm-locator-service/internal/services"
	"context"
	"errors"
	"net/http"
)

// SessionHandler exposes the map session actions to the page.
// Action outcomes the user should see travel in the snapshot message, so
// every well-formed action answers 200 with the updated state.
type SessionHandler struct {
	Ctrl *services.Controller

	// DefaultLocation answers locate requests that carry no position.
	DefaultLocation *domain.Coordinates
}

func (h *SessionHandler) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, dto.FromState(h.Ctrl.State()))
}

func (h *SessionHandler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/geo+json")
	data, err := h.Ctrl.FeatureCollection().MarshalJSON()
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, "failed to render map")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *SessionHandler) Locate(w http.ResponseWriter, r *http.Request) {
	var req dto.LocateRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	var locator ports.Locator
	switch {
	case req.Denied:
		locator = services.DeniedLocator()
	case req.Lat != nil && req.Lon != nil:
		if !validLatLon(*req.Lat, *req.Lon) {
			writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
			return
		}
		locator = services.FixedLocator(domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon})
	case req.Lat != nil || req.Lon != nil:
		writeError(w, r, http.StatusBadRequest, "lat and lon must be given together")
		return
	case h.DefaultLocation != nil:
		locator = services.FixedLocator(*h.DefaultLocation)
	}

	h.respond(w, r, "locate", h.Ctrl.LocateUser(r.Context(), locator))
}

func (h *SessionHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req dto.SearchRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	h.respond(w, r, "search", h.Ctrl.Search(r.Context(), req.Query))
}

func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	var req dto.FilterRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}

	h.Ctrl.SetBankFilter(req.Bank)
	h.respond(w, r, "filter", nil)
}

func (h *SessionHandler) Directions(w http.ResponseWriter, r *http.Request) {
	var req dto.DirectionsRequest
	if err := decodeBody(r, &req, false); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.Lat == nil || req.Lon == nil {
		writeError(w, r, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if !validLatLon(*req.Lat, *req.Lon) {
		writeError(w, r, http.StatusBadRequest, "lat/lon out of range")
		return
	}

	dest := domain.Coordinates{Lat: *req.Lat, Lon: *req.Lon}
	h.respond(w, r, "directions", h.Ctrl.GetDirections(r.Context(), dest, req.Bank))
}

func (h *SessionHandler) CloseDirections(w http.ResponseWriter, r *http.Request) {
	h.Ctrl.CloseDirections()
	h.respond(w, r, "close_directions", nil)
}

// respond logs the action outcome and writes the snapshot.
func (h *SessionHandler) respond(w http.ResponseWriter, r *http.Request, action string, err error) {
	if err != nil && !errors.Is(err, context.Canceled) {
		obs.Logger.Log("req_id", obs.RequestID(r.Context()), "action", action, "err", err)
	}
	writeJSON(w, r, http.StatusOK, dto.FromState(h.Ctrl.State()))
}
