package services

import (
	"atm-locator-service/internal/domain"
	"atm-locator-service/internal/mapview"
	"errors"
	"strings"
)

// User-visible status messages. The session shows at most one at a time.
const (
	MsgGeolocationDenied      = "Geolocation not allowed."
	MsgGeolocationUnsupported = "Geolocation is not supported by this client."
	MsgLocationNotFound       = "Location not found."
	MsgSearchFailed           = "Error finding location."
	MsgNoATMs                 = "No ATMs found near this location."
	MsgATMFetchFailed         = "Error fetching ATM data."
	MsgEnableLocation         = "Enable location to get directions."
	MsgNoRoute                = "No route found."
	MsgDirectionsFailed       = "Error getting directions."
)

const (
	SelectedLocationTitle = "Selected Location"
	DestinationTitle      = "Destination"
	RouteColor            = "blue"
	RouteWeight           = 5
)

var (
	ErrGeolocationDenied      = errors.New("geolocation denied")
	ErrGeolocationUnsupported = errors.New("geolocation unsupported")
	ErrLocationNotFound       = errors.New("location not found")
	ErrNoATMs                 = errors.New("no atms near location")
	ErrNoMatchingATMs         = errors.New("no atms match bank filter")
	ErrNoUserLocation         = errors.New("user location unknown")
	ErrNoRoute                = errors.New("no route found")
	ErrMapNotInitialized      = errors.New("map not initialized")

	// ErrStaleResponse marks an upstream response dropped because a newer request was issued.
	ErrStaleResponse = errors.New("stale response discarded")
)

// Session is the mutable state of one map session.
// Marker and overlay ids of zero mean "none".
type Session struct {
	Map             *mapview.Map
	UserLocation    *domain.Coordinates
	RouteLayer      int
	DirectionMarker int
	ActiveRoute     *domain.Route
	Message         string
	BankFilter      string

	poiGen   uint64
	routeGen uint64
}

// MessageForBank is the status shown when every nearby ATM was filtered out.
func MessageForBank(filter string) string {
	return "No ATMs found for " + strings.ToUpper(filter) + " near this location."
}
