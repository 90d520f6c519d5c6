package domain

import (
	"fmt"
	"math"
)

// Represents a walking route between two coordinates.
// Path is latitude-first and ordered from origin to destination.
type Route struct {
	Path            []Coordinates
	DistanceMeters  float64
	DurationSeconds float64
}

// Distance in kilometers.
func (r Route) DistanceKm() float64 { return r.DistanceMeters / 1000 }

// Duration in whole minutes, rounded to the nearest minute.
func (r Route) DurationMinutes() int { return int(math.Round(r.DurationSeconds / 60)) }

// Summary renders the route as "<km> km | <minutes> mins".
func (r Route) Summary() string {
	return fmt.Sprintf("%.2f km | %d mins", r.DistanceKm(), r.DurationMinutes())
}
