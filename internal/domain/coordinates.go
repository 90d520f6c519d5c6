package domain

import "strconv"

// Immutable geographic coordinates (latitude, longitude) in degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// LonLat formats the coordinate as "lon,lat", the order routing services expect.
func (c Coordinates) LonLat() string {
	return formatDegrees(c.Lon) + "," + formatDegrees(c.Lat)
}

// LatLon formats the coordinate as "lat,lon", the order query services expect.
func (c Coordinates) LatLon() string {
	return formatDegrees(c.Lat) + "," + formatDegrees(c.Lon)
}

func formatDegrees(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
