package utils

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the mean earth radius used for all great-circle lengths.
const EarthRadiusMeters = 6371000.0

// epsilon for coordinate and zoom comparisons
const epsilon = 1e-6

// Coordinates is a WGS84 point in degrees.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// ComputeDistance returns the great-circle distance between two points in meters.
// Identical points are exactly 0.
func ComputeDistance(from, to Coordinates) float64 {
	if from == to {
		return 0
	}
	p1 := s2.LatLngFromDegrees(from.Lat, from.Lng)
	p2 := s2.LatLngFromDegrees(to.Lat, to.Lng)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// RoundedDistance is ComputeDistance rounded to whole meters.
func RoundedDistance(from, to Coordinates) int64 {
	return int64(math.Round(ComputeDistance(from, to)))
}

// IsZero reports whether v is within 1e-6 of zero.
func IsZero(v float64) bool {
	return math.Abs(v) < epsilon
}
