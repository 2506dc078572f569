// Package geo holds the great-circle math shared by pricing and place lookup.
package geo

import "math"

const (
	earthRadiusKm   = 6371.0
	averageSpeedKmh = 50.0

	// DefaultProximityRadiusKm is the radius used when callers ask whether two
	// points are "near" each other without naming a radius.
	DefaultProximityRadiusKm = 50.0
)

// Point is a coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Haversine calculates the great-circle distance in kilometres between two
// coordinates, rounded to one decimal place. NaN inputs yield NaN.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return math.Round(earthRadiusKm*c*10) / 10
}

// Distance is Haversine over two Points.
func Distance(from, to Point) float64 {
	return Haversine(from.Lat, from.Lng, to.Lat, to.Lng)
}

// EstimateTravelTime returns the travel time in whole minutes for a distance,
// assuming an average speed of 50 km/h.
func EstimateTravelTime(distanceKm float64) int {
	return int(math.Round(distanceKm / averageSpeedKmh * 60))
}

// IsWithinProximity reports whether two points lie within radiusKm of each
// other. A non-positive radius falls back to DefaultProximityRadiusKm.
func IsWithinProximity(from, to Point, radiusKm float64) bool {
	if radiusKm <= 0 {
		radiusKm = DefaultProximityRadiusKm
	}
	return Distance(from, to) <= radiusKm
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
