package geo

import "math"

// EarthRadiusKm is the Earth radius in kilometers for Haversine.
const EarthRadiusKm = 6371.0

// truncateFactor fixes stored coordinate precision at 4 decimal places,
// roughly 11 m at the equator.
const truncateFactor = 10000.0

// Truncate cuts a coordinate to 4 decimal places toward zero. Applied to
// every fix before persistence so higher device precision never reaches
// storage or other users.
func Truncate(coord float64) float64 {
	return math.Trunc(coord*truncateFactor) / truncateFactor
}

// HaversineKm returns the great-circle distance in km between two points (lat/lng in degrees).
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	rad := func(d float64) float64 { return d * math.Pi / 180 }
	φ1, φ2 := rad(lat1), rad(lat2)
	Δφ := rad(lat2 - lat1)
	Δλ := rad(lng2 - lng1)
	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// RoundKm rounds a distance to 2 decimal places for client display.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

// ValidLatLng reports whether the pair lies inside the WGS84 range:
// latitude [-90, 90], longitude [-180, 180].
func ValidLatLng(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
