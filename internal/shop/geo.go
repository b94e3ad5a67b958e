package shop

import "math"

const earthRadiusM = 6371000.0

// DistanceM returns the haversine distance in meters between two points.
func DistanceM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * earthRadiusM * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// WithinGeofence reports whether a point falls inside the shop's radius.
func (s *Shop) WithinGeofence(lat, lng float64) bool {
	return DistanceM(s.Latitude, s.Longitude, lat, lng) <= s.GeofenceRadiusM
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
