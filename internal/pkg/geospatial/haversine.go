package geospatial

import "math"

const earthRadiusKm = 6371.0

// MetersPerMile is the statute mile conversion factor used for all displayed distances.
const MetersPerMile = 1609.34

// Haversine calculates the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just outside [0,1] for antipodal points.
	a = math.Min(1, math.Max(0, a))

	c := 2 * math.Asin(math.Sqrt(a))
	return earthRadiusKm * c * 1000 // meters
}

// Miles converts meters to statute miles.
func Miles(meters float64) float64 {
	return meters / MetersPerMile
}

// LonDelta returns the signed longitude difference to - from, normalised
// to [-180,180) so that spans crossing the antimeridian stay small.
func LonDelta(from, to float64) float64 {
	d := math.Mod(to-from+180, 360)
	if d < 0 {
		d += 360
	}
	return d - 180
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
