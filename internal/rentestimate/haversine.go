package rentestimate

import "math"

// EarthRadiusMiles is the mean Earth radius used for great-circle distances.
const EarthRadiusMiles = 3958.8

// DistanceMiles returns the haversine distance between two coordinates in
// miles, rounded to two decimals.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return roundTo2Decimals(EarthRadiusMiles * c)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func roundTo2Decimals(v float64) float64 {
	return math.Round(v*100) / 100
}

// roundDollars rounds half up to a whole dollar.
func roundDollars(v float64) float64 {
	return math.Floor(v + 0.5)
}
