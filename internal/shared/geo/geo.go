package geo

import "math"

const earthRadiusKm = 6371.0088

// Point is a GPS sample in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}

// HaversineKm returns the great-circle distance between two points.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := rad(lat2 - lat1)
	dLng := rad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}

// PathLengthKm sums the haversine distance over consecutive pairs.
// Fewer than two points is a zero-length path.
func PathLengthKm(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += HaversineKm(points[i-1].Lat, points[i-1].Lng, points[i].Lat, points[i].Lng)
	}
	return total
}

// RoundKm rounds a distance to 4 decimal places, the precision runs are
// stored with.
func RoundKm(km float64) float64 {
	return math.Round(km*10000) / 10000
}

func rad(deg float64) float64 {
	return deg * math.Pi / 180
}
