package route

import "github.com/golang/geo/s2"

// EarthRadiusMeters is the mean Earth radius used for leg distances.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between a and b in meters.
// Altitude is ignored.
func Distance(a, b Point) float64 {
	p1 := s2.LatLngFromDegrees(a.Latitude, a.Longitude)
	p2 := s2.LatLngFromDegrees(b.Latitude, b.Longitude)
	return p1.Distance(p2).Radians() * EarthRadiusMeters
}

// Legs computes the distance of every consecutive pair and their total.
func Legs(points []Point) ([]Leg, float64) {
	if len(points) < 2 {
		return nil, 0
	}
	legs := make([]Leg, 0, len(points)-1)
	var total float64
	for i := 1; i < len(points); i++ {
		d := Distance(points[i-1], points[i])
		legs = append(legs, Leg{From: i - 1, To: i, DistanceMeters: d})
		total += d
	}
	return legs, total
}
