package dataset

import (
	"time"

	"aiintegration/internal/outliers"
	"aiintegration/internal/route"
)

// SampleSeries returns four hourly readings ending one hour before now, with
// an obvious spike in the third reading.
func SampleSeries(now time.Time) Series {
	values := []float64{10.5, 11.2, 150.0, 10.8}
	points := make([]outliers.Point, len(values))
	for i, v := range values {
		ts := now.Add(-time.Duration(len(values)-i) * time.Hour)
		points[i] = outliers.Point{Timestamp: ts.Format(time.RFC3339), Value: v}
	}
	return Series{
		Points: points,
		Parameters: map[string]any{
			"sensitivityThreshold": 0.95,
			"minimumAnomalyScore":  0.7,
		},
	}
}

// SampleRoute returns a short domestic route with an altitude ceiling.
func SampleRoute() route.Request {
	return route.Request{
		Points: []route.Point{
			{Latitude: 41.2753, Longitude: 28.7519, Altitude: 0},
			{Latitude: 40.2386, Longitude: 29.0094, Altitude: 9000},
			{Latitude: 39.7786, Longitude: 30.5206, Altitude: 11000},
			{Latitude: 40.1281, Longitude: 32.9951, Altitude: 0},
		},
		Constraints: map[string]any{
			"maxAltitude":   12000,
			"avoidAirspace": "restricted",
		},
	}
}
