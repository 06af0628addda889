package route

// Point is a single waypoint in degrees and meters.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// Request is the read-only input to Optimize.
type Request struct {
	Points      []Point        `json:"points"`
	Constraints map[string]any `json:"constraints,omitempty"`
}

// Leg is the great-circle distance between two consecutive returned points.
type Leg struct {
	From           int     `json:"from"`
	To             int     `json:"to"`
	DistanceMeters float64 `json:"distanceMeters"`
}

// Result is the optimized route as returned by the model or the fallback
// line scanner. Points may be shorter than the request.
type Result struct {
	SchemaVersion       int     `json:"schemaVersion"`
	Model               string  `json:"model"`
	Source              string  `json:"source"`
	Points              []Point `json:"points"`
	Legs                []Leg   `json:"legs"`
	TotalDistanceMeters float64 `json:"totalDistanceMeters"`
}
