package outliers

// Point is one observation in the series. The outlier fields are filled in
// by Detect.
type Point struct {
	Timestamp    string  `json:"timestamp"`
	Value        float64 `json:"value"`
	IsOutlier    bool    `json:"isOutlier"`
	AnomalyScore float64 `json:"anomalyScore"`
	Explanation  string  `json:"explanation"`
}

// Statistics are computed locally over the input values.
type Statistics struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"stdDev"`
	OutlierCount int     `json:"outlierCount"`
}

// Result is the annotated series. Points keep the input order.
type Result struct {
	SchemaVersion int        `json:"schemaVersion"`
	Model         string     `json:"model"`
	Source        string     `json:"source"`
	Merge         string     `json:"merge,omitempty"`
	Points        []Point    `json:"points"`
	Summary       string     `json:"summary"`
	Statistics    Statistics `json:"statistics"`
}
