package outliers

import (
	"aiintegration/internal/prompt"
)

const responseSchema = `{
  "points": [
    {
      "timestamp": "...",
      "value": number,
      "isOutlier": boolean,
      "anomalyScore": number,
      "explanation": "..."
    }
  ],
  "summary": "...",
  "statistics": {
    "mean": number,
    "stdDev": number,
    "outlierCount": number
  }
}`

// BuildPrompt renders the detection request for points and params.
func BuildPrompt(points []Point, params map[string]any) string {
	var b prompt.Builder
	b.Line("Please analyze this time series data for outliers and anomalies.")
	b.Line("Provide the following in your analysis:")
	b.Line("1. For each point, determine if it's an outlier")
	b.Line("2. Assign an anomaly score (0-1) to each point")
	b.Line("3. Provide a brief explanation for each outlier")
	b.Line("4. Include summary statistics")
	b.Line("")
	b.Line("Data points:")
	for _, p := range points {
		b.Linef("Timestamp: %s, Value: %s", p.Timestamp, prompt.Float(p.Value))
	}
	b.Section("Parameters:", "", params)
	b.Line("")
	b.Line("Please format your response as JSON with the following structure:")
	b.Line(responseSchema)
	return b.String()
}
