package outliers

import (
	"errors"
	"strings"

	"aiintegration/internal/config"
	"aiintegration/internal/services/ollama"
	"aiintegration/internal/stats"
)

// wirePoint uses pointers so absent fields are left alone during the merge.
type wirePoint struct {
	Timestamp    *string  `json:"timestamp"`
	IsOutlier    *bool    `json:"isOutlier"`
	AnomalyScore *float64 `json:"anomalyScore"`
	Explanation  *string  `json:"explanation"`
}

type wireResult struct {
	Points  []wirePoint `json:"points"`
	Summary string      `json:"summary"`
}

func decodeStrict(text string) (wireResult, error) {
	var payload wireResult
	if err := ollama.DecodeJSON(text, &payload); err != nil {
		return payload, err
	}
	if len(payload.Points) == 0 {
		return payload, errors.New("no points in payload")
	}
	for _, p := range payload.Points {
		if p.IsOutlier != nil || p.AnomalyScore != nil {
			return payload, nil
		}
	}
	return payload, errors.New("no point carries isOutlier or anomalyScore")
}

// merge copies model answers onto points and returns the strategy used.
// With MergeTimestamp the answers are matched by timestamp when all of them
// name an unclaimed input timestamp; otherwise answer i updates point i and
// points beyond the answer count are left untouched.
func merge(points []Point, answers []wirePoint, strategy string) string {
	if strategy != config.MergePosition {
		if targets, ok := matchTimestamps(points, answers); ok {
			for i, answer := range answers {
				apply(&points[targets[i]], answer)
			}
			return config.MergeTimestamp
		}
	}
	n := min(len(points), len(answers))
	for i := 0; i < n; i++ {
		apply(&points[i], answers[i])
	}
	return config.MergePosition
}

func matchTimestamps(points []Point, answers []wirePoint) ([]int, bool) {
	index := make(map[string][]int, len(points))
	for i, p := range points {
		key := strings.TrimSpace(p.Timestamp)
		index[key] = append(index[key], i)
	}
	targets := make([]int, len(answers))
	for i, answer := range answers {
		if answer.Timestamp == nil {
			return nil, false
		}
		key := strings.TrimSpace(*answer.Timestamp)
		if key == "" {
			return nil, false
		}
		queue := index[key]
		if len(queue) == 0 {
			return nil, false
		}
		targets[i] = queue[0]
		index[key] = queue[1:]
	}
	return targets, true
}

func apply(p *Point, answer wirePoint) {
	if answer.IsOutlier != nil {
		p.IsOutlier = *answer.IsOutlier
	}
	if answer.AnomalyScore != nil {
		p.AnomalyScore = stats.Clamp01(*answer.AnomalyScore)
	}
	if answer.Explanation != nil {
		p.Explanation = strings.TrimSpace(*answer.Explanation)
	}
}

const (
	explanationOutlier = "Significant deviation from mean"
	explanationNormal  = "Normal range"
	fallbackSummary    = "Basic statistical analysis performed"
)

// scoreFallback overwrites the outlier fields of every point from its z-score.
func scoreFallback(points []Point, threshold float64) {
	if threshold <= 0 {
		threshold = defaultZThreshold
	}
	values := valuesOf(points)
	mean := stats.Mean(values)
	stdDev := stats.StdDev(values)
	for i := range points {
		z := stats.ZScore(points[i].Value, mean, stdDev)
		points[i].AnomalyScore = min(1, z/threshold)
		points[i].IsOutlier = z > threshold
		if points[i].IsOutlier {
			points[i].Explanation = explanationOutlier
		} else {
			points[i].Explanation = explanationNormal
		}
	}
}

func computeStatistics(points []Point) Statistics {
	values := valuesOf(points)
	st := Statistics{
		Mean:   stats.Mean(values),
		StdDev: stats.StdDev(values),
	}
	for _, p := range points {
		if p.IsOutlier {
			st.OutlierCount++
		}
	}
	return st
}

func valuesOf(points []Point) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}
