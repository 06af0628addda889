// Package outliers asks a language model to label anomalies in a time series.
//
// Detect sends every (timestamp, value) pair plus optional parameters to the
// model and expects a JSON object with a "points" array. Model answers are
// merged onto a copy of the input: keyed by timestamp when every answer names
// a known timestamp, otherwise by position. Only the outlier flag, anomaly
// score (clamped to [0, 1]) and explanation are taken from the model; mean,
// standard deviation and outlier count are always recomputed locally.
//
// When the reply carries no usable JSON, a z-score fallback scores each
// point instead: score = min(1, z/threshold), outlier when z > threshold.
// A series with zero variance, or fewer than two points, scores 0 everywhere.
package outliers
