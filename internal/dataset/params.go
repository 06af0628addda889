package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"aiintegration/internal/services"
)

// ParseParams converts key=value pairs into a parameter map. Numbers become
// float64, true/false become bool, everything else stays a string. Later
// pairs override earlier ones.
func ParseParams(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, services.Wrap(services.ErrValidation, "dataset", fmt.Sprintf("parameter %q must be key=value", pair), nil)
		}
		params[key] = parseScalar(strings.TrimSpace(value))
	}
	return params, nil
}

func parseScalar(value string) any {
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	}
	return value
}

// MergeParams returns base overlaid with overrides. Neither input is modified.
func MergeParams(base, overrides map[string]any) map[string]any {
	if len(base) == 0 && len(overrides) == 0 {
		return nil
	}
	merged := make(map[string]any, len(base)+len(overrides))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}
