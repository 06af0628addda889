package route

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"aiintegration/internal/services/ollama"
)

// wirePoint distinguishes a missing coordinate from a zero one.
type wirePoint struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Altitude  *float64 `json:"altitude"`
}

type routePayload struct {
	Points []wirePoint
}

func (p *routePayload) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, &p.Points)
	}
	var envelope struct {
		Points         *[]wirePoint `json:"points"`
		Route          *[]wirePoint `json:"route"`
		OptimizedRoute *[]wirePoint `json:"optimizedRoute"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return err
	}
	// An object without a route key is not the payload; the error lets
	// DecodeJSON move on to the next candidate span.
	present := false
	for _, candidate := range []*[]wirePoint{envelope.Points, envelope.Route, envelope.OptimizedRoute} {
		if candidate == nil {
			continue
		}
		present = true
		if len(*candidate) > 0 {
			p.Points = *candidate
			return nil
		}
	}
	if !present {
		return errors.New("object has no points, route, or optimizedRoute array")
	}
	return nil
}

// decodeStrict decodes the model text into points. It fails when no JSON
// payload is found, the list is empty, or any point lacks a valid latitude
// or longitude.
func decodeStrict(text string) ([]Point, error) {
	var payload routePayload
	if err := ollama.DecodeJSON(text, &payload); err != nil {
		return nil, err
	}
	if len(payload.Points) == 0 {
		return nil, errors.New("no route points in payload")
	}
	points := make([]Point, 0, len(payload.Points))
	for i, wp := range payload.Points {
		if wp.Latitude == nil || wp.Longitude == nil {
			return nil, fmt.Errorf("point %d: latitude and longitude required", i)
		}
		point := Point{Latitude: *wp.Latitude, Longitude: *wp.Longitude}
		if wp.Altitude != nil {
			point.Altitude = *wp.Altitude
		}
		if err := validatePoint(point); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		points = append(points, point)
	}
	return points, nil
}

func validatePoint(p Point) error {
	for _, v := range []float64{p.Latitude, p.Longitude, p.Altitude} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("coordinate not finite")
		}
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", p.Longitude)
	}
	return nil
}

// parseFallback scans lines containing both "Lat:" and "Long:" and reads the
// first three comma-separated segments as latitude, longitude and altitude.
// Lines with fewer than three segments are skipped.
func parseFallback(text string) []Point {
	var points []Point
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "Lat:") || !strings.Contains(line, "Long:") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			continue
		}
		points = append(points, Point{
			Latitude:  extractNumber(parts[0]),
			Longitude: extractNumber(parts[1]),
			Altitude:  extractNumber(parts[2]),
		})
	}
	return points
}

// extractNumber keeps digits, '.' and '-' from the value part of a segment
// ("Lat: 12.5" -> 12.5) and returns 0 when the result does not parse.
func extractNumber(segment string) float64 {
	if _, value, ok := strings.Cut(segment, ":"); ok {
		segment = value
	}
	filtered := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, segment)
	value, err := strconv.ParseFloat(filtered, 64)
	if err != nil {
		return 0
	}
	return value
}
