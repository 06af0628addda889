package dataset

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"aiintegration/internal/outliers"
	"aiintegration/internal/route"
	"aiintegration/internal/services"
)

// Supported file formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Series is a time series plus the parameters to send with it.
type Series struct {
	Points     []outliers.Point `json:"points"`
	Parameters map[string]any   `json:"parameters,omitempty"`
}

// ResolveFormat returns format when set, otherwise infers it from the file
// extension.
func ResolveFormat(path, format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch format {
	case FormatCSV, FormatJSON:
		return format, nil
	case "":
		return "", services.Wrap(services.ErrValidation, "dataset", fmt.Sprintf("cannot infer format of %q; pass --format", path), nil)
	default:
		return "", services.Wrap(services.ErrValidation, "dataset", fmt.Sprintf("unsupported format %q", format), nil)
	}
}

// LoadSeries reads a time series from path.
func LoadSeries(path, format string) (Series, error) {
	var series Series
	format, err := ResolveFormat(path, format)
	if err != nil {
		return series, err
	}
	file, err := os.Open(path)
	if err != nil {
		return series, fmt.Errorf("open series: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		series.Points, err = parseSeriesCSV(file)
	default:
		series, err = parseSeriesJSON(file)
	}
	if err != nil {
		return Series{}, services.Wrap(services.ErrValidation, "dataset", path, err)
	}
	return series, nil
}

// LoadRoute reads route waypoints from path.
func LoadRoute(path, format string) (route.Request, error) {
	var req route.Request
	format, err := ResolveFormat(path, format)
	if err != nil {
		return req, err
	}
	file, err := os.Open(path)
	if err != nil {
		return req, fmt.Errorf("open route: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatCSV:
		req.Points, err = parseRouteCSV(file)
	default:
		req, err = parseRouteJSON(file)
	}
	if err != nil {
		return route.Request{}, services.Wrap(services.ErrValidation, "dataset", path, err)
	}
	return req, nil
}

func readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	indices := make(map[string]int, len(header))
	for i, h := range header {
		indices[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return indices, nil
}

func column(indices map[string]int, names ...string) int {
	for _, name := range names {
		if idx, ok := indices[name]; ok {
			return idx
		}
	}
	return -1
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseNumber(value, name string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return f, nil
}

func parseSeriesCSV(r io.Reader) ([]outliers.Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	indices, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	tsIdx := column(indices, "timestamp", "time", "ts")
	valueIdx := column(indices, "value")
	if tsIdx < 0 || valueIdx < 0 {
		return nil, errors.New("header must include timestamp and value columns")
	}

	points := []outliers.Point{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		value, err := parseNumber(field(record, valueIdx), "value")
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		points = append(points, outliers.Point{Timestamp: field(record, tsIdx), Value: value})
	}
	return points, nil
}

func parseRouteCSV(r io.Reader) ([]route.Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	indices, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	latIdx := column(indices, "latitude", "lat")
	lonIdx := column(indices, "longitude", "lon", "lng", "long")
	altIdx := column(indices, "altitude", "alt")
	if latIdx < 0 || lonIdx < 0 {
		return nil, errors.New("header must include latitude and longitude columns")
	}

	points := []route.Point{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var p route.Point
		if p.Latitude, err = parseNumber(field(record, latIdx), "latitude"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.Longitude, err = parseNumber(field(record, lonIdx), "longitude"); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if alt := field(record, altIdx); alt != "" {
			if p.Altitude, err = parseNumber(alt, "altitude"); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		points = append(points, p)
	}
	return points, nil
}

func parseSeriesJSON(r io.Reader) (Series, error) {
	var series Series
	data, err := io.ReadAll(r)
	if err != nil {
		return series, err
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal([]byte(trimmed), &series.Points)
	} else {
		err = json.Unmarshal([]byte(trimmed), &series)
	}
	if err != nil {
		return Series{}, fmt.Errorf("decode json: %w", err)
	}
	if series.Points == nil {
		series.Points = []outliers.Point{}
	}
	return series, nil
}

func parseRouteJSON(r io.Reader) (route.Request, error) {
	var req route.Request
	data, err := io.ReadAll(r)
	if err != nil {
		return req, err
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		err = json.Unmarshal([]byte(trimmed), &req.Points)
	} else {
		err = json.Unmarshal([]byte(trimmed), &req)
	}
	if err != nil {
		return route.Request{}, fmt.Errorf("decode json: %w", err)
	}
	if req.Points == nil {
		req.Points = []route.Point{}
	}
	return req, nil
}
