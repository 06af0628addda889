// Package prompt formats records and free-form parameters into model prompts.
package prompt

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Builder accumulates prompt lines. The zero value is ready to use.
type Builder struct {
	sb strings.Builder
}

// Line appends text followed by a newline.
func (b *Builder) Line(text string) {
	b.sb.WriteString(text)
	b.sb.WriteByte('\n')
}

// Linef appends a formatted line.
func (b *Builder) Linef(format string, args ...any) {
	b.Line(fmt.Sprintf(format, args...))
}

// Section appends a blank line, a header line, and one "prefix key: value"
// line per parameter in sorted key order. Nothing is written for an empty map.
func (b *Builder) Section(header, prefix string, params map[string]any) {
	if len(params) == 0 {
		return
	}
	b.Line("")
	b.Line(header)
	for _, key := range SortedKeys(params) {
		b.Linef("%s%s: %s", prefix, key, FormatValue(params[key]))
	}
}

// String returns the accumulated prompt.
func (b *Builder) String() string {
	return b.sb.String()
}

// SortedKeys returns the map keys in ascending order.
func SortedKeys(params map[string]any) []string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// FormatValue renders v with default formatting; floats use the shortest
// representation that round-trips.
func FormatValue(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case float64:
		return Float(value)
	case float32:
		return strconv.FormatFloat(float64(value), 'g', -1, 32)
	case string:
		return value
	default:
		return fmt.Sprintf("%v", value)
	}
}

// Float formats f in its shortest form, e.g. 12.5, -3.2, 100.
func Float(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
