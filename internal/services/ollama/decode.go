package ollama

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// DecodeJSON decodes a JSON payload embedded in generated text into target.
// The text is tried as-is, then with a surrounding code fence removed, then
// as the span between the first '{' and last '}', then between the first '['
// and last ']'.
func DecodeJSON(content string, target any) error {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return errors.New("empty payload")
	}

	directErr := json.Unmarshal([]byte(trimmed), target)
	if directErr == nil {
		return nil
	}

	var lastErr error
	tried := map[string]bool{trimmed: true}
	for _, candidate := range payloadCandidates(trimmed) {
		if candidate == "" || tried[candidate] {
			continue
		}
		tried[candidate] = true
		if err := json.Unmarshal([]byte(candidate), target); err != nil {
			lastErr = fmt.Errorf("%w (sanitized payload snippet: %s)", err, summarizePayloadSnippet(candidate))
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%w (payload snippet: %s)", directErr, summarizePayloadSnippet(trimmed))
}

func payloadCandidates(content string) []string {
	body := stripCodeFenceBlock(content)
	candidates := []string{body}
	if span := enclosedSpan(body, "{", "}"); span != "" {
		candidates = append(candidates, span)
	}
	if span := enclosedSpan(body, "[", "]"); span != "" {
		candidates = append(candidates, span)
	}
	return candidates
}

func enclosedSpan(content, open, close string) string {
	start := strings.Index(content, open)
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(content, close)
	if end <= start {
		return ""
	}
	return strings.TrimSpace(content[start : end+1])
}

func stripCodeFenceBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := trimmed[3:]
	body = strings.TrimLeft(body, " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = body[4:]
		body = strings.TrimLeft(body, " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}

// SummarizePayload collapses whitespace and truncates content for log fields.
func SummarizePayload(content string) string {
	return summarizePayloadSnippet(content)
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
