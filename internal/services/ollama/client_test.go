package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"aiintegration/internal/services"
)

func TestClientGenerate(t *testing.T) {
	var got generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/api/generate" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"model":       "demo",
			"created_at":  "2024-01-01T00:00:00Z",
			"response":    `{"ok":true}`,
			"done":        true,
			"done_reason": "stop",
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL + "/", Model: "demo"})
	generation, err := client.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got.Model != "demo" || got.Prompt != "hello" || got.Stream {
		t.Fatalf("unexpected request payload: %+v", got)
	}
	if generation.Response != `{"ok":true}` {
		t.Fatalf("unexpected response %q", generation.Response)
	}
	if !generation.Done || generation.DoneReason != "stop" {
		t.Fatalf("unexpected generation metadata: %+v", generation)
	}
	if len(generation.Body) == 0 {
		t.Fatal("expected raw body to be retained")
	}
}

func TestClientGenerateStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model 'demo' not found"}`))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "demo"})
	_, err := client.Generate(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport marker, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError in chain, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", statusErr.StatusCode)
	}
	if !strings.Contains(statusErr.Body, "not found") {
		t.Fatalf("expected body to be captured, got %q", statusErr.Body)
	}
}

func TestClientGenerateEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"model": "demo", "response": "  ", "done": true, "done_reason": "length"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "demo"})
	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for blank response")
	}
}

func TestClientGenerateRejectsBlankPrompt(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://127.0.0.1:1", Model: "demo"})
	_, err := client.Generate(context.Background(), " ")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestClientGenerateSingleAttemptByDefault(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "demo"})
	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestClientGenerateRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "[]", "done": true})
	}))
	defer server.Close()

	var sleeps []time.Duration
	client := NewClient(
		Config{BaseURL: server.URL, Model: "demo"},
		WithRetryMaxAttempts(3),
		WithRetryBackoff(time.Second, 5*time.Second),
		WithSleeper(func(d time.Duration) { sleeps = append(sleeps, d) }),
	)
	if _, err := client.Generate(context.Background(), "hello"); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if calls.Load() != 3 {
		t.Fatalf("calls = %d, want 3", calls.Load())
	}
	if len(sleeps) != 2 || sleeps[0] != 2*time.Second {
		t.Fatalf("unexpected sleeps %v", sleeps)
	}
}

func TestClientGenerateDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "demo"}, WithRetryMaxAttempts(4), WithSleeper(func(time.Duration) {}))
	if _, err := client.Generate(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
	if calls.Load() != 1 {
		t.Fatalf("calls = %d, want 1", calls.Load())
	}
}

func TestClientGenerateCanceledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "x"})
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := NewClient(Config{BaseURL: server.URL, Model: "demo"})
	_, err := client.Generate(ctx, "hello")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoffDelay(t *testing.T) {
	client := NewClient(Config{}, WithRetryBackoff(time.Second, 5*time.Second))
	cases := map[int]time.Duration{1: time.Second, 2: 2 * time.Second, 3: 4 * time.Second, 4: 5 * time.Second}
	for attempt, want := range cases {
		if got := client.backoffDelay(attempt); got != want {
			t.Fatalf("backoffDelay(%d) = %s, want %s", attempt, got, want)
		}
	}
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Config{})
	if client.BaseURL() != DefaultBaseURL {
		t.Fatalf("base url = %q", client.BaseURL())
	}
	if client.Model() != DefaultModel {
		t.Fatalf("model = %q", client.Model())
	}
	if client.timeoutDuration() != 120*time.Second {
		t.Fatalf("timeout = %s", client.timeoutDuration())
	}
}

func TestClientHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/tags" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"models": []any{
				map[string]any{"name": "mistral:7b"},
				map[string]any{"name": "llama3.2:latest"},
			},
		})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "llama3.2"})
	health, err := client.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
	if !health.Reachable || !health.ModelAvailable {
		t.Fatalf("unexpected health %+v", health)
	}
	if len(health.Models) != 2 {
		t.Fatalf("models = %v", health.Models)
	}
}

func TestClientHealthCheckMissingModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"models": []any{map[string]any{"name": "mistral:7b"}}})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "llama3.2:1b"})
	health, err := client.HealthCheck(context.Background())
	if err != nil {
		t.Fatalf("HealthCheck returned error: %v", err)
	}
	if !health.Reachable || health.ModelAvailable {
		t.Fatalf("unexpected health %+v", health)
	}
}

func TestClientHealthCheckFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "demo"})
	if _, err := client.HealthCheck(context.Background()); !errors.Is(err, services.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestParseRetryAfter(t *testing.T) {
	if d, ok := parseRetryAfter("3"); !ok || d != 3*time.Second {
		t.Fatalf("parseRetryAfter(3) = %s, %v", d, ok)
	}
	if _, ok := parseRetryAfter("-1"); ok {
		t.Fatal("negative value should be rejected")
	}
	if _, ok := parseRetryAfter("soon"); ok {
		t.Fatal("garbage value should be rejected")
	}
}
