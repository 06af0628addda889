package testsupport

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// ModelServer is an httptest stand-in for an Ollama server. It answers
// /api/generate with a fixed response text and /api/tags with Models.
type ModelServer struct {
	*httptest.Server

	mu       sync.Mutex
	response string
	status   int
	models   []string
	prompts  []string
}

// NewModelServer starts a server that replies to every generate call with
// response. The server is closed when the test ends.
func NewModelServer(t testing.TB, response string) *ModelServer {
	t.Helper()

	ms := &ModelServer{response: response, status: http.StatusOK, models: []string{"test-model:latest"}}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/generate", ms.handleGenerate)
	mux.HandleFunc("GET /api/tags", ms.handleTags)
	ms.Server = httptest.NewServer(mux)
	t.Cleanup(ms.Close)
	return ms
}

// FailWith makes subsequent calls answer with status and no body.
func (ms *ModelServer) FailWith(status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.status = status
}

// SetModels replaces the installed model list reported by /api/tags.
func (ms *ModelServer) SetModels(models ...string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.models = models
}

// Prompts returns every prompt received so far.
func (ms *ModelServer) Prompts() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.prompts...)
}

func (ms *ModelServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ms.mu.Lock()
	ms.prompts = append(ms.prompts, req.Prompt)
	status, response := ms.status, ms.response
	ms.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":       req.Model,
		"created_at":  "2024-01-01T00:00:00Z",
		"response":    response,
		"done":        true,
		"done_reason": "stop",
	})
}

func (ms *ModelServer) handleTags(w http.ResponseWriter, _ *http.Request) {
	ms.mu.Lock()
	status := ms.status
	models := make([]map[string]string, 0, len(ms.models))
	for _, name := range ms.models {
		models = append(models, map[string]string{"name": name, "model": name})
	}
	ms.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"models": models})
}
