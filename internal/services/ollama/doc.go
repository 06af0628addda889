// Package ollama provides a client for an Ollama-compatible text generation
// server.
//
// This package is used by:
//   - route: ask the model for an optimized flight route
//   - outliers: ask the model to label and score time-series points
//
// # Wire Contract
//
// Generate issues POST {base_url}/api/generate with {"model","prompt","stream":false}
// and returns the generated text from the "response" field. Any non-2xx status
// is returned as a *StatusError. HealthCheck issues GET {base_url}/api/tags.
//
// # Retry Behaviour
//
// By default a single attempt is made. With WithRetryMaxAttempts > 1 the client
// retries on HTTP 408/429/5xx and network timeouts with exponential backoff
// (base 1s, max 10s). Context cancellation aborts retries immediately.
//
// # Decoding
//
// DecodeJSON extracts a JSON payload from generated text, tolerating code
// fences and prose around the object or array. Callers treat decode failures
// as a signal to run their fallback parser, never as a hard error.
package ollama
