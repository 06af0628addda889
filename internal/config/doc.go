// Package config loads, normalizes, and validates aiintegration configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OLLAMA_HOST and OLLAMA_MODEL. The Config type centralizes every knob the CLI
// needs: model endpoint, detection thresholds, run history, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
