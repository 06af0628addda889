package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOllama(); err != nil {
		return err
	}
	if err := c.validateDetection(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateOllama() error {
	parsed, err := url.Parse(c.Ollama.BaseURL)
	if err != nil {
		return fmt.Errorf("ollama.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("ollama.base_url must use http or https, got %q", c.Ollama.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("ollama.base_url must include a host, got %q", c.Ollama.BaseURL)
	}
	if c.Ollama.Model == "" {
		return errors.New("ollama.model must be set")
	}
	if c.Ollama.TimeoutSeconds < 0 {
		return fmt.Errorf("ollama.timeout_seconds must be positive, got %d", c.Ollama.TimeoutSeconds)
	}
	if c.Ollama.RetryAttempts < 1 {
		return fmt.Errorf("ollama.retry_attempts must be at least 1, got %d", c.Ollama.RetryAttempts)
	}
	return nil
}

func (c *Config) validateDetection() error {
	if c.Detection.ZThreshold <= 0 || math.IsNaN(c.Detection.ZThreshold) || math.IsInf(c.Detection.ZThreshold, 0) {
		return fmt.Errorf("detection.z_threshold must be a positive number, got %v", c.Detection.ZThreshold)
	}
	switch c.Detection.Merge {
	case MergeTimestamp, MergePosition:
	default:
		return fmt.Errorf("detection.merge must be %q or %q, got %q", MergeTimestamp, MergePosition, c.Detection.Merge)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
