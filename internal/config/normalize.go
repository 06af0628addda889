package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeOllama()
	c.normalizeDetection()
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

// applyEnvironment lets OLLAMA_HOST and OLLAMA_MODEL replace the built-in
// defaults. It runs before the file is decoded so keys set in the file win.
func (c *Config) applyEnvironment() {
	if value, ok := os.LookupEnv("OLLAMA_HOST"); ok && strings.TrimSpace(value) != "" {
		c.Ollama.BaseURL = normalizeHost(value)
	}
	if value, ok := os.LookupEnv("OLLAMA_MODEL"); ok && strings.TrimSpace(value) != "" {
		c.Ollama.Model = strings.TrimSpace(value)
	}
}

func (c *Config) normalizeOllama() {
	c.Ollama.BaseURL = strings.TrimSpace(c.Ollama.BaseURL)
	if c.Ollama.BaseURL == "" {
		if value, ok := os.LookupEnv("OLLAMA_HOST"); ok && strings.TrimSpace(value) != "" {
			c.Ollama.BaseURL = normalizeHost(value)
		} else {
			c.Ollama.BaseURL = defaultOllamaBaseURL
		}
	}
	c.Ollama.BaseURL = strings.TrimRight(c.Ollama.BaseURL, "/")
	c.Ollama.Model = strings.TrimSpace(c.Ollama.Model)
	if c.Ollama.Model == "" {
		if value, ok := os.LookupEnv("OLLAMA_MODEL"); ok && strings.TrimSpace(value) != "" {
			c.Ollama.Model = strings.TrimSpace(value)
		} else {
			c.Ollama.Model = defaultOllamaModel
		}
	}
	if c.Ollama.TimeoutSeconds == 0 {
		c.Ollama.TimeoutSeconds = defaultOllamaTimeoutSeconds
	}
	if c.Ollama.RetryAttempts == 0 {
		c.Ollama.RetryAttempts = defaultOllamaRetryAttempts
	}
}

// normalizeHost accepts OLLAMA_HOST values such as "127.0.0.1:11434" that omit
// the scheme.
func normalizeHost(value string) string {
	value = strings.TrimSpace(value)
	if strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://") {
		return value
	}
	return "http://" + value
}

func (c *Config) normalizeDetection() {
	if c.Detection.ZThreshold == 0 {
		c.Detection.ZThreshold = defaultZThreshold
	}
	c.Detection.Merge = strings.ToLower(strings.TrimSpace(c.Detection.Merge))
	if c.Detection.Merge == "" {
		c.Detection.Merge = defaultMergeStrategy
	}
}

func (c *Config) normalizeHistory() error {
	var err error
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath
	}
	if c.History.Path, err = expandPath(c.History.Path); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		var err error
		if c.Logging.Dir, err = expandPath(c.Logging.Dir); err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
	}
	return nil
}
