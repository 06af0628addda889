package config

const (
	defaultOllamaBaseURL        = "http://localhost:11434"
	defaultOllamaModel          = "llama3.2:1b"
	defaultOllamaTimeoutSeconds = 120
	defaultOllamaRetryAttempts  = 1
	defaultZThreshold           = 3.0
	defaultMergeStrategy        = MergeTimestamp
	defaultHistoryPath          = "~/.local/share/aiintegration/history.db"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Merge strategies accepted by detection.merge.
const (
	MergeTimestamp = "timestamp"
	MergePosition  = "position"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Ollama: Ollama{
			BaseURL:        defaultOllamaBaseURL,
			Model:          defaultOllamaModel,
			TimeoutSeconds: defaultOllamaTimeoutSeconds,
			RetryAttempts:  defaultOllamaRetryAttempts,
		},
		Detection: Detection{
			ZThreshold: defaultZThreshold,
			Merge:      defaultMergeStrategy,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
