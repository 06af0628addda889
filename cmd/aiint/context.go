package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"aiintegration/internal/config"
	"aiintegration/internal/history"
	"aiintegration/internal/logging"
	"aiintegration/internal/services"
	"aiintegration/internal/services/ollama"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, _, err := config.Load(c.configFlagValue())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.ToLower(strings.TrimSpace(*c.logLevelFlag)); level != "" {
				cfg.Logging.Level = level
				if err := cfg.Validate(); err != nil {
					c.configErr = err
					return
				}
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
	})
	return c.config, c.configErr
}

func (c *commandContext) configFlagValue() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

// logger builds a logger that writes console output to the command's stderr.
func (c *commandContext) logger(cmd *cobra.Command) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

func newModelClient(cfg *config.Config) *ollama.Client {
	return ollama.NewClient(ollama.Config{
		BaseURL:        cfg.Ollama.BaseURL,
		Model:          cfg.Ollama.Model,
		TimeoutSeconds: cfg.Ollama.TimeoutSeconds,
	}, ollama.WithRetryMaxAttempts(cfg.Ollama.RetryAttempts))
}

// runContext tags ctx with a fresh request id.
func runContext(cmd *cobra.Command) (context.Context, string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	return services.WithRequestID(ctx, id), id
}

// recordRun stores entry in the run journal. Journal failures are logged and
// never fail the command.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, skip bool, entry history.Entry) *history.Run {
	if skip || cfg == nil || !cfg.History.Enabled {
		return nil
	}
	store, err := history.Open(cfg)
	if err != nil {
		logging.WarnWithContext(logger, "run history unavailable", "history_open_failed",
			logging.Error(err),
			logging.String("path", cfg.History.Path),
			logging.String(logging.FieldImpact, "this run was not saved to history"),
		)
		return nil
	}
	defer store.Close()

	run, err := store.Record(ctx, entry)
	if err != nil {
		logging.WarnWithContext(logger, "failed to record run", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "this run was not saved to history"),
		)
		return nil
	}
	logger.Debug("run recorded", logging.String("run_id", run.ID), logging.String("kind", run.Kind))
	return run
}

func openHistory(cfg *config.Config) (*history.Store, error) {
	if cfg == nil || !cfg.History.Enabled {
		return nil, fmt.Errorf("%w; set history.enabled = true in the config file", history.ErrDisabled)
	}
	store, err := history.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	return store, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
