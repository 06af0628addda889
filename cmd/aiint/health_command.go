package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aiintegration/internal/logging"
	"aiintegration/internal/services"
)

const healthTimeout = 10 * time.Second

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the model server is reachable and the model is installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			runCtx, _ := runContext(cmd)
			runCtx = services.WithOperation(runCtx, "health")
			reqCtx, cancel := context.WithTimeout(runCtx, healthTimeout)
			defer cancel()

			client := newModelClient(cfg)
			out := cmd.OutOrStdout()
			colorize := logging.IsTerminal(out)
			fmt.Fprintln(out, renderStatusLine("Server", statusInfo, client.BaseURL(), false))

			health, err := client.HealthCheck(reqCtx)
			if err != nil {
				fmt.Fprintln(out, renderStatusLine("Reachable", statusError, "no", colorize))
				logger.Debug("health check failed", logging.Error(err))
				return fmt.Errorf("model server health check failed: %w", err)
			}
			fmt.Fprintln(out, renderStatusLine("Reachable", statusOK, "yes", colorize))

			if !health.ModelAvailable {
				installed := "none"
				if len(health.Models) > 0 {
					installed = strings.Join(health.Models, ", ")
				}
				fmt.Fprintln(out, renderStatusLine("Model", statusWarn, client.Model()+" not installed", colorize))
				fmt.Fprintln(out, renderStatusLine("Installed", statusInfo, installed, false))
				return fmt.Errorf("model %q is not installed; run `ollama pull %s`", client.Model(), client.Model())
			}
			fmt.Fprintln(out, renderStatusLine("Model", statusOK, client.Model(), colorize))
			return nil
		},
	}
}
