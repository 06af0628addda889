package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"aiintegration/internal/logging"
)

const defaultHistoryLimit = 20

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect saved detect and route runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newHistoryListCommand(ctx))
	cmd.AddCommand(newHistoryShowCommand(ctx))
	return cmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					return writeJSON(cmd, []any{})
				}
				return writeJSON(cmd, runs)
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintf(out, "No runs recorded in %s\n", store.Path())
				return nil
			}
			columns := []tableColumn{
				{header: "ID"},
				{header: "Kind"},
				{header: "Source"},
				{header: "Model"},
				{header: "Points", align: alignRight},
				{header: "Outliers", align: alignRight},
				{header: "Created"},
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.Kind,
					run.Source,
					run.Model,
					strconv.Itoa(run.PointCount),
					strconv.Itoa(run.OutlierCount),
					run.CreatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable(columns, rows, nil))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", defaultHistoryLimit, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a saved run and its full result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			store, err := openHistory(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			if jsonOutput {
				return writeJSON(cmd, run)
			}

			out := cmd.OutOrStdout()
			colorize := logging.IsTerminal(out)
			fmt.Fprintln(out, renderStatusLine("Run", statusInfo, run.ID, false))
			fmt.Fprintln(out, renderStatusLine("Kind", statusInfo, run.Kind, false))
			fmt.Fprintln(out, renderStatusLine("Model", statusInfo, run.Model, false))
			fmt.Fprintln(out, sourceLine(run.Source, colorize))
			fmt.Fprintln(out, renderStatusLine("Created", statusInfo, run.CreatedAt.Local().Format(time.DateTime), false))
			fmt.Fprintln(out, renderStatusLine("Schema", statusInfo, "v"+strconv.Itoa(run.SchemaVersion), false))

			var buf bytes.Buffer
			if err := json.Indent(&buf, run.Result, "", "  "); err != nil {
				return fmt.Errorf("format stored result: %w", err)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, buf.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the run as JSON")
	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
