package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aiintegration/internal/dataset"
	"aiintegration/internal/logging"
	"aiintegration/internal/history"
	"aiintegration/internal/route"
)

func newRouteCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var format string
	var constraints []string
	var jsonOutput bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "route",
		Short: "Ask the model to optimize a flight route",
		Long: `Send waypoints and constraints to the model and print the optimized route
with great-circle leg distances.

Without --input the built-in sample route is used. When the model answer is
not valid JSON, "Lat: .., Long: .., Alt: .." lines are scanned instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			logger, err := ctx.logger(cmd)
			if err != nil {
				return err
			}

			req := dataset.SampleRoute()
			if strings.TrimSpace(inputPath) != "" {
				req, err = dataset.LoadRoute(inputPath, format)
				if err != nil {
					return err
				}
			}
			flagConstraints, err := dataset.ParseParams(constraints)
			if err != nil {
				return err
			}
			req.Constraints = dataset.MergeParams(req.Constraints, flagConstraints)

			runCtx, requestID := runContext(cmd)
			result, err := route.New(newModelClient(cfg), logger).Optimize(runCtx, req)
			if err != nil {
				return err
			}

			run := recordRun(runCtx, cfg, logger, noHistory, history.Entry{
				Kind:       history.KindRoute,
				Model:      result.Model,
				Source:     result.Source,
				PointCount: len(result.Points),
				Result:     result,
			})

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			renderRoute(out, result, len(req.Points), logging.IsTerminal(out))
			if run != nil {
				fmt.Fprintf(out, "\nSaved as run %s\n", run.ID)
			} else {
				fmt.Fprintf(out, "\nRequest %s\n", requestID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV or JSON file with latitude/longitude/altitude points")
	cmd.Flags().StringVar(&format, "format", "", "Input format (csv or json); inferred from the extension when empty")
	cmd.Flags().StringArrayVarP(&constraints, "constraint", "k", nil, "Route constraint as key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not save this run to history")
	return cmd
}

func renderRoute(out io.Writer, result route.Result, requested int, colorize bool) {
	columns := []tableColumn{
		{header: "#", align: alignRight},
		{header: "Latitude", align: alignRight},
		{header: "Longitude", align: alignRight},
		{header: "Altitude (m)", align: alignRight},
		{header: "Leg (km)", align: alignRight},
	}
	rows := make([][]string, 0, len(result.Points))
	for i, p := range result.Points {
		leg := ""
		if i > 0 && i-1 < len(result.Legs) {
			leg = formatKilometers(result.Legs[i-1].DistanceMeters)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(p.Latitude, 'f', -1, 64),
			strconv.FormatFloat(p.Longitude, 'f', -1, 64),
			strconv.FormatFloat(p.Altitude, 'f', -1, 64),
			leg,
		})
	}
	footer := []string{"", "", "", "Total", formatKilometers(result.TotalDistanceMeters)}
	fmt.Fprintln(out, renderTable(columns, rows, footer))
	fmt.Fprintln(out, sourceLine(result.Source, colorize))
	kind := statusOK
	if len(result.Points) < requested {
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Points", kind, fmt.Sprintf("%d returned for %d requested", len(result.Points), requested), colorize))
}

func formatKilometers(meters float64) string {
	return strconv.FormatFloat(meters/1000, 'f', 1, 64)
}
