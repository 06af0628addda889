package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"aiintegration/internal/dataset"
	"aiintegration/internal/logging"
	"aiintegration/internal/history"
	"aiintegration/internal/outliers"
)

func newDetectCommand(ctx *commandContext) *cobra.Command {
	var inputPath string
	var format string
	var params []string
	var jsonOutput bool
	var noHistory bool

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Label outliers in a time series",
		Long: `Send a time series to the model and print each point with its outlier
flag, anomaly score and explanation.

Without --input the built-in sample series is used. When the model answer is
not valid JSON the points are scored with a z-score fallback instead.`,
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

			series := dataset.SampleSeries(time.Now())
			if strings.TrimSpace(inputPath) != "" {
				series, err = dataset.LoadSeries(inputPath, format)
				if err != nil {
					return err
				}
			}
			flagParams, err := dataset.ParseParams(params)
			if err != nil {
				return err
			}

			runCtx, requestID := runContext(cmd)
			detector := outliers.New(cfg, newModelClient(cfg), logger)
			result, err := detector.Detect(runCtx, series.Points, dataset.MergeParams(series.Parameters, flagParams))
			if err != nil {
				return err
			}

			run := recordRun(runCtx, cfg, logger, noHistory, history.Entry{
				Kind:         history.KindDetect,
				Model:        result.Model,
				Source:       result.Source,
				PointCount:   len(result.Points),
				OutlierCount: result.Statistics.OutlierCount,
				Result:       result,
			})

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			renderDetection(out, result, logging.IsTerminal(out))
			if run != nil {
				fmt.Fprintf(out, "\nSaved as run %s\n", run.ID)
			} else {
				fmt.Fprintf(out, "\nRequest %s\n", requestID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "CSV or JSON file with timestamp/value points")
	cmd.Flags().StringVar(&format, "format", "", "Input format (csv or json); inferred from the extension when empty")
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Extra prompt parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not save this run to history")
	return cmd
}

func renderDetection(out io.Writer, result outliers.Result, colorize bool) {
	columns := []tableColumn{
		{header: "#", align: alignRight},
		{header: "Timestamp"},
		{header: "Value", align: alignRight},
		{header: "Outlier"},
		{header: "Score", align: alignRight},
		{header: "Explanation"},
	}
	rows := make([][]string, 0, len(result.Points))
	for i, p := range result.Points {
		flag := yesNo(p.IsOutlier)
		if p.IsOutlier {
			flag = highlight(flag, ansiRed, colorize)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Timestamp,
			strconv.FormatFloat(p.Value, 'g', -1, 64),
			flag,
			fmt.Sprintf("%.2f", p.AnomalyScore),
			p.Explanation,
		})
	}
	fmt.Fprintln(out, renderTable(columns, rows, nil))
	fmt.Fprintln(out, sourceLine(result.Source, colorize))
	if summary := strings.TrimSpace(result.Summary); summary != "" {
		fmt.Fprintln(out, renderStatusLine("Summary", statusInfo, summary, false))
	}
	st := result.Statistics
	fmt.Fprintln(out, renderStatusLine("Statistics", statusInfo,
		fmt.Sprintf("mean %.2f, std dev %.2f, %d outlier(s)", st.Mean, st.StdDev, st.OutlierCount), false))
}
