package outliers

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"aiintegration/internal/config"
	"aiintegration/internal/logging"
	"aiintegration/internal/services"
	"aiintegration/internal/services/ollama"
)

const (
	operationName     = "outlier detection"
	defaultZThreshold = 3.0
)

type generator interface {
	Generate(ctx context.Context, prompt string) (ollama.Generation, error)
	Model() string
}

// Detector labels outliers through the model with a z-score fallback.
type Detector struct {
	client     generator
	logger     *slog.Logger
	zThreshold float64
	merge      string
}

// New constructs a Detector. A nil cfg uses the default threshold and merge
// strategy.
func New(cfg *config.Config, client generator, logger *slog.Logger) *Detector {
	d := &Detector{
		client:     client,
		logger:     logging.NewComponentLogger(logger, "outliers"),
		zThreshold: defaultZThreshold,
		merge:      config.MergeTimestamp,
	}
	if cfg != nil {
		if z := cfg.Detection.ZThreshold; z > 0 && !math.IsInf(z, 0) {
			d.zThreshold = z
		}
		if m := strings.ToLower(strings.TrimSpace(cfg.Detection.Merge)); m == config.MergePosition {
			d.merge = m
		}
	}
	return d
}

// Detect annotates a copy of points. It fails only when the model cannot be
// reached or answers with a non-2xx status, in which case no result is
// returned.
func (d *Detector) Detect(ctx context.Context, points []Point, params map[string]any) (Result, error) {
	var empty Result
	if d == nil || d.client == nil {
		return empty, services.Failed(operationName, services.Wrap(services.ErrConfiguration, "outliers", "model client unavailable", nil))
	}
	ctx = services.WithOperation(ctx, "detect")
	logger := logging.WithContext(ctx, d.logger)

	started := time.Now()
	logger.Info("outlier detection started",
		logging.String("model", d.client.Model()),
		logging.Int("point_count", len(points)),
		logging.Int("parameter_count", len(params)),
	)

	generation, err := d.client.Generate(ctx, BuildPrompt(points, params))
	if err != nil {
		logging.ErrorWithContext(logger, "outlier detection request failed", "model_request_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the model server is running and the model is installed"),
		)
		return empty, services.Failed(operationName, err)
	}

	annotated := make([]Point, len(points))
	copy(annotated, points)
	result := Result{
		SchemaVersion: services.SchemaVersion,
		Model:         firstNonEmpty(generation.Model, d.client.Model()),
		Source:        services.SourceModel,
		Points:        annotated,
	}

	payload, decodeErr := decodeStrict(generation.Response)
	if decodeErr == nil {
		result.Merge = merge(annotated, payload.Points, d.merge)
		result.Summary = strings.TrimSpace(payload.Summary)
		if result.Merge != d.merge {
			logger.Debug("timestamp merge not possible; merged by position",
				logging.Int("model_points", len(payload.Points)),
				logging.Int("input_points", len(points)),
			)
		}
		if len(payload.Points) < len(points) {
			logging.WarnWithContext(logger, "model answered fewer points than were sent", "partial_model_answer",
				logging.Int("model_points", len(payload.Points)),
				logging.Int("input_points", len(points)),
				logging.String(logging.FieldImpact, "unanswered points keep their original outlier fields"),
			)
		}
	} else {
		scoreFallback(annotated, d.zThreshold)
		result.Source = services.SourceFallback
		result.Summary = fallbackSummary
		logging.WarnWithContext(logger, "model answer not decodable; scored points by z-score", "detection_fallback",
			logging.Error(decodeErr),
			logging.Float64("z_threshold", d.zThreshold),
			logging.String("response_snippet", ollama.SummarizePayload(generation.Response)),
			logging.String(logging.FieldErrorHint, "try a larger model or inspect the raw response"),
			logging.String(logging.FieldImpact, "scores come from z-score statistics instead of the model"),
		)
		logger.Debug("raw model response", logging.Int("body_bytes", len(generation.Body)), logging.String("body", string(generation.Body)))
	}
	result.Statistics = computeStatistics(annotated)

	logger.Info("outlier detection completed",
		logging.String("source", result.Source),
		logging.Int("outlier_count", result.Statistics.OutlierCount),
		logging.Duration("duration", time.Since(started)),
	)
	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
