package route

import (
	"context"
	"log/slog"
	"time"

	"aiintegration/internal/logging"
	"aiintegration/internal/services"
	"aiintegration/internal/services/ollama"
)

const operationName = "route optimization"

type generator interface {
	Generate(ctx context.Context, prompt string) (ollama.Generation, error)
	Model() string
}

// Optimizer sends route requests to the model.
type Optimizer struct {
	client generator
	logger *slog.Logger
}

// New constructs an Optimizer around client.
func New(client generator, logger *slog.Logger) *Optimizer {
	return &Optimizer{
		client: client,
		logger: logging.NewComponentLogger(logger, "route"),
	}
}

// Optimize asks the model for an optimized ordering of req.Points. The only
// error it returns is a transport failure wrapped as "route optimization
// failed"; undecodable output degrades to line scanning.
func (o *Optimizer) Optimize(ctx context.Context, req Request) (Result, error) {
	var empty Result
	if o == nil || o.client == nil {
		return empty, services.Failed(operationName, services.Wrap(services.ErrConfiguration, "route", "model client unavailable", nil))
	}
	ctx = services.WithOperation(ctx, "route")
	logger := logging.WithContext(ctx, o.logger)

	started := time.Now()
	logger.Info("route optimization started",
		logging.String("model", o.client.Model()),
		logging.Int("point_count", len(req.Points)),
		logging.Int("constraint_count", len(req.Constraints)),
	)

	generation, err := o.client.Generate(ctx, BuildPrompt(req))
	if err != nil {
		logging.ErrorWithContext(logger, "route optimization request failed", "model_request_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check that the model server is running and the model is installed"),
		)
		return empty, services.Failed(operationName, err)
	}

	result := Result{
		SchemaVersion: services.SchemaVersion,
		Model:         firstNonEmpty(generation.Model, o.client.Model()),
		Source:        services.SourceModel,
	}
	points, decodeErr := decodeStrict(generation.Response)
	if decodeErr != nil {
		points = parseFallback(generation.Response)
		result.Source = services.SourceFallback
		logging.WarnWithContext(logger, "model route not decodable; scanned text lines instead", "route_fallback",
			logging.Error(decodeErr),
			logging.Int("fallback_points", len(points)),
			logging.String("response_snippet", ollama.SummarizePayload(generation.Response)),
			logging.String(logging.FieldErrorHint, "try a larger model or inspect the raw response"),
			logging.String(logging.FieldImpact, "route points come from text scanning and may be incomplete"),
		)
		logger.Debug("raw model response", logging.Int("body_bytes", len(generation.Body)), logging.String("body", string(generation.Body)))
	}
	if points == nil {
		points = []Point{}
	}
	result.Points = points
	result.Legs, result.TotalDistanceMeters = Legs(points)
	if result.Legs == nil {
		result.Legs = []Leg{}
	}

	logger.Info("route optimization completed",
		logging.String("source", result.Source),
		logging.Int("returned_points", len(result.Points)),
		logging.Float64("total_distance_m", result.TotalDistanceMeters),
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
