package framing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/UnknownOlympus/argus/internal/elevation"
	"github.com/UnknownOlympus/argus/internal/metrics"
	"github.com/UnknownOlympus/argus/internal/models"
)

// Request is a single framing computation input.
type Request struct {
	Points  []models.Point // Points to frame, at least one.
	Heading float64        // Heading is the camera heading in degrees, passed through.
	Padding models.Padding // Padding is the UI occlusion; zero value frames the full viewport.
}

// Engine computes camera poses. It holds no per-request state and is safe
// for concurrent use.
type Engine struct {
	log          *slog.Logger       // Logger for logging framing activities
	provider     elevation.Provider // Elevation provider for the look-at altitude
	providerName string             // Name of the provider for metrics labeling
	metrics      *metrics.Metrics   // Metrics for tracking elevation lookups
}

// NewEngine creates a new framing Engine backed by the given elevation provider.
func NewEngine(
	log *slog.Logger,
	provider elevation.Provider,
	providerName string,
	metrics *metrics.Metrics,
) *Engine {
	return &Engine{
		log:          log,
		provider:     provider,
		providerName: providerName,
		metrics:      metrics,
	}
}

// Frame computes the camera pose that frames req.Points inside the visible
// part of the viewport. Empty input, bad coordinates, invalid padding and a
// non-finite heading are returned as errors; a failed elevation lookup is not.
func (e *Engine) Frame(ctx context.Context, req Request) (models.CameraPose, error) {
	extent, err := ComputeExtent(req.Points)
	if err != nil {
		e.metrics.FramingRequests.WithLabelValues("invalid").Inc()
		return models.CameraPose{}, err
	}

	viewport, err := ResolvePadding(req.Padding)
	if err != nil {
		e.metrics.FramingRequests.WithLabelValues("invalid").Inc()
		return models.CameraPose{}, err
	}

	if math.IsNaN(req.Heading) || math.IsInf(req.Heading, 0) {
		e.metrics.FramingRequests.WithLabelValues("invalid").Inc()
		return models.CameraPose{}, fmt.Errorf("%w: %g", ErrInvalidHeading, req.Heading)
	}

	pose := SolveCamera(extent, viewport, req.Heading)
	ground := e.groundElevation(ctx, req.Points[0])
	pose.Center.Altitude = averageAltitude(ground, req.Points)

	e.log.DebugContext(ctx, "Framed points",
		"points", len(req.Points),
		"lat", pose.Center.Latitude,
		"lng", pose.Center.Longitude,
		"range", pose.Range,
		"scale", viewport.Scale,
	)
	e.metrics.FramingRequests.WithLabelValues("success").Inc()

	return pose, nil
}

// groundElevation samples the elevation once, at the first point, and
// degrades to sea level when the provider fails.
func (e *Engine) groundElevation(ctx context.Context, point models.Point) float64 {
	startTime := time.Now()
	ground, err := e.provider.Elevation(ctx, point.Coordinates())
	e.metrics.ElevationSeconds.WithLabelValues(e.providerName).Observe(time.Since(startTime).Seconds())

	if err != nil {
		e.metrics.ElevationErrors.Inc()
		level := slog.LevelWarn
		if errors.Is(err, context.Canceled) {
			level = slog.LevelDebug
		}
		e.log.Log(ctx, level, "Elevation lookup failed, using sea level",
			"provider", e.providerName,
			"lat", point.Latitude,
			"lng", point.Longitude,
			"error", err,
		)

		return 0
	}

	return ground
}

// averageAltitude applies the single ground sample to every point and
// averages the resulting altitudes.
func averageAltitude(ground float64, points []models.Point) float64 {
	var total float64
	for _, point := range points {
		total += ground + point.Altitude
	}

	return total / float64(len(points))
}
