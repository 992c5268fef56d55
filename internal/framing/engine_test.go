package framing_test

import (
	"context"
	"log/slog"
	"math"
	"testing"

	"github.com/UnknownOlympus/argus/internal/framing"
	"github.com/UnknownOlympus/argus/internal/metrics"
	"github.com/UnknownOlympus/argus/internal/models"
	"github.com/UnknownOlympus/argus/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) (*framing.Engine, *mocks.Provider, *metrics.Metrics) {
	t.Helper()

	provider := mocks.NewProvider(t)
	appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

	return framing.NewEngine(slog.Default(), provider, "mock", appMetrics), provider, appMetrics
}

func TestEngine_Frame(t *testing.T) {
	ctx := t.Context()

	t.Run("empty input fails before elevation lookup", func(t *testing.T) {
		engine, _, appMetrics := newEngine(t)

		_, err := engine.Frame(ctx, framing.Request{})

		require.ErrorIs(t, err, framing.ErrEmptyInput)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.FramingRequests.WithLabelValues("invalid")), 0)
	})

	t.Run("invalid padding fails before elevation lookup", func(t *testing.T) {
		engine, _, _ := newEngine(t)

		_, err := engine.Frame(ctx, framing.Request{
			Points:  unitBox,
			Padding: models.Padding{Left: 0.6, Right: 0.5},
		})

		require.ErrorIs(t, err, framing.ErrInvalidPadding)
	})

	t.Run("non-finite heading fails before elevation lookup", func(t *testing.T) {
		engine, _, appMetrics := newEngine(t)

		for _, heading := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
			_, err := engine.Frame(ctx, framing.Request{
				Points:  unitBox,
				Heading: heading,
				Padding: models.DesktopPadding,
			})

			require.ErrorIs(t, err, framing.ErrInvalidHeading)
		}
		assert.InDelta(t, 3, testutil.ToFloat64(appMetrics.FramingRequests.WithLabelValues("invalid")), 0)
	})

	t.Run("single point", func(t *testing.T) {
		engine, provider, _ := newEngine(t)
		point := models.Point{Latitude: 45.8326, Longitude: 6.8652}

		provider.On("Elevation", ctx, point.Coordinates()).Return(4805.0, nil).Once()

		pose, err := engine.Frame(ctx, framing.Request{Points: []models.Point{point}})

		require.NoError(t, err)
		assert.InDelta(t, point.Latitude, pose.Center.Latitude, 1e-12)
		assert.InDelta(t, point.Longitude, pose.Center.Longitude, 1e-12)
		assert.InDelta(t, 4805, pose.Center.Altitude, 1e-9)
		assert.InDelta(t, framing.MinRange, pose.Range, 0)
		assert.InDelta(t, framing.Tilt, pose.Tilt, 0)
	})

	t.Run("elevation sampled once at the first point", func(t *testing.T) {
		engine, provider, _ := newEngine(t)
		points := []models.Point{
			{Latitude: 0.5, Longitude: 0.5, Altitude: 10},
			{Latitude: -0.5, Longitude: -0.5, Altitude: 30},
		}

		provider.On("Elevation", ctx, points[0].Coordinates()).Return(100.0, nil).Once()

		pose, err := engine.Frame(ctx, framing.Request{Points: points, Heading: 42})

		require.NoError(t, err)
		assert.InDelta(t, 120, pose.Center.Altitude, 1e-9)
		assert.InDelta(t, 42, pose.Heading, 0)
		provider.AssertNumberOfCalls(t, "Elevation", 1)
	})

	t.Run("elevation failure falls back to sea level", func(t *testing.T) {
		engine, provider, appMetrics := newEngine(t)
		points := []models.Point{{Latitude: 1, Longitude: 1, Altitude: 4}, {Latitude: 2, Longitude: 2}}

		provider.On("Elevation", ctx, mock.Anything).Return(0.0, assert.AnError).Once()

		pose, err := engine.Frame(ctx, framing.Request{Points: points})

		require.NoError(t, err)
		assert.InDelta(t, 2, pose.Center.Altitude, 1e-9)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.ElevationErrors), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.FramingRequests.WithLabelValues("success")), 0)
	})

	t.Run("canceled lookup still returns a pose", func(t *testing.T) {
		engine, provider, _ := newEngine(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		provider.On("Elevation", cctx, mock.Anything).Return(0.0, context.Canceled).Once()

		pose, err := engine.Frame(cctx, framing.Request{Points: unitBox})

		require.NoError(t, err)
		assert.Zero(t, pose.Center.Altitude)
	})

	t.Run("zero padding matches the unpadded solve", func(t *testing.T) {
		engine, provider, _ := newEngine(t)

		provider.On("Elevation", ctx, mock.Anything).Return(0.0, nil).Once()

		pose, err := engine.Frame(ctx, framing.Request{Points: unitBox, Padding: models.Padding{}})
		require.NoError(t, err)

		extent, err := framing.ComputeExtent(unitBox)
		require.NoError(t, err)
		unpadded := framing.SolveCamera(extent, framing.Viewport{Scale: 1}, 0)

		assert.InDelta(t, unpadded.Center.Latitude, pose.Center.Latitude, 1e-12)
		assert.InDelta(t, unpadded.Center.Longitude, pose.Center.Longitude, 1e-12)
		assert.InDelta(t, unpadded.Range, pose.Range, 1e-9)
		assert.InDelta(t, unpadded.Tilt, pose.Tilt, 0)
	})

	t.Run("desktop padding shifts west and zooms out", func(t *testing.T) {
		engine, provider, _ := newEngine(t)

		provider.On("Elevation", ctx, mock.Anything).Return(0.0, nil).Twice()

		plain, err := engine.Frame(ctx, framing.Request{Points: unitBox})
		require.NoError(t, err)
		desktop, err := engine.Frame(ctx, framing.Request{Points: unitBox, Padding: models.DesktopPadding})
		require.NoError(t, err)

		assert.Less(t, desktop.Center.Longitude, 0.0)
		assert.InDelta(t, 0, desktop.Center.Latitude, 1e-12)
		assert.Greater(t, desktop.Range, plain.Range)
	})
}

func TestEngine_FrameConcurrent(t *testing.T) {
	provider := mocks.NewProvider(t)
	engine := framing.NewEngine(slog.Default(), provider, "mock", metrics.NewMetrics(prometheus.NewRegistry()))

	provider.On("Elevation", mock.Anything, mock.Anything).Return(12.0, nil)

	results := make(chan models.CameraPose, 16)
	for range 16 {
		go func() {
			pose, err := engine.Frame(context.Background(), framing.Request{Points: unitBox, Padding: models.DesktopPadding})
			assert.NoError(t, err)
			results <- pose
		}()
	}

	first := <-results
	for range 15 {
		assert.Equal(t, first, <-results)
	}
}
