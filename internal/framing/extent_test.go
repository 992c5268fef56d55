package framing_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/argus/internal/framing"
	"github.com/UnknownOlympus/argus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unitBox is a 1°x1° box centered at (0,0).
var unitBox = []models.Point{
	{Latitude: 0.5, Longitude: 0.5},
	{Latitude: 0.5, Longitude: -0.5},
	{Latitude: -0.5, Longitude: 0.5},
	{Latitude: -0.5, Longitude: -0.5},
}

func TestComputeExtent(t *testing.T) {
	t.Parallel()

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		_, err := framing.ComputeExtent(nil)

		require.ErrorIs(t, err, framing.ErrEmptyInput)
	})

	t.Run("single point has zero extent", func(t *testing.T) {
		t.Parallel()

		extent, err := framing.ComputeExtent([]models.Point{{Latitude: 46.5, Longitude: 7.9}})

		require.NoError(t, err)
		assert.InDelta(t, 46.5, extent.CenterLatitude, 1e-12)
		assert.InDelta(t, 7.9, extent.CenterLongitude, 1e-12)
		assert.Zero(t, extent.AngularDistance)
	})

	t.Run("box center is the midpoint of min and max", func(t *testing.T) {
		t.Parallel()

		points := []models.Point{
			{Latitude: 10, Longitude: 20},
			{Latitude: 11, Longitude: 20},
			{Latitude: 10.2, Longitude: 24},
		}

		extent, err := framing.ComputeExtent(points)

		require.NoError(t, err)
		assert.InDelta(t, 10.5, extent.CenterLatitude, 1e-12)
		assert.InDelta(t, 22, extent.CenterLongitude, 1e-12)
		assert.InDelta(t, 10, extent.MinLatitude, 0)
		assert.InDelta(t, 11, extent.MaxLatitude, 0)
		assert.InDelta(t, 20, extent.MinLongitude, 0)
		assert.InDelta(t, 24, extent.MaxLongitude, 0)
	})

	t.Run("angular distance reaches the farthest corner", func(t *testing.T) {
		t.Parallel()

		extent, err := framing.ComputeExtent(unitBox)

		require.NoError(t, err)
		assert.InDelta(t, 0, extent.CenterLatitude, 1e-12)
		assert.InDelta(t, 0, extent.CenterLongitude, 1e-12)
		assert.InDelta(t, 0.012341263173265508, extent.AngularDistance, 1e-12)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		t.Parallel()

		cases := map[string]models.Point{
			"latitude above 90":    {Latitude: 91, Longitude: 0},
			"latitude below -90":   {Latitude: -90.5, Longitude: 0},
			"longitude above 180":  {Latitude: 0, Longitude: 180.1},
			"longitude below -180": {Latitude: 0, Longitude: -181},
			"NaN latitude":         {Latitude: math.NaN(), Longitude: 0},
		}

		for name, point := range cases {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				_, err := framing.ComputeExtent([]models.Point{{Latitude: 1, Longitude: 1}, point})

				require.ErrorIs(t, err, framing.ErrInvalidPoint)
				assert.Contains(t, err.Error(), "point 1")
			})
		}
	})
}

func TestAngularDistance(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Pi/180, framing.AngularDistance(0, 0, 0, 1), 1e-12)
	assert.InDelta(t, math.Pi, framing.AngularDistance(0, 0, 0, 180), 1e-12)
	assert.Zero(t, framing.AngularDistance(12.3, 45.6, 12.3, 45.6))

	// London to New York is about 5,575 km on the sphere.
	meters := framing.AngularDistance(51.5007, -0.1246, 40.6892, -74.0445) * framing.EarthRadius
	assert.InDelta(t, 5574840, meters, 1)
}
