package elevation

import (
	"context"

	"github.com/UnknownOlympus/argus/internal/models"
)

// Provider is an interface that defines a method for looking up ground elevation.
// The Elevation method takes a context and a coordinate pair as input,
// and returns the ground elevation in meters and an error if any occurs.
type Provider interface {
	Elevation(ctx context.Context, coords models.Coordinates) (float64, error)
}
