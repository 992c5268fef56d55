package elevation

import (
	"context"

	"github.com/UnknownOlympus/argus/internal/models"
)

// FlatProvider reports sea level for every location.
type FlatProvider struct{}

// NewFlatProvider creates a provider that always returns zero elevation.
func NewFlatProvider() *FlatProvider {
	return &FlatProvider{}
}

// Elevation always returns 0.
func (FlatProvider) Elevation(_ context.Context, _ models.Coordinates) (float64, error) {
	return 0, nil
}
