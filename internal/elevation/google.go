package elevation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/argus/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleProvider looks up ground elevation with the Google Maps Elevation API.
type GoogleProvider struct {
	client GoogleAPIClient // client is the Google Maps API client
	log    *slog.Logger    // log is the logger for logging operations
}

type GoogleAPIClient interface {
	Elevation(ctx context.Context, r *maps.ElevationRequest) ([]maps.ElevationResult, error)
}

// ErrEmptyResponse is returned when the Google Maps API responds with an empty result.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider initializes a new GoogleProvider with the given client and logger.
func NewGoogleProvider(client GoogleAPIClient, log *slog.Logger) *GoogleProvider {
	return &GoogleProvider{client: client, log: log}
}

// Elevation returns the ground elevation in meters at coords using the Google Maps Elevation API.
func (gp *GoogleProvider) Elevation(ctx context.Context, coords models.Coordinates) (float64, error) {
	gp.log.DebugContext(ctx, "Elevation lookup using Google Maps", "lat", coords.Latitude, "lng", coords.Longitude)

	req := maps.ElevationRequest{
		Locations: []maps.LatLng{{Lat: coords.Latitude, Lng: coords.Longitude}},
	}
	results, err := gp.client.Elevation(ctx, &req)
	if err != nil {
		return 0, fmt.Errorf("failed to look up elevation: %w", err)
	}

	if len(results) == 0 {
		return 0, ErrEmptyResponse
	}

	return results[0].Elevation, nil
}
