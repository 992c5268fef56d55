package elevation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/argus/internal/models"
	"golang.org/x/time/rate"
)

// OpenElevationBaseURL -- public Open-Elevation lookup endpoint.
const OpenElevationBaseURL = "https://api.open-elevation.com/api/v1/lookup"

// OpenElevationProvider looks up ground elevation using an Open-Elevation compatible API.
// The public instance is rate limited; self-hosted instances can be set with a base URL.
type OpenElevationProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the lookup endpoint
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Rate limiter
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// openElevationResponse represents the JSON response from the lookup endpoint.
type openElevationResponse struct {
	Results []struct {
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// Common errors for Open-Elevation provider.
var (
	ErrOpenElevationEmptyResponse = errors.New("open-elevation API returned empty response")
	ErrOpenElevationRateLimited   = errors.New("open-elevation API rate limit exceeded")
)

// NewOpenElevationProvider creates a new Open-Elevation provider.
func NewOpenElevationProvider(baseURL string, rateLimit int, log *slog.Logger) *OpenElevationProvider {
	const timeout = 10

	return &OpenElevationProvider{
		client: &http.Client{
			Timeout: timeout * time.Second,
		},
		baseURL: baseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
	}
}

// NewOpenElevationProviderWithClient allows injecting custom HTTP client.
func NewOpenElevationProviderWithClient(
	client HTTPClient,
	baseURL string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *OpenElevationProvider {
	return &OpenElevationProvider{
		client:  client,
		baseURL: baseURL,
		log:     log,
		limiter: limiter,
	}
}

// Elevation returns the ground elevation in meters at coords.
func (op *OpenElevationProvider) Elevation(ctx context.Context, coords models.Coordinates) (float64, error) {
	if err := op.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit exceeded: %w", err)
	}

	op.log.DebugContext(ctx, "Elevation lookup using Open-Elevation", "lat", coords.Latitude, "lng", coords.Longitude)

	reqURL, err := url.Parse(op.baseURL)
	if err != nil {
		return 0, fmt.Errorf("failed to parse base URL: %w", err)
	}

	query := reqURL.Query()
	query.Set("locations", strconv.FormatFloat(coords.Latitude, 'f', -1, 64)+","+
		strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute elevation request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// continue
	case http.StatusTooManyRequests:
		return 0, ErrOpenElevationRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		op.log.ErrorContext(ctx, "Open-Elevation API error", "status", resp.StatusCode, "body", string(body))
		return 0, fmt.Errorf("open-elevation API returned status %d: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("failed to read response body: %w", err)
	}

	var result openElevationResponse
	if err = json.Unmarshal(body, &result); err != nil {
		op.log.ErrorContext(ctx, "Failed to parse Open-Elevation response", "error", err, "body", string(body))
		return 0, fmt.Errorf("failed to decode open-elevation response: %w", err)
	}

	if len(result.Results) == 0 || result.Results[0].Elevation == nil {
		return 0, ErrOpenElevationEmptyResponse
	}

	elevation := *result.Results[0].Elevation
	op.log.DebugContext(ctx, "Open-Elevation found result", "lat", coords.Latitude, "lng", coords.Longitude,
		"elevation", elevation)

	return elevation, nil
}
