package elevation

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of elevation provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents the Google Maps Elevation API.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeOpenElevation represents an Open-Elevation compatible API.
	ProviderTypeOpenElevation ProviderType = "open-elevation"
	// ProviderTypeFlat represents a provider that reports sea level everywhere.
	ProviderTypeFlat ProviderType = "flat"
)

// ProviderConfig holds configuration for creating an elevation provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (used by Google provider)
	BaseURL   string       // Base URL override (used by Open-Elevation provider)
	RateLimit int          // Rate limit for requests per second
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates an elevation provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Maps Elevation API (requires API key)
// - "open-elevation": Open-Elevation API, public or self-hosted (no API key)
// - "flat": constant zero elevation, for local runs without a backend
//
// Returns an error if the provider type is unsupported or if provider creation fails.
func NewProvider(config ProviderConfig) (Provider, error) {
	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeOpenElevation:
		return newOpenElevationProvider(config)
	case ProviderTypeFlat:
		return NewFlatProvider(), nil
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

// newGoogleProvider creates a Google Maps elevation provider.
func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(config.APIKey),
	}

	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, config.Logger), nil
}

// newOpenElevationProvider creates an Open-Elevation provider.
func newOpenElevationProvider(config ProviderConfig) (Provider, error) {
	if config.RateLimit == 0 {
		config.RateLimit = 1
		config.Logger.Warn("Rate limit for Open-Elevation API not set, set a default value", "value", config.RateLimit)
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = OpenElevationBaseURL
	}

	return NewOpenElevationProvider(baseURL, config.RateLimit, config.Logger), nil
}
