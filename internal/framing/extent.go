package framing

import (
	"fmt"
	"math"

	"github.com/UnknownOlympus/argus/internal/models"
)

// EarthRadius is the mean radius of the spherical Earth model, in meters.
const EarthRadius = 6371000.0

// ComputeExtent returns the bounding box center of points and the largest
// angular distance from that center to any of them.
//
// The center is the midpoint of the min/max latitude and longitude, not a
// geodesic centroid.
func ComputeExtent(points []models.Point) (models.Extent, error) {
	if len(points) == 0 {
		return models.Extent{}, ErrEmptyInput
	}

	for idx, point := range points {
		if err := validatePoint(point); err != nil {
			return models.Extent{}, fmt.Errorf("point %d: %w", idx, err)
		}
	}

	extent := models.Extent{
		MinLatitude:  points[0].Latitude,
		MaxLatitude:  points[0].Latitude,
		MinLongitude: points[0].Longitude,
		MaxLongitude: points[0].Longitude,
	}

	for _, point := range points[1:] {
		extent.MinLatitude = math.Min(extent.MinLatitude, point.Latitude)
		extent.MaxLatitude = math.Max(extent.MaxLatitude, point.Latitude)
		extent.MinLongitude = math.Min(extent.MinLongitude, point.Longitude)
		extent.MaxLongitude = math.Max(extent.MaxLongitude, point.Longitude)
	}

	extent.CenterLatitude = (extent.MinLatitude + extent.MaxLatitude) / 2
	extent.CenterLongitude = (extent.MinLongitude + extent.MaxLongitude) / 2

	for _, point := range points {
		distance := AngularDistance(
			extent.CenterLatitude, extent.CenterLongitude,
			point.Latitude, point.Longitude,
		)
		extent.AngularDistance = math.Max(extent.AngularDistance, distance)
	}

	return extent, nil
}

// AngularDistance returns the great-circle distance in radians between two
// points given in degrees, using the haversine formula.
func AngularDistance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func validatePoint(point models.Point) error {
	switch {
	case math.IsNaN(point.Latitude) || math.IsNaN(point.Longitude) || math.IsNaN(point.Altitude):
		return fmt.Errorf("%w: NaN value", ErrInvalidPoint)
	case point.Latitude < -90 || point.Latitude > 90:
		return fmt.Errorf("%w: latitude %g", ErrInvalidPoint, point.Latitude)
	case point.Longitude < -180 || point.Longitude > 180:
		return fmt.Errorf("%w: longitude %g", ErrInvalidPoint, point.Longitude)
	}

	return nil
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
