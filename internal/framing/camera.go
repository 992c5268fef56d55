package framing

import (
	"math"

	"github.com/UnknownOlympus/argus/internal/models"
)

const (
	// Tilt is the fixed camera tilt, in degrees from nadir.
	Tilt = 60.0
	// MinRange is the smallest slant range returned, in meters. It applies to
	// a single point or to points so close together that the framed distance
	// collapses.
	MinRange = 500.0
	// MetersPerDegree approximates the length of one degree of latitude.
	MetersPerDegree = 111000.0

	// contentMargin frames the diameter of the extent instead of its radius.
	contentMargin = 2.0
	// minCosLatitude keeps the longitude correction finite at the poles.
	minCosLatitude = 1e-9
)

// SolveCamera derives the camera pose that frames extent inside the visible
// part of viewport for a camera looking along heading. The returned pose has
// no altitude; the engine fills it from the elevation lookup.
func SolveCamera(extent models.Extent, viewport Viewport, heading float64) models.CameraPose {
	maxDistance := extent.AngularDistance * EarthRadius
	contentHorizontal := maxDistance * contentMargin
	fullHorizontal := contentHorizontal * viewport.Scale

	offsetGeoX := viewport.OffsetX * fullHorizontal
	offsetGeoY := viewport.OffsetY * fullHorizontal

	// Content moved right on screen means the camera moves west; content moved
	// down means the camera moves north.
	shiftEast, shiftNorth := rotate(-offsetGeoX, offsetGeoY, heading)

	shiftLat := shiftNorth / MetersPerDegree
	shiftLng := 0.0
	if cosLat := math.Cos(toRad(extent.CenterLatitude)); math.Abs(cosLat) > minCosLatitude {
		shiftLng = shiftEast / (MetersPerDegree * cosLat)
	}

	verticalDistance := fullHorizontal / math.Tan(toRad(Tilt))
	slantRange := math.Max(math.Hypot(fullHorizontal, verticalDistance), MinRange)

	return models.CameraPose{
		Center: models.CameraCenter{
			Latitude:  clampLatitude(extent.CenterLatitude + shiftLat),
			Longitude: wrapLongitude(extent.CenterLongitude + shiftLng),
		},
		Range:   slantRange,
		Tilt:    Tilt,
		Heading: heading,
	}
}

// rotate turns a screen-aligned vector into east/north components for a
// camera heading given in degrees clockwise from north.
func rotate(x, y, heading float64) (float64, float64) {
	sin, cos := math.Sincos(toRad(heading))

	return x*cos - y*sin, x*sin + y*cos
}

func clampLatitude(lat float64) float64 {
	return math.Max(-90, math.Min(90, lat))
}

func wrapLongitude(lng float64) float64 {
	if lng >= -180 && lng <= 180 {
		return lng
	}

	wrapped := math.Mod(lng+180, 360)
	if wrapped < 0 {
		wrapped += 360
	}

	return wrapped - 180
}
