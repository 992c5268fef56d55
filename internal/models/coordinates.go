package models

// Coordinates represents a geographical point defined by its longitude and latitude.
type Coordinates struct {
	Longitude float64 // Longitude of the geographical point.
	Latitude  float64 // Latitude of the geographical point.
}

// Point is a framing input: a geographic position with an optional altitude offset.
type Point struct {
	Latitude  float64 `json:"lat"`      // Latitude in degrees, [-90, 90].
	Longitude float64 `json:"lng"`      // Longitude in degrees, [-180, 180].
	Altitude  float64 `json:"altitude"` // Altitude offset in meters above ground.
}

// Coordinates returns the lat/lng pair of the point without its altitude offset.
func (p Point) Coordinates() Coordinates {
	return Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

// Extent is the bounding box of a point set together with the largest
// great-circle distance (radians) from the box center to any point.
type Extent struct {
	MinLatitude     float64
	MaxLatitude     float64
	MinLongitude    float64
	MaxLongitude    float64
	CenterLatitude  float64
	CenterLongitude float64
	AngularDistance float64
}
