package models

// CameraCenter is the look-at target of the camera.
type CameraCenter struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	Altitude  float64 `json:"altitude"` // Altitude in meters.
}

// CameraPose is the framing result used to drive a camera animation.
type CameraPose struct {
	Center  CameraCenter `json:"center"`
	Range   float64      `json:"range"`   // Camera-to-center slant distance in meters.
	Tilt    float64      `json:"tilt"`    // Degrees from nadir.
	Heading float64      `json:"heading"` // Degrees clockwise from north.
	Roll    float64      `json:"roll"`    // Always 0, carried for camera animation callers.
}
