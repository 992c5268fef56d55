package models

// FramingJob represents a queued framing request with an ID and its inputs.
type FramingJob struct {
	ID      int     // ID is the unique identifier for the job.
	Points  []Point // Points is the set of locations to frame.
	Heading float64 // Heading is the current camera heading in degrees.
	Padding Padding // Padding is the UI occlusion of the viewport.
}
