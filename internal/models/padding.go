package models

import "fmt"

// paddingSides is the number of values in an ordered padding tuple.
const paddingSides = 4

// Padding describes the fraction of each viewport edge covered by UI overlays.
// Each side is in [0, 1); opposite sides must sum to less than 1.
type Padding struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// DesktopPadding is the occlusion of the desktop layout, where the side panel
// covers the left part of the globe.
var DesktopPadding = Padding{Top: 0.05, Right: 0.05, Bottom: 0.05, Left: 0.35}

// PaddingFromSlice builds a Padding from an ordered (top, right, bottom, left) tuple.
func PaddingFromSlice(values []float64) (Padding, error) {
	if len(values) != paddingSides {
		return Padding{}, fmt.Errorf("padding must have %d values (top, right, bottom, left), got %d",
			paddingSides, len(values))
	}

	return Padding{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, nil
}

// Slice returns the padding as an ordered (top, right, bottom, left) tuple.
func (p Padding) Slice() []float64 {
	return []float64{p.Top, p.Right, p.Bottom, p.Left}
}
