package framing

import (
	"math"

	"github.com/UnknownOlympus/argus/internal/models"
)

// Viewport is the resolved geometry of the visible (unoccluded) viewport.
type Viewport struct {
	VisibleWidth  float64 // Fraction of the viewport width left visible.
	VisibleHeight float64 // Fraction of the viewport height left visible.
	// Scale inflates the ground distance so content sized for the full
	// viewport fits into the visible part.
	Scale float64
	// OffsetX and OffsetY locate the visible center relative to the full
	// viewport center, as fractions of the viewport. +X is right, +Y is down.
	OffsetX float64
	OffsetY float64
}

// ResolvePadding turns a four-sided padding into a scale factor and the
// normalized offset of the visible region's center.
func ResolvePadding(padding models.Padding) (Viewport, error) {
	viewport := Viewport{
		VisibleWidth:  1 - padding.Left - padding.Right,
		VisibleHeight: 1 - padding.Top - padding.Bottom,
	}

	if !validSide(padding.Top) || !validSide(padding.Right) ||
		!validSide(padding.Bottom) || !validSide(padding.Left) ||
		viewport.VisibleWidth <= 0 || viewport.VisibleHeight <= 0 {
		return Viewport{}, &InvalidPaddingError{
			Padding:       padding,
			VisibleWidth:  viewport.VisibleWidth,
			VisibleHeight: viewport.VisibleHeight,
		}
	}

	viewport.Scale = math.Max(1/viewport.VisibleWidth, 1/viewport.VisibleHeight)
	viewport.OffsetX = (padding.Left - padding.Right) / 2
	viewport.OffsetY = (padding.Top - padding.Bottom) / 2

	return viewport, nil
}

func validSide(value float64) bool {
	return value >= 0 && value < 1
}
