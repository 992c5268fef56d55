package framing

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/argus/internal/models"
)

// Errors returned by the framing engine. They are caller errors: the request
// cannot be framed and nothing is retried.
var (
	ErrEmptyInput     = errors.New("no points to frame")
	ErrInvalidPadding = errors.New("padding leaves no visible viewport")
	ErrInvalidPoint   = errors.New("point coordinates out of range")
	ErrInvalidHeading = errors.New("heading must be a finite number")
)

// InvalidPaddingError carries the padding that was rejected and the visible
// fractions it would leave. It matches ErrInvalidPadding with errors.Is.
type InvalidPaddingError struct {
	Padding       models.Padding
	VisibleWidth  float64
	VisibleHeight float64
}

func (e *InvalidPaddingError) Error() string {
	return fmt.Sprintf(
		"%s: padding (top=%g, right=%g, bottom=%g, left=%g) leaves visible width %g and height %g",
		ErrInvalidPadding,
		e.Padding.Top, e.Padding.Right, e.Padding.Bottom, e.Padding.Left,
		e.VisibleWidth, e.VisibleHeight,
	)
}

// Is reports whether target is ErrInvalidPadding.
func (e *InvalidPaddingError) Is(target error) bool {
	return target == ErrInvalidPadding
}
