package actuator

import "errors"

var (
	// ErrBadElement indicates a present slot with an axis index outside the
	// global range or a zero output ceiling.
	ErrBadElement = errors.New("actuator: invalid element configuration")

	// ErrBadStrength indicates a strength percentage outside [0, 100].
	ErrBadStrength = errors.New("actuator: strength percentage out of range")
)
