package direction

import "errors"

var (
	// ErrAxisCount indicates an axis count outside 1..units.MaxAxes.
	ErrAxisCount = errors.New("direction: axis count out of range")

	// ErrCoordCount indicates a coordinate slice whose length does not match
	// the vector's axis count.
	ErrCoordCount = errors.New("direction: coordinate count mismatch")

	// ErrAngleRange indicates an angle outside [0, units.MaxAngle].
	ErrAngleRange = errors.New("direction: angle out of range")

	// ErrPolarAxes indicates a polar operation on a vector that is not
	// two-axis.
	ErrPolarAxes = errors.New("direction: polar coordinates require exactly two axes")
)
