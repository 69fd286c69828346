// Package units holds the numeric contract shared by every part of the
// force-feedback engine. The values are part of the compatibility surface
// consumed by the controller-emulation layer and must match exactly.
package units

const (
	// Magnitudes are signed force values.
	MaxMagnitude = 10000
	MinMagnitude = -10000

	// Modifiers (gain, envelope levels, strength scaling) are fractions of
	// MaxMagnitude expressed on a 0..10000 scale.
	MaxModifier = 10000

	// Angles are hundredths of a degree in [0, FullCircle).
	MaxAngle   = 35999
	FullCircle = 36000

	// Upper bound on effects loaded on one device, ready and playing combined.
	MaxEffects = 256

	// One virtual axis per physical actuator slot: two motors plus two
	// impulse triggers.
	MaxAxes      = 4
	NumActuators = 4
)

// ClampMagnitude restricts v to [MinMagnitude, MaxMagnitude].
func ClampMagnitude(v float64) float64 {
	if v > MaxMagnitude {
		return MaxMagnitude
	}
	if v < MinMagnitude {
		return MinMagnitude
	}
	return v
}

// Clamp restricts v to [lo, hi].
func Clamp(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ModifierFraction converts a 0..MaxModifier scalar into a unit fraction.
func ModifierFraction(m uint16) float64 {
	return float64(m) / MaxModifier
}
