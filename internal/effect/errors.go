package effect

import "errors"

var (
	// ErrOutOfRange indicates a parameter value outside its allowed range.
	ErrOutOfRange = errors.New("effect: parameter out of range")

	// ErrIncomplete indicates playback was requested before direction,
	// associated axes, duration and type-specific parameters were all set.
	ErrIncomplete = errors.New("effect: effect not completely defined")

	// ErrIDMismatch indicates a parameter synchronization between effects
	// with different identifiers.
	ErrIDMismatch = errors.New("effect: identifier mismatch")

	// ErrKindMismatch indicates a type-specific parameter block that does not
	// belong to the effect's kind.
	ErrKindMismatch = errors.New("effect: parameter block does not match effect kind")

	// ErrAxisCount indicates an associated-axes set whose size is invalid or
	// inconsistent with the direction vector.
	ErrAxisCount = errors.New("effect: associated axis count invalid")
)
