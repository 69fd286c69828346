package device

import "errors"

var (
	// ErrBufferFull indicates the combined ready+playing entry count reached
	// units.MaxEffects.
	ErrBufferFull = errors.New("device: effect buffer full")

	// ErrNotFound indicates an operation targeting an identifier absent from
	// the device.
	ErrNotFound = errors.New("device: effect not on device")

	// ErrNotReady indicates a start request for an effect that is not in the
	// ready collection.
	ErrNotReady = errors.New("device: effect not in ready state")

	// ErrNotPlaying indicates a stop request for an effect that is not
	// currently playing.
	ErrNotPlaying = errors.New("device: effect not playing")

	// ErrIterations indicates a non-positive iteration count.
	ErrIterations = errors.New("device: iterations must be positive")
)
