package effect

import "github.com/senna-k/ffbsim/internal/units"

// Kind selects the raw-magnitude computation of an effect. The five periodic
// kinds differ only in their waveform function.
type Kind int

const (
	Constant Kind = iota
	Ramp
	Sine
	Square
	Triangle
	SawtoothUp
	SawtoothDown
)

var kindNames = map[Kind]string{
	Constant:     "constant",
	Ramp:         "ramp",
	Sine:         "sine",
	Square:       "square",
	Triangle:     "triangle",
	SawtoothUp:   "sawtooth_up",
	SawtoothDown: "sawtooth_down",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// Periodic reports whether k is one of the waveform kinds.
func (k Kind) Periodic() bool { return k >= Sine && k <= SawtoothDown }

// Waveform returns the phase-to-proportion function for a periodic kind and
// nil for the others.
func (k Kind) Waveform() Waveform {
	switch k {
	case Sine:
		return SineWave
	case Square:
		return SquareWave
	case Triangle:
		return TriangleWave
	case SawtoothUp:
		return SawtoothUpWave
	case SawtoothDown:
		return SawtoothDownWave
	default:
		return nil
	}
}

// KindFromString parses a kind name as used in configuration and the CLI.
func KindFromString(s string) (Kind, bool) {
	for k, n := range kindNames {
		if n == s {
			return k, true
		}
	}
	return 0, false
}

// Kinds lists every effect kind in declaration order.
func Kinds() []Kind {
	return []Kind{Constant, Ramp, Sine, Square, Triangle, SawtoothUp, SawtoothDown}
}

// TypeParams is the type-specific parameter block attached to an effect.
// Validate reports whether the block is usable as-is; Fix returns a
// best-effort corrected copy tried once when validation fails. Blocks are
// value types, so storing one never aliases caller state.
type TypeParams interface {
	Validate() error
	Fix() TypeParams
	Matches(k Kind) bool
}

// ConstantParams holds the signed magnitude of a constant-force effect.
type ConstantParams struct {
	Magnitude int32
}

func (p ConstantParams) Validate() error {
	if p.Magnitude < units.MinMagnitude || p.Magnitude > units.MaxMagnitude {
		return ErrOutOfRange
	}
	return nil
}

func (p ConstantParams) Fix() TypeParams {
	p.Magnitude = units.Clamp(p.Magnitude, units.MinMagnitude, units.MaxMagnitude)
	return p
}

func (p ConstantParams) Matches(k Kind) bool { return k == Constant }

// RampParams holds the endpoints of a linear ramp over the effect duration.
type RampParams struct {
	Start int32
	End   int32
}

func (p RampParams) Validate() error {
	if p.Start < units.MinMagnitude || p.Start > units.MaxMagnitude ||
		p.End < units.MinMagnitude || p.End > units.MaxMagnitude {
		return ErrOutOfRange
	}
	return nil
}

func (p RampParams) Fix() TypeParams {
	p.Start = units.Clamp(p.Start, units.MinMagnitude, units.MaxMagnitude)
	p.End = units.Clamp(p.End, units.MinMagnitude, units.MaxMagnitude)
	return p
}

func (p RampParams) Matches(k Kind) bool { return k == Ramp }

// PeriodicParams holds the shared parameters of the waveform kinds.
// Magnitude is the unsigned amplitude, Offset shifts the result, Phase is the
// starting angle in hundredths of a degree, and Period is the cycle length in
// milliseconds (0 behaves as 1).
type PeriodicParams struct {
	Magnitude int32
	Offset    int32
	Phase     int32
	Period    uint32
}

func (p PeriodicParams) Validate() error {
	if p.Magnitude < 0 || p.Magnitude > units.MaxMagnitude {
		return ErrOutOfRange
	}
	if p.Offset < units.MinMagnitude || p.Offset > units.MaxMagnitude {
		return ErrOutOfRange
	}
	if p.Phase < 0 || p.Phase > units.MaxAngle {
		return ErrOutOfRange
	}
	return nil
}

func (p PeriodicParams) Fix() TypeParams {
	p.Magnitude = units.Clamp(p.Magnitude, 0, units.MaxMagnitude)
	p.Offset = units.Clamp(p.Offset, units.MinMagnitude, units.MaxMagnitude)
	p.Phase = ((p.Phase % units.FullCircle) + units.FullCircle) % units.FullCircle
	return p
}

func (p PeriodicParams) Matches(k Kind) bool { return k.Periodic() }
