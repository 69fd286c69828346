// Package effect models force-feedback effects: the common timing, gain,
// envelope and direction parameters shared by every effect, the type-specific
// parameter blocks, and the magnitude-over-time computation for constant,
// ramp and periodic shapes.
package effect

import (
	"math"

	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/units"
)

// ID uniquely identifies an effect instance. It is assigned at creation and
// correlates "the same effect" across the application's object and the
// device buffer's clone.
type ID uint32

// Effect is a parameterized force description. Setters validate their input
// and never leave partially-applied state on failure. An effect is completely
// defined, and thus playable, only once direction, associated axes, duration
// and its type-specific parameters are all set.
type Effect struct {
	id   ID
	kind Kind

	duration     uint32
	durationSet  bool
	startDelay   uint32
	samplePeriod uint32
	gain         uint16

	envelope *Envelope
	dir      *direction.Vector
	axes     []int

	params TypeParams
}

// New returns an effect of the given kind with gain at full scale and no
// other parameters set.
func New(id ID, kind Kind) *Effect {
	return &Effect{id: id, kind: kind, gain: units.MaxModifier}
}

func (e *Effect) ID() ID     { return e.id }
func (e *Effect) Kind() Kind { return e.kind }

// Duration returns the configured duration in milliseconds and whether it
// has been set.
func (e *Effect) Duration() (uint32, bool) { return e.duration, e.durationSet }

func (e *Effect) StartDelay() uint32   { return e.startDelay }
func (e *Effect) SamplePeriod() uint32 { return e.samplePeriod }
func (e *Effect) Gain() uint16         { return e.gain }

// Direction returns the effect's direction vector, or nil if unset. The
// returned vector is the effect's own; callers must not mutate it.
func (e *Effect) Direction() *direction.Vector { return e.dir }

// Axes returns a copy of the associated virtual axis identifiers.
func (e *Effect) Axes() []int { return append([]int(nil), e.axes...) }

// Envelope returns the envelope, or nil when none is set.
func (e *Effect) Envelope() *Envelope {
	if e.envelope == nil {
		return nil
	}
	env := *e.envelope
	return &env
}

// TypeParams returns the type-specific parameter block, or nil if unset.
func (e *Effect) TypeParams() TypeParams { return e.params }

// SetDuration sets the total playback time in milliseconds. Duration is
// mandatory before the effect can be started.
func (e *Effect) SetDuration(ms uint32) {
	e.duration = ms
	e.durationSet = true
}

// SetStartDelay sets the delay before the effect begins contributing once
// started.
func (e *Effect) SetStartDelay(ms uint32) { e.startDelay = ms }

// SetSamplePeriod sets the magnitude quantization step. Zero selects the
// finest available granularity.
func (e *Effect) SetSamplePeriod(ms uint32) { e.samplePeriod = ms }

// SetGain sets the effect gain on the 0..units.MaxModifier scale.
func (e *Effect) SetGain(g uint16) error {
	if g > units.MaxModifier {
		return ErrOutOfRange
	}
	e.gain = g
	return nil
}

// SetEnvelope attaches an attack/fade envelope.
func (e *Effect) SetEnvelope(env Envelope) error {
	if err := env.validate(); err != nil {
		return err
	}
	e.envelope = &env
	return nil
}

// ClearEnvelope removes the envelope; magnitude computation becomes the
// identity on the sustain value.
func (e *Effect) ClearEnvelope() { e.envelope = nil }

// SetDirection associates the effect with a direction vector and the virtual
// axes its components project onto. The axis count of both must agree, and
// axis identifiers must be distinct and within the global range.
func (e *Effect) SetDirection(dir *direction.Vector, axes []int) error {
	if dir == nil || len(axes) != dir.AxisCount() {
		return ErrAxisCount
	}
	seen := make(map[int]bool, len(axes))
	for _, a := range axes {
		if a < 0 || a >= units.MaxAxes || seen[a] {
			return ErrAxisCount
		}
		seen[a] = true
	}
	e.dir = dir.Clone()
	e.axes = append([]int(nil), axes...)
	return nil
}

// SetTypeParams installs the type-specific parameter block. If validation
// fails, the block's best-effort correction is applied once; if the corrected
// block still fails, the update is rejected and prior parameters retained.
func (e *Effect) SetTypeParams(p TypeParams) error {
	if p == nil || !p.Matches(e.kind) {
		return ErrKindMismatch
	}
	if err := p.Validate(); err != nil {
		p = p.Fix()
		if err := p.Validate(); err != nil {
			return err
		}
	}
	e.params = p
	return nil
}

// Complete reports whether the effect is completely defined and may be
// started.
func (e *Effect) Complete() error {
	if e.dir == nil || len(e.axes) == 0 || !e.durationSet || e.params == nil {
		return ErrIncomplete
	}
	return nil
}

// Clone returns a deep copy sharing no state with the receiver. The clone
// keeps the identifier: identity is explicit, not object-based.
func (e *Effect) Clone() *Effect {
	c := *e
	if e.envelope != nil {
		env := *e.envelope
		c.envelope = &env
	}
	if e.dir != nil {
		c.dir = e.dir.Clone()
	}
	c.axes = append([]int(nil), e.axes...)
	return &c
}

// SyncFrom copies every parameter of src into e. The two effects must carry
// the same identifier; on mismatch nothing is changed.
func (e *Effect) SyncFrom(src *Effect) error {
	if e.id != src.id {
		return ErrIDMismatch
	}
	clone := src.Clone()
	*e = *clone
	return nil
}

// ComputeMagnitude returns the gain- and envelope-adjusted scalar force at
// elapsed time t (milliseconds since effect start, start delay excluded).
// Past the duration the result is zero. Elapsed time is quantized down to
// the nearest sample-period multiple first.
func (e *Effect) ComputeMagnitude(t uint32) float64 {
	dur := e.duration
	if t >= dur || e.params == nil {
		return 0
	}
	sp := e.samplePeriod
	if sp == 0 {
		sp = 1
	}
	t -= t % sp
	return e.rawMagnitude(t, dur) * units.ModifierFraction(e.gain)
}

// ComputeComponents returns the effect's contribution at elapsed time t as a
// globally ordered per-axis vector.
func (e *Effect) ComputeComponents(t uint32) direction.Ordered {
	if e.dir == nil {
		return direction.Ordered{}
	}
	return direction.Order(e.axes, e.dir.MagnitudeComponents(e.ComputeMagnitude(t)))
}

func (e *Effect) rawMagnitude(t, dur uint32) float64 {
	switch e.kind {
	case Constant:
		p := e.params.(ConstantParams)
		return e.signedEnvelope(float64(p.Magnitude), t, dur)
	case Ramp:
		p := e.params.(RampParams)
		v := float64(p.Start) + (float64(p.End)-float64(p.Start))*float64(t)/float64(dur)
		return e.signedEnvelope(v, t, dur)
	default:
		p := e.params.(PeriodicParams)
		period := p.Period
		if period == 0 {
			period = 1
		}
		phase := float64(p.Phase) + math.Mod(float64(t), float64(period))*units.FullCircle/float64(period)
		amp := e.envelope.Apply(float64(p.Magnitude), t, dur)
		return units.ClampMagnitude(amp*e.kind.Waveform()(phase) + float64(p.Offset))
	}
}

// signedEnvelope applies the envelope to the amplitude (distance from zero)
// of v, restoring the sign afterwards: envelopes shape amplitude, not signed
// value.
func (e *Effect) signedEnvelope(v float64, t, dur uint32) float64 {
	sign := 1.0
	if v < 0 {
		sign, v = -1, -v
	}
	return sign * e.envelope.Apply(v, t, dur)
}
