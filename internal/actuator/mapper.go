// Package actuator maps the ordered virtual force vector of a device onto
// the fixed set of physical actuator slots: two rumble motors and two
// impulse triggers.
package actuator

import (
	"math"

	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/units"
)

// Physical actuator slots.
const (
	MotorLow = iota
	MotorHigh
	TriggerLeft
	TriggerRight
	NumSlots = units.NumActuators
)

var slotNames = [NumSlots]string{"motor_low", "motor_high", "trigger_left", "trigger_right"}

// SlotName returns a stable name for a slot index.
func SlotName(slot int) string {
	if slot < 0 || slot >= NumSlots {
		return "unknown"
	}
	return slotNames[slot]
}

// Mode selects how a slot derives its intensity from the ordered vector.
type Mode int

const (
	// SingleAxis reads one component, subject to a direction filter.
	SingleAxis Mode = iota
	// Projection combines two components via their Euclidean norm.
	Projection
)

// Filter restricts which component signs a single-axis slot responds to.
type Filter int

const (
	FilterBoth Filter = iota
	FilterPositive
	FilterNegative
)

// Element declares one physical actuator slot. It is static configuration,
// supplied at controller construction, not mutated at runtime.
type Element struct {
	Present bool
	Mode    Mode
	Axis    int    // source axis
	AxisB   int    // second source axis, Projection only
	Filter  Filter // SingleAxis only
	Max     uint32 // physical output ceiling, inclusive
}

// Output holds one intensity per physical actuator slot.
type Output [NumSlots]uint32

// Mapper converts ordered magnitude vectors into physical intensities.
type Mapper struct {
	elems [NumSlots]Element
}

// NewMapper validates the per-slot configuration. Present slots need axis
// indices within the global range and a positive output ceiling.
func NewMapper(elems [NumSlots]Element) (*Mapper, error) {
	for _, el := range elems {
		if !el.Present {
			continue
		}
		if el.Axis < 0 || el.Axis >= units.MaxAxes {
			return nil, ErrBadElement
		}
		if el.Mode == Projection && (el.AxisB < 0 || el.AxisB >= units.MaxAxes) {
			return nil, ErrBadElement
		}
		if el.Max == 0 {
			return nil, ErrBadElement
		}
	}
	return &Mapper{elems: elems}, nil
}

// Map produces the physical intensity of every slot for the given ordered
// vector and device gain (0..units.MaxModifier). Gain both scales the value
// and caps the contributable magnitude: the scaled value is held below a
// gain-scaled ceiling before conversion into the slot's integer range, which
// rounds to nearest and saturates at the slot maximum.
func (m *Mapper) Map(vec direction.Ordered, gain uint16) Output {
	var out Output
	frac := units.ModifierFraction(gain)
	ceiling := units.MaxMagnitude * frac
	for i, el := range m.elems {
		if !el.Present {
			continue
		}
		var v float64
		switch el.Mode {
		case SingleAxis:
			c := vec[el.Axis]
			if el.Filter == FilterPositive && c < 0 {
				continue
			}
			if el.Filter == FilterNegative && c > 0 {
				continue
			}
			v = math.Abs(c)
		case Projection:
			v = math.Hypot(vec[el.Axis], vec[el.AxisB])
		}
		v *= frac
		if v > ceiling {
			v = ceiling
		}
		scaled := math.Round(v * float64(el.Max) / units.MaxMagnitude)
		if scaled > float64(el.Max) {
			scaled = float64(el.Max)
		}
		out[i] = uint32(scaled)
	}
	return out
}

// Elements returns the slot configuration.
func (m *Mapper) Elements() [NumSlots]Element { return m.elems }
