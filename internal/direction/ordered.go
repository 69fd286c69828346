package direction

import "github.com/senna-k/ffbsim/internal/units"

// Ordered is a force vector with one fixed slot per possible virtual axis.
// Effects with different associated-axis sets are remapped into this shape so
// their contributions can be summed directly.
type Ordered [units.MaxAxes]float64

// Add accumulates other into o component-wise.
func (o *Ordered) Add(other Ordered) {
	for i := range o {
		o[i] += other[i]
	}
}

// IsZero reports whether every slot is exactly zero.
func (o Ordered) IsZero() bool {
	for _, v := range o {
		if v != 0 {
			return false
		}
	}
	return true
}

// Order places the per-effect components comps at their global axis slots.
// axes and comps must be the same length; axes outside the global range are
// ignored.
func Order(axes []int, comps []float64) Ordered {
	var o Ordered
	for i, axis := range axes {
		if i >= len(comps) || axis < 0 || axis >= units.MaxAxes {
			continue
		}
		o[axis] = comps[i]
	}
	return o
}
