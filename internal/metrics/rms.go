package metrics

import (
	"math"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/direction"
)

// RMS measures the root-mean-square of the vector norm across all polls.
type RMS struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMS() *RMS {
	return &RMS{name: "rms_magnitude"}
}

func (r *RMS) Name() string { return r.name }

func (r *RMS) Observe(t uint32, vec direction.Ordered, out actuator.Output) {
	for _, v := range vec {
		r.sumSq += v * v
	}
	r.samples++
}

func (r *RMS) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMS) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// ActiveFraction measures the fraction of polls with any non-zero actuator
// output.
type ActiveFraction struct {
	name    string
	active  int
	samples int
}

func NewActiveFraction() *ActiveFraction {
	return &ActiveFraction{name: "active_fraction"}
}

func (a *ActiveFraction) Name() string { return a.name }

func (a *ActiveFraction) Observe(t uint32, vec direction.Ordered, out actuator.Output) {
	a.samples++
	for _, v := range out {
		if v != 0 {
			a.active++
			return
		}
	}
}

func (a *ActiveFraction) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.active) / float64(a.samples)
}

func (a *ActiveFraction) Reset() {
	a.active = 0
	a.samples = 0
}
