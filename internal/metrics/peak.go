// Package metrics provides poll-time measurements pluggable into a
// simulation run.
package metrics

import (
	"math"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/direction"
)

// Peak tracks the largest absolute component seen on any virtual axis.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{name: "peak_magnitude"}
}

func (p *Peak) Name() string { return p.name }

func (p *Peak) Observe(t uint32, vec direction.Ordered, out actuator.Output) {
	for _, v := range vec {
		p.max = math.Max(p.max, math.Abs(v))
	}
}

func (p *Peak) Value() float64 { return p.max }

func (p *Peak) Reset() { p.max = 0 }
