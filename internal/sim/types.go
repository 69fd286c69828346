package sim

import (
	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/units"
)

// Config controls one simulated polling run. Times are milliseconds on the
// device's wrapping 32-bit clock.
type Config struct {
	PollInterval uint32
	Duration     uint32
	Start        uint32 // initial timestamp; set near the 32-bit maximum to exercise wraparound
	Gain         uint16 // device gain handed to the mapper each poll
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 16,
		Duration:     5000,
		Gain:         units.MaxModifier,
	}
}

// Result collects everything observed over a run.
type Result struct {
	Times   []uint32
	Vectors []direction.Ordered
	Outputs []actuator.Output
	Metrics map[string]float64
	Polls   int
}

// Metric accumulates a scalar over the polls of a run.
type Metric interface {
	Name() string
	Observe(t uint32, vec direction.Ordered, out actuator.Output)
	Value() float64
	Reset()
}

// Observer is notified of every poll as it happens.
type Observer interface {
	OnPoll(t uint32, vec direction.Ordered, out actuator.Output)
}
