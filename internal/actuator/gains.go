package actuator

import (
	"math"
	"sync"

	"github.com/senna-k/ffbsim/internal/units"
)

// Gains composes strength scaling from an unordered set of registrants, one
// per virtual controller or configuration source sharing the physical
// actuators. Composition is multiplicative: order independent, and kept
// exactly as-is for compatibility.
type Gains struct {
	mu    sync.RWMutex
	fracs map[string]float64
}

func NewGains() *Gains {
	return &Gains{fracs: make(map[string]float64)}
}

// Set registers (or replaces) a registrant's strength percentage in [0, 100].
func (g *Gains) Set(name string, percent float64) error {
	if percent < 0 || percent > 100 {
		return ErrBadStrength
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.fracs[name] = percent / 100
	return nil
}

// Remove drops a registrant; absent names are ignored.
func (g *Gains) Remove(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.fracs, name)
}

// Fraction returns the product of every registered fraction, 1 when none are
// registered.
func (g *Gains) Fraction() float64 {
	g.mu.RLock()
	defer g.mu.RUnlock()
	f := 1.0
	for _, v := range g.fracs {
		f *= v
	}
	return f
}

// Apply scales a device gain by the composed fraction, rounding to nearest
// on the 0..units.MaxModifier scale.
func (g *Gains) Apply(gain uint16) uint16 {
	v := math.Round(float64(gain) * g.Fraction())
	if v > units.MaxModifier {
		v = units.MaxModifier
	}
	if v < 0 {
		v = 0
	}
	return uint16(v)
}
