package effect

import (
	"math"

	"github.com/senna-k/ffbsim/internal/units"
)

// Waveform maps a phase angle in hundredths of a degree to an amplitude
// proportion in [-1, 1]. The functions are pure and exactly periodic with
// period units.FullCircle; they are the only code that differs between the
// periodic effect kinds.
type Waveform func(phase float64) float64

func normalizePhase(phase float64) float64 {
	p := math.Mod(phase, units.FullCircle)
	if p < 0 {
		p += units.FullCircle
	}
	return p
}

// SineWave peaks at phase 9000 and troughs at 27000.
func SineWave(phase float64) float64 {
	return math.Sin(radiansOf(normalizePhase(phase)))
}

// SquareWave is +1 on [0, 18000) and flips to -1 exactly at 18000.
func SquareWave(phase float64) float64 {
	if normalizePhase(phase) < 18000 {
		return 1
	}
	return -1
}

// TriangleWave rises 0..1 over the first quarter, falls to -1 through the
// half turn, and returns to 0.
func TriangleWave(phase float64) float64 {
	p := normalizePhase(phase)
	switch {
	case p < 9000:
		return p / 9000
	case p < 27000:
		return 1 - (p-9000)/9000
	default:
		return -1 + (p-27000)/9000
	}
}

// SawtoothUpWave ramps -1..1 across the full circle.
func SawtoothUpWave(phase float64) float64 {
	return -1 + 2*normalizePhase(phase)/units.FullCircle
}

// SawtoothDownWave ramps 1..-1 across the full circle.
func SawtoothDownWave(phase float64) float64 {
	return 1 - 2*normalizePhase(phase)/units.FullCircle
}

func radiansOf(hundredths float64) float64 {
	return hundredths * math.Pi / 18000
}
