package config

import (
	"sort"

	"github.com/senna-k/ffbsim/internal/units"
)

// Presets are ready-made effect descriptions for the CLI.
var Presets = map[string]*EffectConfig{
	"rumble": {
		Kind: "sine", Duration: 2000, Gain: units.MaxModifier,
		Magnitude: 8000, Period: 100,
		Axes: []int{0, 1}, Cartesian: []float64{1, 1},
	},
	"pulse": {
		Kind: "square", Duration: 1500, Gain: units.MaxModifier,
		Magnitude: 10000, Period: 400,
		Axes: []int{0}, Cartesian: []float64{1},
	},
	"heartbeat": {
		Kind: "sine", Duration: 4000, Gain: units.MaxModifier,
		Magnitude: 6000, Period: 800, Iterations: 3,
		Envelope: &EnvelopeConfig{AttackTime: 200, AttackLevel: 0, FadeTime: 200, FadeLevel: 0},
		Axes:     []int{0, 1}, Cartesian: []float64{0, 1},
	},
	"engine": {
		Kind: "triangle", Duration: 6000, Gain: 8000,
		Magnitude: 4000, Offset: 2000, Period: 50,
		Axes: []int{0, 1}, Cartesian: []float64{1, 0},
	},
	"ramp_up": {
		Kind: "ramp", Duration: 3000, Gain: units.MaxModifier,
		Start: 0, End: units.MaxMagnitude,
		Axes: []int{0}, Cartesian: []float64{1},
	},
	"impact": {
		Kind: "constant", Duration: 300, Gain: units.MaxModifier,
		Magnitude: units.MaxMagnitude,
		Envelope:  &EnvelopeConfig{FadeTime: 250, FadeLevel: 0},
		Axes:      []int{0, 1}, Cartesian: []float64{1, 0},
	},
	"sweep": {
		Kind: "sawtooth_up", Duration: 2500, Gain: units.MaxModifier,
		Magnitude: 7000, Period: 500,
		Axes: []int{2, 3}, Spherical: []int32{4500},
	},
}

func GetPreset(name string) *EffectConfig {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
