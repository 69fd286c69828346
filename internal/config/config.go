// Package config loads and saves the per-controller configuration surface:
// the effect description to simulate, the actuator-to-axis mapping table and
// the global strength percentage.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/direction"
	"github.com/senna-k/ffbsim/internal/effect"
	"github.com/senna-k/ffbsim/internal/units"
)

const (
	DefaultPollInterval = 16
	DefaultDuration     = 5000
	DefaultStrength     = 100.0
	DefaultPeriod       = 250
	DefaultMagnitude    = 8000
)

type Config struct {
	PollInterval uint32           `yaml:"poll_interval_ms"`
	Duration     uint32           `yaml:"duration_ms"`
	Strength     float64          `yaml:"strength"`
	Effect       EffectConfig     `yaml:"effect"`
	Actuators    []ActuatorConfig `yaml:"actuators"`
}

type EffectConfig struct {
	Kind         string          `yaml:"kind"`
	Duration     uint32          `yaml:"duration_ms"`
	Delay        uint32          `yaml:"delay_ms"`
	SamplePeriod uint32          `yaml:"sample_period_ms"`
	Gain         uint16          `yaml:"gain"`
	Iterations   int             `yaml:"iterations"`
	Magnitude    int32           `yaml:"magnitude"`
	Start        int32           `yaml:"start"`
	End          int32           `yaml:"end"`
	Offset       int32           `yaml:"offset"`
	Phase        int32           `yaml:"phase"`
	Period       uint32          `yaml:"period_ms"`
	Envelope     *EnvelopeConfig `yaml:"envelope"`
	Axes         []int           `yaml:"axes"`
	Cartesian    []float64       `yaml:"cartesian"`
	Polar        *int32          `yaml:"polar"`
	Spherical    []int32         `yaml:"spherical"`
}

type EnvelopeConfig struct {
	AttackTime  uint32 `yaml:"attack_ms"`
	AttackLevel uint16 `yaml:"attack_level"`
	FadeTime    uint32 `yaml:"fade_ms"`
	FadeLevel   uint16 `yaml:"fade_level"`
}

type ActuatorConfig struct {
	Present bool   `yaml:"present"`
	Mode    string `yaml:"mode"`   // "single" or "projection"
	Axis    int    `yaml:"axis"`
	AxisB   int    `yaml:"axis_b"` // projection only
	Filter  string `yaml:"filter"` // "both", "positive", "negative"
	Max     uint32 `yaml:"max"`
}

func DefaultConfig() *Config {
	return &Config{
		PollInterval: DefaultPollInterval,
		Duration:     DefaultDuration,
		Strength:     DefaultStrength,
		Effect: EffectConfig{
			Kind:       "sine",
			Duration:   2000,
			Gain:       units.MaxModifier,
			Iterations: 1,
			Magnitude:  DefaultMagnitude,
			Period:     DefaultPeriod,
			Axes:       []int{0, 1},
			Cartesian:  []float64{1, 0},
		},
		Actuators: []ActuatorConfig{
			{Present: true, Mode: "single", Axis: 0, Filter: "both", Max: 65535},
			{Present: true, Mode: "single", Axis: 1, Filter: "both", Max: 65535},
			{Present: true, Mode: "single", Axis: 2, Filter: "both", Max: 65535},
			{Present: true, Mode: "projection", Axis: 0, AxisB: 1, Max: 65535},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildEffect constructs a fully defined effect from the description,
// assigning it the given identifier. The returned iteration count is always
// at least 1.
func (ec *EffectConfig) BuildEffect(id effect.ID) (*effect.Effect, int, error) {
	kind, ok := effect.KindFromString(ec.Kind)
	if !ok {
		return nil, 0, fmt.Errorf("unknown effect kind: %s", ec.Kind)
	}

	e := effect.New(id, kind)
	e.SetDuration(ec.Duration)
	e.SetStartDelay(ec.Delay)
	e.SetSamplePeriod(ec.SamplePeriod)
	if err := e.SetGain(ec.Gain); err != nil {
		return nil, 0, err
	}
	if ec.Envelope != nil {
		env := effect.Envelope{
			AttackTime:  ec.Envelope.AttackTime,
			AttackLevel: ec.Envelope.AttackLevel,
			FadeTime:    ec.Envelope.FadeTime,
			FadeLevel:   ec.Envelope.FadeLevel,
		}
		if err := e.SetEnvelope(env); err != nil {
			return nil, 0, err
		}
	}

	axes := ec.Axes
	if len(axes) == 0 {
		axes = []int{0}
	}
	dir, err := direction.New(len(axes))
	if err != nil {
		return nil, 0, err
	}
	switch {
	case len(ec.Cartesian) > 0:
		err = dir.SetCartesian(ec.Cartesian)
	case ec.Polar != nil:
		err = dir.SetPolar(*ec.Polar)
	case len(ec.Spherical) > 0 || len(axes) == 1:
		err = dir.SetSpherical(ec.Spherical)
	default:
		coords := make([]float64, len(axes))
		coords[0] = 1
		err = dir.SetCartesian(coords)
	}
	if err != nil {
		return nil, 0, err
	}
	if err := e.SetDirection(dir, axes); err != nil {
		return nil, 0, err
	}

	var params effect.TypeParams
	switch kind {
	case effect.Constant:
		params = effect.ConstantParams{Magnitude: ec.Magnitude}
	case effect.Ramp:
		params = effect.RampParams{Start: ec.Start, End: ec.End}
	default:
		params = effect.PeriodicParams{
			Magnitude: ec.Magnitude,
			Offset:    ec.Offset,
			Phase:     ec.Phase,
			Period:    ec.Period,
		}
	}
	if err := e.SetTypeParams(params); err != nil {
		return nil, 0, err
	}

	iterations := ec.Iterations
	if iterations < 1 {
		iterations = 1
	}
	return e, iterations, nil
}

// BuildMapper converts the actuator table into a mapper. Missing trailing
// slots are treated as absent.
func (c *Config) BuildMapper() (*actuator.Mapper, error) {
	var elems [actuator.NumSlots]actuator.Element
	for i, ac := range c.Actuators {
		if i >= actuator.NumSlots {
			return nil, fmt.Errorf("too many actuator slots: %d", len(c.Actuators))
		}
		el := actuator.Element{
			Present: ac.Present,
			Axis:    ac.Axis,
			AxisB:   ac.AxisB,
			Max:     ac.Max,
		}
		switch ac.Mode {
		case "", "single":
			el.Mode = actuator.SingleAxis
		case "projection":
			el.Mode = actuator.Projection
		default:
			return nil, fmt.Errorf("unknown actuator mode: %s", ac.Mode)
		}
		switch ac.Filter {
		case "", "both":
			el.Filter = actuator.FilterBoth
		case "positive":
			el.Filter = actuator.FilterPositive
		case "negative":
			el.Filter = actuator.FilterNegative
		default:
			return nil, fmt.Errorf("unknown actuator filter: %s", ac.Filter)
		}
		elems[i] = el
	}
	return actuator.NewMapper(elems)
}
