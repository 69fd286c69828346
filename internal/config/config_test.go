package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/effect"
	"github.com/senna-k/ffbsim/internal/units"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Strength = 42.5
	cfg.Effect.Kind = "square"
	cfg.Effect.Period = 123
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Strength != 42.5 || loaded.Effect.Kind != "square" || loaded.Effect.Period != 123 {
		t.Errorf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("strength: 30\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Strength != 30 {
		t.Errorf("explicit field: want 30, got %f", cfg.Strength)
	}
	if cfg.PollInterval != DefaultPollInterval || cfg.Effect.Kind != "sine" {
		t.Error("unset fields should keep defaults")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestBuildEffectFromDefaults(t *testing.T) {
	cfg := DefaultConfig()
	e, iterations, err := cfg.Effect.BuildEffect(7)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if e.ID() != 7 || e.Kind() != effect.Sine {
		t.Errorf("unexpected identity: id=%d kind=%v", e.ID(), e.Kind())
	}
	if iterations != 1 {
		t.Errorf("want 1 iteration, got %d", iterations)
	}
	if err := e.Complete(); err != nil {
		t.Errorf("built effect should be completely defined: %v", err)
	}
}

func TestBuildEffectKinds(t *testing.T) {
	tests := []struct {
		name string
		ec   EffectConfig
		kind effect.Kind
	}{
		{
			"constant",
			EffectConfig{Kind: "constant", Duration: 100, Gain: 10000, Magnitude: 5000, Axes: []int{0}, Cartesian: []float64{1}},
			effect.Constant,
		},
		{
			"ramp",
			EffectConfig{Kind: "ramp", Duration: 100, Gain: 10000, Start: 0, End: 10000, Axes: []int{0}, Cartesian: []float64{1}},
			effect.Ramp,
		},
		{
			"triangle",
			EffectConfig{Kind: "triangle", Duration: 100, Gain: 10000, Magnitude: 5000, Period: 50, Axes: []int{0, 1}, Cartesian: []float64{1, 0}},
			effect.Triangle,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, err := tt.ec.BuildEffect(1)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if e.Kind() != tt.kind {
				t.Errorf("want kind %v, got %v", tt.kind, e.Kind())
			}
			if err := e.Complete(); err != nil {
				t.Errorf("should be complete: %v", err)
			}
		})
	}
}

func TestBuildEffectUnknownKind(t *testing.T) {
	ec := EffectConfig{Kind: "wobble"}
	if _, _, err := ec.BuildEffect(1); err == nil {
		t.Error("unknown kind should fail")
	}
}

func TestBuildEffectPolarDirection(t *testing.T) {
	polar := int32(13500)
	ec := EffectConfig{
		Kind: "constant", Duration: 100, Gain: 10000, Magnitude: 5000,
		Axes: []int{0, 1}, Polar: &polar,
	}
	e, _, err := ec.BuildEffect(1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	got, err := e.Direction().PolarAngle()
	if err != nil {
		t.Fatalf("polar: %v", err)
	}
	if got != 13500 {
		t.Errorf("want polar 13500, got %f", got)
	}
}

func TestBuildEffectEnvelopeAndIterations(t *testing.T) {
	ec := EffectConfig{
		Kind: "sine", Duration: 1000, Gain: 10000, Magnitude: 5000, Period: 100,
		Iterations: 4,
		Envelope:   &EnvelopeConfig{AttackTime: 100, FadeTime: 100},
		Axes:       []int{0}, Cartesian: []float64{1},
	}
	e, iterations, err := ec.BuildEffect(1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if iterations != 4 {
		t.Errorf("want 4 iterations, got %d", iterations)
	}
	if e.Envelope() == nil {
		t.Error("envelope should be attached")
	}
}

func TestBuildMapper(t *testing.T) {
	cfg := DefaultConfig()
	m, err := cfg.BuildMapper()
	if err != nil {
		t.Fatalf("build mapper: %v", err)
	}
	elems := m.Elements()
	if !elems[actuator.MotorLow].Present || elems[actuator.MotorLow].Mode != actuator.SingleAxis {
		t.Errorf("motor low should be a present single-axis slot: %+v", elems[actuator.MotorLow])
	}
	if elems[actuator.TriggerRight].Mode != actuator.Projection {
		t.Errorf("fourth default slot should project: %+v", elems[actuator.TriggerRight])
	}
}

func TestBuildMapperRejectsBadTable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Actuators[0].Mode = "diagonal"
	if _, err := cfg.BuildMapper(); err == nil {
		t.Error("unknown mode should fail")
	}

	cfg = DefaultConfig()
	cfg.Actuators[0].Filter = "sideways"
	if _, err := cfg.BuildMapper(); err == nil {
		t.Error("unknown filter should fail")
	}

	cfg = DefaultConfig()
	cfg.Actuators = append(cfg.Actuators, ActuatorConfig{Present: true, Axis: 0, Max: 1})
	if _, err := cfg.BuildMapper(); err == nil {
		t.Error("more slots than actuators should fail")
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			ec := GetPreset(name)
			if ec == nil {
				t.Fatal("listed preset should resolve")
			}
			e, iterations, err := ec.BuildEffect(1)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if err := e.Complete(); err != nil {
				t.Errorf("preset should build a complete effect: %v", err)
			}
			if iterations < 1 {
				t.Errorf("iterations should be at least 1, got %d", iterations)
			}
			if e.Gain() > units.MaxModifier {
				t.Errorf("gain out of range: %d", e.Gain())
			}
		})
	}
	if GetPreset("no-such-preset") != nil {
		t.Error("unknown preset should be nil")
	}
}
