// Package sim drives a device's effect buffer the way the hardware polling
// loop does: a fixed-cadence clock, one Play per tick, the resulting ordered
// vector pushed through the actuator mapper.
package sim

import (
	"context"
	"fmt"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/device"
	"github.com/senna-k/ffbsim/internal/direction"
)

type Simulator struct {
	dev       *device.Device
	mapper    *actuator.Mapper
	metrics   []Metric
	observers []Observer
}

func New(dev *device.Device, mapper *actuator.Mapper) *Simulator {
	return &Simulator{
		dev:       dev,
		mapper:    mapper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run polls the device every cfg.PollInterval simulated milliseconds for
// cfg.Duration, recording times, vectors and actuator outputs. Timestamps
// wrap at 32 bits exactly as the real polling clock does.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	polls := int(cfg.Duration / cfg.PollInterval)
	result := &Result{
		Times:   make([]uint32, 0, polls),
		Vectors: make([]direction.Ordered, 0, polls),
		Outputs: make([]actuator.Output, 0, polls),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < polls; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		ts := cfg.Start + uint32(i)*cfg.PollInterval
		vec := s.dev.Play(ts)
		out := s.mapper.Map(vec, cfg.Gain)

		for _, m := range s.metrics {
			m.Observe(ts, vec, out)
		}
		for _, obs := range s.observers {
			obs.OnPoll(ts, vec, out)
		}

		result.Times = append(result.Times, ts)
		result.Vectors = append(result.Vectors, vec)
		result.Outputs = append(result.Outputs, out)
		result.Polls++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.PollInterval == 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if cfg.Duration == 0 {
		return fmt.Errorf("duration must be positive")
	}
	return nil
}
