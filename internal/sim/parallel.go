package sim

import (
	"context"
	"sync"
)

// Scenario describes one independent run for batch comparison. Build
// constructs a fresh device and mapper so scenarios share no buffer state;
// each virtual controller owns its own.
type Scenario struct {
	Name    string
	Build   func() (*Simulator, error)
	Config  Config
	Metrics func() []Metric
}

// BatchResult pairs a scenario name with its outcome.
type BatchResult struct {
	Name   string
	Result *Result
	Err    error
}

// RunBatch executes every scenario concurrently and returns results in
// scenario order.
func RunBatch(ctx context.Context, scenarios []Scenario) []BatchResult {
	results := make([]BatchResult, len(scenarios))

	var wg sync.WaitGroup
	for i, sc := range scenarios {
		wg.Add(1)
		go func(idx int, sc Scenario) {
			defer wg.Done()

			results[idx].Name = sc.Name
			s, err := sc.Build()
			if err != nil {
				results[idx].Err = err
				return
			}
			if sc.Metrics != nil {
				for _, m := range sc.Metrics() {
					s.AddMetric(m)
				}
			}
			results[idx].Result, results[idx].Err = s.Run(ctx, sc.Config)
		}(i, sc)
	}
	wg.Wait()

	return results
}
