package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/config"
	"github.com/senna-k/ffbsim/internal/device"
	"github.com/senna-k/ffbsim/internal/effect"
	"github.com/senna-k/ffbsim/internal/ids"
	"github.com/senna-k/ffbsim/internal/metrics"
	"github.com/senna-k/ffbsim/internal/sim"
	"github.com/senna-k/ffbsim/internal/storage"
	"github.com/senna-k/ffbsim/internal/units"
	"github.com/senna-k/ffbsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	durationMs   uint32
	delayMs      uint32
	samplePeriod uint32
	gain         uint16
	iterations   int
	magnitude    int32
	rampStart    int32
	rampEnd      int32
	offset       int32
	phase        int32
	periodMs     uint32

	pollInterval uint32
	simDuration  uint32
	strength     float64
	frameRate    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ffbsim",
		Short: "force-feedback effect simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ffbsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset effect")

	runCmd := &cobra.Command{
		Use:   "run [kind]",
		Short: "simulate an effect and record the run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addEffectFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [kind]",
		Short: "play an effect with live actuator visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addEffectFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	compareCmd := &cobra.Command{
		Use:   "compare [kind] [kind] ...",
		Short: "run several effect kinds in parallel and compare metrics",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareKinds,
	}
	addEffectFlags(compareCmd)

	waveformsCmd := &cobra.Command{
		Use:   "waveforms",
		Short: "plot the periodic waveform shapes",
		RunE:  plotWaveforms,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list effect presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, liveCmd, compareCmd, waveformsCmd, presetsCmd, listCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEffectFlags(cmd *cobra.Command) {
	cmd.Flags().Uint32Var(&durationMs, "duration", 2000, "effect duration (ms)")
	cmd.Flags().Uint32Var(&delayMs, "delay", 0, "start delay (ms)")
	cmd.Flags().Uint32Var(&samplePeriod, "sample-period", 0, "sample period (ms, 0 = finest)")
	cmd.Flags().Uint16Var(&gain, "gain", units.MaxModifier, "effect gain (0-10000)")
	cmd.Flags().IntVar(&iterations, "iterations", 1, "playback iterations")
	cmd.Flags().Int32Var(&magnitude, "magnitude", config.DefaultMagnitude, "magnitude / periodic amplitude")
	cmd.Flags().Int32Var(&rampStart, "start", 0, "ramp start magnitude")
	cmd.Flags().Int32Var(&rampEnd, "end", units.MaxMagnitude, "ramp end magnitude")
	cmd.Flags().Int32Var(&offset, "offset", 0, "periodic offset")
	cmd.Flags().Int32Var(&phase, "phase", 0, "periodic phase (hundredths of a degree)")
	cmd.Flags().Uint32Var(&periodMs, "period", config.DefaultPeriod, "periodic cycle length (ms)")
	cmd.Flags().Uint32Var(&pollInterval, "poll", config.DefaultPollInterval, "poll interval (ms)")
	cmd.Flags().Uint32Var(&simDuration, "time", config.DefaultDuration, "simulated run length (ms)")
	cmd.Flags().Float64Var(&strength, "strength", config.DefaultStrength, "strength scaling percentage")
}

// buildConfig merges the config file, preset and command-line flags into one
// run description. The preset replaces the effect section; flags the user
// explicitly set override everything.
func buildConfig(cmd *cobra.Command, kindArg string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if preset != "" {
		pc := config.GetPreset(preset)
		if pc == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		ec := *pc
		cfg.Effect = ec
	}

	if kindArg != "" {
		cfg.Effect.Kind = kindArg
	}

	if cmd.Flags().Changed("duration") {
		cfg.Effect.Duration = durationMs
	}
	if cmd.Flags().Changed("delay") {
		cfg.Effect.Delay = delayMs
	}
	if cmd.Flags().Changed("sample-period") {
		cfg.Effect.SamplePeriod = samplePeriod
	}
	if cmd.Flags().Changed("gain") {
		cfg.Effect.Gain = gain
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Effect.Iterations = iterations
	}
	if cmd.Flags().Changed("magnitude") {
		cfg.Effect.Magnitude = magnitude
	}
	if cmd.Flags().Changed("start") {
		cfg.Effect.Start = rampStart
	}
	if cmd.Flags().Changed("end") {
		cfg.Effect.End = rampEnd
	}
	if cmd.Flags().Changed("offset") {
		cfg.Effect.Offset = offset
	}
	if cmd.Flags().Changed("phase") {
		cfg.Effect.Phase = phase
	}
	if cmd.Flags().Changed("period") {
		cfg.Effect.Period = periodMs
	}
	if cmd.Flags().Changed("poll") {
		cfg.PollInterval = pollInterval
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = simDuration
	}
	if cmd.Flags().Changed("strength") {
		cfg.Strength = strength
	}
	return cfg, nil
}

// buildRig assembles a device loaded with the configured effect, its mapper
// and the effective gain after strength scaling.
func buildRig(cfg *config.Config) (*device.Device, *actuator.Mapper, *effect.Effect, int, uint16, error) {
	alloc := ids.NewAllocator()
	eff, iters, err := cfg.Effect.BuildEffect(alloc.Next())
	if err != nil {
		return nil, nil, nil, 0, 0, err
	}
	mapper, err := cfg.BuildMapper()
	if err != nil {
		return nil, nil, nil, 0, 0, err
	}

	gains := actuator.NewGains()
	if err := gains.Set("config", cfg.Strength); err != nil {
		return nil, nil, nil, 0, 0, err
	}
	effective := gains.Apply(units.MaxModifier)

	dev := device.New()
	if err := dev.AddOrUpdate(eff); err != nil {
		return nil, nil, nil, 0, 0, err
	}
	return dev, mapper, eff, iters, effective, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	kindArg := ""
	if len(args) > 0 {
		kindArg = args[0]
	}
	cfg, err := buildConfig(cmd, kindArg)
	if err != nil {
		return err
	}

	dev, mapper, eff, iters, effGain, err := buildRig(cfg)
	if err != nil {
		return err
	}
	if err := dev.Start(eff.ID(), iters, 0); err != nil {
		return err
	}

	s := sim.New(dev, mapper)
	s.AddMetric(metrics.NewPeak())
	s.AddMetric(metrics.NewRMS())
	s.AddMetric(metrics.NewActiveFraction())

	simCfg := sim.Config{
		PollInterval: cfg.PollInterval,
		Duration:     cfg.Duration,
		Gain:         effGain,
	}
	result, err := s.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	printSummary(cfg.Effect.Kind, simCfg, result)

	if len(result.Outputs) > 1 {
		series := make([]float64, len(result.Outputs))
		for i, out := range result.Outputs {
			series[i] = float64(out[actuator.MotorLow])
		}
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(actuator.SlotName(actuator.MotorLow))))
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(cfg.Effect.Kind, simCfg, cfg.Strength, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run: %s\n", runID)
	return nil
}

func printSummary(kind string, cfg sim.Config, result *sim.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "kind\t%s\n", kind)
	fmt.Fprintf(w, "polls\t%d\n", result.Polls)
	fmt.Fprintf(w, "poll interval\t%dms\n", cfg.PollInterval)
	for name, value := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.2f\n", name, value)
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	kindArg := ""
	if len(args) > 0 {
		kindArg = args[0]
	}
	cfg, err := buildConfig(cmd, kindArg)
	if err != nil {
		return err
	}
	dev, mapper, eff, iters, effGain, err := buildRig(cfg)
	if err != nil {
		return err
	}
	return viz.Run(dev, mapper, eff, iters, effGain, frameRate)
}

func compareKinds(cmd *cobra.Command, args []string) error {
	scenarios := make([]sim.Scenario, 0, len(args))
	for _, kind := range args {
		cfg, err := buildConfig(cmd, kind)
		if err != nil {
			return err
		}
		scenarios = append(scenarios, sim.Scenario{
			Name: kind,
			Build: func() (*sim.Simulator, error) {
				dev, mapper, eff, iters, _, err := buildRig(cfg)
				if err != nil {
					return nil, err
				}
				if err := dev.Start(eff.ID(), iters, 0); err != nil {
					return nil, err
				}
				return sim.New(dev, mapper), nil
			},
			Config: sim.Config{
				PollInterval: cfg.PollInterval,
				Duration:     cfg.Duration,
				Gain:         units.MaxModifier,
			},
			Metrics: func() []sim.Metric {
				return []sim.Metric{metrics.NewPeak(), metrics.NewRMS(), metrics.NewActiveFraction()}
			},
		})
	}

	results := sim.RunBatch(context.Background(), scenarios)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "kind\tpeak\trms\tactive")
	for _, br := range results {
		if br.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", br.Name, br.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.0f\t%.0f\t%.2f\n",
			br.Name,
			br.Result.Metrics["peak_magnitude"],
			br.Result.Metrics["rms_magnitude"],
			br.Result.Metrics["active_fraction"])
	}
	return w.Flush()
}

func plotWaveforms(cmd *cobra.Command, args []string) error {
	waveforms := []struct {
		name string
		fn   effect.Waveform
	}{
		{"sine", effect.SineWave},
		{"square", effect.SquareWave},
		{"triangle", effect.TriangleWave},
		{"sawtooth_up", effect.SawtoothUpWave},
		{"sawtooth_down", effect.SawtoothDownWave},
	}
	for _, wf := range waveforms {
		series := make([]float64, 72)
		for i := range series {
			series[i] = wf.fn(float64(i) * units.FullCircle / float64(len(series)))
		}
		fmt.Println(asciigraph.Plot(series, asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption(wf.name)))
		fmt.Println()
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runs, err := store.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "id\tkind\ttimestamp\tduration")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dms\n", run.ID, run.Kind, run.Timestamp.Format("2006-01-02 15:04:05"), run.Duration)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
