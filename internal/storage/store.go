// Package storage persists simulation runs under a data directory: one
// metadata JSON plus a per-poll CSV per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/senna-k/ffbsim/internal/actuator"
	"github.com/senna-k/ffbsim/internal/sim"
	"github.com/senna-k/ffbsim/internal/units"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string             `json:"id"`
	Kind         string             `json:"kind"`
	Timestamp    time.Time          `json:"timestamp"`
	PollInterval uint32             `json:"poll_interval_ms"`
	Duration     uint32             `json:"duration_ms"`
	Gain         uint16             `json:"gain"`
	Strength     float64            `json:"strength"`
	Metrics      map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata and per-poll series, returning the run ID.
func (s *Store) Save(kind string, cfg sim.Config, strength float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", kind, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:           runID,
		Kind:         kind,
		Timestamp:    time.Now(),
		PollInterval: cfg.PollInterval,
		Duration:     cfg.Duration,
		Gain:         cfg.Gain,
		Strength:     strength,
		Metrics:      result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "polls.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := []string{"time_ms"}
	for i := 0; i < units.MaxAxes; i++ {
		header = append(header, fmt.Sprintf("axis%d", i))
	}
	for i := 0; i < actuator.NumSlots; i++ {
		header = append(header, actuator.SlotName(i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i := range result.Times {
		row := []string{strconv.FormatUint(uint64(result.Times[i]), 10)}
		for _, v := range result.Vectors[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
		}
		for _, v := range result.Outputs[i] {
			row = append(row, strconv.FormatUint(uint64(v), 10))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the metadata of every stored run.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads back a run's poll times and the stored numeric columns.
func (s *Store) LoadSeries(runID string) (times []uint32, rows [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "polls.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []uint32{}, [][]float64{}, nil
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseUint(record[0], 10, 32)
		if err != nil {
			continue
		}
		times = append(times, uint32(t))

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return times, rows, nil
}
