// Package store persists sweep and single-cycle runs as a metadata.json
// plus points.csv pair per run directory, so past runs can be listed,
// re-plotted, and exported.
package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/sweep"
)

// Columns in points.csv, after the leading swept-value column.
var resultColumns = []string{
	"T2", "P2", "T3", "P3", "T4", "P4", "T5", "P5",
	"V_exit", "M_exit", "thrust_N", "specific_impulse_s", "fuel_flow_kg_s",
}

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
	ID        string       `json:"id"`
	Timestamp time.Time    `json:"timestamp"`
	Variable  string       `json:"variable"`
	Points    int          `json:"points"`
	Failed    int          `json:"failed"`
	Engine    cycle.Config `json:"engine"`
	AmbientT  float64      `json:"ambient_temperature"`
	AmbientP  float64      `json:"ambient_pressure"`
}

// Save writes one sweep result under a fresh run directory and returns the
// run id.
func (s *Store) Save(cfg cycle.Config, ambient cycle.State, result *sweep.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", result.Variable, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Timestamp: time.Now(),
		Variable:  string(result.Variable),
		Points:    len(result.Points),
		Failed:    result.Failed(),
		Engine:    cfg,
		AmbientT:  ambient.Temperature,
		AmbientP:  ambient.Pressure,
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

	csvFile, err := os.Create(filepath.Join(runDir, "points.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	header := append([]string{string(result.Variable)}, resultColumns...)
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, p := range result.Points {
		if p.Err != nil {
			continue
		}
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatFloat(p.Value, 'f', 6, 64))
		values := p.Cycle.Values()
		for _, col := range resultColumns {
			row = append(row, strconv.FormatFloat(values[col], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

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

// LoadPoints reads the stored grid back as swept values plus per-point
// metric maps keyed by the csv header.
func (s *Store) LoadPoints(runID string) ([]float64, []map[string]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "points.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []float64{}, []map[string]float64{}, nil
	}

	header := records[0]
	values := make([]float64, 0, len(records)-1)
	points := make([]map[string]float64, 0, len(records)-1)

	for _, record := range records[1:] {
		if len(record) != len(header) {
			continue
		}
		v, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		point := make(map[string]float64, len(header)-1)
		for i := 1; i < len(record); i++ {
			m, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				continue
			}
			point[header[i]] = m
		}

		values = append(values, v)
		points = append(points, point)
	}

	return values, points, nil
}
