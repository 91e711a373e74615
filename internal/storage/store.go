// Package storage keeps headless runs on disk: one directory per run with a
// metadata.json and a per-frame series.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/starfield/internal/starfield"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "series.csv"
)

var seriesHeader = []string{"frame", "population", "resets", "mean_speed", "max_size"}

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
	ID         string             `json:"id"`
	Preset     string             `json:"preset"`
	Timestamp  time.Time          `json:"timestamp"`
	Seed       int64              `json:"seed"`
	Width      float64            `json:"width"`
	Height     float64            `json:"height"`
	Population int                `json:"population"`
	Mode       string             `json:"mode"`
	Frames     int                `json:"frames"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Series is the per-frame record of a run, one slice entry per frame.
type Series struct {
	Frames     []int
	Population []float64
	Resets     []float64
	MeanSpeed  []float64
	MaxSize    []float64
}

func (s Series) Len() int { return len(s.Frames) }

// Save writes meta and result under a new run id. ID, Timestamp, Frames and
// Metrics are filled in from the result.
func (s *Store) Save(meta RunMetadata, result *starfield.Result) (string, error) {
	now := time.Now()
	name := meta.Preset
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Frames = result.Frames
	meta.Metrics = result.Metrics

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", fmt.Errorf("write series: %w", err)
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeSeries(path string, result *starfield.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(seriesHeader); err != nil {
		return err
	}
	for i := 0; i < result.Frames; i++ {
		row := []string{
			strconv.Itoa(i),
			formatFloat(result.Population[i]),
			formatFloat(result.Resets[i]),
			formatFloat(result.MeanSpeed[i]),
			formatFloat(result.MaxSize[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns every readable run, newest first. Directories without valid
// metadata are skipped.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata for %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadSeries reads a run's per-frame series. Malformed rows are skipped.
func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for _, record := range records[1:] {
		if len(record) < len(seriesHeader) {
			continue
		}
		frame, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals, ok := parseFloats(record[1:len(seriesHeader)])
		if !ok {
			continue
		}
		series.Frames = append(series.Frames, frame)
		series.Population = append(series.Population, vals[0])
		series.Resets = append(series.Resets, vals[1])
		series.MeanSpeed = append(series.MeanSpeed, vals[2])
		series.MaxSize = append(series.MaxSize, vals[3])
	}
	return series, nil
}

func parseFloats(fields []string) ([]float64, bool) {
	vals := make([]float64, len(fields))
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}
