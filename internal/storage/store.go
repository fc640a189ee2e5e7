package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/sampler"
	"github.com/san-kum/wavecurve/internal/trajectory"
	"github.com/san-kum/wavecurve/internal/wave"
)

var ErrRunNotFound = errors.New("storage: run not found")

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

var sampleHeader = []string{
	"t", "theta",
	"base_x", "base_y",
	"normal_x", "normal_y",
	"arc_length", "amplitude", "normal_offset",
	"x", "y",
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

func (s *Store) Dir() string {
	return s.baseDir
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Curve     string             `json:"curve"`
	Timestamp time.Time          `json:"timestamp"`
	Theta     float64            `json:"theta"`
	Ta        float64            `json:"ta"`
	TStart    float64            `json:"t_start"`
	TEnd      float64            `json:"t_end"`
	Samples   int                `json:"samples"`
	Kernel    trajectory.Params  `json:"kernel"`
	ElapsedMS float64            `json:"elapsed_ms"`
	Metrics   map[string]float64 `json:"metrics"`
}

// NewMetadata fills the sampling fields of a run record from a result.
func NewMetadata(curve string, kernel trajectory.Params, result *sampler.Result) RunMetadata {
	cfg := result.Config
	return RunMetadata{
		Curve:     curve,
		Theta:     cfg.Theta,
		Ta:        cfg.Ta,
		TStart:    cfg.TStart,
		TEnd:      cfg.TEnd,
		Samples:   len(result.Samples),
		Kernel:    kernel,
		ElapsedMS: float64(result.Elapsed.Microseconds()) / 1000,
		Metrics:   result.Metrics,
	}
}

// Save writes the metadata and samples of a run. An empty meta.ID is
// replaced with a generated one; the ID used is returned.
func (s *Store) Save(meta RunMetadata, result *sampler.Result) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Curve, now.UnixNano())
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	runDir := filepath.Join(s.baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteSamples(csvFile, result.Samples); err != nil {
		return "", fmt.Errorf("storage: write samples: %w", err)
	}
	return meta.ID, nil
}

// WriteSamples encodes samples as CSV with a header row.
func WriteSamples(out io.Writer, samples []wave.Sample) error {
	w := csv.NewWriter(out)
	if err := w.Write(sampleHeader); err != nil {
		return err
	}
	for _, sm := range samples {
		row := []string{
			formatFloat(sm.T), formatFloat(sm.Theta),
			formatFloat(sm.Base.X), formatFloat(sm.Base.Y),
			formatFloat(sm.Normal.X), formatFloat(sm.Normal.Y),
			formatFloat(sm.ArcLength), formatFloat(sm.Amplitude), formatFloat(sm.NormalOffset),
			formatFloat(sm.Point.X), formatFloat(sm.Point.Y),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns every readable run, oldest first. Directories without valid
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
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: decode %s metadata: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]wave.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	samples, err := ReadSamples(file)
	if err != nil {
		return nil, fmt.Errorf("storage: read %s samples: %w", runID, err)
	}
	return samples, nil
}

// ReadSamples decodes CSV written by WriteSamples.
func ReadSamples(in io.Reader) ([]wave.Sample, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = len(sampleHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []wave.Sample{}, nil
	}

	samples := make([]wave.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, sampleHeader[j], err)
			}
			vals[j] = v
		}
		samples = append(samples, wave.Sample{
			T:            vals[0],
			Theta:        vals[1],
			Base:         geom.Pt(vals[2], vals[3]),
			Normal:       geom.Vec(vals[4], vals[5]),
			ArcLength:    vals[6],
			Amplitude:    vals[7],
			NormalOffset: vals[8],
			Point:        geom.Pt(vals[9], vals[10]),
		})
	}
	return samples, nil
}

func (s *Store) Delete(runID string) error {
	runDir := filepath.Join(s.baseDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, metadataFile)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return err
	}
	return os.RemoveAll(runDir)
}
