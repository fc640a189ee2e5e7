package sampler

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"github.com/san-kum/wavecurve/internal/wave"
)

var (
	// ErrInvalidConfig indicates an unusable sampling range or count.
	ErrInvalidConfig = errors.New("sampler: invalid config")

	// ErrNonFinite indicates a sample evaluated to NaN or Inf.
	ErrNonFinite = errors.New("sampler: non-finite sample")
)

type Config struct {
	Theta   float64
	Ta      float64
	TStart  float64
	TEnd    float64
	Samples int
	Workers int

	// ValidatePoints rejects NaN/Inf samples with a SampleError.
	ValidatePoints bool
}

func DefaultConfig() Config {
	return Config{
		Theta:          0,
		Ta:             0.05,
		TStart:         0,
		TEnd:           2 * math.Pi,
		Samples:        512,
		Workers:        runtime.GOMAXPROCS(0),
		ValidatePoints: true,
	}
}

func (c Config) Validate() error {
	if c.Samples < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidConfig, c.Samples)
	}
	if !(c.TEnd > c.TStart) {
		return fmt.Errorf("%w: t_end (%g) must exceed t_start (%g)", ErrInvalidConfig, c.TEnd, c.TStart)
	}
	if c.Ta == 0 {
		return fmt.Errorf("%w: ta must be non-zero", ErrInvalidConfig)
	}
	for _, v := range []float64{c.Theta, c.Ta, c.TStart, c.TEnd} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite parameter %g", ErrInvalidConfig, v)
		}
	}
	return nil
}

// Times returns the evenly spaced parameter values, endpoints included.
func (c Config) Times() []float64 {
	ts := make([]float64, c.Samples)
	step := (c.TEnd - c.TStart) / float64(c.Samples-1)
	for i := range ts {
		ts[i] = c.TStart + float64(i)*step
	}
	ts[len(ts)-1] = c.TEnd
	return ts
}

type Result struct {
	Config  Config
	Samples []wave.Sample
	Metrics map[string]float64
	Elapsed time.Duration
}

// Offsets returns the normal offset of every sample.
func (r *Result) Offsets() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.NormalOffset
	}
	return out
}

// ArcLengths returns the arc length of every sample.
func (r *Result) ArcLengths() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.ArcLength
	}
	return out
}

// SampleError wraps an error with the sample that produced it.
type SampleError struct {
	Index   int
	T       float64
	Theta   float64
	Wrapped error
}

func (e *SampleError) Error() string {
	return fmt.Sprintf("sample %d (t=%.4f, theta=%.4f): %v", e.Index, e.T, e.Theta, e.Wrapped)
}

func (e *SampleError) Unwrap() error {
	return e.Wrapped
}
