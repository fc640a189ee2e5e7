package sampler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/wavecurve/internal/metrics"
	"github.com/san-kum/wavecurve/internal/wave"
)

// minChunk is the smallest number of samples worth a goroutine.
const minChunk = 16

type Sampler struct {
	path    wave.Path
	metrics []metrics.Metric
	log     *zap.Logger
}

func New(path wave.Path, log *zap.Logger) *Sampler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sampler{
		path:    path,
		metrics: make([]metrics.Metric, 0),
		log:     log.Named("sampler"),
	}
}

func (s *Sampler) AddMetric(m metrics.Metric) { s.metrics = append(s.metrics, m) }

func (s *Sampler) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	ts := cfg.Times()
	samples := make([]wave.Sample, len(ts))

	workers := chunkCount(len(ts), cfg.Workers)
	chunkSize := (len(ts) + workers - 1) / workers

	s.log.Debug("sampling",
		zap.Float64("theta", cfg.Theta),
		zap.Float64("ta", cfg.Ta),
		zap.Int("samples", len(ts)),
		zap.Int("workers", workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunkSize
		hi := min(lo+chunkSize, len(ts))
		if lo >= hi {
			break
		}
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				smp := wave.Evaluate(s.path, ts[i], cfg.Theta, cfg.Ta)
				if cfg.ValidatePoints && !(smp.Point.IsFinite() && smp.Normal.IsFinite()) {
					return &SampleError{Index: i, T: ts[i], Theta: cfg.Theta, Wrapped: ErrNonFinite}
				}
				samples[i] = smp
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{
		Config:  cfg,
		Samples: samples,
		Metrics: make(map[string]float64, len(s.metrics)),
	}

	for _, m := range s.metrics {
		m.Reset()
	}
	for _, smp := range samples {
		for _, m := range s.metrics {
			m.Observe(smp)
		}
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	result.Elapsed = time.Since(start)
	s.log.Debug("sampled", zap.Duration("elapsed", result.Elapsed))

	return result, nil
}

// Sweep runs the sampler once per theta, in order.
func (s *Sampler) Sweep(ctx context.Context, cfg Config, thetas []float64) ([]*Result, error) {
	results := make([]*Result, 0, len(thetas))
	for _, theta := range thetas {
		c := cfg
		c.Theta = theta
		res, err := s.Run(ctx, c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// chunkCount picks the number of goroutines for n samples.
func chunkCount(n, workers int) int {
	if workers < 1 {
		workers = 1
	}
	if n/minChunk < workers {
		workers = n / minChunk
	}
	return max(workers, 1)
}
