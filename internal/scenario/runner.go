package scenario

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/wavecurve/internal/analysis"
	"github.com/san-kum/wavecurve/internal/config"
	"github.com/san-kum/wavecurve/internal/curves"
	"github.com/san-kum/wavecurve/internal/metrics"
	"github.com/san-kum/wavecurve/internal/sampler"
	"github.com/san-kum/wavecurve/internal/storage"
)

type StepResult struct {
	Step   Step
	Result *sampler.Result
	// RunID is set when the step was saved.
	RunID string
}

type SweepPoint struct {
	Theta      float64
	Wavelength float64
	Metrics    map[string]float64
}

type Trial struct {
	ID     int
	Theta  float64
	Ta     float64
	Finite bool
	// Fallbacks counts samples that used the fallback normal.
	Fallbacks int
}

type Report struct {
	Scenario string
	Steps    []StepResult
	Sweep    []SweepPoint
	Trials   []Trial
}

type Runner struct {
	registry *curves.Registry
	store    *storage.Store
	log      *zap.Logger
}

// NewRunner creates a runner. A nil store disables save_as; a nil logger is
// replaced with a no-op one.
func NewRunner(registry *curves.Registry, store *storage.Store, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{registry: registry, store: store, log: log.Named("scenario")}
}

// Run executes the steps, then the sweep, then the Monte Carlo block.
func (r *Runner) Run(ctx context.Context, sc *Scenario) (*Report, error) {
	report := &Report{Scenario: sc.Name}

	for i, step := range sc.Steps {
		r.log.Info("step", zap.Int("index", i+1), zap.Int("of", len(sc.Steps)), zap.String("curve", step.Curve))
		res, err := r.RunStep(ctx, step)
		if err != nil {
			return report, fmt.Errorf("step %d: %w", i+1, err)
		}
		report.Steps = append(report.Steps, *res)
	}

	if sc.Sweep != nil {
		points, err := r.RunSweep(ctx, *sc.Sweep)
		if err != nil {
			return report, fmt.Errorf("sweep: %w", err)
		}
		report.Sweep = points
	}

	if sc.MonteCarlo != nil {
		trials, err := r.RunMonteCarlo(ctx, *sc.MonteCarlo)
		if err != nil {
			return report, fmt.Errorf("monte carlo: %w", err)
		}
		report.Trials = trials
	}

	return report, nil
}

func (r *Runner) sampler(cfg *config.Config) (*sampler.Sampler, error) {
	tr, err := r.registry.GetWithParams(cfg.Curve, cfg.Kernel)
	if err != nil {
		return nil, err
	}
	s := sampler.New(tr, r.log)
	for _, m := range metrics.DefaultMetrics() {
		s.AddMetric(m)
	}
	return s, nil
}

func (r *Runner) RunStep(ctx context.Context, step Step) (*StepResult, error) {
	cfg, err := step.Config()
	if err != nil {
		return nil, err
	}
	s, err := r.sampler(cfg)
	if err != nil {
		return nil, err
	}

	result, err := s.Run(ctx, cfg.Sampler())
	if err != nil {
		return nil, err
	}

	out := &StepResult{Step: step, Result: result}
	if step.SaveAs != "" && r.store != nil {
		meta := storage.NewMetadata(cfg.Curve, cfg.Kernel, result)
		meta.ID = step.SaveAs
		id, err := r.store.Save(meta, result)
		if err != nil {
			return nil, err
		}
		out.RunID = id
		r.log.Info("saved", zap.String("run", id))
	}
	return out, nil
}

func (r *Runner) RunSweep(ctx context.Context, sw Sweep) ([]SweepPoint, error) {
	cfg := sw.base()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := r.sampler(cfg)
	if err != nil {
		return nil, err
	}

	results, err := s.Sweep(ctx, cfg.Sampler(), sw.Thetas())
	if err != nil {
		return nil, err
	}

	points := make([]SweepPoint, len(results))
	for i, res := range results {
		wl, err := analysis.DominantWavelength(res.ArcLengths(), res.Offsets())
		if err != nil {
			wl = math.NaN()
		}
		points[i] = SweepPoint{Theta: res.Config.Theta, Wavelength: wl, Metrics: res.Metrics}
		r.log.Debug("sweep point", zap.Int("index", i+1), zap.Float64("theta", points[i].Theta))
	}
	return points, nil
}

func (r *Runner) RunMonteCarlo(ctx context.Context, mc MonteCarlo) ([]Trial, error) {
	cfg := config.DefaultConfig()
	cfg.Curve = mc.Curve
	cfg.Theta = mc.Theta
	if mc.Ta != 0 {
		cfg.Ta = mc.Ta
	}
	if mc.Samples != 0 {
		cfg.Samples = mc.Samples
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := r.sampler(cfg)
	if err != nil {
		return nil, err
	}

	seed := mc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	trials := make([]Trial, 0, mc.NumTrials)
	for i := 0; i < mc.NumTrials; i++ {
		sc := cfg.Sampler()
		sc.ValidatePoints = false
		sc.Theta = cfg.Theta + (rng.Float64()-0.5)*2*mc.Perturbation
		sc.Ta = cfg.Ta * (1 + (rng.Float64()-0.5)*mc.Perturbation)
		if sc.Ta == 0 {
			sc.Ta = cfg.Ta
		}

		res, err := s.Run(ctx, sc)
		if err != nil {
			return trials, err
		}

		trial := Trial{ID: i, Theta: sc.Theta, Ta: sc.Ta, Finite: true}
		for _, smp := range res.Samples {
			if !smp.Point.IsFinite() {
				trial.Finite = false
			}
		}
		trial.Fallbacks = int(res.Metrics["fallback_normals"])
		trials = append(trials, trial)

		if (i+1)%10 == 0 {
			r.log.Debug("monte carlo", zap.Int("done", i+1), zap.Int("of", mc.NumTrials))
		}
	}
	return trials, nil
}

// TrialStats counts finite and non-finite trials.
func TrialStats(trials []Trial) (finite, nonFinite int) {
	for _, t := range trials {
		if t.Finite {
			finite++
		} else {
			nonFinite++
		}
	}
	return
}
