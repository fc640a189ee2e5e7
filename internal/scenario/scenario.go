package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavecurve/internal/config"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

var ErrEmptyScenario = errors.New("scenario: no steps, sweep or monte_carlo block")

// Scenario is a scripted batch of sampling runs.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Steps       []Step      `yaml:"steps"`
	Sweep       *Sweep      `yaml:"sweep,omitempty"`
	MonteCarlo  *MonteCarlo `yaml:"monte_carlo,omitempty"`
}

// Step samples one curve. Theta and the range are pointers so an explicit 0
// overrides a preset; a zero Ta or Samples is never valid and means unset.
type Step struct {
	Curve   string             `yaml:"curve"`
	Preset  string             `yaml:"preset"`
	Theta   *float64           `yaml:"theta,omitempty"`
	Ta      float64            `yaml:"ta"`
	TStart  *float64           `yaml:"t_start,omitempty"`
	TEnd    *float64           `yaml:"t_end,omitempty"`
	Samples int                `yaml:"samples"`
	Kernel  *trajectory.Params `yaml:"kernel,omitempty"`
	SaveAs  string             `yaml:"save_as"`
}

// Sweep samples one curve across evenly spaced theta values.
type Sweep struct {
	Curve    string  `yaml:"curve"`
	Ta       float64 `yaml:"ta"`
	ThetaMin float64 `yaml:"theta_min"`
	ThetaMax float64 `yaml:"theta_max"`
	NumSteps int     `yaml:"num_steps"`
	Samples  int     `yaml:"samples"`
	TStart   float64 `yaml:"t_start"`
	TEnd     float64 `yaml:"t_end"`
}

// MonteCarlo samples one curve at randomly perturbed theta and ta values.
type MonteCarlo struct {
	Curve        string  `yaml:"curve"`
	Theta        float64 `yaml:"theta"`
	Ta           float64 `yaml:"ta"`
	Perturbation float64 `yaml:"perturbation"`
	NumTrials    int     `yaml:"num_trials"`
	Samples      int     `yaml:"samples"`
	Seed         int64   `yaml:"seed"`
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("scenario: parse: %w", err)
	}
	if len(sc.Steps) == 0 && sc.Sweep == nil && sc.MonteCarlo == nil {
		return nil, ErrEmptyScenario
	}
	return &sc, nil
}

// Config resolves a step against its preset (if any) and the defaults.
func (s Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Curve, s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("scenario: unknown preset %s/%s", s.Curve, s.Preset)
		}
	}

	cfg.Curve = s.Curve
	if s.Theta != nil {
		cfg.Theta = *s.Theta
	}
	if s.Ta != 0 {
		cfg.Ta = s.Ta
	}
	if s.TStart != nil {
		cfg.TStart = *s.TStart
	}
	if s.TEnd != nil {
		cfg.TEnd = *s.TEnd
	}
	if s.Samples != 0 {
		cfg.Samples = s.Samples
	}
	if s.Kernel != nil {
		cfg.Kernel = *s.Kernel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Thetas returns the sweep's theta values, endpoints included.
func (sw Sweep) Thetas() []float64 {
	if sw.NumSteps < 2 {
		return []float64{sw.ThetaMin}
	}
	out := make([]float64, sw.NumSteps)
	step := (sw.ThetaMax - sw.ThetaMin) / float64(sw.NumSteps-1)
	for i := range out {
		out[i] = sw.ThetaMin + float64(i)*step
	}
	out[len(out)-1] = sw.ThetaMax
	return out
}

func (sw Sweep) base() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Curve = sw.Curve
	if sw.Ta != 0 {
		cfg.Ta = sw.Ta
	}
	if sw.Samples != 0 {
		cfg.Samples = sw.Samples
	}
	if sw.TStart != 0 || sw.TEnd != 0 {
		cfg.TStart, cfg.TEnd = sw.TStart, sw.TEnd
	}
	return cfg
}
