package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavecurve/internal/sampler"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

const (
	DefaultCurve   = "circle"
	DefaultTa      = 0.05
	DefaultTEnd    = 2 * math.Pi
	DefaultSamples = 512
	DefaultWidth   = 800
	DefaultHeight  = 800
)

var ErrInvalidConfig = errors.New("config: invalid config")

type Config struct {
	Curve   string            `yaml:"curve"`
	Theta   float64           `yaml:"theta"`
	Ta      float64           `yaml:"ta"`
	TStart  float64           `yaml:"t_start"`
	TEnd    float64           `yaml:"t_end"`
	Samples int               `yaml:"samples"`
	Workers int               `yaml:"workers"`
	Kernel  trajectory.Params `yaml:"kernel"`
	Output  OutputConfig      `yaml:"output"`
}

type OutputConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	BaseStroke string `yaml:"base_stroke"`
	WaveStroke string `yaml:"wave_stroke"`
}

func DefaultConfig() *Config {
	return &Config{
		Curve:   DefaultCurve,
		Ta:      DefaultTa,
		TEnd:    DefaultTEnd,
		Samples: DefaultSamples,
		Kernel:  trajectory.DefaultParams(),
		Output: OutputConfig{
			Width:      DefaultWidth,
			Height:     DefaultHeight,
			BaseStroke: "#444466",
			WaveStroke: "#00ffcc",
		},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base. Keys absent from the file
// keep the base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Curve == "" {
		return fmt.Errorf("%w: curve is required", ErrInvalidConfig)
	}
	if err := c.Kernel.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := c.Sampler().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("%w: output size must be positive, got %dx%d", ErrInvalidConfig, c.Output.Width, c.Output.Height)
	}
	return nil
}

// Sampler returns the sampling part of the config. Workers <= 0 keeps the
// sampler default.
func (c *Config) Sampler() sampler.Config {
	sc := sampler.DefaultConfig()
	sc.Theta = c.Theta
	sc.Ta = c.Ta
	sc.TStart = c.TStart
	sc.TEnd = c.TEnd
	sc.Samples = c.Samples
	if c.Workers > 0 {
		sc.Workers = c.Workers
	}
	return sc
}
