package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/wavecurve/internal/curves"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Curve != "circle" {
		t.Errorf("expected curve circle, got %s", cfg.Curve)
	}
	if cfg.Kernel != trajectory.DefaultParams() {
		t.Errorf("unexpected kernel params %+v", cfg.Kernel)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no curve", func(c *Config) { c.Curve = "" }},
		{"zero ta", func(c *Config) { c.Ta = 0 }},
		{"one sample", func(c *Config) { c.Samples = 1 }},
		{"reversed range", func(c *Config) { c.TStart, c.TEnd = 2, 1 }},
		{"zero nodes", func(c *Config) { c.Kernel.Nodes = 0 }},
		{"zero step", func(c *Config) { c.Kernel.Step = 0 }},
		{"zero width", func(c *Config) { c.Output.Width = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestValidate_WrapsCause(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Kernel.Nodes = 0
	if err := cfg.Validate(); !errors.Is(err, trajectory.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams in chain, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wave.yaml")
	data := []byte(`
curve: rose
theta: 1.5
ta: 0.02
t_end: 12.5
kernel:
  step: 0.001
  nodes: 24
  epsilon: 0.000001
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	want := DefaultConfig()
	want.Curve = "rose"
	want.Theta = 1.5
	want.Ta = 0.02
	want.TEnd = 12.5
	want.Kernel = trajectory.Params{Step: 0.001, Nodes: 24, Epsilon: 1e-6}

	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", d)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("curve: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadOver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("samples: 99\n"), 0644); err != nil {
		t.Fatal(err)
	}

	base := GetPreset("rose", "seven")
	cfg, err := LoadOver(path, base)
	if err != nil {
		t.Fatal(err)
	}

	want := GetPreset("rose", "seven")
	want.Samples = 99
	if d := cmp.Diff(want, cfg); d != "" {
		t.Errorf("LoadOver mismatch (-want +got):\n%s", d)
	}
	if base.Samples != 4096 {
		t.Error("LoadOver must not modify base")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.yaml")
	cfg := GetPreset("ellipse", "coarse")

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if d := cmp.Diff(cfg, got); d != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", d)
	}
}

func TestSampler(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Theta = 0.3
	cfg.Workers = 3

	sc := cfg.Sampler()
	if sc.Theta != 0.3 || sc.Ta != cfg.Ta || sc.Samples != cfg.Samples || sc.Workers != 3 {
		t.Errorf("unexpected sampler config %+v", sc)
	}

	cfg.Workers = 0
	if cfg.Sampler().Workers < 1 {
		t.Error("workers should fall back to a positive default")
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("line", "sine")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Ta != 0.5 {
		t.Errorf("expected ta 0.5, got %f", cfg.Ta)
	}

	cfg.Ta = 99
	if GetPreset("line", "sine").Ta != 0.5 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("line", "nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if GetPreset("nonexistent", "sine") != nil {
		t.Error("expected nil for nonexistent curve")
	}
}

func TestListPresets(t *testing.T) {
	if d := cmp.Diff([]string{"dense", "sine", "tilted"}, ListPresets("line")); d != "" {
		t.Errorf("ListPresets mismatch (-want +got):\n%s", d)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for nonexistent curve")
	}
}

func TestPresets_Valid(t *testing.T) {
	reg := curves.NewRegistry()
	for curve, presets := range Presets {
		if _, err := reg.Get(curve); err != nil {
			t.Errorf("presets for unknown curve %q", curve)
		}
		for name, cfg := range presets {
			if cfg.Curve != curve {
				t.Errorf("%s/%s: curve field is %q", curve, name, cfg.Curve)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("%s/%s: %v", curve, name, err)
			}
		}
	}
}
