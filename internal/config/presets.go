package config

import (
	"math"
	"sort"

	"github.com/san-kum/wavecurve/internal/trajectory"
)

func preset(curve string, theta, ta, tEnd float64, samples int) *Config {
	cfg := DefaultConfig()
	cfg.Curve = curve
	cfg.Theta = theta
	cfg.Ta = ta
	cfg.TEnd = tEnd
	cfg.Samples = samples
	return cfg
}

var Presets = map[string]map[string]*Config{
	"circle": {
		"ripple": preset("circle", 0, 0.02, 2*math.Pi, 1024),
		"gear":   preset("circle", 0.5, 0.05, 2*math.Pi, 512),
		"slow":   preset("circle", 0, 0.25, 2*math.Pi, 256),
	},
	"line": {
		"sine":   preset("line", 0, 0.5, 20, 512),
		"dense":  preset("line", 0, 0.1, 10, 1024),
		"tilted": preset("line", math.Pi/4, 0.5, 20, 512),
	},
	"lissajous": {
		"classic": preset("lissajous", 0, 0.03, 2*math.Pi, 2048),
		"shifted": preset("lissajous", math.Pi/2, 0.03, 2*math.Pi, 2048),
	},
	"rose": {
		"four":  preset("rose", 0, 0.02, 2*math.Pi, 2048),
		"seven": preset("rose", 1.5, 0.02, 4*math.Pi, 4096),
	},
	"spiral": {
		"coil": preset("spiral", 0, 0.05, 8*math.Pi, 2048),
	},
	"cardioid": {
		"cusp": preset("cardioid", 0, 0.03, 2*math.Pi, 1024),
	},
	"ellipse": {
		"flat": preset("ellipse", 0.4, 0.03, 2*math.Pi, 1024),
		"coarse": func() *Config {
			cfg := preset("ellipse", 0.6, 0.05, 2*math.Pi, 512)
			cfg.Kernel = trajectory.Params{Step: 1e-3, Nodes: 16, Epsilon: trajectory.DefaultEpsilon}
			return cfg
		}(),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(curve, name string) *Config {
	curvePresets, ok := Presets[curve]
	if !ok {
		return nil
	}
	cfg, ok := curvePresets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets(curve string) []string {
	curvePresets, ok := Presets[curve]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(curvePresets))
	for name := range curvePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
