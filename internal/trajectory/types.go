package trajectory

import (
	"fmt"
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/quadrature"
)

const (
	DefaultStep    = 1e-4
	DefaultNodes   = quadrature.DefaultNodes
	DefaultEpsilon = 1e-6
)

// FallbackNormal is returned by [Trajectory.UnitNormal] at near-stationary
// points.
var FallbackNormal = geom.Vec(1, 0)

// Curve is a parametric position mapping. Implementations must be pure.
type Curve interface {
	Position(t, theta float64) geom.Point
}

// Velocitier is implemented by curves with a closed-form derivative.
type Velocitier interface {
	Velocity(t, theta float64) geom.Vec2
}

type AmplitudeFunc func(t, theta float64) float64

// Params are the numerical constants of the derived operations.
type Params struct {
	Step    float64 `yaml:"step" json:"step"`
	Nodes   int     `yaml:"nodes" json:"nodes"`
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
}

func DefaultParams() Params {
	return Params{
		Step:    DefaultStep,
		Nodes:   DefaultNodes,
		Epsilon: DefaultEpsilon,
	}
}

func (p Params) Validate() error {
	if !(p.Step > 0) || math.IsInf(p.Step, 0) {
		return fmt.Errorf("%w: step must be positive, got %g", ErrInvalidParams, p.Step)
	}
	if p.Nodes < 1 {
		return fmt.Errorf("%w: nodes must be at least 1, got %d", ErrInvalidParams, p.Nodes)
	}
	if !(p.Epsilon >= 0) {
		return fmt.Errorf("%w: epsilon must be non-negative, got %g", ErrInvalidParams, p.Epsilon)
	}
	return nil
}

// Family describes a curve family. Amplitude belongs to the family, not to
// any one curve value.
type Family struct {
	Name      string
	Amplitude AmplitudeFunc
	Params    Params
}

func NewFamily(name string, amplitude AmplitudeFunc) *Family {
	return &Family{
		Name:      name,
		Amplitude: amplitude,
		Params:    DefaultParams(),
	}
}

// WithParams returns a copy of the family using p.
func (f *Family) WithParams(p Params) *Family {
	c := *f
	c.Params = p
	return &c
}

func (f *Family) Validate() error {
	if f.Amplitude == nil {
		return fmt.Errorf("%w: %q", ErrNoAmplitude, f.Name)
	}
	return f.Params.Validate()
}
