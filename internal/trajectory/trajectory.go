package trajectory

import (
	"fmt"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/quadrature"
)

// Trajectory is a curve bound to its family.
type Trajectory struct {
	curve  Curve
	family *Family
	rule   *quadrature.Rule
}

func New(family *Family, curve Curve) (*Trajectory, error) {
	if curve == nil {
		return nil, ErrNilCurve
	}
	if family == nil {
		return nil, fmt.Errorf("%w: nil family", ErrNoAmplitude)
	}
	if err := family.Validate(); err != nil {
		return nil, err
	}
	return &Trajectory{
		curve:  curve,
		family: family,
		rule:   quadrature.Legendre(family.Params.Nodes),
	}, nil
}

func (tr *Trajectory) Curve() Curve    { return tr.curve }
func (tr *Trajectory) Family() *Family { return tr.family }
func (tr *Trajectory) Params() Params  { return tr.family.Params }

func (tr *Trajectory) Position(t, theta float64) geom.Point {
	return tr.curve.Position(t, theta)
}

// Velocity returns the curve's own derivative when it implements
// [Velocitier], and a forward finite difference otherwise.
func (tr *Trajectory) Velocity(t, theta float64) geom.Vec2 {
	if v, ok := tr.curve.(Velocitier); ok {
		return v.Velocity(t, theta)
	}
	return FiniteDifference(tr.curve, t, theta, tr.family.Params.Step)
}

func (tr *Trajectory) Speed(t, theta float64) float64 {
	return tr.Velocity(t, theta).Hypot()
}

func (tr *Trajectory) Amplitude(t, theta float64) float64 {
	return tr.family.Amplitude(t, theta)
}

// ArcLength integrates the speed from 0 to t. The result is negative for
// t < 0.
func (tr *Trajectory) ArcLength(t, theta float64) float64 {
	ds := func(u float64) float64 {
		return tr.Speed(u, theta)
	}
	return tr.rule.Integrate(ds, 0, t)
}

// UnitNormal returns the velocity rotated 90° counter-clockwise and
// normalized. Below the family's epsilon speed it returns [FallbackNormal].
func (tr *Trajectory) UnitNormal(t, theta float64) geom.Vec2 {
	vel := tr.Velocity(t, theta)
	ds := vel.Hypot()
	if ds < tr.family.Params.Epsilon {
		return FallbackNormal
	}
	return vel.Perp().Div(ds)
}

// FiniteDifference approximates dP/dt with a forward step h.
func FiniteDifference(c Curve, t, theta, h float64) geom.Vec2 {
	p0 := c.Position(t, theta)
	p1 := c.Position(t+h, theta)
	return p1.Sub(p0).Div(h)
}
