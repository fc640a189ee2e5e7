package wave

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
)

// ErrInvalidParameter is returned by the checked entry points for ta = 0 or
// non-finite inputs.
var ErrInvalidParameter = errors.New("wave: invalid parameter")

// Path is the trajectory capability the wave functions are derived from.
type Path interface {
	Position(t, theta float64) geom.Point
	Amplitude(t, theta float64) float64
	ArcLength(t, theta float64) float64
	UnitNormal(t, theta float64) geom.Vec2
}

// NormalOffset returns the signed displacement along the normal at (t, theta).
func NormalOffset(p Path, t, theta, ta float64) float64 {
	return displacement(p.Amplitude(t, theta), p.ArcLength(t, theta), ta)
}

// Offset returns the base point displaced along its unit normal.
func Offset(p Path, t, theta, ta float64) geom.Point {
	return Evaluate(p, t, theta, ta).Point
}

// Sample holds every quantity computed on the way to an offset point.
type Sample struct {
	T            float64
	Theta        float64
	Base         geom.Point
	Normal       geom.Vec2
	ArcLength    float64
	Amplitude    float64
	NormalOffset float64
	Point        geom.Point
}

// Evaluate computes the offset point and its intermediates, evaluating the
// arc length integral once.
func Evaluate(p Path, t, theta, ta float64) Sample {
	s := Sample{
		T:         t,
		Theta:     theta,
		Base:      p.Position(t, theta),
		Normal:    p.UnitNormal(t, theta),
		ArcLength: p.ArcLength(t, theta),
		Amplitude: p.Amplitude(t, theta),
	}
	s.NormalOffset = displacement(s.Amplitude, s.ArcLength, ta)
	s.Point = s.Base.Translate(s.Normal.Mul(s.NormalOffset))
	return s
}

func displacement(amplitude, arcLength, ta float64) float64 {
	return amplitude * math.Sin(arcLength/ta)
}

// Validate reports whether (t, theta, ta) are acceptable wave inputs.
func Validate(t, theta, ta float64) error {
	switch {
	case ta == 0:
		return fmt.Errorf("%w: ta must be non-zero", ErrInvalidParameter)
	case !finite(t), !finite(theta), !finite(ta):
		return fmt.Errorf("%w: non-finite input (t=%g, theta=%g, ta=%g)", ErrInvalidParameter, t, theta, ta)
	}
	return nil
}

// CheckedOffset is [Offset] with input validation.
func CheckedOffset(p Path, t, theta, ta float64) (geom.Point, error) {
	if err := Validate(t, theta, ta); err != nil {
		return geom.Point{}, err
	}
	return Offset(p, t, theta, ta), nil
}

// CheckedNormalOffset is [NormalOffset] with input validation.
func CheckedNormalOffset(p Path, t, theta, ta float64) (float64, error) {
	if err := Validate(t, theta, ta); err != nil {
		return 0, err
	}
	return NormalOffset(p, t, theta, ta), nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
