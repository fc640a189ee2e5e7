package curves

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/wavecurve/internal/trajectory"
)

var ErrUnknownCurve = errors.New("curves: unknown curve")

type entry struct {
	family      *trajectory.Family
	curve       trajectory.Curve
	description string
}

type Registry struct {
	entries map[string]entry
}

func NewRegistry() *Registry {
	r := &Registry{entries: make(map[string]entry)}

	r.mustRegister(LineFamily, Line{}, "unit-speed line, theta = heading")
	r.mustRegister(CircleFamily, Circle{}, "circle of radius 1+theta")
	r.mustRegister(EllipseFamily, Ellipse{}, "ellipse with semi-axes 1 and theta")
	r.mustRegister(LissajousFamily, Lissajous{}, "3:2 lissajous figure, theta = phase")
	r.mustRegister(RoseFamily, Rose{}, "rose r = cos((2+theta) t)")
	r.mustRegister(SpiralFamily, Spiral{}, "archimedean spiral, theta = rotation")
	r.mustRegister(CardioidFamily, Cardioid{}, "cardioid with a cusp at t = 0")

	return r
}

func (r *Registry) mustRegister(family *trajectory.Family, curve trajectory.Curve, desc string) {
	if err := r.Register(family, curve, desc); err != nil {
		panic(err)
	}
}

// Register adds a family under its name, replacing any previous entry.
func (r *Registry) Register(family *trajectory.Family, curve trajectory.Curve, description string) error {
	if family == nil || curve == nil {
		return fmt.Errorf("curves: register: nil family or curve")
	}
	if err := family.Validate(); err != nil {
		return fmt.Errorf("curves: register %q: %w", family.Name, err)
	}
	r.entries[family.Name] = entry{family: family, curve: curve, description: description}
	return nil
}

// Get builds a trajectory for the named family with its default parameters.
func (r *Registry) Get(name string) (*trajectory.Trajectory, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurve, name)
	}
	return trajectory.New(e.family, e.curve)
}

// GetWithParams builds a trajectory for the named family using p instead of
// the family's parameters. The registered family is left untouched.
func (r *Registry) GetWithParams(name string, p trajectory.Params) (*trajectory.Trajectory, error) {
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurve, name)
	}
	return trajectory.New(e.family.WithParams(p), e.curve)
}

func (r *Registry) Describe(name string) string {
	return r.entries[name].description
}

func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
