package curves

import (
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

var CircleFamily = trajectory.NewFamily("circle", func(_, theta float64) float64 {
	return 0.05 * (1 + theta)
})

type Circle struct{}

func (Circle) Position(t, theta float64) geom.Point {
	r := 1 + theta
	s, c := math.Sincos(t)
	return geom.Pt(r*c, r*s)
}

func (Circle) Velocity(t, theta float64) geom.Vec2 {
	r := 1 + theta
	s, c := math.Sincos(t)
	return geom.Vec(-r*s, r*c)
}

var EllipseFamily = trajectory.NewFamily("ellipse", func(_, _ float64) float64 { return 0.05 })

// Ellipse has semi-axes 1 and theta.
type Ellipse struct{}

func (Ellipse) Position(t, theta float64) geom.Point {
	s, c := math.Sincos(t)
	return geom.Pt(c, theta*s)
}

var CardioidFamily = trajectory.NewFamily("cardioid", func(_, _ float64) float64 { return 0.05 })

// Cardioid is r = (1+theta)(1-cos t). Its velocity vanishes at t = 0.
type Cardioid struct{}

func (Cardioid) Position(t, theta float64) geom.Point {
	s, c := math.Sincos(t)
	r := (1 + theta) * (1 - c)
	return geom.Pt(r*c, r*s)
}

func (Cardioid) Velocity(t, theta float64) geom.Vec2 {
	s, c := math.Sincos(t)
	k := 1 + theta
	r := k * (1 - c)
	dr := k * s
	return geom.Vec(dr*c-r*s, dr*s+r*c)
}
