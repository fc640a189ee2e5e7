package curves

import (
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

var LineFamily = trajectory.NewFamily("line", func(_, _ float64) float64 { return 0.1 })

// Line travels at unit speed with heading theta.
type Line struct{}

func (Line) Position(t, theta float64) geom.Point {
	s, c := math.Sincos(theta)
	return geom.Pt(t*c, t*s)
}

func (Line) Velocity(_, theta float64) geom.Vec2 {
	s, c := math.Sincos(theta)
	return geom.Vec(c, s)
}
