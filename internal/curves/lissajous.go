package curves

import (
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/trajectory"
)

var LissajousFamily = trajectory.NewFamily("lissajous", func(_, _ float64) float64 { return 0.04 })

type Lissajous struct{}

func (Lissajous) Position(t, theta float64) geom.Point {
	return geom.Pt(math.Sin(3*t+theta), math.Sin(2*t))
}

var RoseFamily = trajectory.NewFamily("rose", func(t, theta float64) float64 {
	return 0.03 * math.Abs(math.Cos((2+theta)*t))
})

// Rose is the polar curve r = cos(k t) with k = 2+theta.
type Rose struct{}

func (Rose) Position(t, theta float64) geom.Point {
	r := math.Cos((2 + theta) * t)
	s, c := math.Sincos(t)
	return geom.Pt(r*c, r*s)
}

var SpiralFamily = trajectory.NewFamily("spiral", func(t, _ float64) float64 {
	return 0.02 + 0.01*math.Abs(t)
})

// Spiral is the Archimedean spiral r = 0.2 t rotated by theta.
type Spiral struct{}

func (Spiral) Position(t, theta float64) geom.Point {
	r := 0.2 * t
	s, c := math.Sincos(t + theta)
	return geom.Pt(r*c, r*s)
}
