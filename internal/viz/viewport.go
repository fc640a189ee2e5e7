package viz

import (
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
)

// Viewport maps world coordinates onto a pixel grid with y pointing down.
// Both axes share one scale so circles stay round.
type Viewport struct {
	CenterX, CenterY float64
	Scale            float64
	Width, Height    int
}

// FitViewport returns a viewport that fits all finite points into a
// width x height pixel grid with a small margin.
func FitViewport(points []geom.Point, width, height int) Viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	vp := Viewport{Width: width, Height: height, Scale: 1}
	if minX > maxX {
		return vp
	}
	vp.CenterX = (minX + maxX) / 2
	vp.CenterY = (minY + maxY) / 2

	// Braille sub-pixels are about twice as tall as they are wide on most
	// terminals, so x gets double the pixels per unit.
	spanX := (maxX - minX) * 2
	spanY := maxY - minY
	usableW := float64(width-1) * 0.9
	usableH := float64(height-1) * 0.9
	switch {
	case spanX == 0 && spanY == 0:
		vp.Scale = 1
	case spanX == 0:
		vp.Scale = usableH / spanY
	case spanY == 0:
		vp.Scale = usableW / spanX
	default:
		vp.Scale = min(usableW/spanX, usableH/spanY)
	}
	return vp
}

// Project returns the pixel coordinates of p.
func (vp Viewport) Project(p geom.Point) (int, int) {
	x := float64(vp.Width-1)/2 + (p.X-vp.CenterX)*vp.Scale*2
	y := float64(vp.Height-1)/2 - (p.Y-vp.CenterY)*vp.Scale
	return int(math.Round(x)), int(math.Round(y))
}
