package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/wave"
)

type SVGOptions struct {
	Width      int
	Height     int
	BaseStroke string
	WaveStroke string
	Background string
	// ShowBase draws the unmodulated curve under the wave.
	ShowBase bool
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:      800,
		Height:     800,
		BaseStroke: "#444466",
		WaveStroke: "#00ffcc",
		Background: "#0a0a0a",
		ShowBase:   true,
	}
}

type bounds struct {
	minX, maxX, minY, maxY float64
}

func (b *bounds) add(p geom.Point) {
	b.minX = min(b.minX, p.X)
	b.maxX = max(b.maxX, p.X)
	b.minY = min(b.minY, p.Y)
	b.maxY = max(b.maxY, p.Y)
}

// pad grows the box by 10% per side, keeping the aspect ratio of the data.
func (b *bounds) pad() {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	span := max(rangeX, rangeY)
	if span == 0 {
		span = 1
	}
	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	half := span * 0.6
	b.minX, b.maxX = cx-half, cx+half
	b.minY, b.maxY = cy-half, cy+half
}

// project maps the square box onto the largest centered square of the
// canvas, letterboxing the longer side.
func (b bounds) project(p geom.Point, width, height int) (float64, float64) {
	scale := float64(min(width, height)) / (b.maxX - b.minX)
	cx := (b.minX + b.maxX) / 2
	cy := (b.minY + b.maxY) / 2
	x := float64(width)/2 + (p.X-cx)*scale
	y := float64(height)/2 - (p.Y-cy)*scale
	return x, y
}

// SVG renders the base curve and its wave on a shared, square-scaled frame.
// It returns "" for fewer than two samples.
func SVG(samples []wave.Sample, opts SVGOptions) string {
	if len(samples) < 2 {
		return ""
	}

	b := bounds{
		minX: samples[0].Point.X, maxX: samples[0].Point.X,
		minY: samples[0].Point.Y, maxY: samples[0].Point.Y,
	}
	for _, s := range samples {
		b.add(s.Point)
		if opts.ShowBase {
			b.add(s.Base)
		}
	}
	b.pad()

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, opts.Width, opts.Height, opts.Width, opts.Height, opts.Background))

	if opts.ShowBase {
		writePath(&sb, samples, func(s wave.Sample) geom.Point { return s.Base }, b, opts, opts.BaseStroke, 1)
	}
	writePath(&sb, samples, func(s wave.Sample) geom.Point { return s.Point }, b, opts, opts.WaveStroke, 1.5)

	sb.WriteString("</svg>")
	return sb.String()
}

func writePath(sb *strings.Builder, samples []wave.Sample, pick func(wave.Sample) geom.Point, b bounds, opts SVGOptions, stroke string, width float64) {
	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="%.1f" d="M`, stroke, width))
	for i, s := range samples {
		x, y := b.project(pick(s), opts.Width, opts.Height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}
