package viz

import (
	"strings"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/wave"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
const brailleBlank = 0x2800

var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells, each holding 2x4 sub-pixels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize returns the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (int, int) {
	return c.Width * 2, c.Height * 4
}

func (c *Canvas) cell(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, 0, false
	}
	col, row = x/2, y/4
	if col >= c.Width || row >= c.Height {
		return 0, 0, 0, false
	}
	return row, col, rune(pixelMap[y%4][x%2]), true
}

// Set turns on the sub-pixel (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

func (c *Canvas) Unset(x, y int) {
	if row, col, bit, ok := c.cell(x, y); ok {
		c.Grid[row][col] &^= bit
	}
}

func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.cell(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawPolyline joins consecutive points projected through vp. Non-finite
// points break the line.
func (c *Canvas) DrawPolyline(points []geom.Point, vp Viewport) {
	havePrev := false
	var px, py int
	for _, p := range points {
		if !p.IsFinite() {
			havePrev = false
			continue
		}
		x, y := vp.Project(p)
		if havePrev {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py, havePrev = x, y, true
	}
}

// DrawDot draws a 3x3 block centred on p.
func (c *Canvas) DrawDot(p geom.Point, vp Viewport) {
	x, y := vp.Project(p)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			c.Set(x+dx, y+dy)
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// RenderWave draws the wave, and optionally its base curve, scaled to fit a
// w x h cell canvas. The returned viewport can be used to draw on top.
func RenderWave(samples []wave.Sample, w, h int, showBase bool) (*Canvas, Viewport) {
	c := NewCanvas(w, h)
	cw, ch := c.PixelSize()
	if len(samples) == 0 {
		return c, FitViewport(nil, cw, ch)
	}

	wavePts := make([]geom.Point, len(samples))
	basePts := make([]geom.Point, len(samples))
	for i, s := range samples {
		wavePts[i] = s.Point
		basePts[i] = s.Base
	}

	fit := wavePts
	if showBase {
		fit = append(append(make([]geom.Point, 0, 2*len(samples)), wavePts...), basePts...)
	}
	vp := FitViewport(fit, cw, ch)

	if showBase {
		for i, p := range basePts {
			if i%4 == 0 {
				x, y := vp.Project(p)
				c.Set(x, y)
			}
		}
	}
	c.DrawPolyline(wavePts, vp)
	return c, vp
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
