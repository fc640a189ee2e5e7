package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/storage"
	"github.com/san-kum/wavecurve/internal/wave"
)

func squareSamples() []wave.Sample {
	pts := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 0), geom.Pt(1, 1), geom.Pt(0, 1)}
	out := make([]wave.Sample, len(pts))
	for i, p := range pts {
		out[i] = wave.Sample{
			T:      float64(i),
			Base:   p,
			Normal: geom.Vec(1, 0),
			Point:  p.Translate(geom.Vec(0.1, 0)),
		}
	}
	return out
}

func TestSVG(t *testing.T) {
	g := NewWithT(t)

	svg := SVG(squareSamples(), DefaultSVGOptions())

	g.Expect(svg).To(HavePrefix(`<?xml version="1.0"`))
	g.Expect(svg).To(HaveSuffix("</svg>"))
	g.Expect(strings.Count(svg, "<path")).To(Equal(2))
	g.Expect(svg).To(ContainSubstring(`stroke="#00ffcc"`))
	g.Expect(svg).To(ContainSubstring(`stroke="#444466"`))
	g.Expect(strings.Count(svg, " L")).To(Equal(6))
}

func TestSVG_WaveOnly(t *testing.T) {
	g := NewWithT(t)

	opts := DefaultSVGOptions()
	opts.ShowBase = false
	svg := SVG(squareSamples(), opts)

	g.Expect(strings.Count(svg, "<path")).To(Equal(1))
	g.Expect(svg).NotTo(ContainSubstring(opts.BaseStroke))
}

func TestSVG_TooFewSamples(t *testing.T) {
	if SVG(squareSamples()[:1], DefaultSVGOptions()) != "" {
		t.Error("expected empty output for a single sample")
	}
	if SVG(nil, DefaultSVGOptions()) != "" {
		t.Error("expected empty output for no samples")
	}
}

func TestBounds_ProjectKeepsAspect(t *testing.T) {
	g := NewWithT(t)

	b := bounds{minX: 0, maxX: 2, minY: 0, maxY: 1}
	b.pad()
	g.Expect(b.maxX - b.minX).To(BeNumerically("~", b.maxY-b.minY, 1e-12))

	x, y := b.project(geom.Pt(1, 0.5), 100, 100)
	g.Expect(x).To(BeNumerically("~", 50, 1e-9))
	g.Expect(y).To(BeNumerically("~", 50, 1e-9))
}

func TestBounds_ProjectLetterboxesWideCanvas(t *testing.T) {
	g := NewWithT(t)

	b := bounds{minX: 0, maxX: 2, minY: 0, maxY: 1}
	b.pad()

	cx, cy := b.project(geom.Pt(1, 0.5), 200, 100)
	g.Expect(cx).To(BeNumerically("~", 100, 1e-9))
	g.Expect(cy).To(BeNumerically("~", 50, 1e-9))

	x0, y0 := b.project(geom.Pt(0, 0), 200, 100)
	x1, y1 := b.project(geom.Pt(1, 1), 200, 100)
	g.Expect(x1 - x0).To(BeNumerically("~", y0-y1, 1e-9))

	left, _ := b.project(geom.Pt(b.minX, 0), 200, 100)
	right, _ := b.project(geom.Pt(b.maxX, 0), 200, 100)
	g.Expect(left).To(BeNumerically("~", 50, 1e-9))
	g.Expect(right).To(BeNumerically("~", 150, 1e-9))
}

func TestBounds_DegenerateData(t *testing.T) {
	g := NewWithT(t)

	b := bounds{minX: 3, maxX: 3, minY: 3, maxY: 3}
	b.pad()
	x, y := b.project(geom.Pt(3, 3), 10, 10)
	g.Expect(x).To(BeNumerically("~", 5, 1e-9))
	g.Expect(y).To(BeNumerically("~", 5, 1e-9))
}

func TestJSON(t *testing.T) {
	g := NewWithT(t)

	var buf bytes.Buffer
	meta := storage.RunMetadata{ID: "run-1", Curve: "line", Ta: 0.5}
	g.Expect(JSON(&buf, meta, squareSamples())).To(Succeed())

	var doc struct {
		Run struct {
			ID    string  `json:"id"`
			Curve string  `json:"curve"`
			Ta    float64 `json:"ta"`
		} `json:"run"`
		Samples []struct {
			T     float64            `json:"t"`
			Point map[string]float64 `json:"point"`
		} `json:"samples"`
	}
	g.Expect(json.Unmarshal(buf.Bytes(), &doc)).To(Succeed())
	g.Expect(doc.Run.ID).To(Equal("run-1"))
	g.Expect(doc.Run.Ta).To(Equal(0.5))
	g.Expect(doc.Samples).To(HaveLen(4))
	g.Expect(doc.Samples[2].T).To(Equal(2.0))
	g.Expect(doc.Samples[2].Point).To(Equal(map[string]float64{"x": 1.1, "y": 1}))
}
