package metrics

import (
	"math"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/trajectory"
	"github.com/san-kum/wavecurve/internal/wave"
)

type MaxDisplacement struct {
	name string
	max  float64
}

func NewMaxDisplacement() *MaxDisplacement {
	return &MaxDisplacement{name: "max_displacement"}
}

func (m *MaxDisplacement) Name() string { return m.name }

func (m *MaxDisplacement) Observe(s wave.Sample) {
	m.max = math.Max(m.max, math.Abs(s.NormalOffset))
}

func (m *MaxDisplacement) Value() float64 { return m.max }
func (m *MaxDisplacement) Reset()         { m.max = 0 }

type MeanDisplacement struct {
	name    string
	sum     float64
	samples int
}

func NewMeanDisplacement() *MeanDisplacement {
	return &MeanDisplacement{name: "mean_displacement"}
}

func (m *MeanDisplacement) Name() string { return m.name }

func (m *MeanDisplacement) Observe(s wave.Sample) {
	m.sum += math.Abs(s.NormalOffset)
	m.samples++
}

func (m *MeanDisplacement) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanDisplacement) Reset() {
	m.sum = 0
	m.samples = 0
}

// NormalDeviation tracks the largest departure of |n| from 1.
type NormalDeviation struct {
	name string
	max  float64
}

func NewNormalDeviation() *NormalDeviation {
	return &NormalDeviation{name: "normal_deviation"}
}

func (m *NormalDeviation) Name() string { return m.name }

func (m *NormalDeviation) Observe(s wave.Sample) {
	m.max = math.Max(m.max, math.Abs(s.Normal.Hypot()-1))
}

func (m *NormalDeviation) Value() float64 { return m.max }
func (m *NormalDeviation) Reset()         { m.max = 0 }

// Fallbacks counts samples that received the stationary-point normal.
type Fallbacks struct {
	name  string
	count int
}

func NewFallbacks() *Fallbacks {
	return &Fallbacks{name: "fallback_normals"}
}

func (m *Fallbacks) Name() string { return m.name }

func (m *Fallbacks) Observe(s wave.Sample) {
	if s.Normal == trajectory.FallbackNormal {
		m.count++
	}
}

func (m *Fallbacks) Value() float64 { return float64(m.count) }
func (m *Fallbacks) Reset()         { m.count = 0 }

// PolylineLength is the length of the displaced polyline.
type PolylineLength struct {
	name   string
	total  float64
	last   geom.Point
	primed bool
}

func NewPolylineLength() *PolylineLength {
	return &PolylineLength{name: "wave_length"}
}

func (m *PolylineLength) Name() string { return m.name }

func (m *PolylineLength) Observe(s wave.Sample) {
	if m.primed {
		m.total += m.last.Distance(s.Point)
	}
	m.last = s.Point
	m.primed = true
}

func (m *PolylineLength) Value() float64 { return m.total }

func (m *PolylineLength) Reset() {
	m.total = 0
	m.primed = false
}

// BaseLength is the arc length covered by the observed samples, taken from
// the quadrature rather than the polyline.
type BaseLength struct {
	name        string
	first, last float64
	primed      bool
}

func NewBaseLength() *BaseLength {
	return &BaseLength{name: "base_length"}
}

func (m *BaseLength) Name() string { return m.name }

func (m *BaseLength) Observe(s wave.Sample) {
	if !m.primed {
		m.first = s.ArcLength
		m.primed = true
	}
	m.last = s.ArcLength
}

func (m *BaseLength) Value() float64 { return m.last - m.first }

func (m *BaseLength) Reset() {
	m.first, m.last = 0, 0
	m.primed = false
}
