package wave_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/wavecurve/internal/geom"
	"github.com/san-kum/wavecurve/internal/trajectory"
	"github.com/san-kum/wavecurve/internal/wave"
)

type line struct{}

func (line) Position(t, _ float64) geom.Point { return geom.Pt(t, 0) }

type ring struct{}

func (ring) Position(t, theta float64) geom.Point {
	r := 1 + theta
	return geom.Pt(r*math.Cos(t), r*math.Sin(t))
}

type still struct{}

func (still) Position(_, _ float64) geom.Point { return geom.Pt(2, -1) }

func build(c trajectory.Curve, amp trajectory.AmplitudeFunc) *trajectory.Trajectory {
	tr, err := trajectory.New(trajectory.NewFamily("sine", amp), c)
	Expect(err).NotTo(HaveOccurred())
	return tr
}

func constant(a float64) trajectory.AmplitudeFunc {
	return func(_, _ float64) float64 { return a }
}

var _ = Describe("NormalOffset", func() {
	It("follows amplitude times the sine of arc length over ta", func() {
		tr := build(line{}, constant(0.5))
		for _, t := range []float64{0.1, 1, 2.5} {
			want := 0.5 * math.Sin(tr.ArcLength(t, 0)/0.3)
			Expect(wave.NormalOffset(tr, t, 0, 0.3)).To(BeNumerically("~", want, 1e-15))
		}
	})

	It("crosses zero where arc length equals ta*pi", func() {
		tr := build(line{}, constant(1))
		s := tr.ArcLength(3, 0)
		ta := s / math.Pi
		Expect(wave.NormalOffset(tr, 3, 0, ta)).To(BeNumerically("~", 0, 1e-12))
	})

	It("is periodic in arc length over ta", func() {
		tr := build(ring{}, constant(0.2))
		s := tr.ArcLength(1.7, 0.4)
		ta := 0.9
		// s/ta2 = s/ta + 2π
		ta2 := s / (s/ta + 2*math.Pi)
		Expect(wave.NormalOffset(tr, 1.7, 0.4, ta2)).
			To(BeNumerically("~", wave.NormalOffset(tr, 1.7, 0.4, ta), 1e-12))
	})

	It("is zero at t = 0", func() {
		tr := build(ring{}, constant(3))
		Expect(wave.NormalOffset(tr, 0, 0.1, 0.25)).To(BeZero())
	})

	It("propagates NaN for ta = 0 at the origin", func() {
		tr := build(line{}, constant(1))
		Expect(math.IsNaN(wave.NormalOffset(tr, 0, 0, 0))).To(BeTrue())
	})
})

var _ = Describe("Offset", func() {
	It("returns the base point when amplitude is zero", func() {
		tr := build(ring{}, constant(0))
		for _, t := range []float64{0, 0.3, 1, 4} {
			for _, ta := range []float64{-2, 0.01, 0.5, 10} {
				Expect(wave.Offset(tr, t, 0.2, ta)).To(Equal(tr.Position(t, 0.2)))
			}
		}
	})

	It("moves the point along the left normal by the normal offset", func() {
		tr := build(line{}, constant(0.25))
		t, ta := 2.0, 1.0
		got := wave.Offset(tr, t, 0, ta)
		d := wave.NormalOffset(tr, t, 0, ta)

		Expect(got.X).To(BeNumerically("~", t, 1e-12))
		Expect(got.Y).To(BeNumerically("~", d, 1e-12))
		Expect(got.Y).To(BeNumerically("~", 0.25*math.Sin(2), 1e-4))
	})

	It("stays within amplitude of the base curve", func() {
		tr := build(ring{}, constant(0.1))
		for i := 0; i < 64; i++ {
			t := float64(i) * 0.1
			p := wave.Offset(tr, t, 0, 0.05)
			Expect(p.Distance(tr.Position(t, 0))).To(BeNumerically("<=", 0.1+1e-12))
		}
	})

	It("uses the fallback normal at stationary points", func() {
		tr := build(still{}, constant(1))
		s := wave.Evaluate(tr, 0, 0, 1)
		Expect(s.Normal).To(Equal(geom.Vec(1, 0)))
		Expect(s.ArcLength).To(BeZero())
		Expect(s.Point).To(Equal(geom.Pt(2, -1)))
	})
})

var _ = Describe("Evaluate", func() {
	It("agrees with the individual operations", func() {
		tr := build(ring{}, func(t, theta float64) float64 { return 0.1 * (1 + t*theta) })
		s := wave.Evaluate(tr, 1.2, 0.3, 0.4)

		Expect(s.T).To(Equal(1.2))
		Expect(s.Theta).To(Equal(0.3))
		Expect(s.Base).To(Equal(tr.Position(1.2, 0.3)))
		Expect(s.Normal).To(Equal(tr.UnitNormal(1.2, 0.3)))
		Expect(s.ArcLength).To(Equal(tr.ArcLength(1.2, 0.3)))
		Expect(s.NormalOffset).To(Equal(wave.NormalOffset(tr, 1.2, 0.3, 0.4)))
		Expect(s.Point).To(Equal(wave.Offset(tr, 1.2, 0.3, 0.4)))
	})
})

var _ = Describe("Checked entry points", func() {
	var tr *trajectory.Trajectory

	BeforeEach(func() {
		tr = build(line{}, constant(1))
	})

	DescribeTable("rejects invalid input",
		func(t, theta, ta float64) {
			_, err := wave.CheckedOffset(tr, t, theta, ta)
			Expect(err).To(MatchError(wave.ErrInvalidParameter))

			_, err = wave.CheckedNormalOffset(tr, t, theta, ta)
			Expect(err).To(MatchError(wave.ErrInvalidParameter))
		},
		Entry("zero ta", 1.0, 0.0, 0.0),
		Entry("NaN t", math.NaN(), 0.0, 1.0),
		Entry("infinite theta", 1.0, math.Inf(1), 1.0),
		Entry("infinite ta", 1.0, 0.0, math.Inf(-1)),
	)

	It("matches the unchecked result for valid input", func() {
		got, err := wave.CheckedOffset(tr, 1.5, 0, 0.7)
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(wave.Offset(tr, 1.5, 0, 0.7)))

		d, err := wave.CheckedNormalOffset(tr, 1.5, 0, 0.7)
		Expect(err).NotTo(HaveOccurred())
		Expect(d).To(Equal(wave.NormalOffset(tr, 1.5, 0, 0.7)))
	})
})
