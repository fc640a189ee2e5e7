package quadrature

import (
	"math"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
)

func TestLegendre_WeightsSumToTwo(t *testing.T) {
	g := NewWithT(t)

	for _, n := range []int{1, 2, 5, 8, 16, 24, 50} {
		r := Legendre(n)
		g.Expect(r.Len()).To(Equal(n))

		sum := 0.0
		for i := 0; i < r.Len(); i++ {
			w, x := r.Node(i)
			g.Expect(w).To(BeNumerically(">", 0))
			g.Expect(math.Abs(x)).To(BeNumerically("<", 1))
			sum += w
		}
		g.Expect(sum).To(BeNumerically("~", 2.0, 1e-12), "n=%d", n)
	}
}

func TestLegendre_NodesSortedAndSymmetric(t *testing.T) {
	r := Legendre(7)
	for i := 0; i < r.Len(); i++ {
		wi, xi := r.Node(i)
		wj, xj := r.Node(r.Len() - 1 - i)
		if math.Abs(xi+xj) > 1e-14 || math.Abs(wi-wj) > 1e-14 {
			t.Errorf("node %d not symmetric: (%v,%v) vs (%v,%v)", i, wi, xi, wj, xj)
		}
		if i > 0 {
			if _, prev := r.Node(i - 1); prev >= xi {
				t.Errorf("nodes not increasing at %d", i)
			}
		}
	}
	if _, mid := r.Node(3); mid != 0 && math.Abs(mid) > 1e-15 {
		t.Errorf("odd rule should have a node at 0, got %v", mid)
	}
}

func TestLegendre_MatchesTabulatedRule(t *testing.T) {
	// 8-point rule from the usual published tables.
	want := [...][2]float64{
		{0.1012285362903763, -0.9602898564975363},
		{0.2223810344533745, -0.7966664774136267},
		{0.3137066458778873, -0.5255324099163290},
		{0.3626837833783620, -0.1834346424956498},
	}
	r := Legendre(8)
	for i, c := range want {
		w, x := r.Node(i)
		if math.Abs(w-c[0]) > 1e-13 || math.Abs(x-c[1]) > 1e-13 {
			t.Errorf("node %d = (%.16f, %.16f), want (%.16f, %.16f)", i, w, x, c[0], c[1])
		}
	}
}

func TestIntegrate_PolynomialExactness(t *testing.T) {
	g := NewWithT(t)

	// degree 2n-1 = 9 with n = 5
	f := func(x float64) float64 { return math.Pow(x, 9) + 3*math.Pow(x, 4) - x + 2 }
	F := func(x float64) float64 { return math.Pow(x, 10)/10 + 3*math.Pow(x, 5)/5 - x*x/2 + 2*x }

	got := Integrate(f, -0.5, 1.5, 5)
	g.Expect(got).To(BeNumerically("~", F(1.5)-F(-0.5), 1e-12))
}

func TestIntegrate_Smooth(t *testing.T) {
	tests := []struct {
		name         string
		f            func(float64) float64
		lower, upper float64
		want         float64
	}{
		{"sin over half period", math.Sin, 0, math.Pi, 2},
		{"exp", math.Exp, 0, 1, math.E - 1},
		{"constant", func(float64) float64 { return 1 }, 0, 3, 3},
		{"empty interval", math.Cos, 2, 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Integrate(tt.f, tt.lower, tt.upper, DefaultNodes)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Integrate = %.15f, want %.15f", got, tt.want)
			}
		})
	}
}

func TestIntegrate_ReversedBounds(t *testing.T) {
	forward := Integrate(math.Exp, 0, 2, DefaultNodes)
	reversed := Integrate(math.Exp, 2, 0, DefaultNodes)
	if math.Abs(forward+reversed) > 1e-12 {
		t.Errorf("reversed integral = %v, want %v", reversed, -forward)
	}
	if reversed >= 0 {
		t.Errorf("reversed integral of positive function should be negative, got %v", reversed)
	}
}

func TestLegendre_PanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for n = 0")
		}
	}()
	Legendre(0)
}

func TestLegendre_Concurrent(t *testing.T) {
	const n = 37
	var wg sync.WaitGroup
	got := make([]*Rule, 16)
	for i := range got {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			got[idx] = Legendre(n)
		}(i)
	}
	wg.Wait()

	for i := range got {
		if got[i] != got[0] {
			t.Fatalf("goroutine %d received a different rule instance", i)
		}
	}
}
