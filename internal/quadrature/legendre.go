package quadrature

import (
	"fmt"
	"math"
	"sync"
)

// DefaultNodes is the node count used for arc length integration.
const DefaultNodes = 50

const (
	newtonTolerance = 1e-15
	newtonMaxIter   = 100
)

// Rule is an n-point Gauss-Legendre rule on [-1, 1]. Each entry holds a
// weight and its abscissa, in that order.
type Rule struct {
	coeffs [][2]float64
}

type cachedRule struct {
	once sync.Once
	rule *Rule
}

var rules sync.Map // int -> *cachedRule

// Legendre returns the n-point rule. Rules are computed once per n and shared
// between callers; a Rule is never mutated after construction.
//
// Legendre panics if n < 1.
func Legendre(n int) *Rule {
	if n < 1 {
		panic(fmt.Sprintf("quadrature: node count must be positive, got %d", n))
	}
	v, _ := rules.LoadOrStore(n, &cachedRule{})
	c := v.(*cachedRule)
	c.once.Do(func() {
		c.rule = newRule(n)
	})
	return c.rule
}

// newRule finds the roots of P_n by Newton iteration, starting from the
// Tricomi approximation. Roots are symmetric so only half are iterated.
func newRule(n int) *Rule {
	coeffs := make([][2]float64, n)
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var dp float64
		for iter := 0; iter < newtonMaxIter; iter++ {
			p, pPrev := legendreAt(n, z)
			dp = float64(n) * (z*p - pPrev) / (z*z - 1)
			z1 := z
			z = z1 - p/dp
			if math.Abs(z-z1) < newtonTolerance {
				break
			}
		}
		p, pPrev := legendreAt(n, z)
		dp = float64(n) * (z*p - pPrev) / (z*z - 1)
		w := 2 / ((1 - z*z) * dp * dp)
		coeffs[i] = [2]float64{w, -z}
		coeffs[n-1-i] = [2]float64{w, z}
	}
	return &Rule{coeffs: coeffs}
}

// legendreAt evaluates P_n(z) and P_{n-1}(z) by the three-term recurrence.
func legendreAt(n int, z float64) (float64, float64) {
	p1, p2 := 1.0, 0.0
	for j := 1; j <= n; j++ {
		p3 := p2
		p2 = p1
		p1 = ((2*float64(j)-1)*z*p2 - (float64(j)-1)*p3) / float64(j)
	}
	return p1, p2
}

// Len returns the number of nodes.
func (r *Rule) Len() int { return len(r.coeffs) }

// Node returns the weight and abscissa of the i-th node.
func (r *Rule) Node(i int) (w, x float64) {
	return r.coeffs[i][0], r.coeffs[i][1]
}

// Integrate approximates the integral of f over [lower, upper].
//
// The interval is mapped affinely onto [-1, 1] without reordering the
// bounds, so upper < lower yields the negated integral over [upper, lower].
func (r *Rule) Integrate(f func(float64) float64, lower, upper float64) float64 {
	half := (upper - lower) / 2
	mid := (upper + lower) / 2
	var sum float64
	for _, c := range r.coeffs {
		sum += c[0] * f(half*c[1]+mid)
	}
	return half * sum
}

// Integrate approximates the integral of f over [lower, upper] using an
// n-point Gauss-Legendre rule. It is exact for polynomials of degree up to
// 2n-1.
func Integrate(f func(float64) float64, lower, upper float64, n int) float64 {
	return Legendre(n).Integrate(f, lower, upper)
}
