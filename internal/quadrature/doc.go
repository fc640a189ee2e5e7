// Package quadrature provides fixed-order Gauss-Legendre integration.
//
// An n-point rule integrates polynomials of degree 2n-1 exactly and
// converges quickly for smooth integrands. Accuracy for integrands with
// kinks or cusps degrades to that of a low-order rule near the singularity.
//
//	length := quadrature.Integrate(speed, 0, t, quadrature.DefaultNodes)
//
// # Thread Safety
//
// Rules are built lazily, once per node count, and are read-only
// afterwards. [Integrate] and [Legendre] may be called from any number of
// goroutines.
package quadrature
