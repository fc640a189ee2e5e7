// Package trajectory derives velocity, arc length and unit normals from a
// parametric position function.
//
// A curve family is described by two things:
//
//   - [Curve]: the position mapping (t, theta) -> (x, y) of one instance
//   - [Family]: the family-wide descriptor carrying the [AmplitudeFunc]
//     and the numerical [Params] shared by every instance
//
// [Trajectory] binds a curve to its family and exposes the derived
// quantities. Velocity defaults to a forward finite difference; a curve with
// a closed-form derivative overrides it by also implementing [Velocitier].
//
// # Accuracy
//
// The default velocity carries an O(h) bias with h = [DefaultStep]. Arc
// length uses a [DefaultNodes]-point Gauss-Legendre rule and is accurate to
// near machine precision for smooth curves; accuracy degrades where the
// speed has kinks (cusps, corners).
//
// # Negative t
//
// Arc length is signed. The quadrature runs from 0 to t without reordering
// the bounds, so ArcLength(-t) is the negated length of the curve traced
// between -t and 0.
//
// # Thread Safety
//
// Trajectories and families are immutable after construction and may be
// shared between goroutines.
package trajectory
