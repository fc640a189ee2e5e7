// Package curves provides the built-in curve families.
//
// Each family pairs a [trajectory.Family] descriptor (name and amplitude)
// with a curve value implementing the position mapping:
//
//   - line: straight line through the origin, theta is its heading
//   - circle: radius 1+theta
//   - ellipse: semi-axes 1 and theta
//   - lissajous: 3:2 figure with phase theta
//   - rose: r = cos(k t), k = 2+theta
//   - spiral: Archimedean spiral rotated by theta
//   - cardioid: scale 1+theta, stationary cusp at t = 0
//
// Families with a simple derivative implement [trajectory.Velocitier]; the
// rest use the finite-difference default.
//
// [Registry] maps names to families, for the CLI and the scenario runner.
package curves
