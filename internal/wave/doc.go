// Package wave displaces a trajectory along its unit normal by a sinusoid of
// accumulated arc length.
//
// The functions in this package accept any [Path], so every trajectory gains
// the wave behaviour without per-family code:
//
//	tr, _ := trajectory.New(family, curve)
//	pt := wave.Offset(tr, t, theta, ta)
//
// ta acts as a wavelength scale: the displacement completes one period every
// 2π·ta units of arc length. ta = 0 and non-finite inputs are not checked by
// [NormalOffset] and [Offset] and propagate as NaN or Inf. [CheckedOffset]
// validates its inputs first.
package wave
