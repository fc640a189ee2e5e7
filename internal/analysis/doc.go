// Package analysis provides spectral tools for sampled wave offsets.
//
//   - [PowerSpectrum]: magnitude spectrum of a real signal of any length
//   - [DominantWavelength]: arc-length period of the strongest component
//   - [ZeroCrossings]: sign changes of the normal offset
//
// # Wavelength Recovery
//
// With a constant amplitude the normal offset is a pure sine of arc length,
// so the recovered wavelength should match 2π·ta:
//
//	wl, _ := analysis.DominantWavelength(res.ArcLengths(), res.Offsets())
package analysis
