package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var ErrTooFewSamples = errors.New("analysis: too few samples")

// ErrNotMonotonic indicates arc lengths that do not strictly increase.
var ErrNotMonotonic = errors.New("analysis: arc length not strictly increasing")

// Resample linearly interpolates ys, given at strictly increasing xs, onto n
// evenly spaced points spanning [xs[0], xs[len-1]].
func Resample(xs, ys []float64, n int) []float64 {
	out := make([]float64, n)
	x0, x1 := xs[0], xs[len(xs)-1]
	step := (x1 - x0) / float64(n-1)
	for i := range out {
		x := x0 + float64(i)*step
		j := sort.SearchFloat64s(xs, x)
		switch {
		case j == 0:
			out[i] = ys[0]
		case j >= len(xs):
			out[i] = ys[len(ys)-1]
		default:
			f := (x - xs[j-1]) / (xs[j] - xs[j-1])
			out[i] = ys[j-1] + f*(ys[j]-ys[j-1])
		}
	}
	return out
}

// DominantWavelength estimates the arc-length period of the strongest
// component of offsets. The signal is resampled uniformly in arc length, the
// mean removed, and the spectral peak refined by parabolic interpolation.
//
// For a constant amplitude the result approaches 2π·ta.
func DominantWavelength(arcLengths, offsets []float64) (float64, error) {
	if len(arcLengths) != len(offsets) {
		return 0, fmt.Errorf("analysis: length mismatch (%d arc lengths, %d offsets)", len(arcLengths), len(offsets))
	}
	if len(offsets) < 4 {
		return 0, fmt.Errorf("%w: need 4, got %d", ErrTooFewSamples, len(offsets))
	}
	for i := 1; i < len(arcLengths); i++ {
		if !(arcLengths[i] > arcLengths[i-1]) {
			return 0, fmt.Errorf("%w at index %d", ErrNotMonotonic, i)
		}
	}

	n := len(offsets)
	uniform := Resample(arcLengths, offsets, n)
	mean := 0.0
	for _, v := range uniform {
		mean += v
	}
	mean /= float64(n)
	for i := range uniform {
		uniform[i] -= mean
	}

	ps := PowerSpectrum(uniform)
	peak := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[peak] {
			peak = k
		}
	}
	if ps[peak] == 0 {
		return math.Inf(1), nil
	}

	bin := float64(peak)
	if peak+1 < len(ps) {
		a, b, c := ps[peak-1], ps[peak], ps[peak+1]
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}

	span := arcLengths[len(arcLengths)-1] - arcLengths[0]
	spacing := span / float64(n-1)
	return float64(n) * spacing / bin, nil
}

// ZeroCrossings counts sign changes in data, ignoring exact zeros.
func ZeroCrossings(data []float64) int {
	count := 0
	prev := 0.0
	for _, v := range data {
		if v == 0 {
			continue
		}
		if prev != 0 && (v > 0) != (prev > 0) {
			count++
		}
		prev = v
	}
	return count
}
