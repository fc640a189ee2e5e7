package metrics

import "github.com/san-kum/wavecurve/internal/wave"

// Metric accumulates a scalar over a stream of samples observed in
// parameter order.
type Metric interface {
	Name() string
	Observe(s wave.Sample)
	Value() float64
	Reset()
}

func DefaultMetrics() []Metric {
	return []Metric{
		NewMaxDisplacement(),
		NewMeanDisplacement(),
		NewPolylineLength(),
		NewBaseLength(),
		NewNormalDeviation(),
		NewFallbacks(),
	}
}
