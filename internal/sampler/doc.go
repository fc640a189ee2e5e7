// Package sampler evaluates a wave-modulated trajectory over a parameter
// range.
//
// A [Sampler] spreads the evaluation of evenly spaced t values over a fixed
// number of goroutines. Each sample is independent, so workers share the
// trajectory read-only and write to disjoint slots of the result. Metrics are
// observed afterwards, in parameter order, on the calling goroutine.
//
//	s := sampler.New(tr, logger)
//	s.AddMetric(metrics.NewMaxDisplacement())
//	res, err := s.Run(ctx, cfg)
//
// # Thread Safety
//
// A Sampler is not safe for concurrent Run calls when metrics are attached,
// since metrics are stateful. Use one Sampler per goroutine.
package sampler
