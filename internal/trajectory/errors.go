package trajectory

import "errors"

var (
	// ErrInvalidParams indicates a non-positive step, node count or a
	// negative degeneracy threshold.
	ErrInvalidParams = errors.New("trajectory: invalid numerical parameters")

	// ErrNoAmplitude indicates a family without an amplitude function.
	ErrNoAmplitude = errors.New("trajectory: family has no amplitude function")

	// ErrNilCurve indicates a trajectory built without a position mapping.
	ErrNilCurve = errors.New("trajectory: nil curve")
)
