package velocity

import "errors"

var (
	// ErrNoLayers indicates a model without any layers.
	ErrNoLayers = errors.New("velocity: model has no layers")

	// ErrBadRadius indicates a non-positive radius or a layer below the centre.
	ErrBadRadius = errors.New("velocity: radius out of range")

	// ErrNotContiguous indicates a gap, overlap or inverted layer.
	ErrNotContiguous = errors.New("velocity: layers not contiguous")

	// ErrBadVelocity indicates a non-positive P or negative S velocity.
	ErrBadVelocity = errors.New("velocity: invalid velocity")

	// ErrUnknownModel indicates a missing built-in model name.
	ErrUnknownModel = errors.New("velocity: unknown model")
)
