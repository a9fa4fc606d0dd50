package slowness

import (
	"errors"
	"fmt"
)

// Domain errors for model construction.
var (
	// ErrInvalidModel indicates the velocity model failed its own validation.
	ErrInvalidModel = errors.New("slowness: invalid velocity model")

	// ErrEmptyModel indicates a velocity model without layers.
	ErrEmptyModel = errors.New("slowness: velocity model has no layers")

	// ErrFluidSurface indicates zero S velocity at the surface, which leaves
	// the surface S slowness undefined.
	ErrFluidSurface = errors.New("slowness: zero S velocity at the surface is not supported")

	// ErrInvalidParams indicates inconsistent sampling parameters.
	ErrInvalidParams = errors.New("slowness: invalid sampling parameters")

	// ErrNonPositiveVelocity indicates a conversion at a zero or negative velocity.
	ErrNonPositiveVelocity = errors.New("slowness: non-positive velocity")

	// ErrNotConverged indicates refinement hit its pass limit.
	ErrNotConverged = errors.New("slowness: refinement did not converge")

	// ErrUnmatchedCriticalDepth indicates a critical depth with no layer top.
	ErrUnmatchedCriticalDepth = errors.New("slowness: critical depth not on a layer boundary")

	// ErrValidation indicates the constructed model violates an invariant.
	ErrValidation = errors.New("slowness: model validation failed")
)

// RefinementError reports the check that kept splitting when the pass
// limit was reached.
type RefinementError struct {
	Check    string
	Wave     WaveType
	TopDepth float64
	BotDepth float64
	Passes   int
}

func (e *RefinementError) Error() string {
	return fmt.Sprintf("%v after %d passes: %s check still splitting %s layer [%g, %g]",
		ErrNotConverged, e.Passes, e.Check, e.Wave, e.TopDepth, e.BotDepth)
}

func (e *RefinementError) Unwrap() error {
	return ErrNotConverged
}

// ReconcileError reports a critical depth that no final layer starts at.
type ReconcileError struct {
	Depth float64
	Wave  WaveType
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("%v: depth %g in %s layers", ErrUnmatchedCriticalDepth, e.Depth, e.Wave)
}

func (e *ReconcileError) Unwrap() error {
	return ErrUnmatchedCriticalDepth
}

// ValidationError names the first violated model invariant.
type ValidationError struct {
	Invariant string
	Detail    string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrValidation, e.Invariant, e.Detail)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
