package slowness

import (
	"fmt"
	"math"
)

// Params are the sampling bounds. Slowness in s/rad, depth in km, range in
// radians, interpolation error in seconds.
type Params struct {
	MinDeltaP           float64 `yaml:"min_delta_p" json:"min_delta_p" msgpack:"min_delta_p"`
	MaxDeltaP           float64 `yaml:"max_delta_p" json:"max_delta_p" msgpack:"max_delta_p"`
	MaxDepthInterval    float64 `yaml:"max_depth_interval" json:"max_depth_interval" msgpack:"max_depth_interval"`
	MaxRangeInterval    float64 `yaml:"max_range_interval" json:"max_range_interval" msgpack:"max_range_interval"`
	MaxInterpError      float64 `yaml:"max_interp_error" json:"max_interp_error" msgpack:"max_interp_error"`
	AllowInnerCoreS     bool    `yaml:"allow_inner_core_s" json:"allow_inner_core_s" msgpack:"allow_inner_core_s"`
	SlownessTolerance   float64 `yaml:"slowness_tolerance" json:"slowness_tolerance" msgpack:"slowness_tolerance"`
	MaxRefinementPasses int     `yaml:"max_refinement_passes" json:"max_refinement_passes" msgpack:"max_refinement_passes"`
}

func DefaultParams() Params {
	return Params{
		MinDeltaP:           0.1,
		MaxDeltaP:           11,
		MaxDepthInterval:    115,
		MaxRangeInterval:    2.5 * math.Pi / 180,
		MaxInterpError:      0.05,
		AllowInnerCoreS:     true,
		SlownessTolerance:   1e-10,
		MaxRefinementPasses: 64,
	}
}

// Validate checks the bounds are positive and mutually consistent.
func (p Params) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"min delta p", p.MinDeltaP},
		{"max delta p", p.MaxDeltaP},
		{"max depth interval", p.MaxDepthInterval},
		{"max range interval", p.MaxRangeInterval},
		{"max interp error", p.MaxInterpError},
		{"slowness tolerance", p.SlownessTolerance},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is %g", ErrInvalidParams, f.name, f.v)
		}
	}

	switch {
	case p.MinDeltaP < 0:
		return fmt.Errorf("%w: min delta p %g is negative", ErrInvalidParams, p.MinDeltaP)
	case p.MaxDeltaP <= 0:
		return fmt.Errorf("%w: max delta p %g must be positive", ErrInvalidParams, p.MaxDeltaP)
	case p.MinDeltaP > p.MaxDeltaP:
		return fmt.Errorf("%w: min delta p %g exceeds max delta p %g", ErrInvalidParams, p.MinDeltaP, p.MaxDeltaP)
	case p.MaxDepthInterval <= 0:
		return fmt.Errorf("%w: max depth interval %g must be positive", ErrInvalidParams, p.MaxDepthInterval)
	case p.MaxRangeInterval <= 0:
		return fmt.Errorf("%w: max range interval %g must be positive", ErrInvalidParams, p.MaxRangeInterval)
	case p.MaxInterpError <= 0:
		return fmt.Errorf("%w: max interp error %g must be positive", ErrInvalidParams, p.MaxInterpError)
	case p.SlownessTolerance < 0:
		return fmt.Errorf("%w: slowness tolerance %g is negative", ErrInvalidParams, p.SlownessTolerance)
	case p.MaxRefinementPasses <= 0:
		return fmt.Errorf("%w: max refinement passes %d must be positive", ErrInvalidParams, p.MaxRefinementPasses)
	}
	return nil
}
