package slowness

import (
	"fmt"
	"math"

	"github.com/san-kum/seismo/internal/velocity"
)

// SlownessLayer is one sampled depth interval for a single wave type.
// Slowness is r/v in seconds per radian.
type SlownessLayer struct {
	TopDepth float64 `json:"top_depth" msgpack:"top_depth"`
	BotDepth float64 `json:"bot_depth" msgpack:"bot_depth"`
	TopP     float64 `json:"top_p" msgpack:"top_p"`
	BotP     float64 `json:"bot_p" msgpack:"bot_p"`
}

func (l SlownessLayer) Thickness() float64 {
	return l.BotDepth - l.TopDepth
}

// IsDiscontinuity reports a zero-thickness layer, which represents a jump
// in slowness at a single depth.
func (l SlownessLayer) IsDiscontinuity() bool {
	return l.BotDepth == l.TopDepth
}

func (l SlownessLayer) String() string {
	return fmt.Sprintf("[%g, %g] p=%.6f..%.6f", l.TopDepth, l.BotDepth, l.TopP, l.BotP)
}

// ToSlownessLayer converts a velocity layer into a slowness layer for one
// wave type. It never substitutes P for S; callers decide that.
func ToSlownessLayer(vl velocity.Layer, wave WaveType, radius float64) (SlownessLayer, error) {
	top, err := slownessAt(vl, wave, vl.TopDepth, radius)
	if err != nil {
		return SlownessLayer{}, err
	}
	bot, err := slownessAt(vl, wave, vl.BotDepth, radius)
	if err != nil {
		return SlownessLayer{}, err
	}
	return SlownessLayer{
		TopDepth: vl.TopDepth,
		BotDepth: vl.BotDepth,
		TopP:     top,
		BotP:     bot,
	}, nil
}

// slownessAt evaluates r/v at depth using linear velocity within vl.
func slownessAt(vl velocity.Layer, wave WaveType, depth, radius float64) (float64, error) {
	var v float64
	if wave == P {
		v = vl.PVelocityAt(depth)
	} else {
		v = vl.SVelocityAt(depth)
	}
	if v <= 0 || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s velocity %g at depth %g", ErrNonPositiveVelocity, wave, v, depth)
	}
	return (radius - depth) / v, nil
}

// bullenExponent fits p(r) = A r^B through both ends of the layer. A layer
// reaching the centre uses B = 1 (constant velocity). ok is false for
// constant slowness, where no finite B exists.
func (l SlownessLayer) bullenExponent(radius float64) (b float64, ok bool) {
	rTop := radius - l.TopDepth
	rBot := radius - l.BotDepth
	if rBot <= 0 || l.BotP <= 0 {
		return 1, true
	}
	if l.TopP == l.BotP {
		return 0, false
	}
	return math.Log(l.TopP/l.BotP) / math.Log(rTop/rBot), true
}

// bullenRadialSlowness returns the one-way distance (radians) and time
// (seconds) of a ray with parameter p crossing the layer, or turning inside
// it when p exceeds the bottom slowness.
func (l SlownessLayer) bullenRadialSlowness(p, radius float64) (dist, time float64) {
	if l.IsDiscontinuity() || p > l.TopP {
		return 0, 0
	}

	b, ok := l.bullenExponent(radius)
	if !ok {
		eta := l.TopP
		if p >= eta {
			return 0, 0
		}
		lnr := math.Log((radius - l.TopDepth) / (radius - l.BotDepth))
		q := math.Sqrt(eta*eta - p*p)
		return p / q * lnr, eta * eta / q * lnr
	}

	acosBot, sqrtBot := 0.0, 0.0
	if p < l.BotP {
		acosBot = math.Acos(clampUnit(p / l.BotP))
		sqrtBot = math.Sqrt(l.BotP*l.BotP - p*p)
	}
	dist = (math.Acos(clampUnit(p/l.TopP)) - acosBot) / b
	time = (math.Sqrt(l.TopP*l.TopP-p*p) - sqrtBot) / b
	return dist, time
}

// depthFor inverts the Bullen fit, returning the depth strictly inside the
// layer at which slowness equals p.
func (l SlownessLayer) depthFor(p, radius float64) (float64, bool) {
	if l.IsDiscontinuity() || l.TopP <= 0 {
		return 0, false
	}
	lo, hi := math.Min(l.TopP, l.BotP), math.Max(l.TopP, l.BotP)
	if p <= lo || p >= hi {
		return 0, false
	}
	b, ok := l.bullenExponent(radius)
	if !ok {
		return 0, false
	}
	r := (radius - l.TopDepth) * math.Pow(p/l.TopP, 1/b)
	depth := radius - r
	if !(depth > l.TopDepth && depth < l.BotDepth) {
		return 0, false
	}
	return depth, true
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
