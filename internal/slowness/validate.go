package slowness

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	invLayerOrder = "layer order"
	invMonotonic  = "slowness monotonic"
	invZoneBounds = "zone bounds"
	invCritical   = "critical depths"
	invParameters = "parameters"
)

func violation(invariant, format string, args ...any) error {
	return &ValidationError{Invariant: invariant, Detail: fmt.Sprintf(format, args...)}
}

// Validate re-checks the invariants of the built model and reports the
// first violation as a *ValidationError.
func (m *Model) Validate() error {
	if err := m.validateLayers(); err != nil {
		return err
	}
	if err := m.validateMonotonic(); err != nil {
		return err
	}
	if err := m.validateZones(); err != nil {
		return err
	}
	if err := m.validateCriticalDepths(); err != nil {
		return err
	}
	if err := m.params.Validate(); err != nil {
		return violation(invParameters, "%v", err)
	}
	return nil
}

func (m *Model) validateLayers() error {
	if len(m.layers[P]) != len(m.layers[S]) {
		return violation(invLayerOrder, "%d P layers but %d S layers", len(m.layers[P]), len(m.layers[S]))
	}
	surface := m.vmod.LayerAt(0).TopDepth
	for _, w := range Waves {
		layers := m.layers[w]
		if len(layers) == 0 {
			return violation(invLayerOrder, "no %s layers", w)
		}
		if layers[0].TopDepth != surface {
			return violation(invLayerOrder, "first %s layer starts at %g, not %g", w, layers[0].TopDepth, surface)
		}

		vals := make([]float64, 0, 4*len(layers))
		for i, l := range layers {
			vals = append(vals, l.TopDepth, l.BotDepth, l.TopP, l.BotP)
			if l.BotDepth < l.TopDepth {
				return violation(invLayerOrder, "%s layer %d inverted: %v", w, i, l)
			}
			if i > 0 && math.Abs(l.TopDepth-layers[i-1].BotDepth) > depthTolerance {
				return violation(invLayerOrder, "%s layer %d top %g does not meet previous bottom %g",
					w, i, l.TopDepth, layers[i-1].BotDepth)
			}
			if l.TopP < 0 || l.BotP < 0 {
				return violation(invLayerOrder, "%s layer %d has negative slowness: %v", w, i, l)
			}
			if w == S && (l.TopDepth != m.layers[P][i].TopDepth || l.BotDepth != m.layers[P][i].BotDepth) {
				return violation(invLayerOrder, "layer %d depths differ between P and S", i)
			}
		}
		if floats.HasNaN(vals) {
			return violation(invLayerOrder, "%s layers contain NaN", w)
		}
	}
	return nil
}

func (m *Model) direction(a, b float64) int {
	switch d := b - a; {
	case d > m.params.SlownessTolerance:
		return 1
	case d < -m.params.SlownessTolerance:
		return -1
	}
	return 0
}

// validateMonotonic requires slowness to move in one direction between
// consecutive critical depths, and rejects layers where slowness increases
// in both waves outside any high-slowness zone.
func (m *Model) validateMonotonic() error {
	for k := 0; k+1 < len(m.critical); k++ {
		top, bot := m.critical[k].Depth, m.critical[k+1].Depth
		for _, w := range Waves {
			dir := 0
			for _, l := range m.layers[w] {
				if l.IsDiscontinuity() || l.TopDepth < top-depthTolerance || l.BotDepth > bot+depthTolerance {
					continue
				}
				d := m.direction(l.TopP, l.BotP)
				if d == 0 {
					continue
				}
				if dir != 0 && d != dir {
					return violation(invMonotonic, "%s slowness changes direction between %g and %g at %v",
						w, top, bot, l)
				}
				dir = d
			}
		}
	}

	for i := range m.layers[P] {
		if m.layers[P][i].IsDiscontinuity() {
			continue
		}
		bothIncreasing := true
		for _, w := range Waves {
			l := m.layers[w][i]
			if m.direction(l.TopP, l.BotP) <= 0 || m.layerInHighSlowness(l, w) {
				bothIncreasing = false
			}
		}
		if bothIncreasing {
			return violation(invMonotonic, "slowness increases in both waves outside a high slowness zone at %v",
				m.layers[P][i])
		}
	}
	return nil
}

func (m *Model) layerInHighSlowness(l SlownessLayer, w WaveType) bool {
	for _, r := range m.highSlowness[w] {
		if l.TopDepth >= r.TopDepth-depthTolerance && l.BotDepth <= r.BotDepth+depthTolerance {
			return true
		}
	}
	return false
}

func (m *Model) validateZones() error {
	check := func(kind string, zones []DepthRange, fluid bool) error {
		for i, r := range zones {
			if r.TopDepth > r.BotDepth {
				return violation(invZoneBounds, "%s zone %d top %g below bottom %g", kind, i, r.TopDepth, r.BotDepth)
			}
			if i > 0 && r.TopDepth < zones[i-1].BotDepth {
				return violation(invZoneBounds, "%s zone %d overlaps zone %d", kind, i, i-1)
			}
			if fluid && r.RayParam != unsetRayParam {
				return violation(invZoneBounds, "fluid zone %d carries ray parameter %g", i, r.RayParam)
			}
			if !fluid && (r.RayParam < 0 || math.IsNaN(r.RayParam)) {
				return violation(invZoneBounds, "%s zone %d ray parameter %g", kind, i, r.RayParam)
			}
		}
		return nil
	}
	for _, w := range Waves {
		if err := check(w.String()+" high slowness", m.highSlowness[w], false); err != nil {
			return err
		}
	}
	return check("fluid", m.fluid, true)
}

func (m *Model) validateCriticalDepths() error {
	if len(m.critical) < 2 {
		return violation(invCritical, "need surface and bottom, have %d", len(m.critical))
	}
	if m.critical[0].Depth != 0 {
		return violation(invCritical, "first critical depth is %g, not 0", m.critical[0].Depth)
	}
	last := len(m.critical) - 1
	for i, cd := range m.critical {
		if i > 0 && cd.Depth <= m.critical[i-1].Depth {
			return violation(invCritical, "depth %g does not follow %g", cd.Depth, m.critical[i-1].Depth)
		}
		for _, w := range Waves {
			layers := m.layers[w]
			n := len(layers)
			idx := cd.LayerNum(w)
			switch {
			case idx < 0 || idx > n:
				return violation(invCritical, "%s layer index %d at depth %g outside [0, %d]", w, idx, cd.Depth, n)
			case idx == n:
				if i != last || math.Abs(layers[n-1].BotDepth-cd.Depth) > depthTolerance {
					return violation(invCritical, "%s index %d past the last layer at depth %g", w, idx, cd.Depth)
				}
			case math.Abs(layers[idx].TopDepth-cd.Depth) > depthTolerance:
				return violation(invCritical, "%s layer %d starts at %g, not %g", w, idx, layers[idx].TopDepth, cd.Depth)
			}
		}
	}
	return nil
}
