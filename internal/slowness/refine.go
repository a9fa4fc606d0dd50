package slowness

import (
	"math"
	"slices"

	"go.uber.org/zap"
)

const (
	checkRayParam = "ray parameter"
	checkDepth    = "depth"
	checkDistance = "distance"
)

// split is a depth a refinement check wants inserted, with the layer that
// triggered it.
type split struct {
	depth float64
	wave  WaveType
	layer SlownessLayer
}

// timeDist is the surface distance and travel time of a turning ray.
type timeDist struct {
	p    float64
	dist float64
	time float64
}

// refine runs the ray parameter, depth and distance checks until a full
// pass inserts nothing, giving up after MaxRefinementPasses passes.
func (m *Model) refine() error {
	checks := []struct {
		name string
		run  func() []split
	}{
		{checkRayParam, m.rayParamIncCheck},
		{checkDepth, m.depthIncCheck},
		{checkDistance, m.distanceCheck},
	}

	var (
		last      split
		lastCheck string
	)
	for pass := 1; pass <= m.params.MaxRefinementPasses; pass++ {
		inserted := 0
		for _, c := range checks {
			splits := c.run()
			if len(splits) == 0 {
				continue
			}
			n, err := m.splitAt(splits)
			if err != nil {
				return err
			}
			if n > 0 {
				inserted += n
				last, lastCheck = splits[0], c.name
			}
		}
		m.logger.Debug("refinement pass",
			zap.Int("pass", pass),
			zap.Int("inserted", inserted),
			zap.Int("layers", len(m.layers[P])))
		if inserted == 0 {
			return nil
		}
	}
	return &RefinementError{
		Check:    lastCheck,
		Wave:     last.wave,
		TopDepth: last.layer.TopDepth,
		BotDepth: last.layer.BotDepth,
		Passes:   m.params.MaxRefinementPasses,
	}
}

// splitAt inserts every requested depth into both wave sequences,
// evaluating new slownesses from the velocity model. Depths on an existing
// boundary are ignored. It returns the number of boundaries added.
func (m *Model) splitAt(splits []split) (int, error) {
	depths := make([]float64, 0, len(splits))
	for _, s := range splits {
		depths = append(depths, s.depth)
	}
	slices.Sort(depths)
	depths = slices.Compact(depths)

	inserted := 0
	for _, w := range Waves {
		src := m.layers[w]
		out := make([]SlownessLayer, 0, len(src)+len(depths))
		k := 0
		for _, l := range src {
			for k < len(depths) && depths[k] <= l.TopDepth {
				k++
			}
			rest := l
			for k < len(depths) && depths[k] < l.BotDepth {
				d := depths[k]
				p, err := m.sampleAt(d, w)
				if err != nil {
					return 0, err
				}
				out = append(out, SlownessLayer{
					TopDepth: rest.TopDepth,
					BotDepth: d,
					TopP:     rest.TopP,
					BotP:     p,
				})
				rest = SlownessLayer{TopDepth: d, BotDepth: l.BotDepth, TopP: p, BotP: l.BotP}
				k++
				if w == P {
					inserted++
				}
			}
			out = append(out, rest)
		}
		m.layers[w] = out
	}
	return inserted, nil
}

// splitDepth is where slowness reaches p inside l, or the middle of l when
// the Bullen fit cannot be inverted.
func (m *Model) splitDepth(l SlownessLayer, p float64) float64 {
	if d, ok := l.depthFor(p, m.radius); ok {
		return d
	}
	return (l.TopDepth + l.BotDepth) / 2
}

func (m *Model) rayParamIncCheck() []split {
	var splits []split
	for _, w := range Waves {
		for _, l := range m.layers[w] {
			if l.IsDiscontinuity() || math.Abs(l.TopP-l.BotP) <= m.params.MaxDeltaP {
				continue
			}
			splits = append(splits, split{
				depth: m.splitDepth(l, (l.TopP+l.BotP)/2),
				wave:  w,
				layer: l,
			})
		}
	}
	return splits
}

func (m *Model) depthIncCheck() []split {
	var splits []split
	for _, w := range Waves {
		for _, l := range m.layers[w] {
			if l.Thickness() <= m.params.MaxDepthInterval {
				continue
			}
			splits = append(splits, split{
				depth: (l.TopDepth + l.BotDepth) / 2,
				wave:  w,
				layer: l,
			})
		}
	}
	return splits
}

// distanceCheck splits layers whose bounding turning rays land too far
// apart, or whose midpoint ray departs from linear interpolation in time by
// more than MaxInterpError. Only layers a turning ray can reach are checked.
func (m *Model) distanceCheck() []split {
	var splits []split
	for _, w := range Waves {
		minAbove := math.Inf(1)
		for _, l := range m.layers[w] {
			if m.needsDistanceSplit(l, w, minAbove) {
				splits = append(splits, split{
					depth: m.splitDepth(l, (l.TopP+l.BotP)/2),
					wave:  w,
					layer: l,
				})
			}
			minAbove = math.Min(minAbove, math.Min(l.TopP, l.BotP))
		}
	}
	return splits
}

func (m *Model) needsDistanceSplit(l SlownessLayer, w WaveType, minAbove float64) bool {
	if l.IsDiscontinuity() || l.TopP <= l.BotP {
		return false
	}
	if l.TopP > minAbove+m.params.SlownessTolerance {
		return false
	}
	if l.TopP-l.BotP <= 2*m.params.MinDeltaP {
		return false
	}

	top := m.approxDistance(l.TopP, w)
	bot := m.approxDistance(l.BotP, w)
	if math.Abs(bot.dist-top.dist) > m.params.MaxRangeInterval {
		return true
	}
	if bot.dist == top.dist {
		return false
	}
	mid := m.approxDistance((l.TopP+l.BotP)/2, w)
	interp := top.time + (mid.dist-top.dist)*(bot.time-top.time)/(bot.dist-top.dist)
	return math.Abs(mid.time-interp) > m.params.MaxInterpError
}

// approxDistance sums the Bullen distance and time of a ray with parameter
// p from the surface down to its turning or reflection point, doubled for
// the return leg.
func (m *Model) approxDistance(p float64, w WaveType) timeDist {
	td := timeDist{p: p}
	for _, l := range m.layers[w] {
		if l.IsDiscontinuity() {
			if p > l.BotP {
				break
			}
			continue
		}
		if p > l.TopP {
			break
		}
		d, t := l.bullenRadialSlowness(p, m.radius)
		td.dist += d
		td.time += t
		if p >= l.BotP {
			break
		}
	}
	td.dist *= 2
	td.time *= 2
	return td
}
