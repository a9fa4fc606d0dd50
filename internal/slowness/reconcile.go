package slowness

import (
	"math"
	"sort"
)

// depthTolerance is the slack, in km, when matching depths against layer
// boundaries.
const depthTolerance = 1e-9

// fixCriticalPoints points every critical depth at the first layer of each
// wave whose top lies at that depth. The deepest critical depth indexes one
// past the last layer.
func (m *Model) fixCriticalPoints() error {
	last := len(m.critical) - 1
	for i := range m.critical {
		cd := &m.critical[i]
		for _, w := range Waves {
			idx, err := m.layerNumForTop(cd.Depth, w, i == last)
			if err != nil {
				return err
			}
			if w == P {
				cd.PLayer = idx
			} else {
				cd.SLayer = idx
			}
		}
	}
	return nil
}

func (m *Model) layerNumForTop(depth float64, w WaveType, bottom bool) (int, error) {
	layers := m.layers[w]
	n := len(layers)
	if bottom && n > 0 && math.Abs(layers[n-1].BotDepth-depth) <= depthTolerance {
		return n, nil
	}
	i := sort.Search(n, func(i int) bool {
		return layers[i].TopDepth >= depth-depthTolerance
	})
	if i < n && math.Abs(layers[i].TopDepth-depth) <= depthTolerance {
		return i, nil
	}
	return -1, &ReconcileError{Depth: depth, Wave: w}
}
