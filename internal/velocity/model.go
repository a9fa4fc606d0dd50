package velocity

import (
	"fmt"
	"math"
	"sort"
)

// Model is a spherically symmetric layered velocity model.
type Model struct {
	Name      string  `yaml:"name" json:"name"`
	Radius    float64 `yaml:"radius" json:"radius"`
	MohoDepth float64 `yaml:"moho_depth" json:"moho_depth"`
	CMBDepth  float64 `yaml:"cmb_depth" json:"cmb_depth"`
	IOCBDepth float64 `yaml:"iocb_depth" json:"iocb_depth"`
	Layers    []Layer `yaml:"layers" json:"layers"`
}

func (m *Model) SurfaceRadius() float64     { return m.Radius }
func (m *Model) InnerCoreBoundary() float64 { return m.IOCBDepth }
func (m *Model) NumLayers() int             { return len(m.Layers) }
func (m *Model) LayerAt(i int) Layer        { return m.Layers[i] }

// MaxDepth returns the bottom depth of the deepest layer.
func (m *Model) MaxDepth() float64 {
	if len(m.Layers) == 0 {
		return 0
	}
	return m.Layers[len(m.Layers)-1].BotDepth
}

// LayerIndex returns the index of the layer containing depth. A depth on a
// boundary belongs to the layer below it, except at the bottom of the model.
func (m *Model) LayerIndex(depth float64) (int, error) {
	if len(m.Layers) == 0 {
		return -1, ErrNoLayers
	}
	if depth < m.Layers[0].TopDepth || depth > m.MaxDepth() {
		return -1, fmt.Errorf("depth %g outside model [%g, %g]", depth, m.Layers[0].TopDepth, m.MaxDepth())
	}
	i := sort.Search(len(m.Layers), func(i int) bool {
		return m.Layers[i].BotDepth > depth
	})
	if i == len(m.Layers) {
		i = len(m.Layers) - 1
	}
	return i, nil
}

// Validate checks that the layers start at the surface, are contiguous and
// sorted, stay above the centre and carry physical velocities.
func (m *Model) Validate() error {
	if m.Radius <= 0 || math.IsNaN(m.Radius) {
		return fmt.Errorf("%w: radius %g", ErrBadRadius, m.Radius)
	}
	if len(m.Layers) == 0 {
		return ErrNoLayers
	}
	if m.Layers[0].TopDepth != 0 {
		return fmt.Errorf("%w: first layer starts at %g, not the surface", ErrNotContiguous, m.Layers[0].TopDepth)
	}
	if m.IOCBDepth < 0 || m.IOCBDepth > m.Radius {
		return fmt.Errorf("%w: inner core boundary %g", ErrBadRadius, m.IOCBDepth)
	}

	for i, l := range m.Layers {
		if l.BotDepth < l.TopDepth {
			return fmt.Errorf("%w: layer %d inverted (%g > %g)", ErrNotContiguous, i, l.TopDepth, l.BotDepth)
		}
		if i > 0 && l.TopDepth != m.Layers[i-1].BotDepth {
			return fmt.Errorf("%w: layer %d top %g != layer %d bottom %g",
				ErrNotContiguous, i, l.TopDepth, i-1, m.Layers[i-1].BotDepth)
		}
		if l.BotDepth > m.Radius {
			return fmt.Errorf("%w: layer %d bottom %g below centre", ErrBadRadius, i, l.BotDepth)
		}
		if l.TopPVelocity <= 0 || l.BotPVelocity <= 0 {
			return fmt.Errorf("%w: layer %d P velocity %g/%g", ErrBadVelocity, i, l.TopPVelocity, l.BotPVelocity)
		}
		if l.TopSVelocity < 0 || l.BotSVelocity < 0 {
			return fmt.Errorf("%w: layer %d S velocity %g/%g", ErrBadVelocity, i, l.TopSVelocity, l.BotSVelocity)
		}
	}
	return nil
}
