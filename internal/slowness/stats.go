package slowness

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Stats summarises the sampled layers of one wave.
type Stats struct {
	Wave            WaveType `json:"wave" msgpack:"wave"`
	Layers          int      `json:"layers" msgpack:"layers"`
	Discontinuities int      `json:"discontinuities" msgpack:"discontinuities"`
	MinSlowness     float64  `json:"min_slowness" msgpack:"min_slowness"`
	MaxSlowness     float64  `json:"max_slowness" msgpack:"max_slowness"`
	MaxDeltaP       float64  `json:"max_delta_p" msgpack:"max_delta_p"`
	MaxThickness    float64  `json:"max_thickness" msgpack:"max_thickness"`
}

func (m *Model) Stats(w WaveType) Stats {
	layers := m.layers[w]
	st := Stats{Wave: w, Layers: len(layers)}
	if len(layers) == 0 {
		return st
	}

	slow := make([]float64, 0, 2*len(layers))
	var deltas, thick []float64
	for _, l := range layers {
		slow = append(slow, l.TopP, l.BotP)
		if l.IsDiscontinuity() {
			st.Discontinuities++
			continue
		}
		deltas = append(deltas, math.Abs(l.TopP-l.BotP))
		thick = append(thick, l.Thickness())
	}

	st.MinSlowness = floats.Min(slow)
	st.MaxSlowness = floats.Max(slow)
	if len(deltas) > 0 {
		st.MaxDeltaP = floats.Max(deltas)
		st.MaxThickness = floats.Max(thick)
	}
	return st
}
