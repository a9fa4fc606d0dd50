package slowness

import "math"

// coarseSample lays down one slowness layer per velocity layer and wave,
// with a zero-thickness layer wherever either wave jumps. Both sequences
// receive the jump layer so P and S keep identical depth boundaries.
func (m *Model) coarseSample(scan *criticalScan) {
	tol := m.params.SlownessTolerance
	n := len(scan.layers[P])
	var out [2][]SlownessLayer
	for _, w := range Waves {
		out[w] = make([]SlownessLayer, 0, 2*n)
	}

	for i := 0; i < n; i++ {
		if i > 0 {
			jump := false
			for _, w := range Waves {
				last := out[w][len(out[w])-1]
				if math.Abs(last.BotP-scan.layers[w][i].TopP) > tol {
					jump = true
				}
			}
			if jump {
				d := scan.layers[P][i].TopDepth
				for _, w := range Waves {
					last := out[w][len(out[w])-1]
					out[w] = append(out[w], SlownessLayer{
						TopDepth: d,
						BotDepth: d,
						TopP:     last.BotP,
						BotP:     scan.layers[w][i].TopP,
					})
				}
			}
		}
		for _, w := range Waves {
			out[w] = append(out[w], scan.layers[w][i])
		}
	}

	m.layers = out
	m.sAsP = scan.sAsP
}
