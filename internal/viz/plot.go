package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/seismo/internal/slowness"
)

// SampleProfile evaluates slowness at n evenly spaced depths from the top
// of the first layer to the bottom of the last, interpolating linearly
// within each layer.
func SampleProfile(layers []slowness.SlownessLayer, n int) []float64 {
	if len(layers) == 0 || n < 2 {
		return nil
	}
	top, bot := layers[0].TopDepth, layers[len(layers)-1].BotDepth
	out := make([]float64, n)
	j := 0
	for i := range out {
		d := top + (bot-top)*float64(i)/float64(n-1)
		for j < len(layers)-1 && (layers[j].BotDepth < d || layers[j].IsDiscontinuity()) {
			j++
		}
		l := layers[j]
		if l.IsDiscontinuity() {
			out[i] = l.BotP
			continue
		}
		frac := (d - l.TopDepth) / l.Thickness()
		out[i] = l.TopP + frac*(l.BotP-l.TopP)
	}
	return out
}

// PlotProfile draws slowness against depth for one wave type.
func PlotProfile(layers []slowness.SlownessLayer, w slowness.WaveType, width, height int) string {
	data := SampleProfile(layers, width)
	if data == nil {
		return ""
	}
	caption := fmt.Sprintf("%s slowness (s/rad), depth %g-%g km left to right",
		w, layers[0].TopDepth, layers[len(layers)-1].BotDepth)
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
