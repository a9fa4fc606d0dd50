package velocity

// Layer is a single velocity layer. All properties vary linearly in depth
// between the top and bottom values.
type Layer struct {
	TopDepth     float64 `yaml:"top_depth" json:"top_depth"`
	BotDepth     float64 `yaml:"bot_depth" json:"bot_depth"`
	TopPVelocity float64 `yaml:"top_vp" json:"top_vp"`
	BotPVelocity float64 `yaml:"bot_vp" json:"bot_vp"`
	TopSVelocity float64 `yaml:"top_vs" json:"top_vs"`
	BotSVelocity float64 `yaml:"bot_vs" json:"bot_vs"`
	TopDensity   float64 `yaml:"top_density" json:"top_density"`
	BotDensity   float64 `yaml:"bot_density" json:"bot_density"`
	TopQp        float64 `yaml:"top_qp" json:"top_qp"`
	BotQp        float64 `yaml:"bot_qp" json:"bot_qp"`
	TopQs        float64 `yaml:"top_qs" json:"top_qs"`
	BotQs        float64 `yaml:"bot_qs" json:"bot_qs"`
}

// Thickness returns the depth extent of the layer.
func (l Layer) Thickness() float64 {
	return l.BotDepth - l.TopDepth
}

// Contains reports whether depth lies within the closed layer interval.
func (l Layer) Contains(depth float64) bool {
	return depth >= l.TopDepth && depth <= l.BotDepth
}

func (l Layer) PVelocityAt(depth float64) float64 {
	return l.interp(l.TopPVelocity, l.BotPVelocity, depth)
}

func (l Layer) SVelocityAt(depth float64) float64 {
	return l.interp(l.TopSVelocity, l.BotSVelocity, depth)
}

func (l Layer) DensityAt(depth float64) float64 {
	return l.interp(l.TopDensity, l.BotDensity, depth)
}

// IsFluid reports whether the layer carries no shear waves at its top.
func (l Layer) IsFluid() bool {
	return l.TopSVelocity == 0
}

func (l Layer) interp(top, bot, depth float64) float64 {
	if depth == l.TopDepth || l.BotDepth == l.TopDepth {
		return top
	}
	if depth == l.BotDepth {
		return bot
	}
	return top + (bot-top)*(depth-l.TopDepth)/(l.BotDepth-l.TopDepth)
}
