package velocity

import (
	"fmt"
	"sort"
)

// EarthRadius is the mean Earth radius used by the built-in models.
const EarthRadius = 6371.0

const defaultIOCB = 5150.0

// Presets maps model names to constructors. Each call returns a fresh copy.
var Presets = map[string]func() *Model{
	"two-layer":    TwoLayer,
	"moho":         Moho,
	"lvz":          LowVelocityZone,
	"fluid-layer":  FluidLayer,
	"simple-earth": SimpleEarth,
}

// GetPreset returns a built-in model by name.
func GetPreset(name string) (*Model, error) {
	fn, ok := Presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownModel, name)
	}
	return fn(), nil
}

// ListPresets returns the built-in model names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func layer(top, bot, vpTop, vpBot, vsTop, vsBot, rhoTop, rhoBot float64) Layer {
	qs := 600.0
	if vsTop == 0 {
		qs = 0
	}
	return Layer{
		TopDepth: top, BotDepth: bot,
		TopPVelocity: vpTop, BotPVelocity: vpBot,
		TopSVelocity: vsTop, BotSVelocity: vsBot,
		TopDensity: rhoTop, BotDensity: rhoBot,
		TopQp: 1400, BotQp: 1400,
		TopQs: qs, BotQs: qs,
	}
}

// TwoLayer is a constant-velocity crust over a constant-velocity upper mantle.
func TwoLayer() *Model {
	return &Model{
		Name:      "two-layer",
		Radius:    EarthRadius,
		MohoDepth: 35,
		IOCBDepth: defaultIOCB,
		Layers: []Layer{
			layer(0, 35, 6.0, 6.0, 3.5, 3.5, 2.7, 2.7),
			layer(35, 50, 8.0, 8.0, 4.5, 4.5, 3.3, 3.3),
		},
	}
}

// Moho is a gradient crust over a gradient mantle with a single step.
func Moho() *Model {
	return &Model{
		Name:      "moho",
		Radius:    EarthRadius,
		MohoDepth: 35,
		IOCBDepth: defaultIOCB,
		Layers: []Layer{
			layer(0, 35, 5.8, 6.5, 3.36, 3.75, 2.6, 2.9),
			layer(35, 200, 8.04, 8.3, 4.48, 4.52, 3.3, 3.4),
		},
	}
}

// LowVelocityZone has a slow layer bounded by discontinuities at 20 and 40 km.
func LowVelocityZone() *Model {
	return &Model{
		Name:      "lvz",
		Radius:    EarthRadius,
		IOCBDepth: defaultIOCB,
		Layers: []Layer{
			layer(0, 20, 6.0, 6.0, 3.5, 3.5, 2.7, 2.7),
			layer(20, 40, 5.0, 5.0, 3.0, 3.0, 2.6, 2.6),
			layer(40, 100, 7.0, 7.0, 4.0, 4.0, 3.1, 3.1),
		},
	}
}

// FluidLayer has a zero shear velocity layer between 100 and 200 km.
func FluidLayer() *Model {
	return &Model{
		Name:      "fluid-layer",
		Radius:    EarthRadius,
		IOCBDepth: defaultIOCB,
		Layers: []Layer{
			layer(0, 100, 6.0, 6.0, 3.5, 3.5, 2.7, 2.7),
			layer(100, 200, 7.0, 7.0, 0, 0, 2.9, 2.9),
			layer(200, 300, 8.0, 8.0, 4.5, 4.5, 3.3, 3.3),
		},
	}
}

// SimpleEarth is a coarse whole-Earth model with a fluid outer core.
func SimpleEarth() *Model {
	return &Model{
		Name:      "simple-earth",
		Radius:    EarthRadius,
		MohoDepth: 35,
		CMBDepth:  2891,
		IOCBDepth: defaultIOCB,
		Layers: []Layer{
			layer(0, 20, 5.8, 5.8, 3.46, 3.46, 2.72, 2.72),
			layer(20, 35, 6.5, 6.5, 3.85, 3.85, 2.92, 2.92),
			layer(35, 210, 8.04, 8.30, 4.48, 4.52, 3.32, 3.43),
			layer(210, 410, 8.30, 9.03, 4.52, 4.87, 3.43, 3.54),
			layer(410, 660, 9.36, 10.20, 5.08, 5.60, 3.72, 3.99),
			layer(660, 2740, 10.79, 13.68, 5.95, 7.27, 4.38, 5.49),
			layer(2740, 2891, 13.68, 13.66, 7.27, 7.28, 5.49, 5.57),
			layer(2891, 5150, 8.00, 10.29, 0, 0, 9.90, 12.17),
			layer(5150, 6371, 11.04, 11.26, 3.50, 3.67, 12.76, 13.09),
		},
	}
}
