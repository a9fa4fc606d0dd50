package config

import "sort"

var Presets = map[string]SamplingConfig{
	"default": {
		MinDeltaP: 0.1, MaxDeltaP: 11, MaxDepthInterval: 115,
		MaxRangeIntervalDeg: 2.5, MaxInterpError: 0.05,
		AllowInnerCoreS: true, SlownessTolerance: 1e-10, MaxRefinementPasses: 64,
	},
	"fine": {
		MinDeltaP: 0.05, MaxDeltaP: 5, MaxDepthInterval: 50,
		MaxRangeIntervalDeg: 1, MaxInterpError: 0.01,
		AllowInnerCoreS: true, SlownessTolerance: 1e-10, MaxRefinementPasses: 128,
	},
	"coarse": {
		MinDeltaP: 0.5, MaxDeltaP: 25, MaxDepthInterval: 250,
		MaxRangeIntervalDeg: 5, MaxInterpError: 0.2,
		AllowInnerCoreS: true, SlownessTolerance: 1e-10, MaxRefinementPasses: 32,
	},
}

func GetPreset(name string) *Config {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	cfg.Sampling = s
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
