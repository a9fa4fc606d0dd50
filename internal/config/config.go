package config

import (
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/seismo/internal/slowness"
)

const (
	DefaultModel   = "simple-earth"
	DefaultDataDir = "runs"
	DefaultWorkers = 0
)

type Config struct {
	Model    string         `yaml:"model"`
	DataDir  string         `yaml:"data_dir"`
	Debug    bool           `yaml:"debug"`
	Workers  int            `yaml:"workers"`
	Sampling SamplingConfig `yaml:"sampling"`
}

// SamplingConfig mirrors slowness.Params with the range interval in degrees.
type SamplingConfig struct {
	MinDeltaP           float64 `yaml:"min_delta_p"`
	MaxDeltaP           float64 `yaml:"max_delta_p"`
	MaxDepthInterval    float64 `yaml:"max_depth_interval"`
	MaxRangeIntervalDeg float64 `yaml:"max_range_interval_deg"`
	MaxInterpError      float64 `yaml:"max_interp_error"`
	AllowInnerCoreS     bool    `yaml:"allow_inner_core_s"`
	SlownessTolerance   float64 `yaml:"slowness_tolerance"`
	MaxRefinementPasses int     `yaml:"max_refinement_passes"`
}

func FromParams(p slowness.Params) SamplingConfig {
	return SamplingConfig{
		MinDeltaP:           p.MinDeltaP,
		MaxDeltaP:           p.MaxDeltaP,
		MaxDepthInterval:    p.MaxDepthInterval,
		MaxRangeIntervalDeg: p.MaxRangeInterval * 180 / math.Pi,
		MaxInterpError:      p.MaxInterpError,
		AllowInnerCoreS:     p.AllowInnerCoreS,
		SlownessTolerance:   p.SlownessTolerance,
		MaxRefinementPasses: p.MaxRefinementPasses,
	}
}

func DefaultConfig() *Config {
	return &Config{
		Model:    DefaultModel,
		DataDir:  DefaultDataDir,
		Workers:  DefaultWorkers,
		Sampling: FromParams(slowness.DefaultParams()),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the sampling section and validates it.
func (c *Config) Params() (slowness.Params, error) {
	s := c.Sampling
	p := slowness.Params{
		MinDeltaP:           s.MinDeltaP,
		MaxDeltaP:           s.MaxDeltaP,
		MaxDepthInterval:    s.MaxDepthInterval,
		MaxRangeInterval:    s.MaxRangeIntervalDeg * math.Pi / 180,
		MaxInterpError:      s.MaxInterpError,
		AllowInnerCoreS:     s.AllowInnerCoreS,
		SlownessTolerance:   s.SlownessTolerance,
		MaxRefinementPasses: s.MaxRefinementPasses,
	}
	if err := p.Validate(); err != nil {
		return slowness.Params{}, err
	}
	return p, nil
}
