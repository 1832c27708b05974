package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/gas"
)

// Default sweep grid, matching the baseline parametric study.
const (
	DefaultSweepPoints = 20
	DefaultPRMin       = 10.0
	DefaultPRMax       = 40.0
	DefaultTempMin     = 230.0
	DefaultTempMax     = 310.0
)

// Config is one run deck: engine parameters, ambient conditions, and an
// optional sweep block.
type Config struct {
	Engine  cycle.Config  `yaml:"engine"`
	Ambient AmbientConfig `yaml:"ambient"`
	Sweep   SweepConfig   `yaml:"sweep"`
}

type AmbientConfig struct {
	Temperature float64 `yaml:"temperature"` // [K]
	Pressure    float64 `yaml:"pressure"`    // [Pa]
}

// State converts the ambient block to a station state.
func (a AmbientConfig) State() cycle.State {
	return cycle.State{Temperature: a.Temperature, Pressure: a.Pressure}
}

// SweepConfig selects a swept variable and its grid. Variable is either
// "pressure_ratio" or "ambient_temperature".
type SweepConfig struct {
	Variable string  `yaml:"variable"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
	Points   int     `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Engine: cycle.DefaultConfig(),
		Ambient: AmbientConfig{
			Temperature: gas.SeaLevelTemperature,
			Pressure:    gas.SeaLevelPressure,
		},
		Sweep: SweepConfig{
			Variable: "pressure_ratio",
			Min:      DefaultPRMin,
			Max:      DefaultPRMax,
			Points:   DefaultSweepPoints,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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
