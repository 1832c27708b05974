package config

import (
	"sort"

	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/gas"
)

// Presets are named operating points. "baseline" reproduces the sea-level
// reference cycle; "cruise" uses a cold, low-pressure ambient typical of
// high altitude.
var Presets = map[string]*Config{
	"baseline": {
		Engine: cycle.DefaultConfig(),
		Ambient: AmbientConfig{
			Temperature: gas.SeaLevelTemperature,
			Pressure:    gas.SeaLevelPressure,
		},
		Sweep: SweepConfig{Variable: "pressure_ratio", Min: 10, Max: 40, Points: 20},
	},
	"cruise": {
		Engine: cycle.DefaultConfig().WithMassFlow(30.0),
		Ambient: AmbientConfig{
			Temperature: 218.8,
			Pressure:    23842.0,
		},
		Sweep: SweepConfig{Variable: "pressure_ratio", Min: 10, Max: 40, Points: 20},
	},
	"hot-day": {
		Engine: cycle.DefaultConfig(),
		Ambient: AmbientConfig{
			Temperature: 310.0,
			Pressure:    gas.SeaLevelPressure,
		},
		Sweep: SweepConfig{Variable: "ambient_temperature", Min: 230, Max: 310, Points: 20},
	},
	"lean": {
		Engine: cycle.DefaultConfig().WithFuelAirRatio(0.015),
		Ambient: AmbientConfig{
			Temperature: gas.SeaLevelTemperature,
			Pressure:    gas.SeaLevelPressure,
		},
		Sweep: SweepConfig{Variable: "pressure_ratio", Min: 10, Max: 40, Points: 20},
	},
	"high-pr": {
		Engine: cycle.DefaultConfig().WithPressureRatio(35.0),
		Ambient: AmbientConfig{
			Temperature: gas.SeaLevelTemperature,
			Pressure:    gas.SeaLevelPressure,
		},
		Sweep: SweepConfig{Variable: "pressure_ratio", Min: 20, Max: 45, Points: 26},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
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
