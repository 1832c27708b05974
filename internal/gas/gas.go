package gas

import "math"

// Properties holds the constant ideal-gas parameters of one gas path.
type Properties struct {
	Gamma float64 // ratio of specific heats [-]
	Cp    float64 // specific heat at constant pressure [J/kg-K]
	R     float64 // specific gas constant [J/kg-K]
}

// ColdAir covers the compressor and nozzle path.
var ColdAir = Properties{
	Gamma: 1.4,
	Cp:    1005.0,
	R:     287.0,
}

// HotGas covers the turbine path downstream of combustion.
// Cp is kept at the air value, matching the baseline model.
var HotGas = Properties{
	Gamma: 1.33,
	Cp:    1005.0,
	R:     287.0,
}

// Process-wide physical constants.
const (
	LHVJetA = 43.0e6 // lower heating value of Jet-A fuel [J/kg]
	G0      = 9.81   // standard gravitational acceleration [m/s^2]

	// ISA sea-level ambient conditions.
	SeaLevelTemperature = 288.15   // [K]
	SeaLevelPressure    = 101325.0 // [Pa]
)

// CriticalPressureRatio returns the inlet-to-ambient pressure ratio above
// which a converging nozzle chokes: ((gamma+1)/2)^(gamma/(gamma-1)).
// For cold air this is about 1.893.
func (p Properties) CriticalPressureRatio() float64 {
	return math.Pow((p.Gamma+1.0)/2.0, p.Gamma/(p.Gamma-1.0))
}

// SpeedOfSound returns sqrt(gamma*R*T) for a static temperature T.
func (p Properties) SpeedOfSound(t float64) float64 {
	return math.Sqrt(p.Gamma * p.R * t)
}

// IsentropicExponent returns (gamma-1)/gamma, the exponent of the
// temperature-pressure relation T2/T1 = (P2/P1)^((gamma-1)/gamma).
func (p Properties) IsentropicExponent() float64 {
	return (p.Gamma - 1.0) / p.Gamma
}
