package cycle

import (
	"fmt"

	"github.com/mericsson/turbocycle/internal/gas"
)

// Default combustor parameters for a modern annular combustor.
const (
	DefaultCombustionEfficiency = 0.99
	DefaultPressureLoss         = 0.03
)

// Combustor models constant-pressure heat addition. Fuel energy release is
// a direct energy balance over the lower heating value; the total pressure
// drops by a fixed fraction (wall friction, injection momentum, Rayleigh
// effects).
type Combustor struct {
	Efficiency   float64 // fraction of fuel energy released, in (0,1]
	PressureLoss float64 // fractional total pressure drop, in [0,1)
}

// NewCombustor returns a combustor with the default loss parameters.
func NewCombustor() Combustor {
	return Combustor{
		Efficiency:   DefaultCombustionEfficiency,
		PressureLoss: DefaultPressureLoss,
	}
}

// Burn computes the outlet state for a given fuel-air ratio.
//
//	dT    = eta_comb * f * LHV / Cp
//	P_out = P_in * (1 - dP/P)
//
// A zero fuel-air ratio is a valid dry pass-through (dT = 0).
func (b Combustor) Burn(in State, fuelAirRatio float64) (State, error) {
	if err := in.Validate(); err != nil {
		return State{}, err
	}
	if fuelAirRatio < 0 {
		return State{}, fmt.Errorf("%w: fuel-air ratio %.4g must be >= 0", ErrInvalidInput, fuelAirRatio)
	}
	if b.Efficiency <= 0 || b.Efficiency > 1 {
		return State{}, fmt.Errorf("%w: combustion efficiency %.4g must be in (0,1]", ErrInvalidInput, b.Efficiency)
	}
	if b.PressureLoss < 0 || b.PressureLoss >= 1 {
		return State{}, fmt.Errorf("%w: pressure loss %.4g must be in [0,1)", ErrInvalidInput, b.PressureLoss)
	}

	deltaT := b.Efficiency * fuelAirRatio * gas.LHVJetA / gas.ColdAir.Cp

	return State{
		Temperature: in.Temperature + deltaT,
		Pressure:    in.Pressure * (1.0 - b.PressureLoss),
	}, nil
}

// HeatRelease returns the total heat release rate [W] for a given fuel-air
// ratio and air mass flow.
func HeatRelease(fuelAirRatio, massFlow float64) float64 {
	return massFlow * fuelAirRatio * gas.LHVJetA
}

// FlameTemperature approximates the adiabatic flame temperature: a
// zero-loss burn from the given inlet temperature.
func FlameTemperature(tIn, fuelAirRatio, efficiency float64) (float64, error) {
	b := Combustor{Efficiency: efficiency, PressureLoss: 0}
	out, err := b.Burn(State{Temperature: tIn, Pressure: gas.SeaLevelPressure}, fuelAirRatio)
	if err != nil {
		return 0, err
	}
	return out.Temperature, nil
}
