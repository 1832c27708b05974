package cycle

import (
	"math"

	"github.com/mericsson/turbocycle/internal/gas"
)

// NozzleResult is the exit condition of the converging nozzle.
type NozzleResult struct {
	Out      State
	Velocity float64 // exit velocity [m/s]
	Mach     float64 // exit Mach number [-]
	Choked   bool    // sonic throat, P_exit above ambient
}

// Choked reports whether the nozzle operates in the choked regime for the
// given inlet and ambient pressures.
func Choked(pIn, pAmbient float64) bool {
	return pIn/pAmbient >= gas.ColdAir.CriticalPressureRatio()
}

// ExpandToAmbient expands the nozzle inlet state against the ambient back
// pressure and returns the exit state, velocity, and Mach number.
//
// Above the critical pressure ratio the throat is sonic: the exit state is
// the sonic condition, the velocity is the local speed of sound, and the
// exit pressure stays above ambient. Below it the flow expands fully to
// ambient and the velocity follows the energy equation
// V = sqrt(2*Cp*(T_in - T_exit)).
//
// The whole nozzle uses cold-air properties (gamma=1.4) even though the
// incoming gas is hot turbine exhaust. That matches the baseline model
// this implementation reproduces; switching to hot-gas properties would
// shift every downstream performance figure.
func ExpandToAmbient(in State, pAmbient float64) (NozzleResult, error) {
	if err := in.Validate(); err != nil {
		return NozzleResult{}, err
	}
	if err := (State{Temperature: in.Temperature, Pressure: pAmbient}).Validate(); err != nil {
		return NozzleResult{}, err
	}

	g := gas.ColdAir

	if Choked(in.Pressure, pAmbient) {
		tExit := in.Temperature * 2.0 / (g.Gamma + 1.0)
		pExit := in.Pressure * math.Pow(2.0/(g.Gamma+1.0), g.Gamma/(g.Gamma-1.0))

		return NozzleResult{
			Out:      State{Temperature: tExit, Pressure: pExit},
			Velocity: g.SpeedOfSound(tExit),
			Mach:     1.0,
			Choked:   true,
		}, nil
	}

	tExit := in.Temperature * math.Pow(pAmbient/in.Pressure, g.IsentropicExponent())

	// Roundoff can make the radicand slightly negative when T_in is within
	// epsilon of T_exit; clamp instead of erroring.
	radicand := 2.0 * g.Cp * (in.Temperature - tExit)
	vExit := math.Sqrt(math.Max(radicand, 0.0))

	return NozzleResult{
		Out:      State{Temperature: tExit, Pressure: pAmbient},
		Velocity: vExit,
		Mach:     vExit / g.SpeedOfSound(tExit),
		Choked:   false,
	}, nil
}
