package cycle

import (
	"fmt"
	"math"

	"github.com/mericsson/turbocycle/internal/gas"
)

// MinTurbineExitTemperature is the physical floor for the turbine outlet.
// An exit state colder than this indicates the requested shaft work cannot
// be supplied by the available gas enthalpy.
const MinTurbineExitTemperature = 300.0 // [K]

// Turbine models work-matched expansion: instead of a pressure ratio it is
// given the specific work it must extract (the compressor demand on the
// single spool, no mechanical losses assumed). Hot-gas properties apply
// downstream of combustion.
type Turbine struct {
	Efficiency float64 // isentropic efficiency, in (0,1]
}

// TurbineResult carries the outlet state and whether the exit temperature
// was clamped at the physical floor. A clamped result is still usable but
// the extracted work no longer matches the request.
type TurbineResult struct {
	Out     State
	Clamped bool
}

// Err returns ErrEnergyBalance when the result was clamped, nil otherwise.
// Callers that treat off-design infeasibility as a failure can check it
// with errors.Is.
func (r TurbineResult) Err() error {
	if r.Clamped {
		return fmt.Errorf("%w: turbine exit clamped at %.0f K", ErrEnergyBalance, MinTurbineExitTemperature)
	}
	return nil
}

// Expand computes the outlet state for a required specific work extraction.
//
//	dT_ideal  = W_required / Cp
//	dT_actual = dT_ideal / eta
//	P_out     = P_in * (T_out/T_in)^(gamma/(gamma-1))
//
// Efficiency penalizes the temperature drop upward: a lossy turbine must
// drop more temperature to deliver the same shaft work. The pressure
// follows the isentropic relation over the actual temperature ratio.
func (t Turbine) Expand(in State, workRequired float64) (TurbineResult, error) {
	if err := in.Validate(); err != nil {
		return TurbineResult{}, err
	}
	if workRequired < 0 {
		return TurbineResult{}, fmt.Errorf("%w: required work %.4g J/kg must be >= 0", ErrInvalidInput, workRequired)
	}
	if t.Efficiency <= 0 || t.Efficiency > 1 {
		return TurbineResult{}, fmt.Errorf("%w: turbine efficiency %.4g must be in (0,1]", ErrInvalidInput, t.Efficiency)
	}

	deltaTIdeal := workRequired / gas.HotGas.Cp
	deltaTActual := deltaTIdeal / t.Efficiency

	tOut := in.Temperature - deltaTActual
	clamped := false
	if tOut < MinTurbineExitTemperature {
		tOut = MinTurbineExitTemperature
		clamped = true
	}

	exponent := gas.HotGas.Gamma / (gas.HotGas.Gamma - 1.0)
	pOut := in.Pressure * math.Pow(tOut/in.Temperature, exponent)

	return TurbineResult{
		Out:     State{Temperature: tOut, Pressure: pOut},
		Clamped: clamped,
	}, nil
}

// TurbinePower returns the shaft power [W] extracted between tIn and tOut,
// or the specific work [J/kg] when massFlow is 1.
func TurbinePower(tIn, tOut, massFlow float64) float64 {
	return massFlow * gas.HotGas.Cp * (tIn - tOut)
}

// ExpansionRatio returns the overall pressure ratio P_in/P_out.
func ExpansionRatio(pIn, pOut float64) float64 {
	return pIn / pOut
}

// EstimateStages estimates the number of turbine stages needed for an
// expansion ratio given a maximum per-stage loading.
func EstimateStages(expansionRatio, maxStageLoading float64) int {
	return int(math.Ceil(math.Log(expansionRatio) / math.Log(maxStageLoading)))
}
