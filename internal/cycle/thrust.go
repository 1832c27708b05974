package cycle

import (
	"fmt"

	"github.com/mericsson/turbocycle/internal/gas"
)

// SimpleThrust is the momentum thrust for zero inlet velocity and a fully
// expanded nozzle: F = mdot * V_exit. The pressure-thrust term is omitted
// even in the choked regime, matching the baseline model.
func SimpleThrust(massFlow, vExit float64) float64 {
	return massFlow * vExit
}

// FullThrust includes both the momentum and the pressure-area term:
//
//	F = mdot*(V_exit - V_inlet) + (P_exit - P_ambient)*A_exit
//
// It needs a known exit area, which the cycle configuration does not carry,
// so Engine.Run reports SimpleThrust and leaves this to callers sizing a
// nozzle.
func FullThrust(massFlow, vExit, vInlet, pExit, pAmbient, aExit float64) float64 {
	return massFlow*(vExit-vInlet) + (pExit-pAmbient)*aExit
}

// SpecificImpulse returns thrust per unit weight-flow of fuel [s].
// A non-positive fuel flow is rejected rather than returning an infinity.
func SpecificImpulse(thrust, mdotFuel float64) (float64, error) {
	if mdotFuel <= 0 {
		return 0, fmt.Errorf("%w: fuel flow %.4g kg/s must be positive for specific impulse", ErrInvalidInput, mdotFuel)
	}
	return thrust / (mdotFuel * gas.G0), nil
}
