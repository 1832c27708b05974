package cycle

import "errors"

// Domain errors for cycle computations.
var (
	// ErrInvalidInput indicates a caller contract violation: non-positive
	// temperature or pressure, pressure ratio below one, efficiency outside
	// (0,1], fractional loss outside [0,1), or zero fuel flow where a ratio
	// is computed.
	ErrInvalidInput = errors.New("cycle: invalid input")

	// ErrEnergyBalance indicates the turbine could not supply the required
	// shaft work without its exit temperature falling below the physical
	// floor. The clamped state is still usable, but the single-spool energy
	// balance no longer closes.
	ErrEnergyBalance = errors.New("cycle: energy balance unsatisfiable")
)

// StationError attributes a component failure to a gas-path station.
// Failures are never recovered internally; they surface to the Engine
// caller wrapped with the station name.
type StationError struct {
	Station string
	Wrapped error
}

func (e *StationError) Error() string {
	return e.Station + ": " + e.Wrapped.Error()
}

func (e *StationError) Unwrap() error {
	return e.Wrapped
}
