package cycle

import "fmt"

// State is the total (stagnation) condition at a station boundary.
type State struct {
	Temperature float64 // [K]
	Pressure    float64 // [Pa]
}

// Validate rejects non-physical station states. Every component validates
// its inlet, so a negative or zero pressure anywhere in the gas path fails
// fast instead of propagating NaNs downstream.
func (s State) Validate() error {
	if s.Temperature <= 0 {
		return fmt.Errorf("%w: temperature %.4g K must be positive", ErrInvalidInput, s.Temperature)
	}
	if s.Pressure <= 0 {
		return fmt.Errorf("%w: pressure %.4g Pa must be positive", ErrInvalidInput, s.Pressure)
	}
	return nil
}
