package cycle

import (
	"fmt"
	"math"

	"github.com/mericsson/turbocycle/internal/gas"
)

// Compressor models axial/centrifugal compression with isentropic
// efficiency. The outlet pressure is exact (P_out = P_in * PR); losses are
// applied as an efficiency penalty on the temperature rise, not on the
// pressure rise.
type Compressor struct {
	PressureRatio float64 // total pressure ratio P_out/P_in, >= 1
	Efficiency    float64 // isentropic efficiency, in (0,1]
}

// Compress computes the outlet state for a given inlet state.
//
//	T_ideal = T_in * PR^((gamma-1)/gamma)
//	T_out   = T_in + (T_ideal - T_in) / eta
func (c Compressor) Compress(in State) (State, error) {
	if err := in.Validate(); err != nil {
		return State{}, err
	}
	if c.PressureRatio < 1.0 {
		return State{}, fmt.Errorf("%w: pressure ratio %.4g must be >= 1", ErrInvalidInput, c.PressureRatio)
	}
	if c.Efficiency <= 0 || c.Efficiency > 1 {
		return State{}, fmt.Errorf("%w: compressor efficiency %.4g must be in (0,1]", ErrInvalidInput, c.Efficiency)
	}

	tIdeal := in.Temperature * math.Pow(c.PressureRatio, gas.ColdAir.IsentropicExponent())
	tOut := in.Temperature + (tIdeal-in.Temperature)/c.Efficiency

	return State{
		Temperature: tOut,
		Pressure:    in.Pressure * c.PressureRatio,
	}, nil
}

// CompressorWork returns the shaft power [W] absorbed between tIn and tOut,
// or the specific work [J/kg] when massFlow is 1.
func CompressorWork(tIn, tOut, massFlow float64) float64 {
	return massFlow * gas.ColdAir.Cp * (tOut - tIn)
}

// StageLoading estimates the average temperature rise per compressor stage.
func StageLoading(tIn, tOut float64, numStages int) float64 {
	return (tOut - tIn) / float64(numStages)
}
