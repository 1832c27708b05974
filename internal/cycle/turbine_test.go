package cycle

import (
	"errors"
	"math"
	"testing"

	"github.com/mericsson/turbocycle/internal/gas"
)

func TestTurbineWorkMatch(t *testing.T) {
	turb := Turbine{Efficiency: 1.0}

	in := State{Temperature: 1500.0, Pressure: 1.7e6}
	work := 215000.0

	res, err := turb.Expand(in, work)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if res.Clamped {
		t.Fatal("did not expect clamped result")
	}

	// At unity efficiency the extracted work equals the request exactly.
	extracted := TurbinePower(in.Temperature, res.Out.Temperature, 1.0)
	if math.Abs(extracted-work) > 1e-6 {
		t.Errorf("expected extracted work %f, got %f", work, extracted)
	}
}

func TestTurbinePressureFollowsActualRatio(t *testing.T) {
	turb := Turbine{Efficiency: 0.90}

	in := State{Temperature: 1500.0, Pressure: 1.7e6}
	res, err := turb.Expand(in, 215000.0)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	exponent := gas.HotGas.Gamma / (gas.HotGas.Gamma - 1.0)
	want := in.Pressure * math.Pow(res.Out.Temperature/in.Temperature, exponent)
	if math.Abs(res.Out.Pressure-want) > 1e-6 {
		t.Errorf("expected outlet pressure %f, got %f", want, res.Out.Pressure)
	}
}

func TestTurbineCompressorRoundTrip(t *testing.T) {
	// Ideal components: the turbine drop exactly undoes the compressor rise.
	comp := Compressor{PressureRatio: 12.0, Efficiency: 1.0}
	amb := State{Temperature: 288.15, Pressure: 101325.0}

	st2, err := comp.Compress(amb)
	if err != nil {
		t.Fatalf("compress failed: %v", err)
	}

	work := CompressorWork(amb.Temperature, st2.Temperature, 1.0)

	turb := Turbine{Efficiency: 1.0}
	res, err := turb.Expand(st2, work)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	if math.Abs(res.Out.Temperature-amb.Temperature) > 1e-9 {
		t.Errorf("energy balance does not close: expected %f K, got %f K",
			amb.Temperature, res.Out.Temperature)
	}
}

func TestTurbineClampsAtFloor(t *testing.T) {
	turb := Turbine{Efficiency: 0.90}

	// 500 kJ/kg from a 400 K inlet cannot be supplied.
	res, err := turb.Expand(State{Temperature: 400.0, Pressure: 2.0e5}, 500000.0)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}

	if !res.Clamped {
		t.Fatal("expected clamped result")
	}
	if res.Out.Temperature != MinTurbineExitTemperature {
		t.Errorf("expected floor temperature %f, got %f", MinTurbineExitTemperature, res.Out.Temperature)
	}
	if !errors.Is(res.Err(), ErrEnergyBalance) {
		t.Errorf("expected ErrEnergyBalance from clamped result, got %v", res.Err())
	}
}

func TestTurbineNominalResultHasNoError(t *testing.T) {
	turb := Turbine{Efficiency: 0.90}

	res, err := turb.Expand(State{Temperature: 1500.0, Pressure: 1.7e6}, 215000.0)
	if err != nil {
		t.Fatalf("expand failed: %v", err)
	}
	if res.Err() != nil {
		t.Errorf("expected nil from nominal result, got %v", res.Err())
	}
}

func TestTurbineRejectsBadInputs(t *testing.T) {
	in := State{Temperature: 1500.0, Pressure: 1.7e6}

	cases := []struct {
		name string
		turb Turbine
		in   State
		work float64
	}{
		{"zero efficiency", Turbine{Efficiency: 0}, in, 215000.0},
		{"negative work", Turbine{Efficiency: 0.9}, in, -1.0},
		{"bad inlet", Turbine{Efficiency: 0.9}, State{Temperature: 0, Pressure: 1e6}, 215000.0},
	}

	for _, tc := range cases {
		_, err := tc.turb.Expand(tc.in, tc.work)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestEstimateStages(t *testing.T) {
	if n := EstimateStages(16.0, 4.0); n != 2 {
		t.Errorf("expected 2 stages for ratio 16 at loading 4, got %d", n)
	}
	if n := EstimateStages(4.0, 4.0); n != 1 {
		t.Errorf("expected 1 stage for ratio 4 at loading 4, got %d", n)
	}
}
