package cycle

import (
	"errors"
	"math"
	"testing"

	"github.com/mericsson/turbocycle/internal/gas"
)

func seaLevel() State {
	return State{Temperature: gas.SeaLevelTemperature, Pressure: gas.SeaLevelPressure}
}

func TestEngineBaselineCycle(t *testing.T) {
	eng := New(DefaultConfig())

	res, err := eng.Run(seaLevel())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Station golden values for the sea-level baseline (mass_flow=50,
	// PR=18, eta_c=0.88, eta_t=0.90, f=0.02), derived by hand from the
	// closed-form relations.
	checks := []struct {
		name string
		got  float64
		want float64
		tol  float64
	}{
		{"T2", res.CompressorExit.Temperature, 708.5, 0.5},
		{"P2", res.CompressorExit.Pressure, 1823850.0, 1e-6},
		{"T3", res.CombustorExit.Temperature, 1555.7, 0.6},
		{"P3", res.CombustorExit.Pressure, 1769134.5, 1e-6},
		{"T4", res.TurbineExit.Temperature, 1088.6, 1.5},
		{"P4", res.TurbineExit.Pressure, 419600.0, 4000.0},
		{"T5", res.NozzleExit.Temperature, 907.2, 1.5},
		{"V_exit", res.ExitVelocity, 603.7, 1.0},
		{"thrust", res.Thrust, 30190.0, 60.0},
		{"Isp", res.SpecificImpulse, 3077.0, 7.0},
		{"fuel flow", res.FuelFlow, 1.0, 1e-9},
	}

	for _, c := range checks {
		if math.Abs(c.got-c.want) > c.tol {
			t.Errorf("%s: expected %f +/- %f, got %f", c.name, c.want, c.tol, c.got)
		}
	}

	if !res.Choked {
		t.Error("baseline nozzle should be choked")
	}
	if res.ExitMach != 1.0 {
		t.Errorf("expected sonic exit, got M=%f", res.ExitMach)
	}
	if res.TurbineClamped {
		t.Error("baseline turbine should not hit the floor")
	}
}

func TestEngineIdempotent(t *testing.T) {
	eng := New(DefaultConfig())

	first, err := eng.Run(seaLevel())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := eng.Run(seaLevel())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	for key, v1 := range first.Values() {
		if v2 := second.Values()[key]; v1 != v2 {
			t.Errorf("%s differs across identical runs: %v vs %v", key, v1, v2)
		}
	}
}

func TestEngineConfigImmutable(t *testing.T) {
	cfg := DefaultConfig()
	eng := New(cfg)

	swept := cfg.WithPressureRatio(30.0)
	if eng.Config().PressureRatio != 18.0 {
		t.Error("WithPressureRatio must not mutate the engine's config")
	}
	if swept.PressureRatio != 30.0 {
		t.Errorf("expected swept PR 30, got %f", swept.PressureRatio)
	}

	// Independent engines from independent configs give independent results.
	r1, err := New(cfg).Run(seaLevel())
	if err != nil {
		t.Fatalf("baseline run failed: %v", err)
	}
	r2, err := New(swept).Run(seaLevel())
	if err != nil {
		t.Fatalf("swept run failed: %v", err)
	}
	if r1.Thrust == r2.Thrust {
		t.Error("different pressure ratios should change thrust")
	}
}

func TestEngineThrustMatchesExitVelocity(t *testing.T) {
	eng := New(DefaultConfig())

	res, err := eng.Run(seaLevel())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if math.Abs(res.Thrust-50.0*res.ExitVelocity) > 1e-9 {
		t.Errorf("thrust %f does not equal mdot*V_exit %f", res.Thrust, 50.0*res.ExitVelocity)
	}
}

func TestEngineValuesKeys(t *testing.T) {
	eng := New(DefaultConfig())

	res, err := eng.Run(seaLevel())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	keys := []string{
		"T2", "P2", "T3", "P3", "T4", "P4", "T5", "P5",
		"V_exit", "M_exit", "thrust_N", "specific_impulse_s", "fuel_flow_kg_s",
	}
	values := res.Values()
	for _, k := range keys {
		if _, ok := values[k]; !ok {
			t.Errorf("missing result key %q", k)
		}
	}
	if len(values) != len(keys) {
		t.Errorf("expected %d result keys, got %d", len(keys), len(values))
	}
}

func TestEngineRejectsInvalidConfig(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"zero mass flow", DefaultConfig().WithMassFlow(0)},
		{"negative fuel ratio", DefaultConfig().WithFuelAirRatio(-0.01)},
		{"ratio below one", DefaultConfig().WithPressureRatio(0.8)},
	}

	for _, tc := range cases {
		if _, err := New(tc.cfg).Run(seaLevel()); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestEngineRejectsDryRun(t *testing.T) {
	// f=0 is a valid combustor pass-through, but specific impulse is
	// undefined at zero fuel flow and the engine must say so rather than
	// report an infinity.
	_, err := New(DefaultConfig().WithFuelAirRatio(0)).Run(seaLevel())
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a dry run, got %v", err)
	}

	var stErr *StationError
	if !errors.As(err, &stErr) {
		t.Fatal("expected a StationError naming the failing station")
	}
}

func TestEngineSurfacesTurbineClamp(t *testing.T) {
	// Tiny fuel flow at a high pressure ratio: the turbine cannot supply
	// the compressor from the lukewarm combustor exit.
	cfg := DefaultConfig().WithPressureRatio(40.0).WithFuelAirRatio(0.0005)

	res, err := New(cfg).Run(seaLevel())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !res.TurbineClamped {
		t.Error("expected the turbine floor to fire for an off-design point")
	}
	if res.TurbineExit.Temperature != MinTurbineExitTemperature {
		t.Errorf("expected clamped exit at %f K, got %f",
			MinTurbineExitTemperature, res.TurbineExit.Temperature)
	}
}
