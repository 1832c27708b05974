package cycle

import "fmt"

// Config holds the engine operating parameters. It is a plain value:
// parametric sweeps derive a fresh Config per point with the With* helpers
// instead of mutating shared state between runs.
type Config struct {
	MassFlow      float64 `yaml:"mass_flow"`      // core air flow [kg/s]
	PressureRatio float64 `yaml:"pressure_ratio"` // compressor total PR [-]
	CompressorEff float64 `yaml:"compressor_eff"` // [-]
	TurbineEff    float64 `yaml:"turbine_eff"`    // [-]
	FuelAirRatio  float64 `yaml:"fuel_air_ratio"` // [-]
}

// DefaultConfig is the sea-level baseline: a modern high-bypass core.
func DefaultConfig() Config {
	return Config{
		MassFlow:      50.0,
		PressureRatio: 18.0,
		CompressorEff: 0.88,
		TurbineEff:    0.90,
		FuelAirRatio:  0.020,
	}
}

func (c Config) Validate() error {
	if c.MassFlow <= 0 {
		return fmt.Errorf("%w: mass flow %.4g kg/s must be positive", ErrInvalidInput, c.MassFlow)
	}
	if c.PressureRatio < 1 {
		return fmt.Errorf("%w: pressure ratio %.4g must be >= 1", ErrInvalidInput, c.PressureRatio)
	}
	if c.CompressorEff <= 0 || c.CompressorEff > 1 {
		return fmt.Errorf("%w: compressor efficiency %.4g must be in (0,1]", ErrInvalidInput, c.CompressorEff)
	}
	if c.TurbineEff <= 0 || c.TurbineEff > 1 {
		return fmt.Errorf("%w: turbine efficiency %.4g must be in (0,1]", ErrInvalidInput, c.TurbineEff)
	}
	if c.FuelAirRatio < 0 {
		return fmt.Errorf("%w: fuel-air ratio %.4g must be >= 0", ErrInvalidInput, c.FuelAirRatio)
	}
	return nil
}

// WithPressureRatio returns a copy of the config with the compressor
// pressure ratio replaced.
func (c Config) WithPressureRatio(pr float64) Config {
	c.PressureRatio = pr
	return c
}

// WithFuelAirRatio returns a copy of the config with the fuel-air ratio
// replaced.
func (c Config) WithFuelAirRatio(f float64) Config {
	c.FuelAirRatio = f
	return c
}

// WithMassFlow returns a copy of the config with the mass flow replaced.
func (c Config) WithMassFlow(mdot float64) Config {
	c.MassFlow = mdot
	return c
}

// Result is the full cycle output for one run. Station numbering follows
// the gas path: 2 = compressor exit, 3 = combustor exit, 4 = turbine exit,
// 5 = nozzle exit.
type Result struct {
	CompressorExit State
	CombustorExit  State
	TurbineExit    State
	NozzleExit     State

	CompressorWork  float64 // specific work [J/kg]
	ExitVelocity    float64 // [m/s]
	ExitMach        float64 // [-]
	Thrust          float64 // [N]
	SpecificImpulse float64 // [s]
	FuelFlow        float64 // [kg/s]

	Choked         bool // nozzle in the sonic regime
	TurbineClamped bool // turbine exit hit the physical floor
}

// Values flattens the result into the named station/quantity map used by
// storage, export, and the websocket service.
func (r *Result) Values() map[string]float64 {
	return map[string]float64{
		"T2": r.CompressorExit.Temperature, "P2": r.CompressorExit.Pressure,
		"T3": r.CombustorExit.Temperature, "P3": r.CombustorExit.Pressure,
		"T4": r.TurbineExit.Temperature, "P4": r.TurbineExit.Pressure,
		"T5": r.NozzleExit.Temperature, "P5": r.NozzleExit.Pressure,

		"V_exit": r.ExitVelocity,
		"M_exit": r.ExitMach,

		"thrust_N":           r.Thrust,
		"specific_impulse_s": r.SpecificImpulse,
		"fuel_flow_kg_s":     r.FuelFlow,
	}
}

// Engine sequences the four station components for one configuration.
type Engine struct {
	cfg    Config
	burner Combustor
}

// New builds an engine around an immutable configuration and the default
// combustor loss parameters.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, burner: NewCombustor()}
}

// Config returns the engine's configuration value.
func (e *Engine) Config() Config {
	return e.cfg
}

// Run computes the full cycle at the given ambient state. Component
// failures are not recovered; they surface wrapped with the failing
// station's name. A turbine clamped at the physical floor is not an error
// here; it is reported through Result.TurbineClamped so callers can detect
// off-design infeasibility.
func (e *Engine) Run(ambient State) (*Result, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ambient.Validate(); err != nil {
		return nil, err
	}

	comp := Compressor{PressureRatio: e.cfg.PressureRatio, Efficiency: e.cfg.CompressorEff}
	st2, err := comp.Compress(ambient)
	if err != nil {
		return nil, &StationError{Station: "compressor", Wrapped: err}
	}

	// Specific work: the turbine must supply this per kg of core flow.
	work := CompressorWork(ambient.Temperature, st2.Temperature, 1.0)

	st3, err := e.burner.Burn(st2, e.cfg.FuelAirRatio)
	if err != nil {
		return nil, &StationError{Station: "combustor", Wrapped: err}
	}

	turb := Turbine{Efficiency: e.cfg.TurbineEff}
	tr, err := turb.Expand(st3, work)
	if err != nil {
		return nil, &StationError{Station: "turbine", Wrapped: err}
	}

	nr, err := ExpandToAmbient(tr.Out, ambient.Pressure)
	if err != nil {
		return nil, &StationError{Station: "nozzle", Wrapped: err}
	}

	thrust := SimpleThrust(e.cfg.MassFlow, nr.Velocity)
	fuelFlow := e.cfg.MassFlow * e.cfg.FuelAirRatio

	isp, err := SpecificImpulse(thrust, fuelFlow)
	if err != nil {
		return nil, &StationError{Station: "nozzle", Wrapped: err}
	}

	return &Result{
		CompressorExit:  st2,
		CombustorExit:   st3,
		TurbineExit:     tr.Out,
		NozzleExit:      nr.Out,
		CompressorWork:  work,
		ExitVelocity:    nr.Velocity,
		ExitMach:        nr.Mach,
		Thrust:          thrust,
		SpecificImpulse: isp,
		FuelFlow:        fuelFlow,
		Choked:          nr.Choked,
		TurbineClamped:  tr.Clamped,
	}, nil
}
