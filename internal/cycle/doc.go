// Package cycle implements the steady-state 0-D thermodynamic cycle of a
// single-spool gas-turbine engine.
//
// The gas path is modeled as four stateless station components composed in
// strict order:
//
//   - [Compressor]: isentropic compression with efficiency loss
//   - [Combustor]: constant-pressure heat addition with pressure loss
//   - [Turbine]: work-matched expansion supplying the compressor shaft
//   - nozzle expansion via [ExpandToAmbient], choked or fully expanded
//
// [Engine] sequences the components, threads the compressor work into the
// turbine, and derives thrust, fuel flow, and specific impulse from the
// nozzle exit velocity.
//
// # Example
//
//	eng := cycle.New(cycle.DefaultConfig())
//	res, err := eng.Run(cycle.State{Temperature: 288.15, Pressure: 101325})
//
// # Thread Safety
//
// Every component is a pure function of its inputs and an Engine never
// mutates its configuration, so distinct Engine values may run concurrently
// without coordination.
package cycle
