package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mericsson/turbocycle/internal/config"
	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/gas"
	"github.com/mericsson/turbocycle/internal/server"
	"github.com/mericsson/turbocycle/internal/store"
	"github.com/mericsson/turbocycle/internal/sweep"
	"github.com/mericsson/turbocycle/internal/tui"
	"github.com/mericsson/turbocycle/internal/viz"
)

var (
	configFile string
	preset     string

	massFlow float64
	pr       float64
	etaC     float64
	etaT     float64
	fuelAir  float64
	ambientT float64
	ambientP float64

	sweepVariable string
	sweepMin      float64
	sweepMax      float64
	sweepPoints   int
	sweepWorkers  int

	plotMetric string
	serveAddr  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turbocycle",
		Short: "0-D single-spool gas-turbine cycle lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level, err := log.ParseLevel(viper.GetString("log_level"))
			if err != nil {
				level = log.InfoLevel
			}
			log.SetLevel(level)
		},
	}

	rootCmd.PersistentFlags().String("data", ".turbocycle", "data directory for stored runs")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	viper.SetDefault("data_dir", ".turbocycle")
	viper.SetDefault("log_level", "info")
	viper.SetEnvPrefix("turbocycle")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run one cycle and print station states and performance",
		RunE:  runCycle,
	}
	addEngineFlags(runCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one variable over a grid and store the result",
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepVariable, "variable", "pressure_ratio", "swept variable (pressure_ratio, ambient_temperature)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "grid minimum (0 = config default)")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0, "grid maximum (0 = config default)")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 0, "grid points (0 = config default)")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 4, "concurrent grid workers")

	componentsCmd := &cobra.Command{
		Use:   "components",
		Short: "exercise each station component standalone with representative values",
		RunE:  runComponents,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotMetric, "metric", "thrust_N", "metric to plot")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored sweep to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored sweep to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return store.New(viper.GetString("data_dir")).ExportJSON(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named operating points",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s PR=%.1f f=%.3f ambient %.1f K / %.0f Pa\n",
					name, p.Engine.PressureRatio, p.Engine.FuelAirRatio,
					p.Ambient.Temperature, p.Ambient.Pressure)
			}
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive cycle explorer",
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve cycle runs and sweeps over websocket",
		RunE:  runServe,
	}
	addEngineFlags(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")

	rootCmd.AddCommand(runCmd, sweepCmd, componentsCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, presetsCmd, liveCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "run deck (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named operating point")
	cmd.Flags().Float64Var(&massFlow, "mass-flow", 50.0, "core air flow [kg/s]")
	cmd.Flags().Float64Var(&pr, "pr", 18.0, "compressor pressure ratio")
	cmd.Flags().Float64Var(&etaC, "eta-c", 0.88, "compressor efficiency")
	cmd.Flags().Float64Var(&etaT, "eta-t", 0.90, "turbine efficiency")
	cmd.Flags().Float64Var(&fuelAir, "fuel-air", 0.020, "fuel-air ratio")
	cmd.Flags().Float64Var(&ambientT, "ambient-t", gas.SeaLevelTemperature, "ambient temperature [K]")
	cmd.Flags().Float64Var(&ambientP, "ambient-p", gas.SeaLevelPressure, "ambient pressure [Pa]")
}

// resolveConfig layers preset, config file, and changed CLI flags into one
// deck, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		deck := *p
		cfg = &deck
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("mass-flow") {
		cfg.Engine.MassFlow = massFlow
	}
	if cmd.Flags().Changed("pr") {
		cfg.Engine.PressureRatio = pr
	}
	if cmd.Flags().Changed("eta-c") {
		cfg.Engine.CompressorEff = etaC
	}
	if cmd.Flags().Changed("eta-t") {
		cfg.Engine.TurbineEff = etaT
	}
	if cmd.Flags().Changed("fuel-air") {
		cfg.Engine.FuelAirRatio = fuelAir
	}
	if cmd.Flags().Changed("ambient-t") {
		cfg.Ambient.Temperature = ambientT
	}
	if cmd.Flags().Changed("ambient-p") {
		cfg.Ambient.Pressure = ambientP
	}

	return cfg, nil
}

func runCycle(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	res, err := cycle.New(cfg.Engine).Run(cfg.Ambient.State())
	if err != nil {
		return err
	}

	fmt.Printf("ambient: %.2f K / %.0f Pa\n\n", cfg.Ambient.Temperature, cfg.Ambient.Pressure)
	fmt.Println(viz.StationTable(res))
	fmt.Println(viz.Summary(res))

	if res.TurbineClamped {
		log.Warn("turbine exit clamped at the physical floor; the work balance does not close at this point")
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("variable") {
		cfg.Sweep.Variable = sweepVariable
	}
	if cmd.Flags().Changed("min") {
		cfg.Sweep.Min = sweepMin
	}
	if cmd.Flags().Changed("max") {
		cfg.Sweep.Max = sweepMax
	}
	if cmd.Flags().Changed("points") {
		cfg.Sweep.Points = sweepPoints
	}

	variable, err := sweep.ParseVariable(cfg.Sweep.Variable)
	if err != nil {
		return err
	}

	grid := sweep.Linspace(cfg.Sweep.Min, cfg.Sweep.Max, cfg.Sweep.Points)
	runner := sweep.New(cfg.Engine, cfg.Ambient.State()).WithWorkers(sweepWorkers)

	start := time.Now()
	result, err := runner.Run(context.Background(), variable, grid)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := store.New(viper.GetString("data_dir"))
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Engine, cfg.Ambient.State(), result)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"run_id":  runID,
		"points":  len(result.Points),
		"failed":  result.Failed(),
		"elapsed": elapsed,
	}).Info("sweep stored")

	_, thrusts := result.Series("thrust_N")
	fmt.Println(viz.PlotSeries(thrusts, fmt.Sprintf("thrust [N] vs %s", variable), 10, 70))

	_, isps := result.Series("specific_impulse_s")
	fmt.Println(viz.PlotSeries(isps, fmt.Sprintf("Isp [s] vs %s", variable), 10, 70))

	if best, err := result.Best("thrust_N"); err == nil {
		fmt.Printf("\nmax thrust %.0f N at %s = %.2f\n", best.Cycle.Thrust, variable, best.Value)
	}

	return nil
}

// runComponents exercises each leaf component standalone, the programmatic
// form of the per-component validation harnesses.
func runComponents(cmd *cobra.Command, args []string) error {
	fmt.Println("--- compressor: sea level, PR 18, eta 0.88 ---")
	comp := cycle.Compressor{PressureRatio: 18.0, Efficiency: 0.88}
	st2, err := comp.Compress(cycle.State{Temperature: gas.SeaLevelTemperature, Pressure: gas.SeaLevelPressure})
	if err != nil {
		return err
	}
	work := cycle.CompressorWork(gas.SeaLevelTemperature, st2.Temperature, 1.0)
	fmt.Printf("T = %.2f K  P = %.3f MPa  work = %.1f kJ/kg\n\n", st2.Temperature, st2.Pressure/1e6, work/1e3)

	fmt.Println("--- combustor: f = 0.02 ---")
	st3, err := cycle.NewCombustor().Burn(st2, 0.02)
	if err != nil {
		return err
	}
	fmt.Printf("T = %.1f K  P = %.3f MPa  heat release (50 kg/s) = %.1f MW\n\n",
		st3.Temperature, st3.Pressure/1e6, cycle.HeatRelease(0.02, 50.0)/1e6)

	fmt.Println("--- turbine: work-matched, eta 0.90 ---")
	turb := cycle.Turbine{Efficiency: 0.90}
	tr, err := turb.Expand(st3, work)
	if err != nil {
		return err
	}
	ratio := cycle.ExpansionRatio(st3.Pressure, tr.Out.Pressure)
	fmt.Printf("T = %.1f K  P = %.3f MPa  expansion ratio = %.2f  est. stages = %d\n",
		tr.Out.Temperature, tr.Out.Pressure/1e6, ratio, cycle.EstimateStages(ratio, 4.0))
	if tr.Clamped {
		fmt.Println("clamped at physical floor")
	}
	fmt.Println()

	fmt.Println("--- nozzle: subsonic and choked cases ---")
	for _, in := range []cycle.State{
		{Temperature: 900.0, Pressure: 150000.0},
		{Temperature: 1200.0, Pressure: 400000.0},
	} {
		nr, err := cycle.ExpandToAmbient(in, gas.SeaLevelPressure)
		if err != nil {
			return err
		}
		fmt.Printf("inlet %.0f K / %.0f kPa -> V = %.1f m/s  M = %.3f  choked = %v\n",
			in.Temperature, in.Pressure/1e3, nr.Velocity, nr.Mach, nr.Choked)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := store.New(viper.GetString("data_dir")).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVARIABLE\tTIME\tPOINTS\tFAILED\tPR\tF")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\t%.3f\n",
			run.ID,
			run.Variable,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Failed,
			run.Engine.PressureRatio,
			run.Engine.FuelAirRatio,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := store.New(viper.GetString("data_dir"))

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	_, points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to plot")
	}

	series := make([]float64, 0, len(points))
	for _, p := range points {
		m, ok := p[plotMetric]
		if !ok {
			return fmt.Errorf("unknown metric: %s", plotMetric)
		}
		series = append(series, m)
	}

	fmt.Printf("run: %s\nvariable: %s\nsamples: %d\n\n", meta.ID, meta.Variable, len(points))
	fmt.Println(viz.PlotSeries(series, fmt.Sprintf("%s vs %s", plotMetric, meta.Variable), 12, 78))

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := store.New(viper.GetString("data_dir"))

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	values, points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{meta.Variable, "thrust_N", "specific_impulse_s", "V_exit", "M_exit", "fuel_flow_kg_s"}
	if err := w.Write(header); err != nil {
		return err
	}

	for i, p := range points {
		row := []string{strconv.FormatFloat(values[i], 'f', 6, 64)}
		for _, col := range header[1:] {
			row = append(row, strconv.FormatFloat(p[col], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	m := tui.NewModel(cfg.Engine, cfg.Ambient.State())
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	return server.New(serveAddr, cfg.Engine, cfg.Ambient.State()).Serve()
}
