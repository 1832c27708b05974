// Package viz renders cycle results and sweep series for the terminal.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mericsson/turbocycle/internal/cycle"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	flagStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

// PlotSeries renders one sweep metric as an ascii graph.
func PlotSeries(series []float64, caption string, height, width int) string {
	if len(series) == 0 {
		return "no data to plot"
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graphStyle.Render(graph)
}

// StationTable renders the station states of one cycle result.
func StationTable(res *cycle.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("station states"))
	b.WriteString("\n")

	rows := []struct {
		name  string
		state cycle.State
	}{
		{"2 compressor", res.CompressorExit},
		{"3 combustor", res.CombustorExit},
		{"4 turbine", res.TurbineExit},
		{"5 nozzle", res.NozzleExit},
	}

	for _, r := range rows {
		line := fmt.Sprintf("%s %s",
			labelStyle.Render(r.name),
			valueStyle.Render(fmt.Sprintf("T = %8.2f K   P = %11.1f Pa", r.state.Temperature, r.state.Pressure)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

// Summary renders the performance figures of one cycle result.
func Summary(res *cycle.Result) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("performance"))
	b.WriteString("\n")

	rows := []struct {
		label string
		value string
	}{
		{"exit velocity", fmt.Sprintf("%.1f m/s", res.ExitVelocity)},
		{"exit Mach", fmt.Sprintf("%.3f", res.ExitMach)},
		{"thrust", fmt.Sprintf("%.0f N (%.1f kN)", res.Thrust, res.Thrust/1000)},
		{"Isp", fmt.Sprintf("%.1f s", res.SpecificImpulse)},
		{"fuel flow", fmt.Sprintf("%.3f kg/s", res.FuelFlow)},
		{"compressor work", fmt.Sprintf("%.1f kJ/kg", res.CompressorWork/1000)},
	}

	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(r.label), valueStyle.Render(r.value)))
	}

	if res.Choked {
		b.WriteString(flagStyle.Render("nozzle choked (sonic exit)"))
		b.WriteString("\n")
	}
	if res.TurbineClamped {
		b.WriteString(flagStyle.Render("turbine exit clamped at physical floor; energy balance open"))
		b.WriteString("\n")
	}

	return b.String()
}
