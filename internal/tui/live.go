// Package tui is an interactive cycle explorer: adjust engine parameters
// from the keyboard and watch thrust and station states respond. The cycle
// is closed-form, so every keystroke re-runs it instantly.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/viz"
)

const historyCapacity = 120

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	paramStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).Padding(0, 2)
)

type param struct {
	name string
	get  func(cycle.Config) float64
	set  func(cycle.Config, float64) cycle.Config
	step float64
	min  float64
	max  float64
}

var params = []param{
	{
		name: "pressure ratio",
		get:  func(c cycle.Config) float64 { return c.PressureRatio },
		set:  func(c cycle.Config, v float64) cycle.Config { return c.WithPressureRatio(v) },
		step: 1.0, min: 1.0, max: 60.0,
	},
	{
		name: "fuel-air ratio",
		get:  func(c cycle.Config) float64 { return c.FuelAirRatio },
		set:  func(c cycle.Config, v float64) cycle.Config { return c.WithFuelAirRatio(v) },
		step: 0.001, min: 0.001, max: 0.05,
	},
	{
		name: "mass flow",
		get:  func(c cycle.Config) float64 { return c.MassFlow },
		set:  func(c cycle.Config, v float64) cycle.Config { return c.WithMassFlow(v) },
		step: 5.0, min: 5.0, max: 500.0,
	},
}

// Model holds the explorer state: the current config, the last cycle
// result, and a thrust history for the trend graph.
type Model struct {
	cfg      cycle.Config
	initial  cycle.Config
	ambient  cycle.State
	result   *cycle.Result
	runErr   error
	selected int
	history  []float64
}

func NewModel(cfg cycle.Config, ambient cycle.State) Model {
	m := Model{cfg: cfg, initial: cfg, ambient: ambient}
	m.rerun()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.selected = (m.selected + 1) % len(params)
	case "up", "k":
		m.adjust(1)
	case "down", "j":
		m.adjust(-1)
	case "r":
		m.cfg = m.initial
		m.history = nil
		m.rerun()
	}

	return m, nil
}

func (m *Model) adjust(direction float64) {
	p := params[m.selected]
	v := p.get(m.cfg) + direction*p.step
	if v < p.min {
		v = p.min
	}
	if v > p.max {
		v = p.max
	}
	m.cfg = p.set(m.cfg, v)
	m.rerun()
}

func (m *Model) rerun() {
	m.result, m.runErr = cycle.New(m.cfg).Run(m.ambient)
	if m.runErr != nil {
		return
	}
	m.history = append(m.history, m.result.Thrust)
	if len(m.history) > historyCapacity {
		m.history = m.history[len(m.history)-historyCapacity:]
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("turbocycle live"))
	b.WriteString("\n")

	for i, p := range params {
		line := fmt.Sprintf("%-16s %10.4g", p.name, p.get(m.cfg))
		if i == m.selected {
			line = activeStyle.Render("> " + line)
		} else {
			line = paramStyle.Render("  " + line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.runErr != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("cycle error: %v", m.runErr)))
		b.WriteString("\n")
	} else {
		b.WriteString(panelStyle.Render(viz.StationTable(m.result)))
		b.WriteString("\n")
		b.WriteString(panelStyle.Render(viz.Summary(m.result)))
		b.WriteString("\n")

		if len(m.history) > 1 {
			graph := asciigraph.Plot(m.history,
				asciigraph.Height(8),
				asciigraph.Width(70),
				asciigraph.Caption("thrust [N]"),
			)
			b.WriteString(graph)
			b.WriteString("\n")
		}
	}

	b.WriteString(helpStyle.Render("tab: select param  up/down: adjust  r: reset  q: quit"))
	b.WriteString("\n")

	return b.String()
}
