// Package sweep evaluates the cycle over one-dimensional parameter grids,
// the programmatic form of the baseline performance-plot studies (thrust
// and specific impulse against compressor pressure ratio or ambient
// temperature).
package sweep

import (
	"context"
	"fmt"
	"math"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/mericsson/turbocycle/internal/cycle"
)

// Variable names a swept quantity.
type Variable string

const (
	PressureRatio      Variable = "pressure_ratio"
	AmbientTemperature Variable = "ambient_temperature"
)

// ParseVariable validates a sweep variable name.
func ParseVariable(s string) (Variable, error) {
	switch Variable(s) {
	case PressureRatio, AmbientTemperature:
		return Variable(s), nil
	default:
		return "", fmt.Errorf("unknown sweep variable: %s", s)
	}
}

// Point is one grid evaluation. A failed point keeps its error instead of
// aborting the whole sweep; off-design regions of a grid are expected to
// contain infeasible points.
type Point struct {
	Value float64
	Cycle *cycle.Result
	Err   error
}

// Result is an ordered sweep: Points[i] corresponds to Grid[i].
type Result struct {
	Variable Variable
	Points   []Point
}

// Runner evaluates grid points against a base configuration and ambient
// state. Each point derives a fresh Config value; nothing is mutated
// between points.
type Runner struct {
	cfg     cycle.Config
	ambient cycle.State
	workers int
}

func New(cfg cycle.Config, ambient cycle.State) *Runner {
	return &Runner{cfg: cfg, ambient: ambient, workers: 4}
}

// WithWorkers sets the number of concurrent grid workers.
func (r *Runner) WithWorkers(n int) *Runner {
	if n > 0 {
		r.workers = n
	}
	return r
}

// Linspace returns n evenly spaced values over [min, max].
func Linspace(min, max float64, n int) []float64 {
	if n <= 1 {
		return []float64{min}
	}
	grid := make([]float64, n)
	step := (max - min) / float64(n-1)
	for i := range grid {
		grid[i] = min + float64(i)*step
	}
	return grid
}

// Run evaluates every grid point, in order, using a bounded pool of
// workers. The context cancels remaining points; points already computed
// are returned.
func (r *Runner) Run(ctx context.Context, v Variable, grid []float64) (*Result, error) {
	if _, err := ParseVariable(string(v)); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"variable": v,
		"points":   len(grid),
	}).Debug("starting sweep")

	points := make([]Point, len(grid))

	workers := r.workers
	if workers > len(grid) {
		workers = len(grid)
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	idx := make(chan int)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				points[i] = r.evaluate(v, grid[i])
			}
		}()
	}

	var canceled error
feed:
	for i := range grid {
		select {
		case <-ctx.Done():
			canceled = ctx.Err()
			break feed
		case idx <- i:
		}
	}
	close(idx)
	wg.Wait()

	if canceled != nil {
		return &Result{Variable: v, Points: points}, canceled
	}

	log.WithField("variable", v).Debug("sweep complete")
	return &Result{Variable: v, Points: points}, nil
}

func (r *Runner) evaluate(v Variable, value float64) Point {
	cfg := r.cfg
	ambient := r.ambient

	switch v {
	case PressureRatio:
		cfg = cfg.WithPressureRatio(value)
	case AmbientTemperature:
		ambient.Temperature = value
	}

	res, err := cycle.New(cfg).Run(ambient)
	return Point{Value: value, Cycle: res, Err: err}
}

// Series extracts one named metric over the successful points, paired with
// the swept values. Failed points are skipped.
func (r *Result) Series(metric string) (values, series []float64) {
	for _, p := range r.Points {
		if p.Err != nil {
			continue
		}
		m, ok := p.Cycle.Values()[metric]
		if !ok {
			continue
		}
		values = append(values, p.Value)
		series = append(series, m)
	}
	return values, series
}

// Best returns the successful point maximizing the named metric.
func (r *Result) Best(metric string) (Point, error) {
	best := Point{}
	bestVal := math.Inf(-1)
	found := false

	for _, p := range r.Points {
		if p.Err != nil {
			continue
		}
		if m, ok := p.Cycle.Values()[metric]; ok && m > bestVal {
			best = p
			bestVal = m
			found = true
		}
	}

	if !found {
		return Point{}, fmt.Errorf("no successful point carries metric %q", metric)
	}
	return best, nil
}

// Failed counts the points that returned an error.
func (r *Result) Failed() int {
	n := 0
	for _, p := range r.Points {
		if p.Err != nil {
			n++
		}
	}
	return n
}
