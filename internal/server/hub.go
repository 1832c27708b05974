package server

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/mericsson/turbocycle/internal/cycle"
	"github.com/mericsson/turbocycle/internal/sweep"
)

// Request is one peer message. Type is "run" for a single cycle at the
// server's ambient conditions, or "sweep" for a grid over one variable.
// Engine overrides apply to either.
type Request struct {
	Type string `json:"type"`

	Engine *cycle.Config `json:"engine,omitempty"`

	Variable string  `json:"variable,omitempty"`
	Min      float64 `json:"min,omitempty"`
	Max      float64 `json:"max,omitempty"`
	Points   int     `json:"points,omitempty"`
}

type Response struct {
	Type  string `json:"type"`
	Error string `json:"error,omitempty"`

	Result *map[string]float64 `json:"result,omitempty"`

	Values []float64            `json:"values,omitempty"`
	Series []map[string]float64 `json:"series,omitempty"`
}

// Hub resolves peer requests against a fixed base configuration. Each
// request derives fresh config values, so concurrent peers never share
// mutable state.
type Hub struct {
	cfg     cycle.Config
	ambient cycle.State
}

func NewHub(cfg cycle.Config, ambient cycle.State) *Hub {
	return &Hub{cfg: cfg, ambient: ambient}
}

func (h *Hub) Handle(ctx context.Context, req Request) Response {
	switch req.Type {
	case "run":
		return h.handleRun(req)
	case "sweep":
		return h.handleSweep(ctx, req)
	default:
		log.WithField("type", req.Type).Warn("unknown request type")
		return Response{Type: "error", Error: "unknown request type: " + req.Type}
	}
}

func (h *Hub) config(req Request) cycle.Config {
	if req.Engine != nil {
		return *req.Engine
	}
	return h.cfg
}

func (h *Hub) handleRun(req Request) Response {
	res, err := cycle.New(h.config(req)).Run(h.ambient)
	if err != nil {
		return Response{Type: "error", Error: err.Error()}
	}

	values := res.Values()
	return Response{Type: "result", Result: &values}
}

func (h *Hub) handleSweep(ctx context.Context, req Request) Response {
	variable, err := sweep.ParseVariable(req.Variable)
	if err != nil {
		return Response{Type: "error", Error: err.Error()}
	}

	points := req.Points
	if points <= 0 {
		points = 20
	}

	result, err := sweep.New(h.config(req), h.ambient).Run(
		ctx, variable, sweep.Linspace(req.Min, req.Max, points))
	if err != nil {
		return Response{Type: "error", Error: err.Error()}
	}

	resp := Response{Type: "sweepResult"}
	for _, p := range result.Points {
		if p.Err != nil {
			continue
		}
		resp.Values = append(resp.Values, p.Value)
		resp.Series = append(resp.Series, p.Cycle.Values())
	}
	return resp
}
