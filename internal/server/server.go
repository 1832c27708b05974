// Package server exposes the cycle engine over a websocket endpoint so
// external dashboards can request runs and sweeps as JSON messages.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/mericsson/turbocycle/internal/cycle"
)

type Server struct {
	addr     string
	cfg      cycle.Config
	ambient  cycle.State
	upgrader websocket.Upgrader
}

func New(addr string, cfg cycle.Config, ambient cycle.State) *Server {
	return &Server{
		addr:    addr,
		cfg:     cfg,
		ambient: ambient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// serveWs upgrades one peer and pumps its requests through a hub.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Error("websocket upgrade failed")
		return
	}
	defer conn.Close()

	hub := NewHub(s.cfg, s.ambient)
	log.WithField("remote", conn.RemoteAddr()).Info("peer connected")

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			log.WithError(err).Info("peer disconnected")
			return
		}

		if err := conn.WriteJSON(hub.Handle(r.Context(), req)); err != nil {
			log.WithError(err).Error("write failed")
			return
		}
	}
}

// Serve blocks listening on the configured address.
func (s *Server) Serve() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)

	log.WithField("addr", s.addr).Info("serving websocket endpoint at /ws")
	return http.ListenAndServe(s.addr, mux)
}
