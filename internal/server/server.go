// File server/server.go
package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"hive_go/internal/game"
)

// Server adapts the agent to the driver's HTTP protocol and streams search
// analytics over websockets.
type Server struct {
	store *ConfigStore
	hub   *Hub
	agent *game.Agent
	// 一个 agent 伺候所有请求，搜索路径要串行
	mu  sync.Mutex
	log zerolog.Logger
}

// New builds a server around a fresh agent.
func New(log zerolog.Logger) *Server {
	store := NewConfigStore()
	cfg := store.Get()
	agent := game.NewAgent(cfg.AgentName, log)
	return &Server{store: store, hub: NewHub(), agent: agent, log: log}
}

// Hub exposes the analytics hub so the caller can run its pump.
func (s *Server) Hub() *Hub { return s.hub }

// moveRequest is one driver turn: the board text plus the side bookkeeping.
type moveRequest struct {
	Board       string         `json:"board"`
	Size        int            `json:"size"`
	MyIsUpper   bool           `json:"my_is_upper"`
	MyMove      int            `json:"my_move"`
	RivalMove   int            `json:"rival_move"`
	MyPieces    map[string]int `json:"my_pieces"`
	RivalPieces map[string]int `json:"rival_pieces"`
}

type moveResponse struct {
	Move      []any  `json:"move"`
	Depth     int    `json:"depth"`
	Evaluated uint64 `json:"evaluated"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type statusResponse struct {
	Agent  string `json:"agent"`
	Config Config `json:"config"`
}

// Router wires the HTTP endpoints.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		name := s.agent.Name
		s.mu.Unlock()
		writeJSON(w, statusResponse{Agent: name, Config: s.store.Get()})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, s.store.Get())
	})

	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var next Config
		if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		updated := s.store.Update(next)
		s.applyConfig(updated)
		writeJSON(w, updated)
	})

	r.Post("/api/move", s.handleMove)

	r.Get("/ws/analytics", func(w http.ResponseWriter, r *http.Request) {
		serveWS(s.hub, w, r)
	})

	return r
}

func (s *Server) applyConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agent.Name = cfg.AgentName
	s.agent.Budget = time.Duration(cfg.TimeBudgetMs) * time.Millisecond
	s.agent.Random = cfg.RandomMode
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	cfg := s.store.Get()
	if req.Size == 0 {
		req.Size = cfg.BoardSize
	}

	pos, err := game.NewPosition(req.Board, req.Size, req.MyIsUpper, req.MyMove, req.RivalMove, req.MyPieces, req.RivalPieces)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	s.mu.Lock()
	bm, ok := s.agent.Play(pos)
	res, searched := s.agent.LastResult()
	s.mu.Unlock()
	elapsed := time.Since(start)

	resp := moveResponse{Move: []any{}, ElapsedMs: elapsed.Milliseconds()}
	if ok {
		resp.Move = bm.Tuple()
	}
	if searched {
		resp.Depth = res.Depth
		resp.Evaluated = res.Evaluated
	}
	writeJSON(w, resp)

	if s.hub.HasClients() {
		payload := movePayload{
			Move:      resp.Move,
			ElapsedMs: elapsed.Milliseconds(),
			UpdatedAt: time.Now().UnixMilli(),
		}
		if searched {
			payload.Score = res.Score
			payload.State = res.State.String()
			payload.Depth = res.Depth
			payload.Evaluated = res.Evaluated
		}
		s.hub.Publish(payload)
	}

	if cfg.LogSearchStats {
		s.log.Info().
			Int("move", req.MyMove).
			Bool("has_move", ok).
			Dur("elapsed", elapsed).
			Msg("move served")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
