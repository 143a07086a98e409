// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Official-DomG/matchbot/internal/domain/types"
)

// RunReader exposes stored run summaries.
type RunReader interface {
	Latest(ctx context.Context) (types.RunSummary, error)
	Get(ctx context.Context, id string) (types.RunSummary, error)
	Recent(ctx context.Context, n int) ([]types.RunSummary, error)
}

// RunTrigger starts a run unless one is already active.
type RunTrigger interface {
	TryRun(ctx context.Context) (types.RunSummary, error)
}

// Server wires HTTP routes for the job's operator surface.
type Server struct {
	healthHandler *HealthHandler
	runsHandler   *RunsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(runs RunReader, trigger RunTrigger, opts ...Option) *Server {
	return &Server{
		healthHandler: NewHealthHandler(),
		runsHandler:   NewRunsHandler(runs, trigger, opts...),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /runs/latest", MetricsMiddleware(s.runsHandler.HandleLatest, "runs_latest"))
	mux.HandleFunc("GET /runs/{id}", MetricsMiddleware(s.runsHandler.HandleGet, "runs_get"))
	mux.HandleFunc("GET /runs", MetricsMiddleware(s.runsHandler.HandleList, "runs_list"))
	mux.HandleFunc("POST /runs", MetricsMiddleware(s.runsHandler.HandleTrigger, "runs_trigger"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
