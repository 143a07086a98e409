package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/Official-DomG/matchbot/internal/adapters/repository"
	"github.com/Official-DomG/matchbot/internal/app"
)

const (
	defaultLimit    = 10
	defaultMaxLimit = 50
)

// RunsHandler serves run history and manual triggers.
type RunsHandler struct {
	runs     RunReader
	trigger  RunTrigger
	maxLimit int
}

// NewRunsHandler creates a new runs handler.
func NewRunsHandler(runs RunReader, trigger RunTrigger, opts ...Option) *RunsHandler {
	h := &RunsHandler{runs: runs, trigger: trigger, maxLimit: defaultMaxLimit}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleLatest handles GET /runs/latest.
func (h *RunsHandler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	run, err := h.runs.Latest(r.Context())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", ErrNoRuns)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// HandleGet handles GET /runs/{id}.
func (h *RunsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	run, err := h.runs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// HandleList handles GET /runs?limit=N, newest first.
func (h *RunsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	n := defaultLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if v > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrBadRequest)
			return
		}
		n = v
	}
	runs, err := h.runs.Recent(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

// HandleTrigger handles POST /runs. The run finishes even if the client
// goes away; a run already in progress answers 409.
func (h *RunsHandler) HandleTrigger(w http.ResponseWriter, r *http.Request) {
	run, err := h.trigger.TryRun(context.WithoutCancel(r.Context()))
	switch {
	case errors.Is(err, app.ErrRunInProgress):
		writeError(w, http.StatusConflict, "run_in_progress", err)
	case errors.Is(err, app.ErrRunFailed):
		writeJSON(w, http.StatusInternalServerError, run)
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	default:
		writeJSON(w, http.StatusOK, run)
	}
}
