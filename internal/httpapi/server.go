// Package httpapi exposes the pipeline over a minimal JSON API, mirroring
// the service's single POST /search route.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/omnisearch/omnisearch/internal/batch"
)

// Runner resolves a validated query batch. app.App is the production
// implementation.
type Runner interface {
	Run(ctx context.Context, queries []string) (batch.ResultBatch, error)
}

// SearchRequest is the POST /search body.
type SearchRequest struct {
	Queries []string `json:"queries"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the search API.
type Handler struct {
	Runner Runner
}

// NewMux mounts the API routes.
func NewMux(runner Runner) *http.ServeMux {
	h := &Handler{Runner: runner}
	mux := http.NewServeMux()
	mux.HandleFunc("/search", h.Search)
	mux.HandleFunc("/healthz", h.Health)
	return mux
}

// Search decodes the request, runs the batch, and writes the ordered
// result list. Validation failures are the caller's bug and map to 400;
// upstream trouble never surfaces as an HTTP error.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	start := time.Now()
	results, err := h.Runner.Run(r.Context(), req.Queries)
	if err != nil {
		if errors.Is(err, batch.ErrNoQueries) || errors.Is(err, batch.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		log.Error().Err(err).Msg("batch run failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	log.Info().Int("queries", len(req.Queries)).Dur("elapsed", time.Since(start)).Msg("search request served")
	writeJSON(w, http.StatusOK, results)
}

// Health is a liveness probe.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("write response failed")
	}
}
