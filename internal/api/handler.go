// Package api implements the hosted scoring REST API.
// It provides run submission and read endpoints backed by Postgres and blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/nutriscope/nutriscope/internal/catalog"
	"github.com/nutriscope/nutriscope/internal/ingestion"
)

// Handler is the top-level API handler for the hosted service.
type Handler struct {
	db           *sql.DB
	catalogSvc   *catalog.Service
	ingestionSvc *ingestion.Service
	cache        *ResultCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, catalogSvc *catalog.Service, ingestionSvc *ingestion.Service, cache *ResultCache) *Handler {
	if cache == nil {
		cache = NewResultCacheFromEnv()
	}
	return &Handler{
		db:           db,
		catalogSvc:   catalogSvc,
		ingestionSvc: ingestionSvc,
		cache:        cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
// Write endpoints are wrapped with auth; pass nil to leave them open.
func (h *Handler) RegisterRoutes(mux *http.ServeMux, auth func(http.Handler) http.Handler) {
	if auth == nil {
		auth = func(next http.Handler) http.Handler { return next }
	}

	// Write endpoints (auth-protected)
	mux.Handle("POST /api/v1/runs", auth(http.HandlerFunc(h.handleCreateRun)))

	// Read endpoints
	mux.HandleFunc("GET /api/v1/runs", h.handleListRuns)
	mux.HandleFunc("GET /api/v1/runs/{runID}", h.handleGetRun)
	mux.HandleFunc("GET /api/v1/runs/{runID}/scores", h.handleGetRunScores)
	mux.HandleFunc("GET /api/v1/datasets", h.handleListDatasets)
	mux.HandleFunc("GET /api/v1/datasets/{datasetID}", h.handleGetDataset)
	mux.HandleFunc("GET /api/v1/datasets/{datasetID}/runs", h.handleListDatasetRuns)
	mux.HandleFunc("GET /api/v1/datasets/{datasetID}/csv", h.handleGetDatasetCSV)

	mux.HandleFunc("GET /healthz", h.handleHealth)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
