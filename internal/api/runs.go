package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"

	"github.com/nutriscope/nutriscope/internal/catalog"
	"github.com/nutriscope/nutriscope/internal/ingestion"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// createRunRequest is the JSON body for POST /api/v1/runs.
// Either csv carries the dataset inline, or source_url points at one.
type createRunRequest struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
	CSV       string `json:"csv"`
}

type runResponse struct {
	ID           string          `json:"id"`
	DatasetID    string          `json:"dataset_id"`
	Status       string          `json:"status"`
	InputRows    int             `json:"input_rows"`
	ScoredRows   int             `json:"scored_rows"`
	RejectedRows int             `json:"rejected_rows"`
	MeanScore    *float64        `json:"mean_score,omitempty"`
	Summary      json.RawMessage `json:"summary,omitempty"`
	Rejected     json.RawMessage `json:"rejected,omitempty"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    string          `json:"created_at"`
}

func runToResponse(run *catalog.Run) runResponse {
	return runResponse{
		ID:           run.ID,
		DatasetID:    run.DatasetID,
		Status:       run.Status,
		InputRows:    run.InputRows,
		ScoredRows:   run.ScoredRows,
		RejectedRows: run.RejectedRows,
		MeanScore:    run.MeanScore,
		Summary:      run.Summary,
		Rejected:     run.Rejected,
		ErrorMessage: run.ErrorMessage,
		CreatedAt:    run.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *Handler) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	// Support gzip-compressed request bodies
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body: "+err.Error())
			return
		}
		defer gz.Close()
		body = gz
	}

	var req createRunRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.CSV == "" && req.SourceURL == "" {
		writeError(w, http.StatusBadRequest, "csv or source_url is required")
		return
	}

	outcome, err := h.ingestionSvc.Process(r.Context(), ingestion.RunRequest{
		Name:      req.Name,
		SourceURL: req.SourceURL,
		CSV:       []byte(req.CSV),
	})
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "run failed: "+err.Error())
		return
	}

	run, err := h.catalogSvc.GetRun(r.Context(), outcome.RunID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load run: "+err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, runToResponse(run))
}

func (h *Handler) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.catalogSvc.ListRuns(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, []runResponse{})
		return
	}

	result := make([]runResponse, 0, len(runs))
	for i := range runs {
		result = append(result, runToResponse(&runs[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetRun(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")

	run, err := h.catalogSvc.GetRun(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}

	writeJSON(w, http.StatusOK, runToResponse(run))
}

// handleGetRunScores returns the full per-row score result for a run,
// served from the LRU cache when possible.
func (h *Handler) handleGetRunScores(w http.ResponseWriter, r *http.Request) {
	runID := r.PathValue("runID")

	if cached := h.cache.Get(runID); cached != nil {
		writeJSON(w, http.StatusOK, cached)
		return
	}

	run, err := h.catalogSvc.GetRun(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if run.Status != ingestion.StatusCompleted {
		writeError(w, http.StatusConflict, "run is not completed")
		return
	}

	data, err := h.ingestionSvc.Storage().GetResult(r.Context(), runID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load result: "+err.Error())
		return
	}

	var result scoring.Result
	if err := json.Unmarshal(data, &result); err != nil {
		writeError(w, http.StatusInternalServerError, "corrupt result blob: "+err.Error())
		return
	}

	h.cache.Put(runID, &result)
	writeJSON(w, http.StatusOK, &result)
}
