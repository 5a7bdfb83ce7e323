package api

import (
	"net/http"
	"strings"

	"github.com/nutriscope/nutriscope/internal/catalog"
)

type datasetResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	SourceURL    *string `json:"source_url,omitempty"`
	RowCount     int     `json:"row_count"`
	SkippedCount int     `json:"skipped_count"`
	CreatedAt    string  `json:"created_at"`
}

func datasetToResponse(d *catalog.Dataset) datasetResponse {
	return datasetResponse{
		ID:           d.ID,
		Name:         d.Name,
		SourceURL:    d.SourceURL,
		RowCount:     d.RowCount,
		SkippedCount: d.SkippedCount,
		CreatedAt:    d.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func (h *Handler) handleListDatasets(w http.ResponseWriter, r *http.Request) {
	datasets, err := h.catalogSvc.ListDatasets(r.Context())
	if err != nil {
		writeJSON(w, http.StatusOK, []datasetResponse{})
		return
	}

	result := make([]datasetResponse, 0, len(datasets))
	for i := range datasets {
		result = append(result, datasetToResponse(&datasets[i]))
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleGetDataset(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")

	d, err := h.catalogSvc.GetDataset(r.Context(), datasetID)
	if err != nil {
		writeError(w, http.StatusNotFound, "dataset not found")
		return
	}

	writeJSON(w, http.StatusOK, datasetToResponse(d))
}

func (h *Handler) handleListDatasetRuns(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")

	runs, err := h.catalogSvc.ListRunsByDataset(r.Context(), datasetID)
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

// handleGetDatasetCSV serves the raw CSV blob a dataset was ingested from.
func (h *Handler) handleGetDatasetCSV(w http.ResponseWriter, r *http.Request) {
	datasetID := r.PathValue("datasetID")

	d, err := h.catalogSvc.GetDataset(r.Context(), datasetID)
	if err != nil {
		writeError(w, http.StatusNotFound, "dataset not found")
		return
	}

	// storage_ref has the form "datasets/<blobID>.csv"
	blobID := strings.TrimSuffix(strings.TrimPrefix(d.StorageRef, "datasets/"), ".csv")
	data, err := h.ingestionSvc.Storage().GetDataset(r.Context(), blobID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load dataset: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
