package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/nutriscope/nutriscope/internal/catalog"
	"github.com/nutriscope/nutriscope/pkg/dataset"
	"github.com/nutriscope/nutriscope/pkg/food"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// Run status lifecycle.
const (
	StatusQueued    = "QUEUED"
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

// RunRequest describes a dataset to score. Either CSV carries the raw bytes
// inline, or SourceURL points at a CSV to download.
type RunRequest struct {
	Name      string
	SourceURL string
	CSV       []byte
}

// RunOutcome summarizes a completed pipeline run.
type RunOutcome struct {
	DatasetID    string
	RunID        string
	InputRows    int
	ScoredRows   int
	RejectedRows int
	MeanScore    float64
}

// Service orchestrates the scoring pipeline.
type Service struct {
	catalog *catalog.Service
	storage StorageClient
	engine  *scoring.Engine
	columns dataset.Columns
}

// NewService creates a new ingestion Service.
func NewService(cat *catalog.Service, storage StorageClient, engine *scoring.Engine, columns dataset.Columns) *Service {
	return &Service{
		catalog: cat,
		storage: storage,
		engine:  engine,
		columns: columns,
	}
}

// Storage exposes the blob storage client for read endpoints.
func (s *Service) Storage() StorageClient {
	return s.storage
}

// runSummary is the aggregate persisted alongside each completed run.
type runSummary struct {
	MeanScore float64        `json:"mean_score"`
	MinScore  float64        `json:"min_score"`
	MaxScore  float64        `json:"max_score"`
	Bands     map[string]int `json:"bands"`
}

// Process runs the full pipeline: acquire the CSV, parse it, score every row,
// persist the raw dataset and result blobs, and record the run in the catalog.
func (s *Service) Process(ctx context.Context, req RunRequest) (*RunOutcome, error) {
	data := req.CSV
	source := "upload"
	if len(data) == 0 {
		if req.SourceURL == "" {
			return nil, fmt.Errorf("either csv data or source url is required")
		}
		var err error
		data, err = dataset.Fetch(ctx, req.SourceURL)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		source = req.SourceURL
	}

	table, skipped, err := dataset.ParseCSV(bytes.NewReader(data), source, s.columns)
	if err != nil {
		return nil, fmt.Errorf("parse dataset: %w", err)
	}

	if err := s.storage.PutDataset(ctx, table.ID, data); err != nil {
		return nil, fmt.Errorf("put dataset blob: %w", err)
	}

	name := req.Name
	if name == "" {
		name = source
	}
	var sourceURL *string
	if req.SourceURL != "" {
		sourceURL = &req.SourceURL
	}

	ds, err := s.catalog.CreateDataset(ctx, name, sourceURL, len(table.Rows), len(skipped), "datasets/"+table.ID+".csv")
	if err != nil {
		return nil, fmt.Errorf("create dataset record: %w", err)
	}

	runID, err := s.catalog.CreateRun(ctx, ds.ID)
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	if err := s.catalog.UpdateRunStatus(ctx, runID, StatusRunning, nil); err != nil {
		return nil, fmt.Errorf("update run status: %w", err)
	}

	outcome, err := s.scoreAndStore(ctx, runID, table)
	if err != nil {
		errMsg := err.Error()
		if updateErr := s.catalog.UpdateRunStatus(ctx, runID, StatusFailed, &errMsg); updateErr != nil {
			log.Printf("failed to update run status: %v", updateErr)
		}
		return nil, err
	}

	outcome.DatasetID = ds.ID
	log.Printf("run %s completed: dataset=%s scored=%d rejected=%d", runID, ds.ID, outcome.ScoredRows, outcome.RejectedRows)
	return outcome, nil
}

func (s *Service) scoreAndStore(ctx context.Context, runID string, table *food.Table) (*RunOutcome, error) {
	result, err := s.engine.Score(table)
	if err != nil {
		return nil, fmt.Errorf("score dataset: %w", err)
	}

	resultData, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	if err := s.storage.PutResult(ctx, runID, resultData); err != nil {
		return nil, fmt.Errorf("put result blob: %w", err)
	}

	summary := summarize(result)
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshal summary: %w", err)
	}
	rejectedJSON, err := json.Marshal(result.Rejected)
	if err != nil {
		return nil, fmt.Errorf("marshal rejections: %w", err)
	}

	if err := s.catalog.FinalizeRun(ctx, runID,
		result.Stats.InputRows, result.Stats.ScoredRows, result.Stats.RejectedRows,
		summary.MeanScore, summaryJSON, rejectedJSON, "results/"+runID+".json",
	); err != nil {
		return nil, fmt.Errorf("finalize run: %w", err)
	}

	return &RunOutcome{
		RunID:        runID,
		InputRows:    result.Stats.InputRows,
		ScoredRows:   result.Stats.ScoredRows,
		RejectedRows: result.Stats.RejectedRows,
		MeanScore:    summary.MeanScore,
	}, nil
}

func summarize(result *scoring.Result) runSummary {
	summary := runSummary{Bands: map[string]int{}}
	if len(result.Scores) == 0 {
		return summary
	}

	summary.MinScore = result.Scores[0].Score.NRF
	summary.MaxScore = result.Scores[0].Score.NRF
	var total float64
	for _, rs := range result.Scores {
		nrf := rs.Score.NRF
		total += nrf
		if nrf < summary.MinScore {
			summary.MinScore = nrf
		}
		if nrf > summary.MaxScore {
			summary.MaxScore = nrf
		}
		summary.Bands[rs.Band]++
	}
	summary.MeanScore = total / float64(len(result.Scores))
	return summary
}
