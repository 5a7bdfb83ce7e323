// Package catalog manages persistent state for the hosted service: dataset
// records and the score runs computed over them.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Service provides dataset and run management backed by Postgres.
type Service struct {
	db *sql.DB
}

// Dataset represents an ingested food composition table.
type Dataset struct {
	ID           string
	Name         string
	SourceURL    *string
	RowCount     int
	SkippedCount int
	StorageRef   string
	CreatedAt    time.Time
}

// Run represents one scoring pass over a dataset.
type Run struct {
	ID           string
	DatasetID    string
	Status       string
	InputRows    int
	ScoredRows   int
	RejectedRows int
	MeanScore    *float64
	Summary      json.RawMessage
	Rejected     json.RawMessage
	StorageRef   *string
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewService creates a new catalog Service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}

// CreateDataset records a newly ingested dataset.
func (s *Service) CreateDataset(ctx context.Context, name string, sourceURL *string, rowCount, skippedCount int, storageRef string) (*Dataset, error) {
	d := &Dataset{}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO datasets (name, source_url, row_count, skipped_count, storage_ref)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, name, source_url, row_count, skipped_count, storage_ref, created_at`,
		name, sourceURL, rowCount, skippedCount, storageRef,
	).Scan(&d.ID, &d.Name, &d.SourceURL, &d.RowCount, &d.SkippedCount, &d.StorageRef, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create dataset: %w", err)
	}
	return d, nil
}

// GetDataset retrieves a dataset by ID.
func (s *Service) GetDataset(ctx context.Context, id string) (*Dataset, error) {
	d := &Dataset{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, source_url, row_count, skipped_count, storage_ref, created_at
		 FROM datasets WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.Name, &d.SourceURL, &d.RowCount, &d.SkippedCount, &d.StorageRef, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get dataset %s: %w", id, err)
	}
	return d, nil
}

// ListDatasets returns all datasets, newest first.
func (s *Service) ListDatasets(ctx context.Context) ([]Dataset, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, source_url, row_count, skipped_count, storage_ref, created_at
		 FROM datasets ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list datasets: %w", err)
	}
	defer rows.Close()

	var datasets []Dataset
	for rows.Next() {
		var d Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.SourceURL, &d.RowCount, &d.SkippedCount, &d.StorageRef, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		datasets = append(datasets, d)
	}
	return datasets, rows.Err()
}

// CreateRun creates a new run record in the QUEUED state and returns its ID.
func (s *Service) CreateRun(ctx context.Context, datasetID string) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO runs (dataset_id, status) VALUES ($1, 'QUEUED') RETURNING id`,
		datasetID,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// UpdateRunStatus updates the status and optional error message of a run.
func (s *Service) UpdateRunStatus(ctx context.Context, id, status string, errMsg *string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET status = $1, error_message = $2, updated_at = now() WHERE id = $3`,
		status, errMsg, id,
	)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return nil
}

// FinalizeRun records the outcome of a completed run.
func (s *Service) FinalizeRun(ctx context.Context, id string, inputRows, scoredRows, rejectedRows int, meanScore float64, summary, rejected json.RawMessage, storageRef string) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs
		 SET status = 'COMPLETED', input_rows = $1, scored_rows = $2, rejected_rows = $3,
		     mean_score = $4, summary = $5, rejected = $6, storage_ref = $7, updated_at = now()
		 WHERE id = $8`,
		inputRows, scoredRows, rejectedRows, meanScore, summary, rejected, storageRef, id,
	)
	if err != nil {
		return fmt.Errorf("finalize run: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *Service) GetRun(ctx context.Context, id string) (*Run, error) {
	r := &Run{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, dataset_id, status, input_rows, scored_rows, rejected_rows,
		        mean_score, summary, rejected, storage_ref, error_message, created_at, updated_at
		 FROM runs WHERE id = $1`,
		id,
	).Scan(
		&r.ID, &r.DatasetID, &r.Status, &r.InputRows, &r.ScoredRows, &r.RejectedRows,
		&r.MeanScore, &r.Summary, &r.Rejected, &r.StorageRef, &r.ErrorMessage, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns all runs, newest first.
func (s *Service) ListRuns(ctx context.Context) ([]Run, error) {
	return s.listRuns(ctx,
		`SELECT id, dataset_id, status, input_rows, scored_rows, rejected_rows,
		        mean_score, summary, rejected, storage_ref, error_message, created_at, updated_at
		 FROM runs ORDER BY created_at DESC`,
	)
}

// ListRunsByDataset returns all runs for a dataset, newest first.
func (s *Service) ListRunsByDataset(ctx context.Context, datasetID string) ([]Run, error) {
	return s.listRuns(ctx,
		`SELECT id, dataset_id, status, input_rows, scored_rows, rejected_rows,
		        mean_score, summary, rejected, storage_ref, error_message, created_at, updated_at
		 FROM runs WHERE dataset_id = $1 ORDER BY created_at DESC`,
		datasetID,
	)
}

func (s *Service) listRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.DatasetID, &r.Status, &r.InputRows, &r.ScoredRows, &r.RejectedRows,
			&r.MeanScore, &r.Summary, &r.Rejected, &r.StorageRef, &r.ErrorMessage, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
