// Package ingestion orchestrates the hosted pipeline: dataset acquisition,
// parsing, scoring, and result storage.
package ingestion

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for dataset CSVs and score results.
type StorageClient interface {
	PutDataset(ctx context.Context, datasetID string, data []byte) error
	GetDataset(ctx context.Context, datasetID string) ([]byte, error)
	PutResult(ctx context.Context, runID string, data []byte) error
	GetResult(ctx context.Context, runID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development and testing.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(kind, id, ext string) string {
	return filepath.Join(s.BaseDir, kind, id+ext)
}

func (s *LocalStorage) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutDataset stores a raw dataset CSV.
func (s *LocalStorage) PutDataset(ctx context.Context, datasetID string, data []byte) error {
	return s.put(s.path("datasets", datasetID, ".csv"), data)
}

// GetDataset retrieves a raw dataset CSV.
func (s *LocalStorage) GetDataset(ctx context.Context, datasetID string) ([]byte, error) {
	return os.ReadFile(s.path("datasets", datasetID, ".csv"))
}

// PutResult stores a score result blob.
func (s *LocalStorage) PutResult(ctx context.Context, runID string, data []byte) error {
	return s.put(s.path("results", runID, ".json"), data)
}

// GetResult retrieves a score result blob.
func (s *LocalStorage) GetResult(ctx context.Context, runID string) ([]byte, error) {
	return os.ReadFile(s.path("results", runID, ".json"))
}
