package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

func TestLocalStoragePutGetDataset(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte("food_name,energy_kcal_100g\n")
	if err := s.PutDataset(ctx, "ds1", data); err != nil {
		t.Fatalf("PutDataset: %v", err)
	}

	got, err := s.GetDataset(ctx, "ds1")
	if err != nil {
		t.Fatalf("GetDataset: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetDataset = %q, want %q", got, data)
	}

	// Verify file path layout
	expectedPath := filepath.Join(dir, "datasets", "ds1.csv")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStoragePutGetResult(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte(`{"scores":[]}`)
	if err := s.PutResult(ctx, "run1", data); err != nil {
		t.Fatalf("PutResult: %v", err)
	}

	got, err := s.GetResult(ctx, "run1")
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetResult = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "results", "run1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalStorageGetNotFound(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	_, err := s.GetDataset(ctx, "nonexistent")
	if err == nil {
		t.Error("expected error for nonexistent dataset")
	}
}

func TestSummarize(t *testing.T) {
	result := &scoring.Result{
		Scores: []scoring.RowScore{
			{Name: "kale", Score: scoring.Score{NRF: 250}, Band: "A"},
			{Name: "oats", Score: scoring.Score{NRF: 100}, Band: "B"},
			{Name: "soda", Score: scoring.Score{NRF: -50}, Band: "D"},
		},
	}
	summary := summarize(result)

	if summary.MeanScore != 100 {
		t.Errorf("MeanScore = %v, want 100", summary.MeanScore)
	}
	if summary.MinScore != -50 {
		t.Errorf("MinScore = %v, want -50", summary.MinScore)
	}
	if summary.MaxScore != 250 {
		t.Errorf("MaxScore = %v, want 250", summary.MaxScore)
	}
	if summary.Bands["A"] != 1 || summary.Bands["B"] != 1 || summary.Bands["D"] != 1 {
		t.Errorf("Bands = %v, want one each of A, B, D", summary.Bands)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := summarize(&scoring.Result{})
	if summary.MeanScore != 0 || len(summary.Bands) != 0 {
		t.Errorf("empty result summary = %+v, want zero values", summary)
	}
}
