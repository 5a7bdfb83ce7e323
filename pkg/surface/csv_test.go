package surface_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/nutriscope/nutriscope/pkg/surface"
)

func TestCSVRenderer(t *testing.T) {
	r := &surface.CSVRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}

	if len(records) != 4 { // header + 3 rows
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	if records[0][2] != "nr_100kcal" {
		t.Errorf("header = %v", records[0])
	}

	// Rows keep input order, not ranking order.
	if records[1][1] != "kale" || records[2][1] != "soda" || records[3][1] != "oats" {
		t.Errorf("rows out of input order: %v", records)
	}

	// Default precision is one decimal.
	if records[1][4] != "298.0" {
		t.Errorf("kale NRF = %q, want 298.0", records[1][4])
	}
	if records[2][4] != "-89.0" {
		t.Errorf("soda NRF = %q, want -89.0", records[2][4])
	}
}

func TestCSVRendererFullPrecision(t *testing.T) {
	r := &surface.CSVRenderer{Precision: -1}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parsing output: %v", err)
	}
	if records[1][4] != "298" {
		t.Errorf("kale NRF = %q, want 298", records[1][4])
	}
}
