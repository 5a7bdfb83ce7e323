package surface_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/nutriscope/nutriscope/pkg/scoring"
	"github.com/nutriscope/nutriscope/pkg/surface"
)

func sampleResult() *scoring.Result {
	return &scoring.Result{
		TableID: "t1",
		Scores: []scoring.RowScore{
			{Index: 0, Name: "kale", Band: "A", Score: scoring.Score{NR100kcal: 310, LIM100kcal: 12, NRF: 298}},
			{Index: 1, Name: "soda", Band: "F", Score: scoring.Score{NR100kcal: 1, LIM100kcal: 90, NRF: -89}},
			{Index: 2, Name: "oats", Band: "B", Score: scoring.Score{NR100kcal: 120, LIM100kcal: 8, NRF: 112}},
		},
		Rejected: []scoring.Rejection{
			{Index: 3, Name: "water", Reason: "energy must be finite and > 0, got 0"},
		},
		Stats: scoring.ResultStats{InputRows: 4, ScoredRows: 3, RejectedRows: 1},
	}
}

func TestTerminalRenderer_BasicOutput(t *testing.T) {
	// Set NO_COLOR to avoid ANSI codes in test comparison
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "3 foods scored, 1 rejected") {
		t.Error("expected summary line in output")
	}
	if !strings.Contains(output, "Ranking:") {
		t.Error("expected Ranking section")
	}
	if !strings.Contains(output, "NRF 298.0") {
		t.Error("expected kale NRF in output")
	}
	if !strings.Contains(output, "Rejected rows:") {
		t.Error("expected Rejected rows section")
	}
	if !strings.Contains(output, "water") {
		t.Error("expected rejected row name")
	}

	// Ranking must be by NRF, best first.
	kale := strings.Index(output, "kale")
	oats := strings.Index(output, "oats")
	soda := strings.Index(output, "soda")
	if !(kale < oats && oats < soda) {
		t.Errorf("expected kale before oats before soda, got positions %d/%d/%d", kale, oats, soda)
	}
}

func TestTerminalRenderer_TopN(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{TopN: 1}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "kale") {
		t.Error("expected top food in output")
	}
	if !strings.Contains(output, "and 2 more") {
		t.Error("expected truncation note")
	}
}

func TestTerminalRenderer_Empty(t *testing.T) {
	os.Setenv("NO_COLOR", "1")
	defer os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, &scoring.Result{}); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No foods scored") {
		t.Error("expected 'No foods scored' message")
	}
}

func TestTerminalRenderer_ColorRespected(t *testing.T) {
	// Without NO_COLOR, output should have ANSI codes
	os.Unsetenv("NO_COLOR")

	r := &surface.TerminalRenderer{}
	var buf bytes.Buffer

	if err := r.Render(&buf, sampleResult()); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "\033[") {
		t.Error("expected ANSI escape codes when NO_COLOR is not set")
	}
}
