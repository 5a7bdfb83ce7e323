package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/pkg/config"
	"github.com/nutriscope/nutriscope/pkg/dataset"
	"github.com/nutriscope/nutriscope/pkg/food"
	"github.com/nutriscope/nutriscope/pkg/scoring"
	"github.com/nutriscope/nutriscope/pkg/surface"
)

func newScoreCmd() *cobra.Command {
	var (
		input     string
		url       string
		outputFmt string
		topN      int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a food composition table",
		Long:  `Loads a CSV table from a file or URL, computes NRF9.3 scores, and renders a ranking.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.Context(), scoreOpts{
				input:     input,
				url:       url,
				outputFmt: outputFmt,
				topN:      topN,
				noCache:   noCache,
			})
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Path to a CSV food composition table")
	cmd.Flags().StringVar(&url, "url", "", "URL to download the table from (overrides config)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text, json or csv")
	cmd.Flags().IntVar(&topN, "top", 0, "Show only the N best foods (text output)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Do not save the result to the cache dir")

	return cmd
}

type scoreOpts struct {
	input     string
	url       string
	outputFmt string
	topN      int
	noCache   bool
}

func runScore(ctx context.Context, opts scoreOpts) error {
	cfg := loadConfig()

	refs, err := cfg.ReferenceIntakes()
	if err != nil {
		return fmt.Errorf("building reference intakes: %w", err)
	}
	cols, err := cfg.Columns()
	if err != nil {
		return fmt.Errorf("building column mapping: %w", err)
	}

	source := firstNonEmpty(opts.input, opts.url, cfg.Dataset.URL)
	if source == "" {
		return fmt.Errorf("no input: pass --input or --url, or set dataset.url in config")
	}

	// Step 1: Acquire the raw table
	var raw []byte
	if opts.input != "" {
		fmt.Fprintf(os.Stderr, "Step 1/3: Reading %s...\n", opts.input)
		raw, err = os.ReadFile(opts.input)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Step 1/3: Downloading %s...\n", source)
		fctx := ctx
		if cfg.Dataset.Timeout > 0 {
			var cancel context.CancelFunc
			fctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Dataset.Timeout)*time.Second)
			defer cancel()
		}
		raw, err = dataset.Fetch(fctx, source)
		if err != nil {
			return fmt.Errorf("downloading dataset: %w", err)
		}
	}

	// Step 2: Parse and clean
	fmt.Fprintf(os.Stderr, "Step 2/3: Parsing...\n")
	table, skipped, err := dataset.ParseCSV(bytes.NewReader(raw), source, cols)
	if err != nil {
		return fmt.Errorf("parsing dataset: %w", err)
	}
	fmt.Fprintf(os.Stderr, "  %d rows, %d skipped during parse\n", table.Stats.RowCount, table.Stats.SkippedCount)
	for _, sk := range skipped {
		fmt.Fprintf(os.Stderr, "  skipped line %d: %s\n", sk.Line, sk.Reason)
	}

	// Step 3: Score
	fmt.Fprintf(os.Stderr, "Step 3/3: Scoring...\n")
	engine := scoring.NewEngine(refs)
	if cfg.Scoring.PercentCap > 0 {
		engine.PercentCap = cfg.Scoring.PercentCap
	}

	result, err := engine.Score(table)
	if err != nil {
		return fmt.Errorf("scoring: %w", err)
	}

	if !opts.noCache {
		saveResult(table, result)
	}

	renderer := rendererFor(opts.outputFmt, opts.topN)
	if err := renderer.Render(os.Stdout, result); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}

	return nil
}

func rendererFor(format string, topN int) surface.Renderer {
	switch strings.ToLower(format) {
	case "json":
		return &surface.JSONRenderer{}
	case "csv":
		return &surface.CSVRenderer{}
	default:
		return &surface.TerminalRenderer{TopN: topN}
	}
}

// saveResult persists a score result to the result cache directory.
func saveResult(table *food.Table, result *scoring.Result) {
	resultDir := config.ResultDir()
	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to create result dir: %v\n", err)
		return
	}

	wrapped := struct {
		*scoring.Result
		Source   string `json:"source"`
		ScoredAt string `json:"scored_at"`
	}{
		Result:   result,
		Source:   table.Source,
		ScoredAt: time.Now().UTC().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to marshal result: %v\n", err)
		return
	}

	path := filepath.Join(resultDir, table.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to save result: %v\n", err)
		return
	}
	fmt.Fprintf(os.Stderr, "Result saved: %s\n", path)
}

func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		return config.DefaultConfig()
	}
	cfgFile := config.FindConfigFile(cwd)
	if cfgFile == "" {
		return config.DefaultConfig()
	}
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		return config.DefaultConfig()
	}
	return cfg
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
