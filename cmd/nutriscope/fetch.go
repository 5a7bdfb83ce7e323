package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nutriscope/nutriscope/pkg/config"
	"github.com/nutriscope/nutriscope/pkg/dataset"
)

func newFetchCmd() *cobra.Command {
	var (
		url    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a food composition table to the local cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd.Context(), url, output)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "URL to download (default: dataset.url from config)")
	cmd.Flags().StringVar(&output, "output", "", "Output path (default: cache dir)")

	return cmd
}

func runFetch(ctx context.Context, url, output string) error {
	cfg := loadConfig()

	source := firstNonEmpty(url, cfg.Dataset.URL)
	if source == "" {
		return fmt.Errorf("no URL: pass --url or set dataset.url in config")
	}

	if cfg.Dataset.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Dataset.Timeout)*time.Second)
		defer cancel()
	}

	fmt.Fprintf(os.Stderr, "Downloading %s...\n", source)
	raw, err := dataset.Fetch(ctx, source)
	if err != nil {
		return fmt.Errorf("downloading dataset: %w", err)
	}

	outPath := output
	if outPath == "" {
		outPath = filepath.Join(config.DatasetDir(), filepath.Base(source))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(outPath, raw, 0o644); err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Saved %d bytes to %s\n", len(raw), outPath)
	return nil
}
