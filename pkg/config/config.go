// Package config handles loading and managing nutriscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nutriscope/nutriscope/pkg/dataset"
	"github.com/nutriscope/nutriscope/pkg/food"
	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// Config is the top-level configuration for nutriscope.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	Dataset DatasetConfig `yaml:"dataset"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	// References overrides individual daily reference values, keyed by
	// nutrient identifier. Unnamed nutrients keep their defaults.
	References map[string]float64 `yaml:"references"`
	PercentCap float64            `yaml:"percent_cap"`
}

// DatasetConfig controls dataset acquisition.
type DatasetConfig struct {
	URL     string            `yaml:"url"`     // default dataset source
	Timeout int               `yaml:"timeout"` // seconds, for downloads
	Columns map[string]string `yaml:"columns"` // nutrient/energy/name -> CSV header
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			References: map[string]float64{},
			PercentCap: scoring.DefaultPercentCap,
		},
		Dataset: DatasetConfig{
			Timeout: 60,
			Columns: map[string]string{},
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ReferenceIntakes builds the reference table: the NRF9.3 defaults with
// any configured overrides applied. Unknown nutrient names are an error
// so a typo cannot silently score against a default.
func (c *Config) ReferenceIntakes() (scoring.ReferenceIntakes, error) {
	refs := scoring.DefaultReferenceIntakes()
	for name, dv := range c.Scoring.References {
		n, err := food.ParseNutrient(name)
		if err != nil {
			return nil, fmt.Errorf("reference override: %w", err)
		}
		refs[n] = dv
	}
	if err := refs.Validate(); err != nil {
		return nil, err
	}
	return refs, nil
}

// Columns builds the CSV column mapping: the default headers with any
// configured overrides applied. The keys "name" and "energy" address
// those columns; every other key must be a nutrient identifier.
func (c *Config) Columns() (dataset.Columns, error) {
	cols := dataset.DefaultColumns()
	for key, header := range c.Dataset.Columns {
		switch key {
		case "name":
			cols.Name = header
		case "energy":
			cols.Energy = header
		default:
			n, err := food.ParseNutrient(key)
			if err != nil {
				return dataset.Columns{}, fmt.Errorf("column override: %w", err)
			}
			cols.Nutrients[n] = header
		}
	}
	if err := cols.Validate(); err != nil {
		return dataset.Columns{}, err
	}
	return cols, nil
}

// FindConfigFile looks for .nutriscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".nutriscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the nutriscope cache directory.
// Uses ~/.cache/nutriscope/ to avoid polluting working directories.
func CacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "nutriscope")
}

// DatasetDir returns the directory for cached raw datasets.
func DatasetDir() string {
	return filepath.Join(CacheDir(), "datasets")
}

// ResultDir returns the directory for saved score results.
func ResultDir() string {
	return filepath.Join(CacheDir(), "results")
}
