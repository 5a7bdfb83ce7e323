package food

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveTable writes a table to disk as JSON.
func SaveTable(path string, t *Table) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for table: %w", err)
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling table: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing table: %w", err)
	}

	return nil
}

// LoadTable reads a table from disk.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading table: %w", err)
	}

	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("unmarshaling table: %w", err)
	}

	return &t, nil
}
