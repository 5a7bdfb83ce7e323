package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nutriscope/nutriscope/pkg/food"
)

// Skipped records a data row that was dropped during parsing and why.
// Line numbers are 1-based and count the header row.
type Skipped struct {
	Line   int    `json:"line"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// ParseCSV reads a CSV export into a food.Table. The first record is
// the header row; nutrient and energy columns are located by the names
// in cols. Empty nutrient cells become missing values. Rows whose
// energy cell is empty, unparseable, or not strictly positive are
// dropped and reported in the skipped list rather than failing the
// whole parse.
func ParseCSV(r io.Reader, source string, cols Columns) (*food.Table, []Skipped, error) {
	if err := cols.Validate(); err != nil {
		return nil, nil, fmt.Errorf("column mapping: %w", err)
	}

	start := time.Now()
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading header row: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	energyIdx, ok := index[cols.Energy]
	if !ok {
		return nil, nil, fmt.Errorf("energy column %q not found in header", cols.Energy)
	}
	nameIdx := -1
	if cols.Name != "" {
		if i, ok := index[cols.Name]; ok {
			nameIdx = i
		}
	}
	nutrientIdx := make(map[food.Nutrient]int, len(cols.Nutrients))
	for n, h := range cols.Nutrients {
		i, ok := index[h]
		if !ok {
			return nil, nil, fmt.Errorf("column %q for %s not found in header", h, n)
		}
		nutrientIdx[n] = i
	}

	table := &food.Table{
		ID:       uuid.New().String(),
		Source:   source,
		LoadedAt: time.Now().UTC(),
	}
	var skipped []Skipped

	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			skipped = append(skipped, Skipped{Line: line, Reason: err.Error()})
			continue
		}

		name := ""
		if nameIdx >= 0 && nameIdx < len(record) {
			name = strings.TrimSpace(record[nameIdx])
		}

		energy, err := parseCell(record, energyIdx)
		if err != nil {
			skipped = append(skipped, Skipped{Line: line, Name: name,
				Reason: fmt.Sprintf("energy: %v", err)})
			continue
		}

		row := food.Row{
			Name:      name,
			Nutrients: make(map[food.Nutrient]float64, len(nutrientIdx)),
			Energy:    energy,
		}
		if !row.HasValidEnergy() {
			skipped = append(skipped, Skipped{Line: line, Name: name,
				Reason: fmt.Sprintf("energy must be > 0, got %v", energy)})
			continue
		}

		bad := false
		for n, i := range nutrientIdx {
			v, err := parseCell(record, i)
			if err != nil {
				if isEmptyCell(record, i) {
					continue // missing value, scored as zero downstream
				}
				skipped = append(skipped, Skipped{Line: line, Name: name,
					Reason: fmt.Sprintf("%s: %v", n, err)})
				bad = true
				break
			}
			row.Nutrients[n] = v
		}
		if bad {
			continue
		}

		table.Rows = append(table.Rows, row)
	}

	table.Stats = food.TableStats{
		RowCount:     len(table.Rows),
		SkippedCount: len(skipped),
		ParseMs:      int(time.Since(start).Milliseconds()),
	}
	return table, skipped, nil
}

func parseCell(record []string, i int) (float64, error) {
	if i >= len(record) {
		return 0, fmt.Errorf("column %d out of range", i)
	}
	s := strings.TrimSpace(record[i])
	if s == "" {
		return 0, fmt.Errorf("empty cell")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v, nil
}

func isEmptyCell(record []string, i int) bool {
	return i < len(record) && strings.TrimSpace(record[i]) == ""
}
