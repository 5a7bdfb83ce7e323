package food

import (
	"math"
	"time"
)

// Row is one food item: nutrient quantities per 100 g of food plus
// energy density. A nutrient absent from the map is a missing value;
// scoring treats it as zero rather than rejecting the food.
type Row struct {
	Name      string               `json:"name"`
	Nutrients map[Nutrient]float64 `json:"nutrients"`
	Energy    float64              `json:"energy"` // kcal per 100 g
}

// Value returns the quantity for a nutrient and whether it is present.
func (r Row) Value(n Nutrient) (float64, bool) {
	v, ok := r.Nutrients[n]
	return v, ok
}

// HasValidEnergy reports whether the row's energy is finite and
// strictly positive. Rows failing this cannot be scored.
func (r Row) HasValidEnergy() bool {
	return r.Energy > 0 && !math.IsInf(r.Energy, 0) && !math.IsNaN(r.Energy)
}

// Table is an immutable collection of food rows loaded from one source.
type Table struct {
	ID       string     `json:"id"`
	Source   string     `json:"source,omitempty"` // file path or URL
	Rows     []Row      `json:"rows"`
	Stats    TableStats `json:"stats"`
	LoadedAt time.Time  `json:"loaded_at"`
}

// TableStats holds summary statistics for a table.
type TableStats struct {
	RowCount     int `json:"row_count"`
	SkippedCount int `json:"skipped_count"` // rows dropped during acquisition
	ParseMs      int `json:"parse_ms"`
}

// Nutrients returns the set of nutrients that appear in at least one row.
func (t *Table) Nutrients() map[Nutrient]bool {
	present := make(map[Nutrient]bool)
	for _, r := range t.Rows {
		for n := range r.Nutrients {
			present[n] = true
		}
	}
	return present
}
