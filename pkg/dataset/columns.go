// Package dataset acquires food-composition tables: it parses CSV
// exports, maps columns to nutrients by header name, coerces cells to
// numbers, and drops rows that cannot be scored. The scoring engine
// never sees raw files; it receives the clean food.Table built here.
package dataset

import (
	"fmt"

	"github.com/nutriscope/nutriscope/pkg/food"
)

// Columns maps each nutrient to the CSV header that carries it.
// Binding is by header name; the column order of the file is irrelevant.
type Columns struct {
	Name      string                   `yaml:"name"`
	Energy    string                   `yaml:"energy"`
	Nutrients map[food.Nutrient]string `yaml:"nutrients"`
}

// DefaultColumns returns the header names used by the reference
// food-composition export.
func DefaultColumns() Columns {
	return Columns{
		Name:   "food_name",
		Energy: "energy_kcal_100g",
		Nutrients: map[food.Nutrient]string{
			food.Protein:      "protein_g",
			food.Fiber:        "fiber_g",
			food.VitaminA:     "vitamin_a_ug",
			food.VitaminC:     "vitamin_c_mg",
			food.VitaminE:     "vitamin_e_mg",
			food.Calcium:      "calcium_mg",
			food.Iron:         "iron_mg",
			food.Magnesium:    "magnesium_mg",
			food.Potassium:    "potassium_mg",
			food.SaturatedFat: "saturated_fat_g",
			food.TotalSugar:   "sugar_g",
			food.Sodium:       "sodium_mg",
		},
	}
}

// Validate checks that the mapping names a header for the energy column
// and for every one of the twelve nutrients.
func (c Columns) Validate() error {
	if c.Energy == "" {
		return fmt.Errorf("no header mapped for energy")
	}
	for _, n := range food.All() {
		if c.Nutrients[n] == "" {
			return fmt.Errorf("no header mapped for %s", n)
		}
	}
	return nil
}
