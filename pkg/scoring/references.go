package scoring

import (
	"fmt"

	"github.com/nutriscope/nutriscope/pkg/food"
)

// ReferenceIntakes maps each nutrient to its daily reference value, in
// the same unit the nutrient's per-100g quantity is measured in.
// A reference table must carry exactly the twelve NRF9.3 nutrients.
type ReferenceIntakes map[food.Nutrient]float64

// DefaultReferenceIntakes returns the NRF9.3 daily values.
func DefaultReferenceIntakes() ReferenceIntakes {
	return ReferenceIntakes{
		food.Protein:      50,   // g
		food.Fiber:        25,   // g
		food.VitaminA:     800,  // ug RE
		food.VitaminC:     60,   // mg
		food.VitaminE:     20,   // mg
		food.Calcium:      1000, // mg
		food.Iron:         18,   // mg
		food.Magnesium:    400,  // mg
		food.Potassium:    3500, // mg
		food.SaturatedFat: 20,   // g
		food.TotalSugar:   125,  // g
		food.Sodium:       2400, // mg
	}
}

// Validate checks that the reference table carries exactly the twelve
// nutrients, each with a positive finite value.
func (r ReferenceIntakes) Validate() error {
	all := food.All()
	if len(r) != len(all) {
		return &ShapeMismatchError{Got: len(r), Want: len(all)}
	}
	for _, n := range all {
		dv, ok := r[n]
		if !ok {
			return &ShapeMismatchError{Got: len(r), Want: len(all), Missing: n}
		}
		if !(dv > 0) {
			return fmt.Errorf("reference intake for %s must be positive, got %v", n, dv)
		}
	}
	return nil
}
