// Package food defines the core data model for nutriscope.
// These types are the shared vocabulary across all modules.
package food

import "fmt"

// Nutrient identifies one of the twelve NRF9.3 nutrients by name.
// All lookups in nutriscope are keyed by Nutrient, never by column
// position, so the ordering of an input table carries no meaning.
type Nutrient string

const (
	Protein      Nutrient = "protein"
	Fiber        Nutrient = "fiber"
	VitaminA     Nutrient = "vitamin_a"
	VitaminC     Nutrient = "vitamin_c"
	VitaminE     Nutrient = "vitamin_e"
	Calcium      Nutrient = "calcium"
	Iron         Nutrient = "iron"
	Magnesium    Nutrient = "magnesium"
	Potassium    Nutrient = "potassium"
	SaturatedFat Nutrient = "saturated_fat"
	TotalSugar   Nutrient = "total_sugar"
	Sodium       Nutrient = "sodium"
)

// Encouraged returns the nine "nutrients to encourage" in canonical order.
func Encouraged() []Nutrient {
	return []Nutrient{
		Protein, Fiber, VitaminA, VitaminC, VitaminE,
		Calcium, Iron, Magnesium, Potassium,
	}
}

// Limited returns the three "nutrients to limit" in canonical order.
func Limited() []Nutrient {
	return []Nutrient{SaturatedFat, TotalSugar, Sodium}
}

// All returns all twelve nutrients: the nine encouraged followed by the
// three limited.
func All() []Nutrient {
	return append(Encouraged(), Limited()...)
}

// IsLimited reports whether n belongs to the limit subset.
func (n Nutrient) IsLimited() bool {
	return n == SaturatedFat || n == TotalSugar || n == Sodium
}

// Unit returns the measurement unit for the nutrient's per-100g quantity.
func (n Nutrient) Unit() string {
	switch n {
	case Protein, Fiber, SaturatedFat, TotalSugar:
		return "g"
	case VitaminA:
		return "ug"
	case VitaminC, VitaminE, Calcium, Iron, Magnesium, Potassium, Sodium:
		return "mg"
	default:
		return ""
	}
}

// ParseNutrient converts a string identifier into a Nutrient.
func ParseNutrient(s string) (Nutrient, error) {
	n := Nutrient(s)
	switch n {
	case Protein, Fiber, VitaminA, VitaminC, VitaminE,
		Calcium, Iron, Magnesium, Potassium,
		SaturatedFat, TotalSugar, Sodium:
		return n, nil
	}
	return "", fmt.Errorf("unknown nutrient %q", s)
}
