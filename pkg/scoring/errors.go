package scoring

import (
	"fmt"

	"github.com/nutriscope/nutriscope/pkg/food"
)

// InvalidInputError reports a food row the engine cannot score:
// non-positive or non-finite energy, or a negative or non-finite
// nutrient quantity. Missing nutrient values are not an error.
type InvalidInputError struct {
	Index    int
	Name     string
	Nutrient food.Nutrient // empty when the energy field is at fault
	Reason   string
}

func (e *InvalidInputError) Error() string {
	label := e.Name
	if label == "" {
		label = fmt.Sprintf("row %d", e.Index)
	}
	if e.Nutrient != "" {
		return fmt.Sprintf("invalid input for %s: %s %s", label, e.Nutrient, e.Reason)
	}
	return fmt.Sprintf("invalid input for %s: %s", label, e.Reason)
}

// ShapeMismatchError reports a reference-intake table that does not
// carry exactly the twelve NRF9.3 nutrients.
type ShapeMismatchError struct {
	Got     int
	Want    int
	Missing food.Nutrient
}

func (e *ShapeMismatchError) Error() string {
	if e.Missing != "" {
		return fmt.Sprintf("reference intakes missing %s (%d of %d nutrients)", e.Missing, e.Got, e.Want)
	}
	return fmt.Sprintf("reference intakes carry %d nutrients, want %d", e.Got, e.Want)
}
