package food

import "testing"

func TestNutrientPartitions(t *testing.T) {
	if got := len(Encouraged()); got != 9 {
		t.Errorf("Encouraged() has %d nutrients, want 9", got)
	}
	if got := len(Limited()); got != 3 {
		t.Errorf("Limited() has %d nutrients, want 3", got)
	}
	if got := len(All()); got != 12 {
		t.Errorf("All() has %d nutrients, want 12", got)
	}

	// The partitions must not overlap.
	for _, n := range Encouraged() {
		if n.IsLimited() {
			t.Errorf("%s is in both partitions", n)
		}
	}
	for _, n := range Limited() {
		if !n.IsLimited() {
			t.Errorf("%s should report IsLimited", n)
		}
	}
}

func TestAllOrderIsStable(t *testing.T) {
	// The canonical order is documentation, not contract, but renderers
	// rely on it being stable across calls.
	first := All()
	second := All()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("order differs at %d: %s vs %s", i, first[i], second[i])
		}
	}
	if first[0] != Protein || first[len(first)-1] != Sodium {
		t.Errorf("canonical order starts %s, ends %s", first[0], first[len(first)-1])
	}
}

func TestParseNutrient(t *testing.T) {
	tests := []struct {
		in      string
		want    Nutrient
		wantErr bool
	}{
		{"protein", Protein, false},
		{"vitamin_a", VitaminA, false},
		{"saturated_fat", SaturatedFat, false},
		{"cholesterol", "", true},
		{"", "", true},
		{"Protein", "", true}, // identifiers are lowercase
	}

	for _, tc := range tests {
		got, err := ParseNutrient(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseNutrient(%q) expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNutrient(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseNutrient(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestNutrientUnit(t *testing.T) {
	if Protein.Unit() != "g" {
		t.Errorf("protein unit = %q, want g", Protein.Unit())
	}
	if VitaminA.Unit() != "ug" {
		t.Errorf("vitamin A unit = %q, want ug", VitaminA.Unit())
	}
	if Sodium.Unit() != "mg" {
		t.Errorf("sodium unit = %q, want mg", Sodium.Unit())
	}
}
