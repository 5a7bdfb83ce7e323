// Package scoring implements the NRF9.3 nutrient-density scoring engine.
// It transforms a table of food rows into per-food Nutrient Rich Foods
// scores using a fixed reference-intake table.
package scoring

import "github.com/nutriscope/nutriscope/pkg/food"

// Score holds the three derived values for one food.
// NRF = NR100kcal - LIM100kcal, with no cap applied at this level.
type Score struct {
	NR100kcal  float64 `json:"nr_100kcal"`
	LIM100kcal float64 `json:"lim_100kcal"`
	NRF        float64 `json:"nrf_score"`
}

// RowScore is the scored output for one input row.
type RowScore struct {
	Index int    `json:"index"` // position in the input table
	Name  string `json:"name"`
	Score Score  `json:"score"`
	Band  string `json:"band"` // density band A-F, display only
	// Percents carries the capped per-nutrient percentages that entered
	// the subscores. Missing nutrients appear with value 0.
	Percents map[food.Nutrient]float64 `json:"percents,omitempty"`
}

// Rejection records an input row the engine refused to score and why.
type Rejection struct {
	Index  int    `json:"index"`
	Name   string `json:"name,omitempty"`
	Reason string `json:"reason"`
}

// Result is the complete output of scoring a table.
// Immutable once computed. Scores[i] corresponds to the i-th accepted
// row; Rejected lists the rows that were refused, by input index.
type Result struct {
	TableID  string      `json:"table_id"`
	Scores   []RowScore  `json:"scores"`
	Rejected []Rejection `json:"rejected,omitempty"`
	Stats    ResultStats `json:"stats"`
}

// ResultStats summarizes a scoring run.
type ResultStats struct {
	InputRows    int `json:"input_rows"`
	ScoredRows   int `json:"scored_rows"`
	RejectedRows int `json:"rejected_rows"`
}

// BandFromScore maps an NRF score to a density band for display.
// The numeric score is the contract; bands only group foods coarsely.
func BandFromScore(nrf float64) string {
	switch {
	case nrf >= 200:
		return "A"
	case nrf >= 50:
		return "B"
	case nrf >= 0:
		return "C"
	case nrf >= -50:
		return "D"
	default:
		return "F"
	}
}
