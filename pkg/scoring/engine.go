package scoring

import (
	"fmt"
	"math"

	"github.com/nutriscope/nutriscope/pkg/food"
)

// DefaultPercentCap is the per-nutrient ceiling on the percent of daily
// value entering a subscore. Capping keeps a single extreme nutrient
// from dominating a food's score.
const DefaultPercentCap = 100

// Engine scores food tables against a fixed reference-intake table.
// An Engine is stateless between calls; scoring is a pure function of
// the input table and the reference constants, so a single Engine may
// be shared across goroutines.
type Engine struct {
	Refs       ReferenceIntakes
	PercentCap float64
}

// NewEngine creates a scoring engine with the given reference intakes
// and the default percent cap.
func NewEngine(refs ReferenceIntakes) *Engine {
	return &Engine{Refs: refs, PercentCap: DefaultPercentCap}
}

// Score evaluates every row of the table. Rows with invalid energy or
// invalid nutrient values are not scored; they are reported in
// Result.Rejected with their input index and reason, and scoring
// proceeds for the rest. The reference table itself must be well
// formed or the whole call fails with ShapeMismatchError.
func (e *Engine) Score(t *food.Table) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("table is nil")
	}
	if err := e.Refs.Validate(); err != nil {
		return nil, err
	}

	result := &Result{TableID: t.ID}
	for i, row := range t.Rows {
		rs, err := e.ScoreRow(i, row)
		if err != nil {
			result.Rejected = append(result.Rejected, Rejection{
				Index:  i,
				Name:   row.Name,
				Reason: err.Error(),
			})
			continue
		}
		result.Scores = append(result.Scores, rs)
	}

	result.Stats = ResultStats{
		InputRows:    len(t.Rows),
		ScoredRows:   len(result.Scores),
		RejectedRows: len(result.Rejected),
	}
	return result, nil
}

// ScoreRow scores a single row, failing with InvalidInputError when the
// row cannot be scored. The index is carried into the output for row
// alignment and into error messages.
func (e *Engine) ScoreRow(index int, row food.Row) (RowScore, error) {
	if !row.HasValidEnergy() {
		return RowScore{}, &InvalidInputError{
			Index:  index,
			Name:   row.Name,
			Reason: fmt.Sprintf("energy must be finite and > 0, got %v", row.Energy),
		}
	}

	ceiling := e.PercentCap
	if ceiling <= 0 {
		ceiling = DefaultPercentCap
	}

	rs := RowScore{
		Index:    index,
		Name:     row.Name,
		Percents: make(map[food.Nutrient]float64, len(e.Refs)),
	}

	for _, n := range food.All() {
		v, ok := row.Value(n)
		if !ok {
			// Missing data for one nutrient does not discard the food.
			rs.Percents[n] = 0
			continue
		}
		if v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return RowScore{}, &InvalidInputError{
				Index:    index,
				Name:     row.Name,
				Nutrient: n,
				Reason:   fmt.Sprintf("quantity must be finite and >= 0, got %v", v),
			}
		}

		// Content per 100 kcal of food, as a percent of the daily value.
		percent := (v / row.Energy * 100) / e.Refs[n] * 100
		rs.Percents[n] = math.Min(percent, ceiling)
	}

	for _, n := range food.Encouraged() {
		rs.Score.NR100kcal += rs.Percents[n]
	}
	for _, n := range food.Limited() {
		rs.Score.LIM100kcal += rs.Percents[n]
	}
	rs.Score.NRF = rs.Score.NR100kcal - rs.Score.LIM100kcal
	rs.Band = BandFromScore(rs.Score.NRF)

	return rs, nil
}
