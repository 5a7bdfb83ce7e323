package surface

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// CSVRenderer writes the three score columns per food, for joining back
// onto a wider dataset downstream. Rounding happens here, never in the
// engine: the CSV is a display/export format.
type CSVRenderer struct {
	// Precision is the number of decimals in the output. Negative means
	// full precision; the default 0 value renders 1 decimal.
	Precision int
}

func (r *CSVRenderer) Render(w io.Writer, result *scoring.Result) error {
	prec := r.Precision
	if prec == 0 {
		prec = 1
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"index", "name", "nr_100kcal", "lim_100kcal", "nrf_score", "band"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rs := range result.Scores {
		record := []string{
			strconv.Itoa(rs.Index),
			rs.Name,
			formatFloat(rs.Score.NR100kcal, prec),
			formatFloat(rs.Score.LIM100kcal, prec),
			formatFloat(rs.Score.NRF, prec),
			rs.Band,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", rs.Index, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64, prec int) string {
	if prec < 0 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}
