package surface

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// TerminalRenderer renders a scoring Result as colored terminal output.
type TerminalRenderer struct {
	// TopN limits how many foods appear in the ranking. 0 shows all.
	TopN int
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func bandColor(band string) string {
	if noColor() {
		return ""
	}
	switch band {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	case "D", "F":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, result *scoring.Result) error {
	fmt.Fprintf(w, "%s\n\n", bold(fmt.Sprintf("nutriscope: %d foods scored, %d rejected",
		result.Stats.ScoredRows, result.Stats.RejectedRows)))

	// Rank foods by NRF score, best first.
	ranked := make([]scoring.RowScore, len(result.Scores))
	copy(ranked, result.Scores)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.NRF > ranked[j].Score.NRF
	})

	limit := len(ranked)
	if r.TopN > 0 && r.TopN < limit {
		limit = r.TopN
	}

	if limit > 0 {
		fmt.Fprintln(w, "Ranking:")
		for i := 0; i < limit; i++ {
			rs := ranked[i]
			fmt.Fprintf(w, "  %2d. %s %s  NRF %.1f  %s\n",
				i+1,
				colored(rs.Band, bandColor(rs.Band)),
				bold(rs.Name),
				rs.Score.NRF,
				dim(fmt.Sprintf("(NR %.1f / LIM %.1f)", rs.Score.NR100kcal, rs.Score.LIM100kcal)))
		}
		if limit < len(ranked) {
			fmt.Fprintf(w, "  %s\n", dim(fmt.Sprintf("... and %d more", len(ranked)-limit)))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintln(w, "No foods scored.")
		fmt.Fprintln(w)
	}

	if len(result.Rejected) > 0 {
		fmt.Fprintln(w, "Rejected rows:")
		for _, rej := range result.Rejected {
			label := rej.Name
			if label == "" {
				label = fmt.Sprintf("row %d", rej.Index)
			}
			fmt.Fprintf(w, "  %s %s — %s\n", colored("x", colorRed), bold(label), rej.Reason)
		}
		fmt.Fprintln(w)
	}

	return nil
}
