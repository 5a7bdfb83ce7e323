// Package surface defines output rendering interfaces for nutriscope results.
// Implementations handle different output targets: terminal, JSON, CSV export.
package surface

import (
	"io"

	"github.com/nutriscope/nutriscope/pkg/scoring"
)

// Renderer produces formatted output from a scoring Result.
type Renderer interface {
	// Render writes the formatted result to the writer.
	Render(w io.Writer, result *scoring.Result) error
}
