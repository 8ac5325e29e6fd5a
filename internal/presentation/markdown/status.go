package markdown

import (
	"fmt"

	"github.com/muesli/termenv"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// StatusLine summarizes a run for the terminal: pass count and
// convergence, colored when the terminal supports it.
func StatusLine(payload *domain.Payload) string {
	p := termenv.ColorProfile()
	if payload.Converged {
		s := termenv.String(fmt.Sprintf("✔ resolved in %d pass(es)", payload.Passes)).
			Foreground(p.Color("#22c55e"))
		return s.String()
	}
	s := termenv.String(fmt.Sprintf("⚠ did not converge after %d passes, last values kept", payload.Passes)).
		Foreground(p.Color("#eab308"))
	return s.String()
}
