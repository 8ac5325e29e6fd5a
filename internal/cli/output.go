package cli

import (
	"encoding/json"
	"io"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// WritePayload encodes a resolved payload as JSON. Pretty output uses
// two-space indent to match the checked-in example payloads.
func WritePayload(w io.Writer, payload *domain.Payload, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	return enc.Encode(payload)
}
