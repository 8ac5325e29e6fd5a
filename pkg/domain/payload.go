package domain

// ResolvedCell is a materialized layout cell: the rendered display string
// plus the raw value it was rendered from, for callers that need both.
type ResolvedCell struct {
	Text     string `json:"text"`
	Raw      any    `json:"raw,omitempty"`
	Editable bool   `json:"editable"`
}

// ResolvedRow mirrors a layout Row with every declared cell bound to a
// rendered string.
type ResolvedRow struct {
	ID         string                  `json:"id"`
	Label      string                  `json:"label,omitempty"`
	Type       string                  `json:"type,omitempty"`
	ExtraLabel string                  `json:"extra_label,omitempty"`
	Cells      map[string]ResolvedCell `json:"cells"`
	Children   []ResolvedRow           `json:"children,omitempty"`
}

// ResolvedTable is the materialized form of a layout Table.
type ResolvedTable struct {
	ID      string        `json:"id"`
	Title   string        `json:"title,omitempty"`
	ColDefs []ColDef      `json:"col_defs,omitempty"`
	Rows    []ResolvedRow `json:"rows"`
	Note    string        `json:"note,omitempty"`
}

// Payload is the fully resolved output of one run: template metadata, the
// final id-to-value mapping for every field, and the materialized tables.
// It marshals to a plain JSON tree so it can be handed unchanged to
// serialization or to an external templating layer.
type Payload struct {
	Title    string            `json:"title,omitempty"`
	Currency string            `json:"currency,omitempty"`
	Inputs   map[string]string `json:"inputs,omitempty"`
	Values   map[string]any    `json:"values"`
	Tables   []ResolvedTable   `json:"tables"`
	Notes    []string          `json:"notes,omitempty"`
	// Passes is the number of evaluation sweeps the run took; Converged is
	// false when the pass budget ran out before values stabilized.
	Passes    int  `json:"passes"`
	Converged bool `json:"converged"`
}
