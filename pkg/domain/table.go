package domain

// ColDef describes one column of a layout table.
type ColDef struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Cell binds a layout position to either a literal value or a field
// reference; exactly one of the two is set. Format overrides the
// referenced field's declared type for this cell only.
type Cell struct {
	Field    string     `json:"field,omitempty"`
	Value    any        `json:"value,omitempty"`
	Format   FormatKind `json:"format,omitempty"`
	Editable bool       `json:"editable,omitempty"`
}

// ExtraLabel is an optional annotation next to a row label, either a
// literal text or a formatted field reference.
type ExtraLabel struct {
	Text   string     `json:"text,omitempty"`
	Field  string     `json:"field,omitempty"`
	Format FormatKind `json:"format,omitempty"`
}

// Row is one layout row. Cells maps column keys to cell definitions and
// need not cover every ColDef of the enclosing table. Children form a
// tree by construction; depth is bounded by MaxRowDepth at load time.
type Row struct {
	ID         string          `json:"id"`
	Label      string          `json:"label,omitempty"`
	Type       string          `json:"type,omitempty"`
	ExtraLabel *ExtraLabel     `json:"extra_label,omitempty"`
	Cells      map[string]Cell `json:"cells,omitempty"`
	Children   []Row           `json:"children,omitempty"`
}

// Table is a named, titled collection of rows and columns describing how
// resolved values are displayed. Tables are read-only after construction.
type Table struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	ColDefs []ColDef `json:"col_defs,omitempty"`
	Rows    []Row    `json:"rows,omitempty"`
	Note    string   `json:"note,omitempty"`
}

// Layout groups the tables of a template plus optional layout-level notes.
// Non-empty layout notes fully replace template-level notes in the payload;
// they are never merged.
type Layout struct {
	Tables []Table  `json:"tables,omitempty"`
	Notes  []string `json:"notes,omitempty"`
}
