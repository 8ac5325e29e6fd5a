package domain

// Field is a named value in a template, either supplied by the user
// (via default or override) or derived by evaluating a formula against
// the other fields.
type Field struct {
	ID      string      `json:"id"`
	Label   string      `json:"label,omitempty"`
	Source  FieldSource `json:"source"`
	Type    FormatKind  `json:"type,omitempty"`
	Unit    string      `json:"unit,omitempty"`
	Default any         `json:"default,omitempty"`
	// Formula is required iff Source == SourceCalc. It may reference other
	// field ids by name; referencing an undeclared id fails at evaluation
	// time for this field only.
	Formula string `json:"formula,omitempty"`
	// Editable is advisory for presentation layers; the engine does not
	// enforce it.
	Editable bool `json:"editable,omitempty"`
}

// IsCalc reports whether the field is resolved by formula evaluation.
func (f Field) IsCalc() bool {
	return f.Source == SourceCalc
}
