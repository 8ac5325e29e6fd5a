package domain

// Input declares one entry of the payload's inputs section: a display key
// bound to a field value rendered with an optional format.
type Input struct {
	Key    string     `json:"key,omitempty"`
	Field  string     `json:"field,omitempty"`
	Format FormatKind `json:"format,omitempty"`
}

// Template is a fully parsed, validated template configuration. It is
// owned by the caller and never mutated by the engine; each resolution
// run derives its own mutable field state from Fields.
type Template struct {
	Title    string   `json:"title,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Notes    []string `json:"notes,omitempty"`
	Fields   []Field  `json:"fields,omitempty"`
	Inputs   []Input  `json:"inputs,omitempty"`
	Layout   Layout   `json:"layout,omitempty"`
}

// FieldByID returns the declared field with the given id, if any.
func (t *Template) FieldByID(id string) (Field, bool) {
	for _, f := range t.Fields {
		if f.ID == id {
			return f, true
		}
	}
	return Field{}, false
}
