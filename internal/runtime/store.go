// Package runtime implements the field resolution engine: the field store,
// the sandboxed formula evaluator, the fixed-budget convergence scheduler,
// the value formatter and the layout materializer.
package runtime

import (
	"fmt"
	"sort"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// FieldStore owns the declared fields and their current values for the
// lifetime of one resolution run. It is not safe for concurrent use; each
// run gets its own instance.
type FieldStore struct {
	order  []string
	fields map[string]domain.Field
	values map[string]any
}

// NewFieldStore builds the id-to-field mapping from declared defaults.
// Two fields sharing an id is a configuration error and fails immediately.
func NewFieldStore(defs []domain.Field) (*FieldStore, error) {
	s := &FieldStore{
		order:  make([]string, 0, len(defs)),
		fields: make(map[string]domain.Field, len(defs)),
		values: make(map[string]any, len(defs)),
	}
	for _, f := range defs {
		if f.ID == "" {
			return nil, fmt.Errorf("field with empty id: %w", domain.ErrDuplicateFieldID)
		}
		if _, exists := s.fields[f.ID]; exists {
			return nil, fmt.Errorf("field %q: %w", f.ID, domain.ErrDuplicateFieldID)
		}
		s.order = append(s.order, f.ID)
		s.fields[f.ID] = f
		s.values[f.ID] = f.Default
	}
	return s, nil
}

// ApplyOverride sets a field's value directly, regardless of source.
// Unknown ids are reported via ErrUnknownOverrideTarget; the caller logs
// and continues.
func (s *FieldStore) ApplyOverride(id string, value any) error {
	if _, ok := s.fields[id]; !ok {
		return fmt.Errorf("override %q: %w", id, domain.ErrUnknownOverrideTarget)
	}
	s.values[id] = value
	return nil
}

// Snapshot returns a copy of all current id-to-value pairs. The evaluator
// only ever sees snapshots, never the live store.
func (s *FieldStore) Snapshot() map[string]any {
	snap := make(map[string]any, len(s.values))
	for k, v := range s.values {
		snap[k] = v
	}
	return snap
}

// Get returns the current value for id. Unresolved fields report their
// default (possibly nil); unknown ids report ok == false.
func (s *FieldStore) Get(id string) (any, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Set replaces the current value for a declared field. Writes for unknown
// ids are dropped.
func (s *FieldStore) Set(id string, value any) {
	if _, ok := s.fields[id]; ok {
		s.values[id] = value
	}
}

// Field returns the declaration for id.
func (s *FieldStore) Field(id string) (domain.Field, bool) {
	f, ok := s.fields[id]
	return f, ok
}

// CalcFields returns the calculated fields in declaration order.
func (s *FieldStore) CalcFields() []domain.Field {
	var calc []domain.Field
	for _, id := range s.order {
		if f := s.fields[id]; f.IsCalc() {
			calc = append(calc, f)
		}
	}
	return calc
}

// Values returns the final id-to-value mapping with deterministic
// iteration helpers for callers that need ordering.
func (s *FieldStore) Values() map[string]any {
	return s.Snapshot()
}

// IDs returns all declared field ids sorted lexically.
func (s *FieldStore) IDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	sort.Strings(ids)
	return ids
}
