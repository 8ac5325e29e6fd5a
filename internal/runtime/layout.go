package runtime

import (
	"log/slog"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// LayoutBuilder walks table definitions and binds every declared cell to a
// rendered string using the stabilized field store. It holds read-only
// references; the definition tree is never mutated.
type LayoutBuilder struct {
	store    *FieldStore
	currency string
	logger   *slog.Logger
}

// NewLayoutBuilder creates a builder over a resolved store.
func NewLayoutBuilder(store *FieldStore, currency string, logger *slog.Logger) *LayoutBuilder {
	return &LayoutBuilder{store: store, currency: currency, logger: logger}
}

// Materialize produces the resolved form of one table. Missing field
// references and cells absent for a declared column resolve to an empty
// placeholder; they never fail the table.
func (b *LayoutBuilder) Materialize(table domain.Table) domain.ResolvedTable {
	resolved := domain.ResolvedTable{
		ID:      table.ID,
		Title:   table.Title,
		ColDefs: table.ColDefs,
		Note:    table.Note,
		Rows:    make([]domain.ResolvedRow, 0, len(table.Rows)),
	}
	for _, row := range table.Rows {
		resolved.Rows = append(resolved.Rows, b.resolveRow(table.ID, row, 0))
	}
	return resolved
}

func (b *LayoutBuilder) resolveRow(tableID string, row domain.Row, depth int) domain.ResolvedRow {
	out := domain.ResolvedRow{
		ID:    row.ID,
		Label: row.Label,
		Type:  row.Type,
		Cells: make(map[string]domain.ResolvedCell, len(row.Cells)),
	}

	if row.ExtraLabel != nil {
		out.ExtraLabel = b.resolveExtraLabel(*row.ExtraLabel)
	}

	for key, cell := range row.Cells {
		out.Cells[key] = b.resolveCell(tableID, row.ID, cell)
	}

	// The compiler rejects over-deep trees at load time; this guard only
	// protects against definitions built programmatically by callers.
	if depth >= domain.MaxRowDepth {
		b.logger.Warn("row tree exceeds depth guard, children dropped",
			"table", tableID, "row", row.ID, "depth", depth)
		return out
	}

	for _, child := range row.Children {
		out.Children = append(out.Children, b.resolveRow(tableID, child, depth+1))
	}
	return out
}

func (b *LayoutBuilder) resolveCell(tableID, rowID string, cell domain.Cell) domain.ResolvedCell {
	var raw any
	kind := cell.Format

	if cell.Field != "" {
		value, ok := b.store.Get(cell.Field)
		if !ok {
			b.logger.Debug("unresolved cell reference",
				"table", tableID, "row", rowID, "field", cell.Field)
			return domain.ResolvedCell{Text: "", Editable: cell.Editable}
		}
		raw = value
		if kind == "" {
			if f, ok := b.store.Field(cell.Field); ok {
				kind = f.Type
			}
		}
	} else {
		raw = cell.Value
	}

	return domain.ResolvedCell{
		Text:     Format(raw, kind, b.currency),
		Raw:      raw,
		Editable: cell.Editable,
	}
}

func (b *LayoutBuilder) resolveExtraLabel(extra domain.ExtraLabel) string {
	if extra.Field != "" {
		value, ok := b.store.Get(extra.Field)
		if !ok {
			b.logger.Debug("unresolved extra label reference", "field", extra.Field)
			return ""
		}
		return Format(value, extra.Format, b.currency)
	}
	return extra.Text
}
