package compiler

import (
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// templateDTO mirrors the on-disk template document. It uses mapstructure
// tags so YAML and JSON configs decode through the same path after the
// generic unmarshal step.
type templateDTO struct {
	Title    string     `mapstructure:"title"`
	Currency string     `mapstructure:"currency"`
	Notes    []string   `mapstructure:"notes"`
	Fields   []fieldDTO `mapstructure:"fields"`
	Inputs   []inputDTO `mapstructure:"inputs"`
	Layout   layoutDTO  `mapstructure:"layout"`
}

type fieldDTO struct {
	ID       string `mapstructure:"id"`
	Label    string `mapstructure:"label"`
	Source   string `mapstructure:"source"`
	Type     string `mapstructure:"type"`
	Unit     string `mapstructure:"unit"`
	Default  any    `mapstructure:"default"`
	Formula  string `mapstructure:"formula"`
	Editable bool   `mapstructure:"editable"`
}

type inputDTO struct {
	Key    string `mapstructure:"key"`
	Field  string `mapstructure:"field"`
	ID     string `mapstructure:"id"`
	Format string `mapstructure:"format"`
}

type layoutDTO struct {
	Tables []tableDTO `mapstructure:"tables"`
	Notes  []string   `mapstructure:"notes"`
}

type tableDTO struct {
	ID      string      `mapstructure:"id"`
	Title   string      `mapstructure:"title"`
	ColDefs []colDefDTO `mapstructure:"col_defs"`
	Rows    []rowDTO    `mapstructure:"rows"`
	Note    string      `mapstructure:"note"`
}

type colDefDTO struct {
	Key      string `mapstructure:"key"`
	Title    string `mapstructure:"title"`
	Subtitle string `mapstructure:"subtitle"`
}

type rowDTO struct {
	ID    string             `mapstructure:"id"`
	Label string             `mapstructure:"label"`
	Type  string             `mapstructure:"type"`
	// ExtraLabel accepts either a plain string or a {field, format} /
	// {text} object, matching the shorthand the configs use.
	ExtraLabel any                `mapstructure:"extra_label"`
	Cells      map[string]cellDTO `mapstructure:"cells"`
	Children   []rowDTO           `mapstructure:"children"`
}

type cellDTO struct {
	Field    string `mapstructure:"field"`
	Value    any    `mapstructure:"value"`
	Format   string `mapstructure:"format"`
	Editable bool   `mapstructure:"editable"`
}

type extraLabelDTO struct {
	Text   string `mapstructure:"text"`
	Field  string `mapstructure:"field"`
	Format string `mapstructure:"format"`
}

func (d templateDTO) toDomain() (*domain.Template, error) {
	tpl := &domain.Template{
		Title:    d.Title,
		Currency: d.Currency,
		Notes:    d.Notes,
	}

	for _, f := range d.Fields {
		source := domain.FieldSource(f.Source)
		if source == "" {
			source = domain.SourceUser
		}
		tpl.Fields = append(tpl.Fields, domain.Field{
			ID:       f.ID,
			Label:    f.Label,
			Source:   source,
			Type:     domain.FormatKind(f.Type),
			Unit:     f.Unit,
			Default:  f.Default,
			Formula:  f.Formula,
			Editable: f.Editable,
		})
	}

	for _, in := range d.Inputs {
		key := in.Key
		if key == "" {
			key = in.ID
		}
		field := in.Field
		if field == "" {
			field = in.ID
		}
		tpl.Inputs = append(tpl.Inputs, domain.Input{
			Key:    key,
			Field:  field,
			Format: domain.FormatKind(in.Format),
		})
	}

	tpl.Layout.Notes = d.Layout.Notes
	for _, t := range d.Layout.Tables {
		table := domain.Table{
			ID:    t.ID,
			Title: t.Title,
			Note:  t.Note,
		}
		for _, c := range t.ColDefs {
			table.ColDefs = append(table.ColDefs, domain.ColDef{
				Key:      c.Key,
				Title:    c.Title,
				Subtitle: c.Subtitle,
			})
		}
		for _, r := range t.Rows {
			row, err := r.toDomain()
			if err != nil {
				return nil, fmt.Errorf("table %q: %w", t.ID, err)
			}
			table.Rows = append(table.Rows, row)
		}
		tpl.Layout.Tables = append(tpl.Layout.Tables, table)
	}

	return tpl, nil
}

func (d rowDTO) toDomain() (domain.Row, error) {
	row := domain.Row{
		ID:    d.ID,
		Label: d.Label,
		Type:  d.Type,
	}

	if d.ExtraLabel != nil {
		extra, err := decodeExtraLabel(d.ExtraLabel)
		if err != nil {
			return domain.Row{}, fmt.Errorf("row %q: extra_label: %w", d.ID, err)
		}
		row.ExtraLabel = extra
	}

	if len(d.Cells) > 0 {
		row.Cells = make(map[string]domain.Cell, len(d.Cells))
		for key, c := range d.Cells {
			row.Cells[key] = domain.Cell{
				Field:    c.Field,
				Value:    c.Value,
				Format:   domain.FormatKind(c.Format),
				Editable: c.Editable,
			}
		}
	}

	for _, child := range d.Children {
		converted, err := child.toDomain()
		if err != nil {
			return domain.Row{}, err
		}
		row.Children = append(row.Children, converted)
	}
	return row, nil
}

func decodeExtraLabel(raw any) (*domain.ExtraLabel, error) {
	switch v := raw.(type) {
	case string:
		return &domain.ExtraLabel{Text: v}, nil
	case map[string]any:
		var dto extraLabelDTO
		if err := mapstructure.Decode(v, &dto); err != nil {
			return nil, err
		}
		return &domain.ExtraLabel{
			Text:   dto.Text,
			Field:  dto.Field,
			Format: domain.FormatKind(dto.Format),
		}, nil
	default:
		return nil, fmt.Errorf("expected string or object, got %T", raw)
	}
}
