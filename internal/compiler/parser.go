// Package compiler converts raw template documents (JSON or YAML) into
// validated domain templates. All structural validation happens here,
// before any resolution work: a template that parses is safe to resolve.
package compiler

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
	"github.com/dathuynh1108/rule-table-render/pkg/schema"
)

// Parser is responsible for converting raw bytes into a Template.
type Parser struct{}

// NewParser creates a new parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes and validates a template document. JSON parses through the
// same path as YAML (JSON is a YAML subset), so callers do not declare the
// format. Structural failures return a schema.AggregateError listing every
// problem found.
func (p *Parser) Parse(data []byte) (*domain.Template, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse template document: %w", err)
	}

	var dto templateDTO
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  &dto,
		TagName: "mapstructure",
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode template document: %w", err)
	}

	tpl, err := dto.toDomain()
	if err != nil {
		return nil, err
	}

	if err := validate(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// validate enforces the structural invariants that are fatal at load time:
// duplicate field ids, formula presence mismatched with source, duplicate
// column keys, and over-deep row trees. Everything else (unknown format
// kinds, missing cell targets) degrades at resolution time instead.
func validate(tpl *domain.Template) error {
	var errs []error

	seen := make(map[string]bool, len(tpl.Fields))
	for _, f := range tpl.Fields {
		if f.ID == "" {
			errs = append(errs, &schema.ValidationError{Key: "(unnamed)", Reason: "field id is required"})
			continue
		}
		if seen[f.ID] {
			errs = append(errs, &schema.ValidationError{Key: f.ID, Reason: domain.ErrDuplicateFieldID.Error()})
		}
		seen[f.ID] = true

		switch f.Source {
		case domain.SourceCalc:
			if f.Formula == "" {
				errs = append(errs, &schema.ValidationError{Key: f.ID, Reason: "calc field requires a formula"})
			}
		case domain.SourceUser:
			if f.Formula != "" {
				errs = append(errs, &schema.ValidationError{Key: f.ID, Reason: "user field must not declare a formula"})
			}
		default:
			errs = append(errs, &schema.ValidationError{Key: f.ID, Reason: fmt.Sprintf("unknown source %q", f.Source)})
		}
	}

	tableIDs := make(map[string]bool, len(tpl.Layout.Tables))
	for _, t := range tpl.Layout.Tables {
		if t.ID == "" {
			errs = append(errs, &schema.ValidationError{Key: "(unnamed table)", Reason: "table id is required"})
			continue
		}
		if tableIDs[t.ID] {
			errs = append(errs, &schema.ValidationError{Key: t.ID, Reason: "duplicate table id"})
		}
		tableIDs[t.ID] = true

		colKeys := make(map[string]bool, len(t.ColDefs))
		for _, c := range t.ColDefs {
			if c.Key == "" {
				errs = append(errs, &schema.ValidationError{Key: t.ID, Reason: "column key is required"})
				continue
			}
			if colKeys[c.Key] {
				errs = append(errs, &schema.ValidationError{Key: t.ID, Reason: fmt.Sprintf("duplicate column key %q", c.Key)})
			}
			colKeys[c.Key] = true
		}

		for _, r := range t.Rows {
			errs = append(errs, validateRow(t.ID, r, 0)...)
		}
	}

	if len(errs) > 0 {
		return &schema.AggregateError{Errors: errs}
	}
	return nil
}

func validateRow(tableID string, row domain.Row, depth int) []error {
	var errs []error

	if depth > domain.MaxRowDepth {
		errs = append(errs, &schema.ValidationError{
			Key:    tableID,
			Reason: fmt.Sprintf("row tree exceeds maximum depth %d", domain.MaxRowDepth),
		})
		return errs
	}

	if row.ID == "" {
		errs = append(errs, &schema.ValidationError{Key: tableID, Reason: "row id is required"})
	}

	for key, cell := range row.Cells {
		if cell.Field != "" && cell.Value != nil {
			errs = append(errs, &schema.ValidationError{
				Key:    row.ID,
				Reason: fmt.Sprintf("cell %q declares both a field reference and a literal value", key),
			})
		}
	}

	for _, child := range row.Children {
		errs = append(errs, validateRow(tableID, child, depth+1)...)
	}
	return errs
}
