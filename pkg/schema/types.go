package schema

import (
	"fmt"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Type defines the contract for value validation against a format kind.
type Type interface {
	// Name returns the human-readable name of the type (e.g. "money").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// NumberType accepts any numeric value, including whole floats produced by
// JSON unmarshaling. It backs the money, percent and percent_per_year kinds.
type NumberType struct {
	name string
}

func (t *NumberType) Name() string { return t.name }

func (t *NumberType) Validate(value any) error {
	switch value.(type) {
	case int, int8, int16, int32, int64, float32, float64:
		return nil
	default:
		return fmt.Errorf("expected number, got %T", value)
	}
}

// IntegerType accepts integers and whole-number floats.
type IntegerType struct{}

func (t *IntegerType) Name() string { return "integer" }

func (t *IntegerType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64:
		return nil
	case float64:
		if v == float64(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected integer, got float (not a whole number)")
	case float32:
		if v == float32(int64(v)) {
			return nil
		}
		return fmt.Errorf("expected integer, got float (not a whole number)")
	default:
		return fmt.Errorf("expected integer, got %T", value)
	}
}

// TextType accepts string values only.
type TextType struct{}

func (t *TextType) Name() string { return "text" }

func (t *TextType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// GenericType accepts any value.
type GenericType struct{}

func (t *GenericType) Name() string { return "generic" }

func (t *GenericType) Validate(any) error { return nil }

// --- Factory Functions ---

// Number creates a numeric validator with the given display name.
func Number(name string) Type { return &NumberType{name: name} }

// Integer creates an integer validator.
func Integer() Type { return &IntegerType{} }

// Text creates a string validator.
func Text() Type { return &TextType{} }

// Generic creates a validator that accepts anything.
func Generic() Type { return &GenericType{} }

// ForKind maps a field format kind to its validator. Unknown kinds
// validate as generic, mirroring the formatter's degrade-to-string policy.
func ForKind(kind domain.FormatKind) Type {
	switch kind {
	case domain.FormatMoney:
		return Number("money")
	case domain.FormatPercent:
		return Number("percent")
	case domain.FormatPercentPerYear:
		return Number("percent_per_year")
	case domain.FormatInteger:
		return Integer()
	case domain.FormatText:
		return Text()
	default:
		return Generic()
	}
}

// CheckOverride validates an override value against the target field's
// declared type. The check is advisory: callers report mismatches but
// apply the override regardless.
func CheckOverride(field domain.Field, value any) error {
	if value == nil {
		return nil
	}
	t := ForKind(field.Type)
	if err := t.Validate(value); err != nil {
		return &ValidationError{Key: field.ID, Reason: err.Error(), Value: value}
	}
	return nil
}
