package runtime

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// grouped prints numbers with thousands separators (comma grouping).
var grouped = message.NewPrinter(language.English)

// Format renders a resolved value for display. It is total: every input,
// including nil and non-numeric values under a numeric kind, produces a
// string. Unknown kinds degrade to plain stringification.
func Format(value any, kind domain.FormatKind, currency string) string {
	if value == nil {
		return ""
	}

	switch kind {
	case domain.FormatMoney:
		num, ok := toFloat(value)
		if !ok {
			return stringify(value)
		}
		num = math.Round(num*100) / 100
		var text string
		if num == math.Trunc(num) {
			text = grouped.Sprintf("%.0f", num)
		} else {
			text = grouped.Sprintf("%.2f", num)
		}
		if currency != "" {
			return text + " " + currency
		}
		return text

	case domain.FormatPercent:
		num, ok := toFloat(value)
		if !ok {
			return stringify(value)
		}
		return fmt.Sprintf("%.2f%%", num)

	case domain.FormatPercentPerYear:
		num, ok := toFloat(value)
		if !ok {
			return stringify(value)
		}
		return fmt.Sprintf("%.2f%%/year", num)

	case domain.FormatInteger:
		num, ok := toFloat(value)
		if !ok {
			return stringify(value)
		}
		return grouped.Sprintf("%.0f", math.Round(num))

	default:
		// text, generic, and unrecognized kinds
		return stringify(value)
	}
}

// stringify renders a value with its natural string representation.
// Whole-number floats drop their fractional part so JSON-decoded integers
// do not render as "3e+09".
func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	if f, ok := toFloat(value); ok {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return fmt.Sprintf("%d", int64(f))
		}
		return fmt.Sprintf("%v", f)
	}
	return fmt.Sprintf("%v", value)
}
