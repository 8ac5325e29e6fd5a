package domain

// FieldSource identifies how a field obtains its value.
type FieldSource string

const (
	// SourceUser marks a field whose value comes from its default or an override.
	SourceUser FieldSource = "user"
	// SourceCalc marks a field whose value is produced by evaluating its formula.
	SourceCalc FieldSource = "calc"
)

// FormatKind selects the display rendering for a resolved value.
// Unknown kinds are never an error: they degrade to plain stringification.
type FormatKind string

const (
	FormatMoney          FormatKind = "money"
	FormatPercent        FormatKind = "percent"
	FormatPercentPerYear FormatKind = "percent_per_year"
	FormatInteger        FormatKind = "integer"
	FormatText           FormatKind = "text"
	FormatGeneric        FormatKind = "generic"
)

const (
	// MaxPasses is the fixed budget of full re-evaluation sweeps over all
	// calculated fields. Cyclic formulas stop updating after this many
	// passes; that is accepted, not reported.
	MaxPasses = 8

	// MaxRowDepth bounds row-tree nesting. The tree comes from
	// configuration, so the guard protects against malformed input,
	// not runtime cycles.
	MaxRowDepth = 64

	// FloatEpsilon is the convergence tolerance for floating-point
	// fields. Integer and string values compare exactly.
	FloatEpsilon = 1e-9
)
