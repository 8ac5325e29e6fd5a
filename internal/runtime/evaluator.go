package runtime

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// Evaluator evaluates a single formula string against a frozen snapshot of
// field values. Implementations must be side-effect free and must return a
// plain error instead of panicking; the scheduler wraps failures into
// domain.EvalError scoped to the field being evaluated.
type Evaluator func(formula string, vars map[string]any) (any, error)

// errNoValue is returned when a formula evaluates to nil, typically a bare
// reference to a field that was never resolved.
var errNoValue = errors.New("formula produced no value")

// builtins is the allow-listed set of pure numeric helpers available to
// formulas on top of the expr language's own operators.
var builtins = map[string]any{
	"abs":   math.Abs,
	"floor": math.Floor,
	"ceil":  math.Ceil,
	"round": math.Round,
	"pow":   math.Pow,
	"sqrt":  math.Sqrt,
	"min":   math.Min,
	"max":   math.Max,
}

// NewExprEvaluator returns the default Evaluator, backed by expr-lang.
// Formulas are compiled against an environment containing exactly the
// snapshot variables plus the numeric builtins; there is no attribute
// access into host state and no way to mutate the store from a formula.
func NewExprEvaluator() Evaluator {
	return func(formula string, vars map[string]any) (out any, err error) {
		defer func() {
			if r := recover(); r != nil {
				out, err = nil, fmt.Errorf("evaluator panic: %v", r)
			}
		}()

		env := make(map[string]any, len(vars)+len(builtins))
		for name, fn := range builtins {
			env[name] = fn
		}
		for k, v := range vars {
			env[k] = v
		}

		program, err := expr.Compile(formula, expr.Env(env))
		if err != nil {
			return nil, err
		}
		result, err := expr.Run(program, env)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, errNoValue
		}
		if f, ok := toFloat(result); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			return nil, fmt.Errorf("formula produced non-finite value %v", f)
		}
		return result, nil
	}
}

// toFloat normalizes numeric values for comparison and guards. ok is false
// for non-numeric values.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
