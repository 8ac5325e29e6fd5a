package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExprEvaluator(t *testing.T) {
	eval := NewExprEvaluator()

	t.Run("arithmetic over snapshot variables", func(t *testing.T) {
		out, err := eval("loan_amount * rate", map[string]any{
			"loan_amount": 2_000_000_000.0,
			"rate":        0.08,
		})
		require.NoError(t, err)
		got, ok := toFloat(out)
		require.True(t, ok)
		assert.InDelta(t, 160_000_000.0, got, 1e-6)
	})

	t.Run("builtin helpers", func(t *testing.T) {
		out, err := eval("round(19.6)", nil)
		require.NoError(t, err)
		got, _ := toFloat(out)
		assert.Equal(t, 20.0, got)

		out, err = eval("max(abs(-3.0), 2.0)", nil)
		require.NoError(t, err)
		got, _ = toFloat(out)
		assert.Equal(t, 3.0, got)
	})

	t.Run("conditional expressions", func(t *testing.T) {
		out, err := eval(`months >= 12 ? "long" : "short"`, map[string]any{"months": 24})
		require.NoError(t, err)
		assert.Equal(t, "long", out)
	})

	t.Run("undeclared identifier fails", func(t *testing.T) {
		_, err := eval("missing_field + 1", map[string]any{"present": 1})
		require.Error(t, err)
	})

	t.Run("syntax errors fail", func(t *testing.T) {
		_, err := eval("1 +", nil)
		require.Error(t, err)
	})

	t.Run("nil result is an error", func(t *testing.T) {
		_, err := eval("nil", nil)
		require.Error(t, err)
	})

	t.Run("non-finite results are rejected", func(t *testing.T) {
		_, err := eval("x / y", map[string]any{"x": 1.0, "y": 0.0})
		require.Error(t, err)
	})

	t.Run("no host access from formulas", func(t *testing.T) {
		_, err := eval(`len("abc") + unknownEnvCall()`, nil)
		require.Error(t, err)
	})
}
