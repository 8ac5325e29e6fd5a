package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOverrides(t *testing.T) {
	t.Run("key value pairs", func(t *testing.T) {
		overrides, err := ParseOverrides([]string{
			"loan_amount=3500000000",
			"rate=0.085",
			"bank=VCB",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(3_500_000_000), overrides["loan_amount"])
		assert.Equal(t, 0.085, overrides["rate"])
		assert.Equal(t, "VCB", overrides["bank"])
	})

	t.Run("empty input yields nil", func(t *testing.T) {
		overrides, err := ParseOverrides(nil)
		require.NoError(t, err)
		assert.Nil(t, overrides)
	})

	t.Run("missing equals sign fails", func(t *testing.T) {
		_, err := ParseOverrides([]string{"loan_amount"})
		require.Error(t, err)
	})

	t.Run("empty key fails", func(t *testing.T) {
		_, err := ParseOverrides([]string{"=5"})
		require.Error(t, err)
	})

	t.Run("value may contain equals signs", func(t *testing.T) {
		overrides, err := ParseOverrides([]string{"note=a=b"})
		require.NoError(t, err)
		assert.Equal(t, "a=b", overrides["note"])
	})
}

func TestAutoCast(t *testing.T) {
	cases := []struct {
		raw  string
		want any
	}{
		{"true", true},
		{"False", false},
		{"null", nil},
		{"42", int64(42)},
		{"3_500_000_000", int64(3_500_000_000)},
		{"0.08", 0.08},
		{"-12.5", -12.5},
		{`"quoted"`, "quoted"},
		{`[1, 2]`, []any{float64(1), float64(2)}},
		{`{"a": 1}`, map[string]any{"a": float64(1)}},
		{"plain text", "plain text"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, AutoCast(tc.raw), "AutoCast(%q)", tc.raw)
	}
}
