package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

func TestFormatMoney(t *testing.T) {
	t.Run("groups thousands and appends currency", func(t *testing.T) {
		got := Format(2_000_000_000, domain.FormatMoney, "VND")
		assert.Equal(t, "2,000,000,000 VND", got)
	})

	t.Run("drops decimals for whole amounts", func(t *testing.T) {
		got := Format(1500.0, domain.FormatMoney, "VND")
		assert.Equal(t, "1,500 VND", got)
	})

	t.Run("keeps two decimals for fractional amounts", func(t *testing.T) {
		got := Format(1234.567, domain.FormatMoney, "USD")
		assert.Equal(t, "1,234.57 USD", got)
	})

	t.Run("omits the currency suffix when unset", func(t *testing.T) {
		got := Format(1000, domain.FormatMoney, "")
		assert.Equal(t, "1,000", got)
	})

	t.Run("non-numeric degrades to plain text", func(t *testing.T) {
		got := Format("n/a", domain.FormatMoney, "VND")
		assert.Equal(t, "n/a", got)
	})
}

func TestFormatPercent(t *testing.T) {
	t.Run("renders the stored number without scaling", func(t *testing.T) {
		got := Format(0.08, domain.FormatPercentPerYear, "VND")
		assert.Contains(t, got, "8%")
		assert.Contains(t, got, "/year")
		assert.Equal(t, "0.08%/year", got)
	})

	t.Run("plain percent has no suffix", func(t *testing.T) {
		got := Format(12.5, domain.FormatPercent, "")
		assert.Equal(t, "12.50%", got)
	})
}

func TestFormatInteger(t *testing.T) {
	assert.Equal(t, "20", Format(19.6, domain.FormatInteger, ""))
	assert.Equal(t, "1,000,000", Format(1_000_000, domain.FormatInteger, "VND"))
}

func TestFormatFallbacks(t *testing.T) {
	t.Run("nil renders empty", func(t *testing.T) {
		assert.Equal(t, "", Format(nil, domain.FormatMoney, "VND"))
	})

	t.Run("text passes through", func(t *testing.T) {
		assert.Equal(t, "hello", Format("hello", domain.FormatText, ""))
	})

	t.Run("unknown kind stringifies", func(t *testing.T) {
		assert.Equal(t, "true", Format(true, domain.FormatKind("mystery"), ""))
	})

	t.Run("whole floats never render in exponent form", func(t *testing.T) {
		got := Format(3_000_000_000.0, domain.FormatGeneric, "")
		assert.Equal(t, "3000000000", got)
	})
}
