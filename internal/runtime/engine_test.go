package runtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

func loanTemplate() *domain.Template {
	return &domain.Template{
		Title:    "Phương án vay",
		Currency: "VND",
		Fields: []domain.Field{
			{ID: "loan_amount", Label: "Số tiền vay", Source: domain.SourceUser, Type: domain.FormatMoney, Default: 2_000_000_000, Editable: true},
			{ID: "rate", Label: "Lãi suất", Source: domain.SourceUser, Type: domain.FormatPercentPerYear, Default: 0.08},
			{ID: "interest", Label: "Tiền lãi năm đầu", Source: domain.SourceCalc, Type: domain.FormatMoney, Formula: "loan_amount * rate"},
		},
		Inputs: []domain.Input{
			{Key: "Số tiền vay", Field: "loan_amount", Format: domain.FormatMoney},
		},
		Notes: []string{"Số liệu mang tính minh họa."},
		Layout: domain.Layout{
			Tables: []domain.Table{
				{
					ID:    "summary",
					Title: "Tổng quan",
					Rows: []domain.Row{
						{ID: "amount", Label: "Số tiền vay", Cells: map[string]domain.Cell{"main": {Field: "loan_amount", Editable: true}}},
						{ID: "interest", Label: "Tiền lãi", Type: "total", Cells: map[string]domain.Cell{"main": {Field: "interest"}}},
					},
				},
				{
					ID:    "detail",
					Title: "Chi tiết",
					Rows: []domain.Row{
						{ID: "rate", Label: "Lãi suất", Cells: map[string]domain.Cell{"main": {Field: "rate"}}},
					},
				},
			},
		},
	}
}

func TestEngineBuildPayload(t *testing.T) {
	engine := NewEngine()

	t.Run("defaults resolve end to end", func(t *testing.T) {
		payload, err := engine.BuildPayload(loanTemplate(), nil, nil)
		require.NoError(t, err)

		assert.Equal(t, "Phương án vay", payload.Title)
		assert.Equal(t, "VND", payload.Currency)
		assert.True(t, payload.Converged)

		interest, _ := toFloat(payload.Values["interest"])
		assert.InDelta(t, 160_000_000, interest, 1e-3)

		require.Len(t, payload.Tables, 2)
		assert.Equal(t, "2,000,000,000 VND", payload.Tables[0].Rows[0].Cells["main"].Text)
		assert.Equal(t, "160,000,000 VND", payload.Tables[0].Rows[1].Cells["main"].Text)
	})

	t.Run("overrides replace defaults before resolution", func(t *testing.T) {
		payload, err := engine.BuildPayload(loanTemplate(), map[string]any{
			"loan_amount": 3_500_000_000,
		}, nil)
		require.NoError(t, err)

		interest, _ := toFloat(payload.Values["interest"])
		assert.InDelta(t, 280_000_000, interest, 1e-3)
		assert.Equal(t, "3,500,000,000 VND", payload.Tables[0].Rows[0].Cells["main"].Text)
	})

	t.Run("unknown override target is skipped", func(t *testing.T) {
		payload, err := engine.BuildPayload(loanTemplate(), map[string]any{
			"loan_amount": 1_000_000_000,
			"ghost_field": 42,
		}, nil)
		require.NoError(t, err)

		interest, _ := toFloat(payload.Values["interest"])
		assert.InDelta(t, 80_000_000, interest, 1e-3)
		_, exists := payload.Values["ghost_field"]
		assert.False(t, exists)
	})

	t.Run("table filter limits output", func(t *testing.T) {
		payload, err := engine.BuildPayload(loanTemplate(), nil, []string{"detail"})
		require.NoError(t, err)

		require.Len(t, payload.Tables, 1)
		assert.Equal(t, "detail", payload.Tables[0].ID)
		// The full field snapshot is still present for filtered renders.
		assert.Contains(t, payload.Values, "interest")
	})

	t.Run("inputs section uses declared keys and formats", func(t *testing.T) {
		payload, err := engine.BuildPayload(loanTemplate(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "2,000,000,000 VND", payload.Inputs["Số tiền vay"])
	})

	t.Run("duplicate field ids fail the call", func(t *testing.T) {
		tpl := loanTemplate()
		tpl.Fields = append(tpl.Fields, domain.Field{ID: "rate", Source: domain.SourceUser})
		_, err := engine.BuildPayload(tpl, nil, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrDuplicateFieldID)
	})
}

func TestEngineNotesPolicy(t *testing.T) {
	engine := NewEngine()

	t.Run("template notes pass through", func(t *testing.T) {
		payload, err := engine.BuildPayload(loanTemplate(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Số liệu mang tính minh họa."}, payload.Notes)
	})

	t.Run("layout notes replace template notes entirely", func(t *testing.T) {
		tpl := loanTemplate()
		tpl.Layout.Notes = []string{"Ghi chú riêng của layout."}
		payload, err := engine.BuildPayload(tpl, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"Ghi chú riêng của layout."}, payload.Notes)
	})
}

func TestEngineNonConvergence(t *testing.T) {
	tpl := &domain.Template{
		Fields: []domain.Field{
			{ID: "a", Source: domain.SourceCalc, Formula: "b + 1", Default: 0},
			{ID: "b", Source: domain.SourceCalc, Formula: "a + 1", Default: 0},
		},
	}
	payload, err := NewEngine().BuildPayload(tpl, nil, nil)
	require.NoError(t, err, "non-convergence must not be an error")
	assert.Equal(t, domain.MaxPasses, payload.Passes)
	assert.False(t, payload.Converged)
}

func TestEngineCustomEvaluator(t *testing.T) {
	constant := func(formula string, vars map[string]any) (any, error) {
		return 99, nil
	}
	tpl := &domain.Template{
		Fields: []domain.Field{
			{ID: "x", Source: domain.SourceCalc, Formula: "whatever"},
		},
	}
	payload, err := NewEngine(WithEvaluator(constant)).BuildPayload(tpl, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 99, payload.Values["x"])
}
