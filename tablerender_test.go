package tablerender_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dathuynh1108/rule-table-render"
	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

const scenarioYAML = `
title: Phương án tái cấp vốn
currency: VND
notes:
  - Số liệu mang tính minh họa, không phải cam kết giải ngân.
fields:
  - id: loan_amount
    label: Số tiền vay
    source: user
    type: money
    default: 2000000000
    editable: true
  - id: rate
    label: Lãi suất năm đầu
    source: user
    type: percent_per_year
    default: 0.08
  - id: term_months
    label: Thời hạn vay
    source: user
    type: integer
    default: 240
  - id: interest_year1
    label: Tiền lãi năm đầu
    source: calc
    type: money
    formula: loan_amount * rate
  - id: monthly_principal
    label: Gốc trả hàng tháng
    source: calc
    type: money
    formula: loan_amount / term_months
  - id: first_month_payment
    label: Trả tháng đầu
    source: calc
    type: money
    formula: monthly_principal + interest_year1 / 12
inputs:
  - key: Số tiền vay
    field: loan_amount
    format: money
  - key: Thời hạn
    field: term_months
    format: integer
layout:
  tables:
    - id: plan
      title: Kế hoạch trả nợ
      col_defs:
        - key: main
          title: Giá trị
          subtitle: năm đầu
      rows:
        - id: amount
          label: Số tiền vay
          cells:
            main:
              field: loan_amount
              editable: true
        - id: payment
          label: Trả tháng đầu
          type: total
          extra_label:
            field: term_months
            format: integer
          cells:
            main:
              field: first_month_payment
    - id: assumptions
      title: Giả định
      rows:
        - id: rate
          label: Lãi suất
          cells:
            main:
              field: rate
`

func TestRendererEndToEnd(t *testing.T) {
	r := tablerender.New()
	tpl, err := r.Load([]byte(scenarioYAML))
	require.NoError(t, err)

	t.Run("defaults", func(t *testing.T) {
		payload, err := r.BuildPayload(tpl, nil)
		require.NoError(t, err)

		assert.True(t, payload.Converged)
		assert.Equal(t, "Phương án tái cấp vốn", payload.Title)

		// 2e9 * 0.08 = 160,000,000 a year.
		assert.Equal(t, "2,000,000,000 VND", payload.Inputs["Số tiền vay"])
		assert.Equal(t, "240", payload.Inputs["Thời hạn"])

		require.Len(t, payload.Tables, 2)
		plan := payload.Tables[0]
		assert.Equal(t, "2,000,000,000 VND", plan.Rows[0].Cells["main"].Text)

		// 2e9/240 + 160e6/12 = 8,333,333.33 + 13,333,333.33
		payment := plan.Rows[1]
		assert.Equal(t, "21,666,666.67 VND", payment.Cells["main"].Text)
		assert.Equal(t, "240", payment.ExtraLabel)
	})

	t.Run("override flows through the formula chain", func(t *testing.T) {
		payload, err := r.BuildPayload(tpl, map[string]any{
			"loan_amount": 3_500_000_000,
		})
		require.NoError(t, err)

		interest, ok := payload.Values["interest_year1"]
		require.True(t, ok)
		assert.InDelta(t, 280_000_000, interest.(float64), 1e-3)
		assert.Equal(t, "3,500,000,000 VND", payload.Tables[0].Rows[0].Cells["main"].Text)
	})

	t.Run("table filter", func(t *testing.T) {
		filtered := tablerender.New(tablerender.WithTableFilter("assumptions"))
		payload, err := filtered.BuildPayload(tpl, nil)
		require.NoError(t, err)

		require.Len(t, payload.Tables, 1)
		assert.Equal(t, "assumptions", payload.Tables[0].ID)
	})
}

func TestRendererLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(scenarioYAML), 0o644))

	r := tablerender.New()

	t.Run("round trip through disk", func(t *testing.T) {
		payload, err := r.Render(path, map[string]any{"rate": 0.1})
		require.NoError(t, err)
		interest := payload.Values["interest_year1"].(float64)
		assert.InDelta(t, 200_000_000, interest, 1e-3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := r.LoadFile(filepath.Join(dir, "absent.yaml"))
		require.Error(t, err)
	})

	t.Run("invalid template reports every problem", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(bad, []byte("fields:\n  - id: a\n  - id: a\n"), 0o644))
		_, err := r.LoadFile(bad)
		require.Error(t, err)
	})
}

func TestRendererCustomEvaluator(t *testing.T) {
	fixed := func(formula string, vars map[string]any) (any, error) {
		return 1.0, nil
	}
	r := tablerender.New(tablerender.WithEvaluator(fixed))

	tpl := &domain.Template{
		Fields: []domain.Field{
			{ID: "x", Source: domain.SourceCalc, Formula: "anything"},
		},
	}
	payload, err := r.BuildPayload(tpl, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, payload.Values["x"])
}

func TestRendererPassBudget(t *testing.T) {
	tpl := &domain.Template{
		Fields: []domain.Field{
			{ID: "a", Source: domain.SourceCalc, Formula: "b + 1", Default: 0},
			{ID: "b", Source: domain.SourceCalc, Formula: "a + 1", Default: 0},
		},
	}

	r := tablerender.New(tablerender.WithPassBudget(2))
	payload, err := r.BuildPayload(tpl, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, payload.Passes)
	assert.False(t, payload.Converged)
}
