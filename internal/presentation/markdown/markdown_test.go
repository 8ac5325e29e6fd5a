package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

func testPayload() *domain.Payload {
	return &domain.Payload{
		Title:    "Phương án vay",
		Currency: "VND",
		Inputs:   map[string]string{"Số tiền vay": "2,000,000,000 VND"},
		Tables: []domain.ResolvedTable{
			{
				ID:    "summary",
				Title: "Tổng quan",
				ColDefs: []domain.ColDef{
					{Key: "main", Title: "Giá trị", Subtitle: "năm đầu"},
				},
				Rows: []domain.ResolvedRow{
					{
						ID:    "amount",
						Label: "Số tiền vay",
						Cells: map[string]domain.ResolvedCell{
							"main": {Text: "2,000,000,000 VND"},
						},
						Children: []domain.ResolvedRow{
							{
								ID:    "rate",
								Label: "Lãi suất",
								Cells: map[string]domain.ResolvedCell{
									"main": {Text: "0.08%/year"},
								},
							},
						},
					},
					{
						ID:    "total",
						Label: "Tổng",
						Type:  "total",
						Cells: map[string]domain.ResolvedCell{
							"main": {Text: "160,000,000 VND"},
						},
					},
				},
				Note: "Số liệu minh họa.",
			},
		},
		Notes:     []string{"Ghi chú chung."},
		Passes:    2,
		Converged: true,
	}
}

func TestRender(t *testing.T) {
	out := Render(testPayload())

	assert.Contains(t, out, "# Phương án vay")
	assert.Contains(t, out, "**VND**")
	assert.Contains(t, out, "| Số tiền vay | 2,000,000,000 VND |")
	assert.Contains(t, out, "Giá trị (năm đầu)")
	assert.Contains(t, out, "**Tổng**")
	assert.Contains(t, out, "**160,000,000 VND**")
	assert.Contains(t, out, "_Số liệu minh họa._")
	assert.Contains(t, out, "- Ghi chú chung.")

	// Nested rows indent inside the label column.
	assert.Contains(t, out, "&nbsp;&nbsp;Lãi suất")
}

func TestRenderEscapesPipes(t *testing.T) {
	payload := &domain.Payload{
		Title: "T",
		Tables: []domain.ResolvedTable{
			{
				ID: "t",
				Rows: []domain.ResolvedRow{
					{ID: "r", Label: "a|b", Cells: map[string]domain.ResolvedCell{
						"main": {Text: "x|y"},
					}},
				},
			},
		},
	}
	out := Render(payload)
	assert.Contains(t, out, `a\|b`)
	assert.Contains(t, out, `x\|y`)
}

func TestRenderNonConvergenceNotice(t *testing.T) {
	payload := testPayload()
	payload.Converged = false
	payload.Passes = 8

	out := Render(payload)
	assert.True(t, strings.Contains(out, "8"), "pass count should be visible")
	assert.Contains(t, out, "chưa hội tụ")
}

func TestStatusLine(t *testing.T) {
	converged := testPayload()
	assert.Contains(t, StatusLine(converged), "2 pass(es)")

	diverged := testPayload()
	diverged.Converged = false
	diverged.Passes = 8
	assert.Contains(t, StatusLine(diverged), "did not converge")
}
