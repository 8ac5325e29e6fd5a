// Package markdown turns resolved payloads into markdown documents and
// styled terminal output for the preview command.
package markdown

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Render produces a markdown document for one payload. Nested rows are
// indented inside the label column; markdown tables have no row nesting.
func Render(payload *domain.Payload) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", payload.Title)
	if payload.Currency != "" {
		fmt.Fprintf(&sb, "Đơn vị: **%s**\n\n", payload.Currency)
	}

	if len(payload.Inputs) > 0 {
		sb.WriteString("## Thông số đầu vào\n\n")
		sb.WriteString("| | |\n|---|---|\n")
		for _, key := range sortedKeys(payload.Inputs) {
			fmt.Fprintf(&sb, "| %s | %s |\n", escapePipes(key), escapePipes(payload.Inputs[key]))
		}
		sb.WriteString("\n")
	}

	for _, table := range payload.Tables {
		writeTable(&sb, table)
	}

	if len(payload.Notes) > 0 {
		sb.WriteString("## Ghi chú\n\n")
		for _, note := range payload.Notes {
			fmt.Fprintf(&sb, "- %s\n", note)
		}
		sb.WriteString("\n")
	}

	if !payload.Converged {
		fmt.Fprintf(&sb, "> Giá trị chưa hội tụ sau %d lượt tính.\n", payload.Passes)
	}

	return sb.String()
}

func writeTable(sb *strings.Builder, table domain.ResolvedTable) {
	if table.Title != "" {
		fmt.Fprintf(sb, "## %s\n\n", table.Title)
	}

	cols := table.ColDefs
	if len(cols) == 0 {
		cols = []domain.ColDef{{Key: "main", Title: "Giá trị"}}
	}

	sb.WriteString("| Hạng mục |")
	for _, col := range cols {
		title := col.Title
		if col.Subtitle != "" {
			title = fmt.Sprintf("%s (%s)", title, col.Subtitle)
		}
		fmt.Fprintf(sb, " %s |", escapePipes(title))
	}
	sb.WriteString("\n|---|")
	for range cols {
		sb.WriteString("---|")
	}
	sb.WriteString("\n")

	for _, row := range table.Rows {
		writeRow(sb, row, cols, 0)
	}
	sb.WriteString("\n")

	if table.Note != "" {
		fmt.Fprintf(sb, "_%s_\n\n", table.Note)
	}
}

func writeRow(sb *strings.Builder, row domain.ResolvedRow, cols []domain.ColDef, depth int) {
	label := row.Label
	if row.ExtraLabel != "" {
		label = fmt.Sprintf("%s (%s)", label, row.ExtraLabel)
	}
	if row.Type == "total" {
		label = fmt.Sprintf("**%s**", label)
	}
	indent := strings.Repeat("&nbsp;&nbsp;", depth)

	fmt.Fprintf(sb, "| %s%s |", indent, escapePipes(label))
	for _, col := range cols {
		cell := row.Cells[col.Key].Text
		if row.Type == "total" && cell != "" {
			cell = fmt.Sprintf("**%s**", cell)
		}
		fmt.Fprintf(sb, " %s |", escapePipes(cell))
	}
	sb.WriteString("\n")

	for _, child := range row.Children {
		writeRow(sb, child, cols, depth+1)
	}
}

// NewTerminalRenderer returns a function that styles markdown for the
// terminal using glamour, auto-detecting light or dark backgrounds.
func NewTerminalRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
