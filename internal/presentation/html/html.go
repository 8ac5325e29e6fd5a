// Package html renders resolved payloads to a self-contained HTML preview
// document. The output embeds its own stylesheet so it can be opened from
// disk or served directly.
package html

import (
	"encoding/json"
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

// Render produces a complete HTML document for one payload.
func Render(payload *domain.Payload) string {
	return Document([]*domain.Payload{payload})
}

// Document renders several payloads into a single preview page, one
// section block per payload.
func Document(payloads []*domain.Payload) string {
	var body strings.Builder
	for _, p := range payloads {
		writePayload(&body, p)
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html lang=\"vi\">\n<head>\n")
	sb.WriteString("  <meta charset=\"utf-8\" />\n")
	sb.WriteString("  <title>Render Preview</title>\n")
	sb.WriteString("  <style>\n")
	sb.WriteString(stylesheet)
	sb.WriteString("  </style>\n</head>\n<body>\n")
	sb.WriteString(body.String())
	sb.WriteString("\n</body>\n</html>\n")
	return sb.String()
}

func writePayload(sb *strings.Builder, p *domain.Payload) {
	sb.WriteString("<header><h1>")
	sb.WriteString(html.EscapeString(p.Title))
	sb.WriteString("</h1><div class='currency'>Đơn vị: ")
	sb.WriteString(html.EscapeString(p.Currency))
	sb.WriteString("</div></header>")

	writeInputs(sb, p.Inputs)
	writeValues(sb, p.Values)

	for _, table := range p.Tables {
		writeTable(sb, table)
	}

	writeNotes(sb, p.Notes)
}

func writeInputs(sb *strings.Builder, inputs map[string]string) {
	if len(inputs) == 0 {
		return
	}
	sb.WriteString("<section class='inputs'><h2>Thông số đầu vào</h2>")
	sb.WriteString("<table class='simple-table'><tbody>")
	for _, key := range sortedKeys(inputs) {
		sb.WriteString("<tr><th>")
		sb.WriteString(html.EscapeString(key))
		sb.WriteString("</th><td>")
		sb.WriteString(html.EscapeString(inputs[key]))
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</tbody></table></section>")
}

// writeValues emits the raw field snapshot as a collapsed details block,
// useful when checking why a cell rendered the way it did.
func writeValues(sb *strings.Builder, values map[string]any) {
	if len(values) == 0 {
		return
	}
	sb.WriteString("<details class='data-dump'><summary>Dữ liệu thô</summary>")
	sb.WriteString("<table class='data-table'><thead><tr><th>Field</th><th>Value</th></tr></thead><tbody>")
	for _, id := range sortedKeys(values) {
		encoded, err := json.Marshal(values[id])
		if err != nil {
			encoded = []byte(fmt.Sprintf("%v", values[id]))
		}
		sb.WriteString("<tr><th>")
		sb.WriteString(html.EscapeString(id))
		sb.WriteString("</th><td>")
		sb.WriteString(html.EscapeString(string(encoded)))
		sb.WriteString("</td></tr>")
	}
	sb.WriteString("</tbody></table></details>")
}

func writeTable(sb *strings.Builder, table domain.ResolvedTable) {
	sb.WriteString("<section class='table-block'><h2>")
	sb.WriteString(html.EscapeString(table.Title))
	sb.WriteString("</h2><table class='data-table'>")
	writeTableHeaders(sb, table.ColDefs)
	sb.WriteString("<tbody>")
	for _, row := range table.Rows {
		writeRow(sb, row, table.ColDefs, 0)
	}
	sb.WriteString("</tbody></table>")
	if table.Note != "" {
		sb.WriteString("<div class='table-note'>")
		sb.WriteString(html.EscapeString(table.Note))
		sb.WriteString("</div>")
	}
	sb.WriteString("</section>")
}

func writeTableHeaders(sb *strings.Builder, colDefs []domain.ColDef) {
	if len(colDefs) == 0 {
		sb.WriteString("<thead><tr><th class='col-label'>Hạng mục</th><th>Giá trị</th></tr></thead>")
		return
	}
	sb.WriteString("<thead><tr><th class='col-label'>Hạng mục</th>")
	for _, col := range colDefs {
		sb.WriteString("<th><div>")
		sb.WriteString(html.EscapeString(col.Title))
		if col.Subtitle != "" {
			sb.WriteString("<div class='subtitle'>")
			sb.WriteString(html.EscapeString(col.Subtitle))
			sb.WriteString("</div>")
		}
		sb.WriteString("</div></th>")
	}
	sb.WriteString("</tr></thead>")
}

func writeRow(sb *strings.Builder, row domain.ResolvedRow, colDefs []domain.ColDef, depth int) {
	classes := []string{"row"}
	switch row.Type {
	case "label":
		classes = append(classes, "row-label")
	case "total":
		classes = append(classes, "row-total")
	}

	fmt.Fprintf(sb, "<tr class=\"%s\">", strings.Join(classes, " "))
	fmt.Fprintf(sb, "<th style='padding-left:%dpx'>", depth*18)
	sb.WriteString(html.EscapeString(row.Label))
	if row.ExtraLabel != "" {
		sb.WriteString(" <span class='extra-label'>")
		sb.WriteString(html.EscapeString(row.ExtraLabel))
		sb.WriteString("</span>")
	}
	sb.WriteString("</th>")

	if len(colDefs) > 0 {
		for _, col := range colDefs {
			writeCell(sb, row.Cells[col.Key])
		}
	} else {
		writeCell(sb, row.Cells["main"])
	}
	sb.WriteString("</tr>")

	for _, child := range row.Children {
		writeRow(sb, child, colDefs, depth+1)
	}
}

func writeCell(sb *strings.Builder, cell domain.ResolvedCell) {
	classes := []string{"value-cell"}
	if !cell.Editable {
		classes = append(classes, "readonly")
	}
	fmt.Fprintf(sb, "<td class=\"%s\">", strings.Join(classes, " "))
	sb.WriteString(html.EscapeString(cell.Text))
	sb.WriteString("</td>")
}

func writeNotes(sb *strings.Builder, notes []string) {
	if len(notes) == 0 {
		return
	}
	sb.WriteString("<section class='notes'><h2>Ghi chú</h2><ul>")
	for _, note := range notes {
		sb.WriteString("<li>")
		sb.WriteString(html.EscapeString(note))
		sb.WriteString("</li>")
	}
	sb.WriteString("</ul></section>")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

const stylesheet = `
    body {
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", sans-serif;
      margin: 2rem;
      background: #f6f8fa;
      color: #1f2933;
    }
    header { margin-bottom: 2rem; }
    header h1 { margin: 0; font-size: 2rem; color: #0f4c82; }
    header .currency { margin-top: 0.25rem; color: #52606d; font-size: 0.95rem; }
    section {
      background: #fff;
      border-radius: 12px;
      padding: 1.5rem;
      margin-bottom: 1.5rem;
      box-shadow: 0 2px 4px rgba(15, 76, 130, 0.08);
    }
    section h2 { margin-top: 0; color: #0f4c82; font-size: 1.25rem; }
    table { width: 100%; border-collapse: collapse; }
    th, td {
      padding: 0.55rem 0.75rem;
      border-bottom: 1px solid #e4eff8;
      text-align: left;
      vertical-align: top;
    }
    th.col-label { width: 35%; }
    .row-label th { background: #f0f6fc; font-weight: 600; }
    .row-total { font-weight: 700; background: #e1f6ff; }
    .value-cell.readonly { color: #425466; }
    .extra-label {
      display: inline-block;
      margin-left: 0.35rem;
      padding: 0.1rem 0.4rem;
      border-radius: 999px;
      background: #e1f6ff;
      color: #0f4c82;
      font-size: 0.8rem;
    }
    .subtitle { display: block; font-size: 0.8rem; color: #52606d; margin-top: 0.15rem; }
    .table-note { margin-top: 0.5rem; font-style: italic; color: #52606d; }
    .notes ul { margin: 0; padding-left: 1.25rem; }
    .notes li { margin-bottom: 0.5rem; }
    details.data-dump { margin-top: 1rem; }
    details.data-dump summary { cursor: pointer; font-weight: 600; }
    .inputs table th { width: 40%; color: #0f4c82; }
`
