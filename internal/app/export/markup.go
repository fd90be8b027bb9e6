package export

import (
	"bytes"
	"html/template"
	"strconv"

	"github.com/YelzhanWeb/daily-orders/internal/domain"
)

// SummaryTable is the captured table: one body row per catalog item plus a totals footer.
type SummaryTable struct {
	Title   string
	Columns []string
	Rows    [][]string
	Footer  []string
}

// BuildSummaryTable formats rows and totals the way the summary modal shows them.
func BuildSummaryTable(title string, rows []domain.DisplayRow, totals domain.Totals) SummaryTable {
	t := SummaryTable{
		Title:   title,
		Columns: []string{"Item", "Qty", "Rate", "Total"},
		Rows:    make([][]string, 0, len(rows)),
		Footer: []string{
			"Total",
			strconv.Itoa(totals.Items),
			"—",
			domain.FormatCurrency(totals.Amount),
		},
	}

	for _, row := range rows {
		t.Rows = append(t.Rows, []string{
			row.Name,
			strconv.Itoa(row.Quantity),
			domain.FormatCurrency(row.Price),
			domain.FormatCurrency(row.Total),
		})
	}

	return t
}

var summaryTmpl = template.Must(template.New("summary").Parse(
	`<div style="font-size:16px;font-weight:700;margin-bottom:8px">{{.Title}}</div>` +
		`<div style="overflow-x:auto;border:1px solid #e6eefc;border-radius:6px;background:#fff;padding:8px">` +
		`<table style="width:100%;border-collapse:collapse;font-size:13px">` +
		`<thead><tr style="text-align:left;color:#334155;font-size:12px">` +
		`{{range .Columns}}<th style="padding:8px;border-bottom:1px solid #eef2ff">{{.}}</th>{{end}}` +
		`</tr></thead><tbody>` +
		`{{range .Rows}}<tr>{{range .}}<td style="padding:8px;border-bottom:1px solid #f1f5f9">{{.}}</td>{{end}}</tr>{{end}}` +
		`</tbody><tfoot><tr>` +
		`{{range .Footer}}<td style="padding:8px;font-weight:600">{{.}}</td>{{end}}` +
		`</tr></tfoot></table></div>`,
))

// RenderSummaryMarkup returns the HTML of the summary table. It is pure:
// equal tables yield identical markup.
func RenderSummaryMarkup(table SummaryTable) (string, error) {
	var buf bytes.Buffer
	if err := summaryTmpl.Execute(&buf, table); err != nil {
		return "", err
	}
	return buf.String(), nil
}
