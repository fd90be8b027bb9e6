package domain

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayRow is a catalog item enriched with its current quantity
type DisplayRow struct {
	MenuItem
	Quantity int `json:"quantity"`
	Total    int `json:"total"`
}

// Totals aggregates the whole order
type Totals struct {
	Items  int `json:"total_items"`
	Amount int `json:"total_amount"`
}

// Rows builds one row per catalog item, in catalog order.
func Rows(catalog *Catalog, counts map[string]int) []DisplayRow {
	items := catalog.Items()
	rows := make([]DisplayRow, len(items))
	for i, item := range items {
		qty := counts[item.ID]
		rows[i] = DisplayRow{
			MenuItem: item,
			Quantity: qty,
			Total:    qty * item.Price,
		}
	}
	return rows
}

// FilterRows keeps rows whose name contains query, ignoring case. A blank
// query returns rows unchanged.
func FilterRows(rows []DisplayRow, query string) []DisplayRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}

	filtered := make([]DisplayRow, 0, len(rows))
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), q) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// ComputeTotals must be given the unfiltered rows.
func ComputeTotals(rows []DisplayRow) Totals {
	var t Totals
	for _, row := range rows {
		t.Items += row.Quantity
		t.Amount += row.Total
	}
	return t
}

var currencyPrinter = message.NewPrinter(language.MustParse("en-IN"))

// FormatCurrency renders whole rupees the way the counter displays them
func FormatCurrency(amount int) string {
	if amount < 0 {
		return "-₹" + currencyPrinter.Sprintf("%d", -amount)
	}
	return "₹" + currencyPrinter.Sprintf("%d", amount)
}
