package spreadsheet

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/tealeg/xlsx"

	"github.com/YelzhanWeb/daily-orders/internal/app/export"
)

const SheetName = "Daily Orders"

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

// WriteSheet writes the title, header, one row per item and the totals
// footer. Whole-number cells are stored as numbers.
func (w *Writer) WriteSheet(table export.SummaryTable) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	titleRow := sheet.AddRow()
	titleCell := titleRow.AddCell()
	titleCell.SetValue(table.Title)
	titleCell.GetStyle().Font.Bold = true

	headerRow := sheet.AddRow()
	for _, h := range table.Columns {
		cell := headerRow.AddCell()
		cell.SetValue(h)
		cell.GetStyle().Font.Bold = true
	}

	for _, cells := range table.Rows {
		addCells(sheet.AddRow(), cells)
	}

	if len(table.Footer) > 0 {
		footer := sheet.AddRow()
		addCells(footer, table.Footer)
		for _, cell := range footer.Cells {
			cell.GetStyle().Font.Bold = true
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func addCells(row *xlsx.Row, cells []string) {
	for _, v := range cells {
		cell := row.AddCell()
		if n, err := strconv.Atoi(v); err == nil {
			cell.SetInt(n)
			continue
		}
		cell.SetValue(v)
	}
}
