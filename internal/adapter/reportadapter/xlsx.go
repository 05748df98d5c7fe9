package reportadapter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Validation"

type xlsxWriter struct{}

func (x *xlsxWriter) Ext() string {
	return "xlsx"
}

func (x *xlsxWriter) Write(w io.Writer, doc *Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("cannot rename sheet: %w", err)
	}

	for i, row := range doc.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("cannot get cell name: %w", err)
		}

		values := make([]any, len(row))
		for j := range row {
			values[j] = row[j]
		}

		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return fmt.Errorf("cannot write row %d: %w", i+1, err)
		}
	}

	if len(doc.Rows) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("cannot create header style: %w", err)
		}

		if err := f.SetRowStyle(sheetName, 1, 1, style); err != nil {
			return fmt.Errorf("cannot set header style: %w", err)
		}

		if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("cannot freeze header: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("cannot write workbook: %w", err)
	}

	return nil
}
