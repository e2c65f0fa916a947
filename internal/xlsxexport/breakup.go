// Package xlsxexport renders HSN-wise tax breakups as Excel workbooks.
package xlsxexport

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstkit/internal/csvexport"
	"gstkit/internal/gst"
)

const SheetName = "HSN Breakup"

// WriteBreakup writes a one-sheet workbook with the breakup table to w.
// Taxable amounts are numeric cells; tax cells use the "(rate%) amount" text.
func WriteBreakup(w io.Writer, b *gst.HSNBreakup) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	moneyFmt := "#,##0.00"
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &moneyFmt})
	if err != nil {
		return fmt.Errorf("creating money style: %w", err)
	}

	keys := b.AllTaxKeys()
	header := gst.BreakupHeader(keys)
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	_ = f.SetCellStyle(SheetName, "A1", lastCol+"1", headerStyle)
	_ = f.SetColWidth(SheetName, "A", lastCol, 18)

	for i, code := range b.Codes {
		row := i + 2
		cells := make([]interface{}, 0, len(header))
		cells = append(cells, code, b.Taxable[code])
		for _, k := range keys {
			if d, ok := b.Tax[code][k]; ok {
				cells = append(cells, csvexport.FormatTaxCell(d))
			} else {
				cells = append(cells, "")
			}
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SheetName, start, &cells); err != nil {
			return fmt.Errorf("writing row %d: %w", row, err)
		}
		taxable, _ := excelize.CoordinatesToCellName(2, row)
		_ = f.SetCellStyle(SheetName, taxable, taxable, moneyStyle)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
