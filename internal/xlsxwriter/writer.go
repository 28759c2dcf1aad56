// =============================================================================
// Holded Stock Report - XLSX Writer
// =============================================================================
//
// This module encodes the assembled report and the pallet estimate into
// xlsx workbooks. Two workbooks are produced per run:
//
//   1. Stock workbook: the full report table - section headers on a grey
//      bold fill, subtotal and grand-total rows bold, numeric cells typed
//      so spreadsheet consumers can keep computing on them.
//   2. Pallet workbook: the one-row shipping summary.
//
// The writer renders exactly what the assembler produced; it never
// recomputes values. Unknown numeric cells are written as blanks.
//
// =============================================================================

package xlsxwriter

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmfernandez-ops/holded-stock-report/internal/report"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// Sheet names of the generated workbooks.
const (
	StockSheet  = "Stock"
	PalletSheet = "Pallets"
)

// =============================================================================
// STOCK WORKBOOK
// =============================================================================

// WriteStockReport writes the report table to an xlsx workbook.
//
// PARAMETERS:
//   - rep: The assembled (and validated) report.
//   - path: The output file path.
//
// An empty report still produces a workbook with the full column header
// row, so downstream consumers never see a schema-less file.
func WriteStockReport(rep report.Report, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", StockSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	columns := report.Columns()
	for col, name := range columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(StockSheet, cell, name); err != nil {
			return err
		}
	}

	for i, row := range rep.Rows {
		if err := writeRow(f, row, i+2); err != nil {
			return err
		}
	}

	if err := applyStockStyles(f, rep, len(columns)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// writeRow writes one report row at the given 1-based sheet row.
func writeRow(f *excelize.File, row report.Row, sheetRow int) error {
	for col, value := range row.Cells() {
		cell, err := excelize.CoordinatesToCellName(col+1, sheetRow)
		if err != nil {
			return err
		}

		switch v := value.(type) {
		case string:
			if v == "" {
				continue
			}
			if err := f.SetCellValue(StockSheet, cell, v); err != nil {
				return err
			}
		case types.Number:
			if !v.Valid {
				continue
			}
			if err := f.SetCellValue(StockSheet, cell, v.Decimal.InexactFloat64()); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unsupported cell type %T", value)
		}
	}
	return nil
}

// colFormats maps 1-based column numbers to their display number format:
// unit counts as integers, weights at 2-3 decimals, volumes at 5.
var colFormats = map[int]string{
	3:  "0",
	4:  "0.0",
	5:  "0.000",
	6:  "0.000",
	7:  "0.00",
	8:  "0.00000",
	9:  "0.00000",
	10: "0",
	12: "0",
	13: "0",
	14: "0",
}

// applyStockStyles applies the column number formats and the row styles:
// bold header row, grey bold section rows, bold subtotal and total rows.
func applyStockStyles(f *excelize.File, rep report.Report, columns int) error {
	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	section, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	// One plain and one bold style per distinct number format. The bold
	// variants keep the formats alive on subtotal and total rows, where a
	// whole-row style would otherwise replace the column style.
	plainFmt := make(map[string]int)
	boldFmt := make(map[string]int)
	for col, format := range colFormats {
		if _, ok := plainFmt[format]; !ok {
			plain, err := f.NewStyle(&excelize.Style{CustomNumFmt: &format})
			if err != nil {
				return err
			}
			plainFmt[format] = plain

			emph, err := f.NewStyle(&excelize.Style{
				Font:         &excelize.Font{Bold: true},
				CustomNumFmt: &format,
			})
			if err != nil {
				return err
			}
			boldFmt[format] = emph
		}

		name, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		if err := f.SetColStyle(StockSheet, name, plainFmt[format]); err != nil {
			return err
		}
	}

	styleRow := func(sheetRow, styleID int) error {
		first, err := excelize.CoordinatesToCellName(1, sheetRow)
		if err != nil {
			return err
		}
		last, err := excelize.CoordinatesToCellName(columns, sheetRow)
		if err != nil {
			return err
		}
		return f.SetCellStyle(StockSheet, first, last, styleID)
	}

	// Subtotal and total rows are styled cell by cell so the numeric
	// columns keep their formats under the bold emphasis.
	styleBoldRow := func(sheetRow int) error {
		for col := 1; col <= columns; col++ {
			cell, err := excelize.CoordinatesToCellName(col, sheetRow)
			if err != nil {
				return err
			}
			styleID := bold
			if format, ok := colFormats[col]; ok {
				styleID = boldFmt[format]
			}
			if err := f.SetCellStyle(StockSheet, cell, cell, styleID); err != nil {
				return err
			}
		}
		return nil
	}

	if err := styleRow(1, bold); err != nil {
		return err
	}

	for i, row := range rep.Rows {
		switch row.Kind {
		case report.KindHeader:
			if err := styleRow(i+2, section); err != nil {
				return err
			}
		case report.KindSubtotal, report.KindTotal:
			if err := styleBoldRow(i + 2); err != nil {
				return err
			}
		}
	}

	// Product and the subtotal columns carry the widest content.
	if err := f.SetColWidth(StockSheet, "B", "B", 42); err != nil {
		return err
	}
	return f.SetColWidth(StockSheet, "C", "N", 14)
}

// =============================================================================
// PALLET WORKBOOK
// =============================================================================

// palletColumns is the published column order of the pallet summary.
var palletColumns = []string{
	"Total Units",
	"Total Weight (kg)",
	"Total Volume (m³)",
	"Pallets by Weight",
	"Pallets by Volume",
	"Pallets Needed",
}

// WritePalletSummary writes the one-row pallet estimate to an xlsx
// workbook. Weight displays at 2 decimals and volume at 3, with their
// units spelled out, matching the published summary format.
func WritePalletSummary(est report.PalletEstimate, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", PalletSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	values := []any{
		est.TotalUnits.IntPart(),
		fmt.Sprintf("%s kg", est.TotalWeight.StringFixed(2)),
		fmt.Sprintf("%s m³", est.TotalVolume.StringFixed(3)),
		est.PalletsByWeight.InexactFloat64(),
		est.PalletsByVolume.InexactFloat64(),
		est.PalletsNeeded,
	}

	for col, name := range palletColumns {
		head, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(PalletSheet, head, name); err != nil {
			return err
		}

		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(PalletSheet, cell, values[col]); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(PalletSheet, "A1", "F1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(PalletSheet, "A", "F", 18); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
