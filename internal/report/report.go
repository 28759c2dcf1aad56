// =============================================================================
// Holded Stock Report - Report Structure
// =============================================================================
//
// This file defines the tabular report structure shared by the aggregator,
// the assembler, the validator and the xlsx writer: the fixed published
// column schema and the typed rows (section header, member line, subtotal,
// grand total).
//
// COLUMN SCHEMA:
//   The column order is fixed and published; collaborators (export,
//   presentation) rely on it. An empty report still carries the full
//   column set so it can be rendered without schema errors.
//
// =============================================================================

package report

import (
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// =============================================================================
// COLUMN SCHEMA
// =============================================================================

// Column names in published order.
const (
	ColSKU            = "SKU"
	ColProduct        = "Product"
	ColUnits          = "Units"
	ColSubtotalUnits  = "Subtotal > Units"
	ColGrossWeight    = "Gross Weight (kg)"
	ColTotalWeight    = "Total Weight (kg)"
	ColSubtotalWeight = "Subtotal > Total Weight (kg)"
	ColVolume         = "Volume (m³)"
	ColSubtotalVolume = "Subtotal > Volume (m³)"
	ColStockReal      = "Stock Real"
	ColInsufficient   = "Insuficiente?"
	ColFalta          = "Falta"
	ColSubtotalFalta  = "Subtotal > Falta"
	ColExtra          = "Extra"
)

// Columns returns the fixed column order of the report table.
func Columns() []string {
	return []string{
		ColSKU, ColProduct, ColUnits, ColSubtotalUnits,
		ColGrossWeight, ColTotalWeight, ColSubtotalWeight,
		ColVolume, ColSubtotalVolume,
		ColStockReal, ColInsufficient, ColFalta, ColSubtotalFalta, ColExtra,
	}
}

// =============================================================================
// ROWS
// =============================================================================

// RowKind distinguishes the pseudo-rows from the member lines.
type RowKind int

const (
	// KindLine is a member row carrying one resolved order line.
	KindLine RowKind = iota

	// KindHeader is the section header pseudo-row opening a group.
	KindHeader

	// KindSubtotal is the per-group subtotal pseudo-row.
	KindSubtotal

	// KindTotal is the single grand-total pseudo-row closing the report.
	KindTotal
)

// Row is one row of the report table. Numeric cells are optional Numbers:
// unknown renders blank. Pseudo-rows populate only their designated
// columns and leave the rest unknown/empty.
type Row struct {
	Kind RowKind

	SKU     string
	Product string

	Units          types.Number
	SubtotalUnits  types.Number
	GrossWeight    types.Number
	TotalWeight    types.Number
	SubtotalWeight types.Number
	Volume         types.Number
	SubtotalVolume types.Number
	Stock          types.Number
	Insufficient   string
	Falta          types.Number
	SubtotalFalta  types.Number
	Extra          types.Number
}

// Cells returns the row's values in published column order. Text cells are
// strings, numeric cells are types.Number (blank when unknown). Keeping
// this next to Columns() pins the two orders together.
func (r Row) Cells() []any {
	return []any{
		r.SKU, r.Product, r.Units, r.SubtotalUnits,
		r.GrossWeight, r.TotalWeight, r.SubtotalWeight,
		r.Volume, r.SubtotalVolume,
		r.Stock, r.Insufficient, r.Falta, r.SubtotalFalta, r.Extra,
	}
}

// Report is the ordered tabular structure handed to validation and export.
type Report struct {
	// Rows holds the per-group blocks (header, members, subtotal) followed
	// by the grand-total row. Empty when no line resolved; the column
	// schema is carried by Columns() regardless.
	Rows []Row
}
