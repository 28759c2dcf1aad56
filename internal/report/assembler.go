// =============================================================================
// Holded Stock Report - Report Assembler
// =============================================================================
//
// This module merges the aggregator's groups into the final ordered table:
// one {header, members, subtotal} block per group, closed by a single
// grand-total row summing every group's subtotal columns with the same
// null-safe rule. The assembled Report is the sole artifact handed to
// validation, presentation and export.
//
// =============================================================================

package report

import (
	"github.com/shopspring/decimal"

	"github.com/jmfernandez-ops/holded-stock-report/internal/resolver"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// Section and total row labels, matching the published report layout.
const (
	sectionRule    = "———"
	totalLabel     = "——— TOTAL ———"
	subtotalIndent = "                         "
	subtotalWord   = "Subtotal "
)

// =============================================================================
// ASSEMBLY
// =============================================================================

// Assemble builds the final report table from the aggregated groups.
//
// PARAMETERS:
//   - groups: The groups in first-seen order, as produced by GroupLines.
//
// RETURNS:
//   - The assembled report. Zero groups yield a report with zero rows and
//     the full fixed column schema (via Columns()); no grand-total row is
//     emitted for an empty report.
func Assemble(groups []Group) Report {
	if len(groups) == 0 {
		return Report{Rows: []Row{}}
	}

	var rows []Row
	grand := Subtotal{
		Units:       decimal.Zero,
		TotalWeight: decimal.Zero,
		Volume:      decimal.Zero,
		Falta:       decimal.Zero,
	}

	for _, group := range groups {
		rows = append(rows, headerRow(group.Label))

		for _, line := range group.Lines {
			rows = append(rows, lineRow(line))
		}

		rows = append(rows, subtotalRow(group))

		grand.Units = grand.Units.Add(group.Subtotal.Units)
		grand.TotalWeight = grand.TotalWeight.Add(group.Subtotal.TotalWeight)
		grand.Volume = grand.Volume.Add(group.Subtotal.Volume)
		grand.Falta = grand.Falta.Add(group.Subtotal.Falta)
	}

	rows = append(rows, totalRow(grand))

	return Report{Rows: rows}
}

// headerRow builds the section header pseudo-row for a group. Only the
// Product column carries a value.
func headerRow(label string) Row {
	return Row{
		Kind:    KindHeader,
		Product: sectionRule + " " + label + " " + sectionRule,
	}
}

// lineRow converts one resolved line into its member row.
func lineRow(line resolver.ResolvedLine) Row {
	insufficient := ""
	if line.Insufficient {
		insufficient = resolver.InsufficientLabel
	}

	return Row{
		Kind:         KindLine,
		SKU:          line.SKU,
		Product:      line.Product,
		Units:        types.N(line.Units),
		GrossWeight:  types.N(line.GrossWeight),
		TotalWeight:  line.TotalWeight,
		Volume:       line.Volume,
		Stock:        line.Stock,
		Insufficient: insufficient,
		Falta:        types.N(line.Falta),
		Extra:        types.N(line.Extra),
	}
}

// subtotalRow builds the per-group subtotal pseudo-row. Only the designated
// subtotal columns carry values; every other column stays blank.
func subtotalRow(group Group) Row {
	return Row{
		Kind:           KindSubtotal,
		Product:        subtotalIndent + subtotalWord + group.Label,
		SubtotalUnits:  types.N(group.Subtotal.Units),
		SubtotalWeight: types.N(group.Subtotal.TotalWeight),
		SubtotalVolume: types.N(group.Subtotal.Volume),
		SubtotalFalta:  types.N(group.Subtotal.Falta),
	}
}

// totalRow builds the grand-total pseudo-row from the summed group
// subtotals.
func totalRow(grand Subtotal) Row {
	return Row{
		Kind:           KindTotal,
		Product:        totalLabel,
		SubtotalUnits:  types.N(grand.Units),
		SubtotalWeight: types.N(grand.TotalWeight),
		SubtotalVolume: types.N(grand.Volume),
		SubtotalFalta:  types.N(grand.Falta),
	}
}

// =============================================================================
// MEMBER TOTALS
// =============================================================================

// Totals holds the whole-report member-row sums consumed by the pallet
// estimator.
type Totals struct {
	Units  decimal.Decimal
	Weight decimal.Decimal
	Volume decimal.Decimal
}

// Totals sums Units, Total Weight and Volume over the member rows of the
// report, null-safely. Pseudo-rows do not contribute.
func (r Report) Totals() Totals {
	var units, weight, volume []types.Number
	for _, row := range r.Rows {
		if row.Kind != KindLine {
			continue
		}
		units = append(units, row.Units)
		weight = append(weight, row.TotalWeight)
		volume = append(volume, row.Volume)
	}

	return Totals{
		Units:  SumOrZero(units),
		Weight: SumOrZero(weight),
		Volume: SumOrZero(volume),
	}
}
