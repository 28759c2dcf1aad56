// =============================================================================
// Holded Stock Report - Report Validation
// =============================================================================
//
// This module re-checks the assembled report against its published
// invariants before it is handed to export. The checks recompute what the
// aggregator and assembler claim:
//
//   1. Every row carries the full fixed column set.
//   2. Rows form well-formed blocks: section header, member rows, subtotal,
//      with a single grand-total row closing a non-empty report.
//   3. Each subtotal equals the null-safe sum of its block's member rows
//      (at the published rounding).
//   4. The grand total equals the sum of the group subtotals.
//   5. Shortage columns are consistent: the insufficient flag appears iff
//      the line has a SKU, a known stock, and stock short of units, and
//      Falta/Extra match exactly.
//
// A violation is a programming error, not bad input: a report that fails
// its own invariants must never be exported.
//
// =============================================================================

package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmfernandez-ops/holded-stock-report/internal/report"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// =============================================================================
// VALIDATION ERROR
// =============================================================================

// ValidationError describes a single invariant violation in the report.
type ValidationError struct {
	// Row is the 0-based row index the violation was found at
	// (-1 for report-level violations).
	Row int

	// Column is the published column name involved, when applicable.
	Column string

	// Message describes the violation.
	Message string
}

func (e ValidationError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("report: %s", e.Message)
	}
	if e.Column == "" {
		return fmt.Sprintf("row %d: %s", e.Row, e.Message)
	}
	return fmt.Sprintf("row %d, column %q: %s", e.Row, e.Column, e.Message)
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the assembled report against its published invariants.
//
// RETURNS:
//   - All violations found; empty for a valid report. An empty report
//     (zero rows) is valid by definition.
func Validate(rep report.Report) []ValidationError {
	var errs []ValidationError

	columns := len(report.Columns())
	for i, row := range rep.Rows {
		if len(row.Cells()) != columns {
			errs = append(errs, ValidationError{
				Row:     i,
				Message: fmt.Sprintf("expected %d cells, got %d", columns, len(row.Cells())),
			})
		}
	}

	errs = append(errs, validateStructure(rep)...)
	errs = append(errs, validateSums(rep)...)
	errs = append(errs, validateShortage(rep)...)

	return errs
}

// validateStructure checks the block shape of the report rows.
func validateStructure(rep report.Report) []ValidationError {
	var errs []ValidationError

	inBlock := false
	for i, row := range rep.Rows {
		switch row.Kind {
		case report.KindHeader:
			if inBlock {
				errs = append(errs, ValidationError{Row: i, Message: "section header inside an open block"})
			}
			inBlock = true
		case report.KindLine:
			if !inBlock {
				errs = append(errs, ValidationError{Row: i, Message: "member row outside a section block"})
			}
		case report.KindSubtotal:
			if !inBlock {
				errs = append(errs, ValidationError{Row: i, Message: "subtotal row without a section header"})
			}
			inBlock = false
		case report.KindTotal:
			if inBlock {
				errs = append(errs, ValidationError{Row: i, Message: "grand total inside an open block"})
			}
			if i != len(rep.Rows)-1 {
				errs = append(errs, ValidationError{Row: i, Message: "grand total is not the last row"})
			}
		}
	}

	if inBlock {
		errs = append(errs, ValidationError{Row: -1, Message: "report ends inside an open section block"})
	}
	if len(rep.Rows) > 0 && rep.Rows[len(rep.Rows)-1].Kind != report.KindTotal {
		errs = append(errs, ValidationError{Row: -1, Message: "non-empty report missing grand-total row"})
	}

	return errs
}

// validateSums recomputes every subtotal and the grand total.
func validateSums(rep report.Report) []ValidationError {
	var errs []ValidationError

	var units, weight, volume, falta []types.Number
	var grandUnits, grandWeight, grandVolume, grandFalta []types.Number

	check := func(i int, column string, got types.Number, want types.Number) {
		if !got.Valid {
			errs = append(errs, ValidationError{Row: i, Column: column, Message: "subtotal cell must never be blank"})
			return
		}
		if !got.Decimal.Equal(want.Decimal) {
			errs = append(errs, ValidationError{
				Row:     i,
				Column:  column,
				Message: fmt.Sprintf("sum mismatch: row says %s, members sum to %s", got.Decimal, want.Decimal),
			})
		}
	}

	for i, row := range rep.Rows {
		switch row.Kind {
		case report.KindHeader:
			units, weight, volume, falta = nil, nil, nil, nil

		case report.KindLine:
			units = append(units, row.Units)
			weight = append(weight, row.TotalWeight)
			volume = append(volume, row.Volume)
			falta = append(falta, row.Falta)

		case report.KindSubtotal:
			check(i, report.ColSubtotalUnits, row.SubtotalUnits, types.N(report.SumOrZero(units).Round(1)))
			check(i, report.ColSubtotalWeight, row.SubtotalWeight, types.N(report.SumOrZero(weight).Round(2)))
			check(i, report.ColSubtotalVolume, row.SubtotalVolume, types.N(report.SumOrZero(volume).Round(5)))
			check(i, report.ColSubtotalFalta, row.SubtotalFalta, types.N(report.SumOrZero(falta).Round(0)))

			grandUnits = append(grandUnits, row.SubtotalUnits)
			grandWeight = append(grandWeight, row.SubtotalWeight)
			grandVolume = append(grandVolume, row.SubtotalVolume)
			grandFalta = append(grandFalta, row.SubtotalFalta)

		case report.KindTotal:
			check(i, report.ColSubtotalUnits, row.SubtotalUnits, types.N(report.SumOrZero(grandUnits)))
			check(i, report.ColSubtotalWeight, row.SubtotalWeight, types.N(report.SumOrZero(grandWeight)))
			check(i, report.ColSubtotalVolume, row.SubtotalVolume, types.N(report.SumOrZero(grandVolume)))
			check(i, report.ColSubtotalFalta, row.SubtotalFalta, types.N(report.SumOrZero(grandFalta)))
		}
	}

	return errs
}

// validateShortage checks the shortage columns of every member row.
func validateShortage(rep report.Report) []ValidationError {
	var errs []ValidationError

	for i, row := range rep.Rows {
		if row.Kind != report.KindLine {
			continue
		}

		resolvable := row.SKU != "" && row.Stock.Valid
		short := resolvable && row.Stock.Decimal.LessThan(row.Units.Decimal)

		if short != (row.Insufficient != "") {
			errs = append(errs, ValidationError{
				Row:     i,
				Column:  report.ColInsufficient,
				Message: fmt.Sprintf("insufficient flag %q does not match stock/units", row.Insufficient),
			})
		}

		wantFalta := types.N(decimal.Zero)
		if short {
			wantFalta = types.N(row.Units.Decimal.Sub(row.Stock.Decimal))
		}
		if !row.Falta.Valid || !row.Falta.Decimal.Equal(wantFalta.Decimal) {
			errs = append(errs, ValidationError{
				Row:     i,
				Column:  report.ColFalta,
				Message: fmt.Sprintf("falta %s does not match units-stock", row.Falta),
			})
		}
	}

	return errs
}
