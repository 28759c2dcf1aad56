// =============================================================================
// Holded Stock Report - Grouping & Subtotal Aggregator
// =============================================================================
//
// This module groups resolved lines by subcategory and computes the
// per-group subtotals. Group order is the order of first appearance in the
// document (insertion order, not alphabetical); within a group, lines are
// sorted by SKU ascending with a missing SKU treated as the empty string,
// so unidentified lines sort first.
//
// NULL-SAFE SUMS:
//   Every subtotal column uses null-safe semantics: unknown members
//   contribute nothing, and a column whose members are all unknown still
//   sums to a concrete 0, never to a blank. Subtotal rounding follows the
//   published report: Units 1 dp, Total Weight 2 dp, Volume 5 dp,
//   Falta 0 dp.
//
// =============================================================================

package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jmfernandez-ops/holded-stock-report/internal/resolver"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// =============================================================================
// GROUPS
// =============================================================================

// Subtotal holds the per-group sums for the designated subtotal columns.
// All values are concrete: a group with no contributing data sums to zero.
type Subtotal struct {
	Units       decimal.Decimal
	TotalWeight decimal.Decimal
	Volume      decimal.Decimal
	Falta       decimal.Decimal
}

// Group is an ordered run of resolved lines sharing a subcategory, plus
// the subtotal summing its designated columns.
type Group struct {
	// Label is the subcategory the lines share.
	Label string

	// Lines are the member lines, sorted by SKU ascending.
	Lines []resolver.ResolvedLine

	// Subtotal sums Units, Total Weight, Volume and Falta over the lines.
	Subtotal Subtotal
}

// =============================================================================
// GROUPING
// =============================================================================

// GroupLines groups resolved lines by subcategory.
//
// PARAMETERS:
//   - lines: The resolved lines in document order, possibly empty.
//
// RETURNS:
//   - The groups in first-seen order, each with SKU-sorted members and a
//     computed subtotal. Zero lines yield an empty (non-nil) slice; the
//     caller still gets a well-formed, renderable empty report.
func GroupLines(lines []resolver.ResolvedLine) []Group {
	groups := []Group{}
	position := make(map[string]int)

	for _, line := range lines {
		i, seen := position[line.Subcategory]
		if !seen {
			i = len(groups)
			position[line.Subcategory] = i
			groups = append(groups, Group{Label: line.Subcategory})
		}
		groups[i].Lines = append(groups[i].Lines, line)
	}

	for i := range groups {
		group := &groups[i]

		// Stable sort keeps document order among equal SKUs.
		sort.SliceStable(group.Lines, func(a, b int) bool {
			return group.Lines[a].SKU < group.Lines[b].SKU
		})

		group.Subtotal = subtotalOf(group.Lines)
	}

	return groups
}

// subtotalOf computes the null-safe subtotal of a group's member lines.
func subtotalOf(lines []resolver.ResolvedLine) Subtotal {
	var units, weight, volume, falta []types.Number
	for _, line := range lines {
		units = append(units, types.N(line.Units))
		weight = append(weight, line.TotalWeight)
		volume = append(volume, line.Volume)
		falta = append(falta, types.N(line.Falta))
	}

	return Subtotal{
		Units:       SumOrZero(units).Round(1),
		TotalWeight: SumOrZero(weight).Round(2),
		Volume:      SumOrZero(volume).Round(5),
		Falta:       SumOrZero(falta).Round(0),
	}
}

// SumOrZero sums a designated subtotal column null-safely: unknown values
// contribute nothing, and an all-unknown (or empty) column yields a
// concrete zero rather than an unknown result.
func SumOrZero(values []types.Number) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		if v.Valid {
			sum = sum.Add(v.Decimal)
		}
	}
	return sum
}
