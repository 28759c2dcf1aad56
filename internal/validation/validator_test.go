package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez-ops/holded-stock-report/internal/report"
	"github.com/jmfernandez-ops/holded-stock-report/internal/resolver"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

func validReport() report.Report {
	lines := []resolver.ResolvedLine{
		{
			SKU:          "A-1",
			Product:      "Alpha One",
			Units:        decimal.NewFromInt(2),
			TotalWeight:  types.NFromFloat(10),
			Stock:        types.NFromFloat(1),
			Insufficient: true,
			Falta:        decimal.NewFromInt(1),
			Extra:        decimal.Zero,
			Subcategory:  "Alpha",
		},
		{
			SKU:         "B-1",
			Product:     "Beta One",
			Units:       decimal.NewFromInt(5),
			Falta:       decimal.Zero,
			Extra:       decimal.Zero,
			Subcategory: "Beta",
		},
	}
	return report.Assemble(report.GroupLines(lines))
}

func TestValidateAcceptsAssembledReport(t *testing.T) {
	assert.Empty(t, Validate(validReport()))
}

func TestValidateAcceptsEmptyReport(t *testing.T) {
	assert.Empty(t, Validate(report.Report{Rows: []report.Row{}}))
}

func TestValidateCatchesTamperedSubtotal(t *testing.T) {
	rep := validReport()
	for i := range rep.Rows {
		if rep.Rows[i].Kind == report.KindSubtotal {
			rep.Rows[i].SubtotalUnits = types.NFromFloat(999)
			break
		}
	}

	errs := Validate(rep)
	require.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if e.Column == report.ColSubtotalUnits {
			found = true
			assert.Contains(t, e.Error(), "sum mismatch")
		}
	}
	assert.True(t, found, "tampered subtotal must be reported against its column")
}

func TestValidateCatchesBlankSubtotalCell(t *testing.T) {
	rep := validReport()
	for i := range rep.Rows {
		if rep.Rows[i].Kind == report.KindSubtotal {
			rep.Rows[i].SubtotalFalta = types.Number{}
			break
		}
	}

	errs := Validate(rep)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "never be blank")
}

func TestValidateCatchesMissingGrandTotal(t *testing.T) {
	rep := validReport()
	rep.Rows = rep.Rows[:len(rep.Rows)-1]

	errs := Validate(rep)
	require.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if e.Row == -1 {
			found = true
		}
	}
	assert.True(t, found, "missing grand total is a report-level violation")
}

func TestValidateCatchesOrphanMemberRow(t *testing.T) {
	rep := validReport()
	// A member row before any section header.
	rep.Rows = append([]report.Row{{Kind: report.KindLine, Units: types.NFromFloat(1),
		Falta: types.NFromFloat(0), Stock: types.Number{}}}, rep.Rows...)

	errs := Validate(rep)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "outside a section block")
}

func TestValidateCatchesInconsistentShortage(t *testing.T) {
	rep := validReport()
	for i := range rep.Rows {
		if rep.Rows[i].Kind == report.KindLine && rep.Rows[i].Insufficient != "" {
			// Claim sufficiency while stock is short of units.
			rep.Rows[i].Insufficient = ""
			break
		}
	}

	errs := Validate(rep)
	require.NotEmpty(t, errs)

	found := false
	for _, e := range errs {
		if e.Column == report.ColInsufficient {
			found = true
		}
	}
	assert.True(t, found)
}
