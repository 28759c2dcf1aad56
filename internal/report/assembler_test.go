package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez-ops/holded-stock-report/internal/resolver"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// sampleLines builds two groups worth of resolved lines with mixed
// known/unknown quantities.
func sampleLines() []resolver.ResolvedLine {
	a := line("A-1", "Alpha", "2")
	a.TotalWeight = types.N(d("10"))
	a.Volume = types.N(d("0.03"))
	a.Stock = types.N(d("1"))
	a.Insufficient = true
	a.Falta = d("1")

	b := line("B-1", "Beta", "5")
	b.TotalWeight = types.N(d("2.5"))

	c := line("B-2", "Beta", "1")

	return []resolver.ResolvedLine{a, b, c}
}

func TestAssembleBlockStructure(t *testing.T) {
	rep := Assemble(GroupLines(sampleLines()))

	kinds := make([]RowKind, len(rep.Rows))
	for i, row := range rep.Rows {
		kinds[i] = row.Kind
	}
	assert.Equal(t, []RowKind{
		KindHeader, KindLine, KindSubtotal,
		KindHeader, KindLine, KindLine, KindSubtotal,
		KindTotal,
	}, kinds)

	assert.Equal(t, "——— Alpha ———", rep.Rows[0].Product)
	assert.Contains(t, rep.Rows[2].Product, "Subtotal Alpha")
	assert.Equal(t, "——— TOTAL ———", rep.Rows[len(rep.Rows)-1].Product)
}

func TestAssembleMemberRowValues(t *testing.T) {
	rep := Assemble(GroupLines(sampleLines()))

	member := rep.Rows[1] // the Alpha line
	assert.Equal(t, "A-1", member.SKU)
	assert.Equal(t, "2", member.Units.String())
	assert.Equal(t, resolver.InsufficientLabel, member.Insufficient)
	assert.Equal(t, "1", member.Falta.String())
	// Member rows leave the subtotal columns blank.
	assert.False(t, member.SubtotalUnits.Valid)
	assert.False(t, member.SubtotalWeight.Valid)
}

func TestAssembleGrandTotalSumsGroupSubtotals(t *testing.T) {
	rep := Assemble(GroupLines(sampleLines()))
	total := rep.Rows[len(rep.Rows)-1]

	// Units: Alpha 2 + Beta 6; Weight: 10 + 2.5; Falta: 1 + 0.
	assert.Equal(t, "8", total.SubtotalUnits.String())
	assert.Equal(t, "12.5", total.SubtotalWeight.String())
	assert.Equal(t, "0.03", total.SubtotalVolume.String())
	assert.Equal(t, "1", total.SubtotalFalta.String())

	// Grand Subtotal > Falta equals the sum over every group subtotal row.
	var falta []types.Number
	for _, row := range rep.Rows {
		if row.Kind == KindSubtotal {
			falta = append(falta, row.SubtotalFalta)
		}
	}
	assert.Equal(t, total.SubtotalFalta.Decimal.String(), SumOrZero(falta).String())
}

func TestAssembleEmptyReportKeepsSchema(t *testing.T) {
	rep := Assemble(GroupLines(nil))

	require.NotNil(t, rep.Rows)
	assert.Empty(t, rep.Rows, "no data rows and no grand total for an empty report")
	assert.Len(t, Columns(), 14, "full fixed column set must survive an empty report")
}

func TestAssembleIdempotence(t *testing.T) {
	first := Assemble(GroupLines(sampleLines()))
	second := Assemble(GroupLines(sampleLines()))
	assert.Equal(t, first, second, "identical input must yield an identical report")
}

func TestRowCellsMatchColumnCount(t *testing.T) {
	rep := Assemble(GroupLines(sampleLines()))
	for i, row := range rep.Rows {
		assert.Len(t, row.Cells(), len(Columns()), "row %d", i)
	}
}

func TestReportTotals(t *testing.T) {
	rep := Assemble(GroupLines(sampleLines()))
	totals := rep.Totals()

	assert.Equal(t, "8", totals.Units.String())
	assert.Equal(t, "12.5", totals.Weight.String())
	assert.Equal(t, "0.03", totals.Volume.String())
}
