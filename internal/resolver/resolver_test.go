package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmfernandez-ops/holded-stock-report/internal/catalog"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// testIndex builds a small catalog with one fully-attributed product.
func testIndex() catalog.Index {
	return catalog.BuildIndex([]types.ProductRecord{
		{
			ID:     "p1",
			Name:   "Box Shelf",
			SKU:    "BS-100",
			Stock:  10.0,
			Weight: 2.5,
			Attributes: []types.Attribute{
				{Name: "Color", Value: "Oak"},
				{Name: "Ancho [cm]", Value: 40.0},
				{Name: "Alto [cm]", Value: "30"},
				{Name: "Fondo [cm]", Value: 25.0},
				{Name: "Product Line", Value: "Shelving"},
			},
		},
		{
			ID:    "p2",
			Name:  "Mystery Item",
			SKU:   "MI-001",
			Stock: "unknown",
			Attributes: []types.Attribute{
				{Name: "Ancho [cm]", Value: 40.0},
				{Name: "Alto [cm]", Value: "tall"},
			},
		},
	})
}

func TestResolveLineCatalogHit(t *testing.T) {
	line := ResolveLine(map[string]any{"productId": "p1", "units": 4.0}, testIndex())

	assert.Equal(t, "Box Shelf", line.Product)
	assert.Equal(t, "BS-100", line.SKU)
	assert.Equal(t, "4", line.Units.String())
	assert.Equal(t, "2.5", line.GrossWeight.String())
	assert.Equal(t, "Shelving", line.Subcategory)

	// 40 * 30 * 25 / 1e6 = 0.03 m³.
	require.True(t, line.Volume.Valid)
	assert.Equal(t, "0.03", line.Volume.Decimal.String())

	// 2.5 kg * 4 units.
	require.True(t, line.TotalWeight.Valid)
	assert.Equal(t, "10", line.TotalWeight.Decimal.String())

	// Stock 10 covers 4 units.
	assert.False(t, line.Insufficient)
	assert.Equal(t, "0", line.Falta.String())
	assert.Equal(t, "6", line.Extra.String())
}

func TestResolveLineIdentifierFallback(t *testing.T) {
	// The generic id field resolves when productId is absent.
	line := ResolveLine(map[string]any{"id": "p1", "units": 1.0}, testIndex())
	assert.Equal(t, "Box Shelf", line.Product)

	// productId wins over id when both are present.
	line = ResolveLine(map[string]any{"productId": "p1", "id": "p2", "units": 1.0}, testIndex())
	assert.Equal(t, "Box Shelf", line.Product)
}

func TestResolveLineCatalogMissFallback(t *testing.T) {
	// Fallback scenario: inline fields, unknown stock, neutral shortage.
	line := ResolveLine(map[string]any{
		"productId": "nope",
		"name":      "Widget",
		"sku":       "",
		"units":     5.0,
	}, testIndex())

	assert.Equal(t, "Widget", line.Product)
	assert.Equal(t, "", line.SKU)
	assert.Equal(t, "5", line.Units.String())
	assert.False(t, line.Stock.Valid, "stock must be unknown, never zero")
	assert.False(t, line.Insufficient)
	assert.Equal(t, "0", line.Falta.String())
	assert.Equal(t, "0", line.Extra.String())
	assert.Equal(t, DefaultSubcategory, line.Subcategory)
	assert.False(t, line.Volume.Valid)
}

func TestResolveLineMissingIdentifierUsesInlineWeight(t *testing.T) {
	line := ResolveLine(map[string]any{
		"name":   "Loose Part",
		"sku":    "LP-9",
		"units":  2.0,
		"weight": 1.25,
	}, testIndex())

	assert.Equal(t, "LP-9", line.SKU)
	assert.Equal(t, "1.25", line.GrossWeight.String())
	require.True(t, line.TotalWeight.Valid)
	assert.Equal(t, "2.5", line.TotalWeight.Decimal.String())
	// SKU present but stock unknown: still neutral.
	assert.False(t, line.Insufficient)
}

func TestResolveLineShortage(t *testing.T) {
	idx := catalog.BuildIndex([]types.ProductRecord{
		{ID: "low", Name: "Scarce", SKU: "SC-1", Stock: 3.0},
	})

	line := ResolveLine(map[string]any{"productId": "low", "units": 5.0}, idx)
	assert.True(t, line.Insufficient)
	assert.Equal(t, "2", line.Falta.String())
	assert.Equal(t, "0", line.Extra.String())

	// Exactly covered: no shortage, zero surplus.
	line = ResolveLine(map[string]any{"productId": "low", "units": 3.0}, idx)
	assert.False(t, line.Insufficient)
	assert.Equal(t, "0", line.Falta.String())
	assert.Equal(t, "0", line.Extra.String())
}

func TestResolveLineNonNumericStockIsNeutral(t *testing.T) {
	line := ResolveLine(map[string]any{"productId": "p2", "units": 5.0}, testIndex())

	assert.Equal(t, "MI-001", line.SKU)
	assert.False(t, line.Stock.Valid)
	assert.False(t, line.Insufficient, "an unresolvable stock must never report insufficient")
	assert.Equal(t, "0", line.Falta.String())
	assert.Equal(t, "0", line.Extra.String())
}

func TestResolveLinePartialDimensionsYieldNoVolume(t *testing.T) {
	// p2 has a width and a non-numeric height: volume must stay unknown.
	line := ResolveLine(map[string]any{"productId": "p2", "units": 1.0}, testIndex())
	assert.False(t, line.Volume.Valid)
}

func TestResolveLineTotalWeightTriState(t *testing.T) {
	idx := catalog.BuildIndex([]types.ProductRecord{
		{ID: "weightless", Name: "Feather", SKU: "F-1", Stock: 9.0},
	})

	// Zero weight: total weight unknown, not zero.
	line := ResolveLine(map[string]any{"productId": "weightless", "units": 4.0}, idx)
	assert.False(t, line.TotalWeight.Valid)

	// Zero units: also unknown.
	line = ResolveLine(map[string]any{"productId": "p1"}, testIndex())
	assert.True(t, line.Units.IsZero())
	assert.False(t, line.TotalWeight.Valid)
}

func TestResolveDocument(t *testing.T) {
	doc := types.Document{
		DocNumber: "PED-1",
		Items: []any{
			map[string]any{"productId": "p1", "units": 2.0},
			map[string]any{"name": "Widget", "units": 1.0},
		},
	}

	lines, err := ResolveDocument(doc, testIndex())
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "Box Shelf", lines[0].Product)
	assert.Equal(t, "Widget", lines[1].Product)
}

func TestResolveDocumentWithoutItems(t *testing.T) {
	lines, err := ResolveDocument(types.Document{DocNumber: "EMPTY-1"}, testIndex())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestResolveDocumentMalformedContainer(t *testing.T) {
	doc := types.Document{DocNumber: "BAD-1", Items: map[string]any{"oops": true}}

	_, err := ResolveDocument(doc, testIndex())
	require.Error(t, err)

	var malformed *MalformedLineItemsError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, "BAD-1", malformed.DocNumber)
	assert.Contains(t, malformed.Error(), "must be a list")
}

func TestResolveDocumentMalformedElement(t *testing.T) {
	doc := types.Document{DocNumber: "BAD-2", Items: []any{"not an object"}}

	_, err := ResolveDocument(doc, testIndex())
	var malformed *MalformedLineItemsError
	require.True(t, errors.As(err, &malformed))
}
