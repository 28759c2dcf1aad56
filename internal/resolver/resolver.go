// =============================================================================
// Holded Stock Report - Line-Item Resolver
// =============================================================================
//
// This module resolves each order line of a sales document against the
// catalog index, producing the fully-derived line used by the report:
// product identity, physical dimensions, stock shortage and subcategory.
//
// RESOLUTION BRANCHES:
//   Branch A - the line's identifier is found in the catalog index:
//     name/sku/stock/weight come from the catalog, and the attribute list
//     is scanned for the dimension fields ("Ancho [cm]", "Alto [cm]",
//     "Fondo [cm]") and the subcategory field ("Product Line" or
//     "3. Product Line"). Unparseable attribute values are skipped, never
//     an error.
//   Branch B - no identifier, or a catalog miss:
//     the line's own inline name/sku/weight are used, stock is unknown
//     (blank, not zero), there are no dimensions, and the subcategory is
//     the default sentinel.
//
// ERROR MODEL:
//   The only fatal condition is a line-item container that is present but
//   not a list. That violates the document schema and is surfaced to the
//   caller as a MalformedLineItemsError; everything else degrades to
//   defined defaults.
//
// =============================================================================

package resolver

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jmfernandez-ops/holded-stock-report/internal/catalog"
	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// =============================================================================
// CONSTANTS
// =============================================================================

// DefaultSubcategory is the sentinel grouping label for lines with no
// product line attribute (including every catalog miss).
const DefaultSubcategory = "Sin línea de productos"

// InsufficientLabel is the marker placed in the "Insuficiente?" column when
// on-hand stock cannot cover the ordered units.
const InsufficientLabel = "STOCK INSUFICIENTE"

// Attribute names recognized during the attribute scan.
const (
	attrWidth       = "Ancho [cm]"
	attrHeight      = "Alto [cm]"
	attrDepth       = "Fondo [cm]"
	attrProductLine = "Product Line"
	// Some catalogs carry the product line under a numbered variant.
	attrProductLineAlt = "3. Product Line"
)

// cubicCentimetersPerCubicMeter converts cm³ volumes to m³.
var cubicCentimetersPerCubicMeter = decimal.NewFromInt(1_000_000)

// =============================================================================
// RESOLVED LINE
// =============================================================================

// ResolvedLine is the derived entity produced for each order line.
type ResolvedLine struct {
	// Product is the display name (catalog name or inline fallback).
	Product string

	// SKU is the stock-keeping unit code, empty when unknown.
	SKU string

	// Units is the ordered quantity. Absent or unparseable units default
	// to zero.
	Units decimal.Decimal

	// GrossWeight is the unit weight in kilograms (0 when unknown).
	GrossWeight decimal.Decimal

	// TotalWeight is GrossWeight x Units rounded to 3 decimals, known only
	// when both factors are nonzero. A zero weight or zero units yields an
	// unknown total so that "no weight data" is distinguishable from
	// "weighs nothing".
	TotalWeight types.Number

	// Volume is the unit volume in m³ rounded to 5 decimals, known only
	// when all three dimension attributes parse as numbers.
	Volume types.Number

	// Stock is the on-hand quantity; unknown for catalog misses and for
	// catalog entries without a numeric stock value.
	Stock types.Number

	// Insufficient reports whether on-hand stock falls short of the
	// ordered units. Never set when the product is unresolvable.
	Insufficient bool

	// Falta is the shortage quantity (units - stock when insufficient,
	// otherwise 0).
	Falta decimal.Decimal

	// Extra is the surplus quantity (stock - units when covered,
	// otherwise 0).
	Extra decimal.Decimal

	// Subcategory is the grouping label derived from the product line
	// attribute, or DefaultSubcategory.
	Subcategory string
}

// =============================================================================
// ERRORS
// =============================================================================

// MalformedLineItemsError reports a document whose line-item container is
// present but not a list of line-item objects. This is fatal for the
// document: the schema invariant is broken and no per-line fallback can
// repair it.
type MalformedLineItemsError struct {
	// DocNumber identifies the offending document.
	DocNumber string

	// Got describes the actual type encountered.
	Got string
}

func (e *MalformedLineItemsError) Error() string {
	return fmt.Sprintf("document %s: line-item container must be a list, got %s", e.DocNumber, e.Got)
}

// =============================================================================
// DOCUMENT RESOLUTION
// =============================================================================

// ResolveDocument resolves every line item of a document against the
// catalog index.
//
// PARAMETERS:
//   - doc: The raw document whose Items field holds the line-item list.
//   - idx: The catalog index built for this run.
//
// RETURNS:
//   - The resolved lines in document order. A document without line items
//     yields an empty slice, not an error.
//   - A MalformedLineItemsError when the container is present but not a
//     list, or when a list element is not an object.
func ResolveDocument(doc types.Document, idx catalog.Index) ([]ResolvedLine, error) {
	if doc.Items == nil {
		return []ResolvedLine{}, nil
	}

	items, ok := doc.Items.([]any)
	if !ok {
		return nil, &MalformedLineItemsError{
			DocNumber: doc.DocNumber,
			Got:       fmt.Sprintf("%T", doc.Items),
		}
	}

	lines := make([]ResolvedLine, 0, len(items))
	for i, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			return nil, &MalformedLineItemsError{
				DocNumber: doc.DocNumber,
				Got:       fmt.Sprintf("element %d of type %T", i, item),
			}
		}
		lines = append(lines, ResolveLine(fields, idx))
	}

	return lines, nil
}

// ResolveLine resolves a single order line against the catalog index.
//
// PARAMETERS:
//   - item: The raw line-item fields (productId-or-id, units, and the
//     inline name/sku/weight used on a catalog miss).
//   - idx: The catalog index.
//
// RETURNS:
//   - The resolved line. Resolution never fails: every irregularity short
//     of the container type error degrades to a defined default.
func ResolveLine(item map[string]any, idx catalog.Index) ResolvedLine {
	// The explicit product identifier wins; the generic id is the fallback.
	id := types.FirstString(item, "productId", "id")
	units := types.NumberField(item, "units", decimal.Zero)

	line := ResolvedLine{
		Units:       units,
		Subcategory: DefaultSubcategory,
	}

	if info, ok := idx.Lookup(id); ok {
		// Branch A: catalog hit.
		line.Product = info.Name
		line.SKU = info.SKU
		line.Stock = info.Stock
		line.GrossWeight = info.Weight

		width, height, depth := scanDimensions(info.Attributes, &line.Subcategory)
		if width.Valid && height.Valid && depth.Valid {
			volume := width.Decimal.Mul(height.Decimal).Mul(depth.Decimal).
				Div(cubicCentimetersPerCubicMeter)
			line.Volume = types.N(volume.Round(5))
		}
	} else {
		// Branch B: identifier absent or not in the catalog. Stock stays
		// unknown so the line is never reported as insufficient.
		line.Product = types.StringField(item, "name")
		line.SKU = types.StringField(item, "sku")
		line.GrossWeight = types.NumberField(item, "weight", decimal.Zero)
	}

	applyShortage(&line)
	applyTotalWeight(&line)

	return line
}

// =============================================================================
// ATTRIBUTE SCAN
// =============================================================================

// scanDimensions walks the attribute list once, collecting the three
// dimension values and, when present, overwriting the subcategory label.
// Non-numeric dimension values are skipped silently.
func scanDimensions(attrs []types.Attribute, subcategory *string) (width, height, depth types.Number) {
	for _, attr := range attrs {
		if attr.Name == attrProductLine || attr.Name == attrProductLineAlt {
			if label := types.Stringify(attr.Value); label != "" {
				*subcategory = label
			}
		}

		value, ok := types.ParseNumeric(attr.Value)
		if !ok {
			continue
		}

		switch attr.Name {
		case attrWidth:
			width = types.N(value)
		case attrHeight:
			height = types.N(value)
		case attrDepth:
			depth = types.N(value)
		}
	}
	return width, height, depth
}

// =============================================================================
// DERIVED FIELDS
// =============================================================================

// applyShortage fills the shortage columns. A line with an empty SKU or an
// unknown stock value is neutral: an unresolvable product is never reported
// as insufficient.
func applyShortage(line *ResolvedLine) {
	line.Falta = decimal.Zero
	line.Extra = decimal.Zero

	if line.SKU == "" || !line.Stock.Valid {
		return
	}

	if line.Stock.Decimal.GreaterThanOrEqual(line.Units) {
		line.Extra = line.Stock.Decimal.Sub(line.Units)
		return
	}

	line.Insufficient = true
	line.Falta = line.Units.Sub(line.Stock.Decimal)
}

// applyTotalWeight fills TotalWeight. The total is only known when both
// the unit weight and the units are nonzero; a zero on either side means
// "no data", not "zero kilograms".
func applyTotalWeight(line *ResolvedLine) {
	if line.GrossWeight.IsZero() || line.Units.IsZero() {
		return
	}
	line.TotalWeight = types.N(line.GrossWeight.Mul(line.Units).Round(3))
}
