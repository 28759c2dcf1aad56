// =============================================================================
// Holded Stock Report - Catalog Index Builder
// =============================================================================
//
// This module turns the flat product list fetched from the products endpoint
// into a lookup table keyed by product identifier. The index is built once
// per report run and never mutated afterwards; the line-item resolver reads
// it to join order lines to catalog attributes.
//
// IDENTIFIER RESOLUTION:
//   Catalog records may carry their identifier in either the primary "id"
//   field or the secondary "productId" field. The first non-empty one wins.
//   Records with no resolvable identifier are silently dropped: a line item
//   pointing at such a record is simply treated as a catalog miss later.
//
// =============================================================================

package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/jmfernandez-ops/holded-stock-report/internal/types"
)

// =============================================================================
// NORMALIZED PRODUCT INFO
// =============================================================================

// ProductInfo is the normalized catalog entry for one product.
type ProductInfo struct {
	// Name is the product display name.
	Name string

	// SKU is the stock-keeping unit code. May be empty.
	SKU string

	// Stock is the on-hand quantity. Unknown when the raw record omitted
	// the field or carried a non-numeric value; unknown stock must never
	// be reported as zero stock.
	Stock types.Number

	// Weight is the unit gross weight in kilograms (0 when absent).
	Weight decimal.Decimal

	// Attributes is the product's ordered attribute list, as fetched.
	Attributes []types.Attribute
}

// Index maps a product identifier to its normalized catalog entry.
type Index map[string]ProductInfo

// =============================================================================
// INDEX CONSTRUCTION
// =============================================================================

// BuildIndex builds the catalog index from a product list.
//
// PARAMETERS:
//   - records: The raw product records, possibly empty.
//
// RETURNS:
//   - The index. An empty input yields an empty (non-nil) index; this is
//     not an error.
//
// Records without a resolvable identifier are dropped. When the same
// identifier appears twice the later record wins, matching the behavior of
// rebuilding a lookup table in fetch order.
func BuildIndex(records []types.ProductRecord) Index {
	index := make(Index, len(records))

	for _, record := range records {
		// Primary id first, secondary productId as fallback.
		id := record.ID
		if id == "" {
			id = record.ProductID
		}
		if id == "" {
			continue
		}

		stock := types.Number{}
		if d, ok := types.ParseNumeric(record.Stock); ok {
			stock = types.N(d)
		}

		index[id] = ProductInfo{
			Name:       record.Name,
			SKU:        record.SKU,
			Stock:      stock,
			Weight:     decimal.NewFromFloat(record.Weight),
			Attributes: record.Attributes,
		}
	}

	return index
}

// Lookup returns the catalog entry for the given identifier.
//
// RETURNS:
//   - The entry and true on a hit; the zero entry and false on a miss or
//     when the identifier is empty.
func (idx Index) Lookup(id string) (ProductInfo, bool) {
	if id == "" {
		return ProductInfo{}, false
	}
	info, ok := idx[id]
	return info, ok
}
