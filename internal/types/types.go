// =============================================================================
// Holded Stock Report - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - holded (raw API records)
//   - catalog
//   - resolver
//   - report
//
// The Holded API returns loosely-typed JSON: numeric fields may be absent,
// null, or encoded as strings, and the per-document line-item container is
// not guaranteed to be a list. The types below preserve that looseness at
// the edge (any-typed fields) so that each module can apply its own defined
// defaults instead of failing during decoding.
//
// =============================================================================

package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// RAW API RECORD TYPES
// =============================================================================

// Document represents one sales document (estimate, proforma or sales order)
// as returned by the documents endpoints.
type Document struct {
	// ID is the internal document identifier.
	ID string `json:"id"`

	// DocNumber is the human-facing document number used for lookups.
	DocNumber string `json:"docNumber"`

	// Items is the raw line-item container. The API contract says this is a
	// list of line-item objects, but the field is kept untyped so the
	// resolver can enforce the list invariant itself and surface a typed
	// error for the document instead of a generic decoding failure.
	Items any `json:"products"`
}

// ProductRecord represents one catalog product as returned by the products
// endpoint. It is an immutable snapshot fetched once per report run.
type ProductRecord struct {
	// ID is the primary product identifier.
	ID string `json:"id"`

	// ProductID is the secondary identifier. Some records carry only this
	// field; identifier resolution takes the first non-empty of the two.
	ProductID string `json:"productId"`

	// Name is the product display name.
	Name string `json:"name"`

	// SKU is the stock-keeping unit code. May be empty.
	SKU string `json:"sku"`

	// Stock is the on-hand quantity. Kept untyped because the API may omit
	// it or return a non-numeric value; an unknown stock must not be
	// mistaken for zero stock.
	Stock any `json:"stock"`

	// Weight is the unit gross weight in kilograms. Absent decodes to 0.
	Weight float64 `json:"weight"`

	// Attributes is the ordered, schema-less attribute list.
	Attributes []Attribute `json:"attributes"`
}

// Attribute is a single name/value pair from a product's attribute list.
// Values are untyped: dimensions arrive as numbers or numeric strings, the
// product line as a plain string.
type Attribute struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// =============================================================================
// OPTIONAL NUMERIC QUANTITY
// =============================================================================

// Number is an optional numeric quantity: unknown, zero, or a value.
// The zero Number is unknown. Report cells render unknown as blank, and
// subtotal aggregation treats unknown as non-contributing.
type Number struct {
	// Decimal is the quantity. Only meaningful when Valid is true.
	Decimal decimal.Decimal

	// Valid reports whether Decimal holds a known value.
	Valid bool
}

// N wraps a decimal in a known Number.
func N(d decimal.Decimal) Number {
	return Number{Decimal: d, Valid: true}
}

// NFromFloat wraps a float64 in a known Number.
func NFromFloat(f float64) Number {
	return N(decimal.NewFromFloat(f))
}

// Round returns the Number rounded to the given number of decimal places.
// Rounding an unknown Number yields an unknown Number.
func (n Number) Round(places int32) Number {
	if !n.Valid {
		return n
	}
	return N(n.Decimal.Round(places))
}

// String renders the Number for logs and plain-text output.
// Unknown renders as the empty string.
func (n Number) String() string {
	if !n.Valid {
		return ""
	}
	return n.Decimal.String()
}

// =============================================================================
// LOOSE VALUE EXTRACTION
// =============================================================================

// ParseNumeric attempts a best-effort numeric parse of a loosely-typed JSON
// value. It accepts JSON numbers (float64), Go integer/float types, and
// numeric strings. Anything else - including nil, booleans and non-numeric
// strings - reports false.
func ParseNumeric(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Decimal{}, false
		}
		return d, true
	default:
		return decimal.Decimal{}, false
	}
}

// Stringify renders a loosely-typed JSON value as a string.
// nil renders as the empty string; numbers render without an exponent.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return decimal.NewFromFloat(t).String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// FirstString returns the first non-empty string value found in the map for
// the given keys, or the empty string when none is present. This is the
// explicit ordered fallback chain used for identifier resolution
// (productId before id) on line items.
func FirstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := Stringify(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// NumberField extracts a numeric field from a loosely-typed map, returning
// the fallback when the field is absent or not parseable as a number.
func NumberField(m map[string]any, key string, fallback decimal.Decimal) decimal.Decimal {
	if d, ok := ParseNumeric(m[key]); ok {
		return d
	}
	return fallback
}

// StringField extracts a string field from a loosely-typed map, returning
// the empty string when the field is absent or nil.
func StringField(m map[string]any, key string) string {
	return Stringify(m[key])
}
