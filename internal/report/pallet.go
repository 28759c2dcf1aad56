// =============================================================================
// Holded Stock Report - Pallet Estimator
// =============================================================================
//
// This module converts the report's total weight and volume into a
// required-pallet count. Two independent physical packing constraints are
// modeled - the per-pallet weight capacity and the per-pallet volumetric
// capacity - and the binding one decides.
//
// FORMULA:
//   palletsByWeight = totalWeight / weightCapacity   (rounded 3 dp)
//   palletsByVolume = totalVolume / volumeCapacity   (rounded 3 dp)
//   palletsNeeded   = max(1, ceil(max(palletsByWeight, palletsByVolume)))
//
// A zero total on either side yields 0 for that constraint, not an error;
// a shipment with no weight or volume data still needs at least one pallet.
//
// =============================================================================

package report

import "github.com/shopspring/decimal"

// =============================================================================
// CAPACITIES
// =============================================================================

// Capacities holds the per-pallet capacity divisors.
type Capacities struct {
	// WeightKg is the weight a single pallet carries, in kilograms.
	WeightKg decimal.Decimal

	// VolumeM3 is the volume a single pallet holds, in cubic meters.
	VolumeM3 decimal.Decimal
}

// DefaultCapacities returns the standard unit-load capacities: 1300 kg and
// 1.728 m³ (a 1.2 m x 1.2 m x 1.2 m stack) per pallet.
func DefaultCapacities() Capacities {
	return Capacities{
		WeightKg: decimal.NewFromInt(1300),
		VolumeM3: decimal.RequireFromString("1.728"),
	}
}

// =============================================================================
// ESTIMATE
// =============================================================================

// PalletEstimate is the shipping summary derived from the report totals.
type PalletEstimate struct {
	// TotalUnits is the summed ordered units across all member rows.
	TotalUnits decimal.Decimal

	// TotalWeight is the summed total weight in kilograms.
	TotalWeight decimal.Decimal

	// TotalVolume is the summed volume in cubic meters.
	TotalVolume decimal.Decimal

	// PalletsByWeight is the weight-constrained pallet count (3 dp).
	PalletsByWeight decimal.Decimal

	// PalletsByVolume is the volume-constrained pallet count (3 dp).
	PalletsByVolume decimal.Decimal

	// PalletsNeeded is the binding constraint, ceiled, floored at 1.
	PalletsNeeded int64
}

// EstimatePallets computes the pallet estimate from the report totals.
//
// PARAMETERS:
//   - totals: The member-row sums of the assembled report.
//   - caps: The per-pallet capacity divisors (must be positive; the
//     configuration layer validates this).
//
// RETURNS:
//   - The estimate. This is a pure function: identical inputs always yield
//     identical estimates.
func EstimatePallets(totals Totals, caps Capacities) PalletEstimate {
	byWeight := constraintRatio(totals.Weight, caps.WeightKg)
	byVolume := constraintRatio(totals.Volume, caps.VolumeM3)

	binding := byWeight
	if byVolume.GreaterThan(binding) {
		binding = byVolume
	}

	needed := binding.Ceil().IntPart()
	if needed < 1 {
		needed = 1
	}

	return PalletEstimate{
		TotalUnits:      totals.Units,
		TotalWeight:     totals.Weight,
		TotalVolume:     totals.Volume,
		PalletsByWeight: byWeight,
		PalletsByVolume: byVolume,
		PalletsNeeded:   needed,
	}
}

// constraintRatio divides a total by its capacity, rounded to 3 decimals.
// A zero or missing total yields zero for the constraint.
func constraintRatio(total, capacity decimal.Decimal) decimal.Decimal {
	if total.IsZero() || !capacity.IsPositive() {
		return decimal.Zero
	}
	return total.Div(capacity).Round(3)
}
