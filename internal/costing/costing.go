// Package costing resolves the box -> package -> item cost hierarchy used on
// purchases and sale items. Quantities and unit costs may be entered at any
// level; the resolver fills in whatever can be derived and computes a total.
package costing

import "github.com/shopspring/decimal"

// Breakdown is one cost hierarchy entry. A zero multiplier or zero cost means
// the field was not provided; derivation steps with a zero divisor are skipped
// rather than failed.
type Breakdown struct {
	BoxQuantity     int
	PackagesPerBox  int
	ItemsPerPackage int

	CostPerBox     decimal.Decimal
	CostPerPackage decimal.Decimal
	CostPerItem    decimal.Decimal
}

// Resolve fills in the unit costs that can be derived from what is present.
// Downward first (box -> package -> item), then upward from cost per item when
// the direct costs were not supplied.
func (b Breakdown) Resolve() Breakdown {
	if b.CostPerBox.IsPositive() && b.PackagesPerBox > 0 && b.CostPerPackage.IsZero() {
		b.CostPerPackage = b.CostPerBox.
			Div(decimal.NewFromInt(int64(b.PackagesPerBox))).
			Round(2)
	}
	if b.CostPerPackage.IsPositive() && b.ItemsPerPackage > 0 && b.CostPerItem.IsZero() {
		b.CostPerItem = b.CostPerPackage.
			Div(decimal.NewFromInt(int64(b.ItemsPerPackage))).
			Round(2)
	}
	if b.CostPerItem.IsPositive() && b.ItemsPerPackage > 0 && b.PackagesPerBox > 0 {
		if b.CostPerPackage.IsZero() {
			b.CostPerPackage = b.CostPerItem.Mul(decimal.NewFromInt(int64(b.ItemsPerPackage)))
		}
		if b.CostPerBox.IsZero() {
			b.CostPerBox = b.CostPerPackage.Mul(decimal.NewFromInt(int64(b.PackagesPerBox)))
		}
	}
	return b
}

// TotalCost computes the monetary total from the most specific pairing
// available, coarsest level first. Returns zero when no level has both a
// quantity and a cost.
func (b Breakdown) TotalCost() decimal.Decimal {
	switch {
	case b.BoxQuantity > 0 && b.CostPerBox.IsPositive():
		return decimal.NewFromInt(int64(b.BoxQuantity)).Mul(b.CostPerBox).Round(2)
	case b.PackagesPerBox > 0 && b.CostPerPackage.IsPositive():
		return decimal.NewFromInt(int64(b.PackagesPerBox)).Mul(b.CostPerPackage).Round(2)
	case b.ItemsPerPackage > 0 && b.CostPerItem.IsPositive():
		return decimal.NewFromInt(int64(b.ItemsPerPackage)).Mul(b.CostPerItem).Round(2)
	}
	return decimal.Zero
}

// TotalItems is the piece count the breakdown represents. A missing
// multiplier counts as 1, so a purchase entered only as "3 boxes" still moves
// 3 units of stock.
func (b Breakdown) TotalItems() int {
	return orOne(b.BoxQuantity) * orOne(b.PackagesPerBox) * orOne(b.ItemsPerPackage)
}

// UnitPrice is the resolved per-item cost.
func (b Breakdown) UnitPrice() decimal.Decimal {
	return b.Resolve().CostPerItem
}

func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
