// Package pricing computes line and order totals for carts and checkout.
// All arithmetic is decimal; float formatting happens only at the display
// boundary via Format.
package pricing

import "github.com/shopspring/decimal"

type DiscountType int32

const (
	DiscountNone    DiscountType = 0
	DiscountPercent DiscountType = 1
	DiscountFixed   DiscountType = 2
)

var oneHundred = decimal.NewFromInt(100)

// AddOn is a selected extra with its own quantity.
type AddOn struct {
	Price    decimal.Decimal
	Quantity int32
}

// Line is one cart/order line, already carrying its own discount.
type Line struct {
	BasePrice      decimal.Decimal
	SizeAdjustment decimal.Decimal
	AddOns         []AddOn
	Quantity       int32
	DiscountType   DiscountType
	DiscountValue  decimal.Decimal
}

// UnitPrice is the per-unit price before any discount:
// base + size adjustment + the selected add-ons.
func UnitPrice(base, sizeAdjustment decimal.Decimal, addOns []AddOn) decimal.Decimal {
	unit := base.Add(sizeAdjustment)
	for _, a := range addOns {
		unit = unit.Add(a.Price.Mul(decimal.NewFromInt32(a.Quantity)))
	}
	return unit
}

// LineTotal is the undiscounted line total: UnitPrice × quantity.
func LineTotal(base, sizeAdjustment decimal.Decimal, addOns []AddOn, quantity int32) decimal.Decimal {
	return UnitPrice(base, sizeAdjustment, addOns).Mul(decimal.NewFromInt32(quantity))
}

// ApplyDiscount reduces amount by a percentage or a fixed value. Fixed
// discounts are clamped at zero; the result is never negative. Discount
// values are assumed non-negative (callers clamp user input first).
func ApplyDiscount(amount, value decimal.Decimal, typ DiscountType) decimal.Decimal {
	switch typ {
	case DiscountPercent:
		return amount.Mul(decimal.NewFromInt(1).Sub(value.Div(oneHundred)))
	case DiscountFixed:
		out := amount.Sub(value)
		if out.IsNegative() {
			return decimal.Zero
		}
		return out
	default:
		return amount
	}
}

// DiscountedUnitTotal discounts the UNIT price, then multiplies by quantity.
// Line discounts are per-unit (the clerk discounts one item), while order
// discounts apply to the summed subtotal; the asymmetry is intentional.
func DiscountedUnitTotal(base, sizeAdjustment decimal.Decimal, addOns []AddOn, quantity int32, value decimal.Decimal, typ DiscountType) decimal.Decimal {
	unit := ApplyDiscount(UnitPrice(base, sizeAdjustment, addOns), value, typ)
	return unit.Mul(decimal.NewFromInt32(quantity))
}

// Total computes the line's net total with its own discount applied.
func (l Line) Total() decimal.Decimal {
	return DiscountedUnitTotal(l.BasePrice, l.SizeAdjustment, l.AddOns, l.Quantity, l.DiscountValue, l.DiscountType)
}

// OrderTotal sums the already-discounted line totals, applies the order-level
// discount to that subtotal and clamps the result at zero.
func OrderTotal(lines []Line, orderDiscount decimal.Decimal, typ DiscountType) decimal.Decimal {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.Total())
	}
	total := ApplyDiscount(subtotal, orderDiscount, typ)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

// ClampValue floors negative user-entered discount values at zero.
func ClampValue(value decimal.Decimal) decimal.Decimal {
	if value.IsNegative() {
		return decimal.Zero
	}
	return value
}

// Format renders an amount with two fixed decimals for display and for the
// money string columns. Computation never round-trips through this.
func Format(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Parse reads a money string column back into a decimal, treating empty or
// malformed stored values as zero.
func Parse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
