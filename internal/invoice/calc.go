package invoice

import (
	"math"
	"math/bits"

	"invoicer/pkg/models"
)

// LineTotal returns quantity × unit price for a single item, saturating at
// the int64 limits.
func LineTotal(item models.LineItem) int64 {
	return mulSat(item.Quantity, item.UnitPrice)
}

// Subtotal sums the line totals of all items, saturating at the int64
// limits. An empty list yields 0.
func Subtotal(items []models.LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum = addSat(sum, LineTotal(it))
	}
	return sum
}

// DiscountAmount returns the deduction for the given subtotal. The result is
// always within [0, subtotal] whatever the declared type or stored value.
func DiscountAmount(subtotal int64, discount *models.Discount) int64 {
	if discount == nil || subtotal <= 0 {
		return 0
	}

	var raw int64
	switch discount.Type {
	case models.DiscountAmount:
		raw = discount.Value
	case models.DiscountPercent:
		// floor(subtotal*v/100) without forming the product.
		v := clamp(discount.Value, 0, 100)
		raw = subtotal/100*v + subtotal%100*v/100
	default:
		return 0
	}

	return clamp(raw, 0, subtotal)
}

// CalcTotals derives subtotal, discount and grand total from the items and
// the optional discount.
func CalcTotals(items []models.LineItem, discount *models.Discount) models.Totals {
	subtotal := Subtotal(items)
	discountAmount := DiscountAmount(subtotal, discount)

	return models.Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		Total:          subtotal - discountAmount,
	}
}

func clamp(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mulSat(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(absU(a), absU(b))
	if hi != 0 || lo > math.MaxInt64 {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	if neg {
		return -int64(lo)
	}
	return int64(lo)
}

func addSat(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

func absU(v int64) uint64 {
	u := uint64(v)
	if v < 0 {
		u = -u
	}
	return u
}
