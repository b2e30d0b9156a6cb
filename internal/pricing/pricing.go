package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Coupon is a percentage discount keyed by its uppercase code.
type Coupon struct {
	Code     string          `json:"code"`
	Discount decimal.Decimal `json:"discount"`
}

// The storefront ships a static coupon registry.
var registry = map[string]decimal.Decimal{
	"SAVE10":    decimal.NewFromFloat(0.10),
	"WELCOME15": decimal.NewFromFloat(0.15),
	"SMART20":   decimal.NewFromFloat(0.20),
}

// LookupCoupon resolves a code case-insensitively.
func LookupCoupon(code string) (Coupon, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	discount, ok := registry[normalized]
	if !ok {
		return Coupon{}, false
	}
	return Coupon{Code: normalized, Discount: discount}, true
}

// Line is one priced cart position.
type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

// Result is the derived money breakdown for a cart.
type Result struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Total          decimal.Decimal `json:"total"`
}

// Totals computes subtotal, discount and total with exact decimal arithmetic.
// An empty cart yields all zeros even when a coupon is active, and the total
// is clamped at zero.
func Totals(lines []Line, coupon *Coupon) Result {
	zero := decimal.Zero
	if len(lines) == 0 {
		return Result{Subtotal: zero, DiscountAmount: zero, Total: zero}
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		if line.Quantity <= 0 {
			continue
		}
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	discount := decimal.Zero
	if coupon != nil {
		discount = subtotal.Mul(coupon.Discount).Round(2)
	}

	total := subtotal.Sub(discount)
	if total.IsNegative() {
		total = zero
	}

	return Result{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          total,
	}
}
