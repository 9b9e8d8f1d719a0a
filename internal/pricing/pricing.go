// Package pricing implements the order totals calculation shared by the cart
// summary, payment processing, invoice and order-confirmation paths. All four
// call sites go through CalculateOrderTotals so they can never disagree on a
// cent.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

var hundred = decimal.NewFromInt(100)

// LineItem exposes the two values the calculator needs from a priced line,
// regardless of how the line is stored.
type LineItem interface {
	UnitPrice() decimal.Decimal
	Quantity() int
}

// Line is a plain line item value.
type Line struct {
	Price decimal.Decimal
	Qty   int
}

func (l Line) UnitPrice() decimal.Decimal { return l.Price }
func (l Line) Quantity() int              { return l.Qty }

// LineFromMap builds a Line from a key-value record carrying "price" and
// "quantity". A record missing either field, or carrying a value of an
// unusable type, fails with models.ErrMalformedInput; the calculator never
// substitutes zero for a missing value.
func LineFromMap(m map[string]interface{}) (Line, error) {
	rawPrice, ok := m["price"]
	if !ok {
		return Line{}, fmt.Errorf("%w: line item has no price", models.ErrMalformedInput)
	}
	price, err := toDecimal(rawPrice)
	if err != nil {
		return Line{}, fmt.Errorf("%w: price: %v", models.ErrMalformedInput, err)
	}

	rawQty, ok := m["quantity"]
	if !ok {
		return Line{}, fmt.Errorf("%w: line item has no quantity", models.ErrMalformedInput)
	}
	qty, err := toInt(rawQty)
	if err != nil {
		return Line{}, fmt.Errorf("%w: quantity: %v", models.ErrMalformedInput, err)
	}

	return Line{Price: price, Qty: qty}, nil
}

// Totals is the monetary breakdown of an order. Every field downstream of the
// subtotal is rounded half-up to two decimal places.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	NetPrice       decimal.Decimal `json:"net_price"`
	GSTAmount      decimal.Decimal `json:"gst_amount"`
	Total          decimal.Decimal `json:"total"`
}

// CalculateOrderTotals computes the order breakdown from line items and the
// global GST and discount percentages.
//
// The order of operations is a business rule, not an implementation detail:
// the discount is taken on the subtotal, GST is computed on the post-discount
// net price, and each intermediate is rounded half-up to two decimals before
// feeding the next step. The subtotal itself is the unrounded aggregate of
// price*quantity over all lines.
//
// The function is pure and deterministic: identical inputs yield identical
// outputs, so independent call sites always agree. An empty item slice yields
// all-zero totals. Negative prices or quantities are not rejected here;
// callers validate before checkout.
func CalculateOrderTotals(items []LineItem, gstPercentage, discountPercentage float64) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.UnitPrice().Mul(decimal.NewFromInt(int64(item.Quantity()))))
	}

	discountAmount := decimal.Zero
	netPrice := subtotal
	if discountPercentage > 0 {
		rate := decimal.NewFromFloat(discountPercentage).Div(hundred)
		discountAmount = subtotal.Mul(rate).Round(2)
		netPrice = subtotal.Sub(discountAmount).Round(2)
	}

	gstRate := decimal.NewFromFloat(gstPercentage).Div(hundred)
	gstAmount := netPrice.Mul(gstRate).Round(2)
	total := netPrice.Add(gstAmount).Round(2)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discountAmount,
		NetPrice:       netPrice,
		GSTAmount:      gstAmount,
		Total:          total,
	}
}

func toDecimal(v interface{}) (decimal.Decimal, error) {
	switch n := v.(type) {
	case decimal.Decimal:
		return n, nil
	case float64:
		return decimal.NewFromFloat(n), nil
	case int:
		return decimal.NewFromInt(int64(n)), nil
	case int64:
		return decimal.NewFromInt(n), nil
	case string:
		return decimal.NewFromString(n)
	default:
		return decimal.Zero, fmt.Errorf("unsupported type %T", v)
	}
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("quantity %v is not a whole number", n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
