package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuItem is a dish on the restaurant menu.
//
// Price is the currently effective price and is refreshed whenever a discount
// is applied, removed or swept. OriginalPrice is the undiscounted reference
// price and is only overwritten when a discount is applied to an item that has
// no active discount, which prevents two stacked applies from compounding.
type MenuItem struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Price              decimal.Decimal `json:"price"`
	OriginalPrice      decimal.Decimal `json:"original_price"`
	DiscountPercentage float64         `json:"discount_percentage"`
	DiscountStart      *time.Time      `json:"discount_start,omitempty"`
	DiscountEnd        *time.Time      `json:"discount_end,omitempty"`
	Category           string          `json:"category,omitempty"`
	ImagePath          string          `json:"image_path,omitempty"`
	// GST is the legacy per-item tax rate. Only the deprecated single-item
	// invoice endpoint reads it; order calculations use the global Settings.
	GST       float64   `json:"gst"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasActiveDiscountAt reports whether the item's discount window covers t.
// The window is inclusive on both ends.
func (m *MenuItem) HasActiveDiscountAt(t time.Time) bool {
	return m.DiscountPercentage > 0 &&
		m.DiscountStart != nil &&
		m.DiscountEnd != nil &&
		!t.Before(*m.DiscountStart) &&
		!t.After(*m.DiscountEnd)
}

// CurrentPriceAt returns the effective price at t, recomputed from the
// original price and the discount window rather than trusting the cached
// Price column, which can be stale between sweeps.
func (m *MenuItem) CurrentPriceAt(t time.Time) decimal.Decimal {
	if m.HasActiveDiscountAt(t) {
		return DiscountedPrice(m.OriginalPrice, m.DiscountPercentage)
	}
	return m.OriginalPrice
}

// DiscountedPrice applies a percentage discount to a price.
func DiscountedPrice(original decimal.Decimal, percentage float64) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(percentage).Div(decimal.NewFromInt(100)))
	return original.Mul(factor)
}
