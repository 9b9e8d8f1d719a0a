package pricing

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

func line(price string, qty int) LineItem {
	return Line{Price: decimal.RequireFromString(price), Qty: qty}
}

func TestCalculateOrderTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []LineItem
		gst          float64
		discount     float64
		wantSubtotal string
		wantDiscount string
		wantNet      string
		wantGST      string
		wantTotal    string
	}{
		{
			name:         "two items with gst and discount",
			items:        []LineItem{line("12.99", 2), line("8.99", 1)},
			gst:          5,
			discount:     10,
			wantSubtotal: "34.97",
			wantDiscount: "3.50",
			wantNet:      "31.47",
			wantGST:      "1.57",
			wantTotal:    "33.04",
		},
		{
			name:         "no discount leaves net equal to subtotal",
			items:        []LineItem{line("100.00", 1)},
			gst:          18,
			discount:     0,
			wantSubtotal: "100.00",
			wantDiscount: "0",
			wantNet:      "100.00",
			wantGST:      "18.00",
			wantTotal:    "118.00",
		},
		{
			name:         "empty cart is all zeros",
			items:        nil,
			gst:          18,
			discount:     10,
			wantSubtotal: "0",
			wantDiscount: "0",
			wantNet:      "0",
			wantGST:      "0.00",
			wantTotal:    "0.00",
		},
		{
			name:         "half cent rounds up not to even",
			items:        []LineItem{line("3.335", 3)},
			gst:          0,
			discount:     0,
			wantSubtotal: "10.005",
			wantDiscount: "0",
			wantNet:      "10.005",
			wantGST:      "0.00",
			wantTotal:    "10.01",
		},
		{
			name:         "discount amount rounds half up",
			items:        []LineItem{line("10.01", 1)},
			gst:          0,
			discount:     5,
			wantSubtotal: "10.01",
			wantDiscount: "0.50",
			wantNet:      "9.51",
			wantGST:      "0.00",
			wantTotal:    "9.51",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateOrderTotals(tt.items, tt.gst, tt.discount)

			assert.True(t, got.Subtotal.Equal(decimal.RequireFromString(tt.wantSubtotal)),
				"subtotal = %s, want %s", got.Subtotal, tt.wantSubtotal)
			assert.True(t, got.DiscountAmount.Equal(decimal.RequireFromString(tt.wantDiscount)),
				"discount = %s, want %s", got.DiscountAmount, tt.wantDiscount)
			assert.True(t, got.NetPrice.Equal(decimal.RequireFromString(tt.wantNet)),
				"net = %s, want %s", got.NetPrice, tt.wantNet)
			assert.True(t, got.GSTAmount.Equal(decimal.RequireFromString(tt.wantGST)),
				"gst = %s, want %s", got.GSTAmount, tt.wantGST)
			assert.True(t, got.Total.Equal(decimal.RequireFromString(tt.wantTotal)),
				"total = %s, want %s", got.Total, tt.wantTotal)

			// Accounting identities hold after rounding. NetPrice stays
			// unrounded when no discount applies, so round the sum before
			// comparing with the rounded total.
			assert.True(t, got.Total.Equal(got.NetPrice.Add(got.GSTAmount).Round(2)))
			assert.True(t, got.NetPrice.Equal(got.Subtotal.Sub(got.DiscountAmount).Round(2)) ||
				got.NetPrice.Equal(got.Subtotal))
		})
	}
}

func TestCalculateOrderTotalsDeterministic(t *testing.T) {
	items := []LineItem{line("12.99", 2), line("8.99", 1), line("0.05", 7)}

	first := CalculateOrderTotals(items, 18, 12.5)
	second := CalculateOrderTotals(items, 18, 12.5)

	assert.Equal(t, first, second)
}

func TestLineFromMap(t *testing.T) {
	l, err := LineFromMap(map[string]interface{}{"price": 12.99, "quantity": 2})
	require.NoError(t, err)
	assert.True(t, l.UnitPrice().Equal(decimal.RequireFromString("12.99")))
	assert.Equal(t, 2, l.Quantity())

	l, err = LineFromMap(map[string]interface{}{"price": "8.99", "quantity": int64(1)})
	require.NoError(t, err)
	assert.True(t, l.UnitPrice().Equal(decimal.RequireFromString("8.99")))

	// JSON numbers decode as float64; a whole-number quantity is accepted.
	l, err = LineFromMap(map[string]interface{}{"price": 5, "quantity": 3.0})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Quantity())
}

func TestLineFromMapMalformed(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]interface{}
	}{
		{"missing price", map[string]interface{}{"quantity": 1}},
		{"missing quantity", map[string]interface{}{"price": 9.99}},
		{"unusable price type", map[string]interface{}{"price": []int{1}, "quantity": 1}},
		{"unusable quantity type", map[string]interface{}{"price": 9.99, "quantity": "two"}},
		{"fractional quantity", map[string]interface{}{"price": 9.99, "quantity": 2.7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LineFromMap(tt.m)
			assert.True(t, errors.Is(err, models.ErrMalformedInput), "got %v", err)
		})
	}
}
