package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHasActiveDiscountAt(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(7 * 24 * time.Hour)

	item := &MenuItem{
		OriginalPrice:      decimal.RequireFromString("100"),
		DiscountPercentage: 20,
		DiscountStart:      &start,
		DiscountEnd:        &end,
	}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before window", start.Add(-time.Second), false},
		{"at start", start, true},
		{"mid window", start.Add(3 * 24 * time.Hour), true},
		{"at end", end, true},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, item.HasActiveDiscountAt(tt.at))
		})
	}
}

func TestHasActiveDiscountAtRequiresWindow(t *testing.T) {
	now := time.Now()
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	noWindow := &MenuItem{DiscountPercentage: 20}
	assert.False(t, noWindow.HasActiveDiscountAt(now))

	noPercentage := &MenuItem{DiscountStart: &start, DiscountEnd: &end}
	assert.False(t, noPercentage.HasActiveDiscountAt(now))
}

func TestCurrentPriceAt(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	item := &MenuItem{
		Price:              decimal.RequireFromString("80"),
		OriginalPrice:      decimal.RequireFromString("100"),
		DiscountPercentage: 20,
		DiscountStart:      &start,
		DiscountEnd:        &end,
	}

	assert.True(t, item.CurrentPriceAt(start.Add(time.Hour)).Equal(decimal.RequireFromString("80")))

	// Outside the window the original price wins even though the cached
	// Price column still holds the discounted value.
	assert.True(t, item.CurrentPriceAt(end.Add(time.Hour)).Equal(decimal.RequireFromString("100")))
}

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		original   string
		percentage float64
		want       string
	}{
		{"100", 20, "80"},
		{"12.99", 10, "11.691"},
		{"50", 100, "0"},
		{"50", 0.5, "49.75"},
	}

	for _, tt := range tests {
		got := DiscountedPrice(decimal.RequireFromString(tt.original), tt.percentage)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"DiscountedPrice(%s, %v) = %s, want %s", tt.original, tt.percentage, got, tt.want)
	}
}
