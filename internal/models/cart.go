package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart is a user's persistent shopping cart.
type Cart struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem references a menu item and a quantity inside a cart.
type CartItem struct {
	ID         int64     `json:"id"`
	CartID     int64     `json:"cart_id"`
	MenuItemID int64     `json:"menu_item_id"`
	Quantity   int       `json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Denormalized from the menu item for display and pricing.
	MenuItemName string          `json:"name,omitempty"`
	UnitPrice    decimal.Decimal `json:"price"`
	ImagePath    string          `json:"image_path,omitempty"`
}

// Count returns the total number of units in the cart.
func (c *Cart) Count() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
