package models

// SignupRequest registers a new user.
type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest authenticates an existing user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AddToCartRequest adds a menu item to the caller's cart.
type AddToCartRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// UpdateCartRequest sets the quantity of a cart line. Zero or negative
// quantity removes the line.
type UpdateCartRequest struct {
	MenuItemID int64 `json:"menu_item_id"`
	Quantity   int   `json:"quantity"`
}

// PaymentDetails carries method-specific fields of a payment request.
type PaymentDetails struct {
	UPIID            string `json:"upi_id,omitempty"`
	CardNumber       string `json:"card_number,omitempty"`
	Expiry           string `json:"expiry,omitempty"`
	CVV              string `json:"cvv,omitempty"`
	Name             string `json:"name,omitempty"`
	CODPaymentMethod string `json:"cod_payment_method,omitempty"`
}

// ProcessPaymentRequest runs the checkout payment flow against the caller's
// cart.
type ProcessPaymentRequest struct {
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	PaymentDetails PaymentDetails `json:"payment_details"`
}

// UpdateSettingsRequest changes the global rates. Nil fields are left alone.
type UpdateSettingsRequest struct {
	GSTPercentage      *float64 `json:"gst_percentage"`
	DiscountPercentage *float64 `json:"discount_percentage"`
}

// ApplyDiscountRequest puts a time-bounded percentage discount on a menu item.
type ApplyDiscountRequest struct {
	DiscountPercentage float64 `json:"discount_percentage"`
	DiscountDays       int     `json:"discount_days"`
}

// MenuItemForm is the multipart form for creating or editing a menu item.
// The image file is read separately from the form.
type MenuItemForm struct {
	Name        string  `form:"name" binding:"required"`
	Price       string  `form:"price" binding:"required"`
	Description string  `form:"description"`
	Category    string  `form:"category"`
	GST         float64 `form:"gst"`
}

// AdminOrderActionRequest is an admin action on an order.
type AdminOrderActionRequest struct {
	OrderID int64  `json:"order_id"`
	Action  string `json:"action"`
}
