package models

import "time"

// DefaultGSTPercentage and DefaultDiscountPercentage seed the settings row
// the first time it is read.
const (
	DefaultGSTPercentage      = 18.0
	DefaultDiscountPercentage = 0.0
)

// Settings is the singleton row of global rates applied to every order
// calculation.
type Settings struct {
	ID                 int64     `json:"-"`
	GSTPercentage      float64   `json:"gst_percentage"`
	DiscountPercentage float64   `json:"discount_percentage"`
	UpdatedAt          time.Time `json:"updated_at"`
}
