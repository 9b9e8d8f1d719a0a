package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

func TestValidateApplyDiscountRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       models.ApplyDiscountRequest
		wantField string
	}{
		{"valid", models.ApplyDiscountRequest{DiscountPercentage: 10, DiscountDays: 7}, ""},
		{"full discount", models.ApplyDiscountRequest{DiscountPercentage: 100, DiscountDays: 1}, ""},
		{"zero percentage", models.ApplyDiscountRequest{DiscountPercentage: 0, DiscountDays: 7}, "discount_percentage"},
		{"negative percentage", models.ApplyDiscountRequest{DiscountPercentage: -5, DiscountDays: 7}, "discount_percentage"},
		{"over hundred", models.ApplyDiscountRequest{DiscountPercentage: 101, DiscountDays: 7}, "discount_percentage"},
		{"zero days", models.ApplyDiscountRequest{DiscountPercentage: 10, DiscountDays: 0}, "discount_days"},
		{"negative days", models.ApplyDiscountRequest{DiscountPercentage: 10, DiscountDays: -1}, "discount_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateApplyDiscountRequest(&tt.req)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *models.ValidationError
			if assert.ErrorAs(t, err, &verr) {
				assert.Equal(t, tt.wantField, verr.Field)
			}
		})
	}
}

func TestValidatePaymentRequest(t *testing.T) {
	validCard := models.PaymentDetails{
		CardNumber: "4111 1111 1111 1111",
		Expiry:     "12/30",
		CVV:        "123",
		Name:       "A Customer",
	}

	tests := []struct {
		name    string
		req     models.ProcessPaymentRequest
		wantErr bool
	}{
		{"upi valid", models.ProcessPaymentRequest{
			PaymentMethod:  models.PaymentMethodUPI,
			PaymentDetails: models.PaymentDetails{UPIID: "user@upi"},
		}, false},
		{"upi missing id", models.ProcessPaymentRequest{
			PaymentMethod: models.PaymentMethodUPI,
		}, true},
		{"card valid with spaces", models.ProcessPaymentRequest{
			PaymentMethod:  models.PaymentMethodCard,
			PaymentDetails: validCard,
		}, false},
		{"card number too short", models.ProcessPaymentRequest{
			PaymentMethod: models.PaymentMethodCard,
			PaymentDetails: models.PaymentDetails{
				CardNumber: "4111", Expiry: "12/30", CVV: "123", Name: "A Customer",
			},
		}, true},
		{"card number non numeric", models.ProcessPaymentRequest{
			PaymentMethod: models.PaymentMethodCard,
			PaymentDetails: models.PaymentDetails{
				CardNumber: "4111-1111-1111-1111", Expiry: "12/30", CVV: "123", Name: "A Customer",
			},
		}, true},
		{"card bad cvv", models.ProcessPaymentRequest{
			PaymentMethod: models.PaymentMethodCard,
			PaymentDetails: models.PaymentDetails{
				CardNumber: "4111111111111111", Expiry: "12/30", CVV: "12", Name: "A Customer",
			},
		}, true},
		{"netbanking needs nothing", models.ProcessPaymentRequest{
			PaymentMethod: models.PaymentMethodNetBanking,
		}, false},
		{"cod plain", models.ProcessPaymentRequest{
			PaymentMethod: models.PaymentMethodCOD,
		}, false},
		{"cod with cash", models.ProcessPaymentRequest{
			PaymentMethod:  models.PaymentMethodCOD,
			PaymentDetails: models.PaymentDetails{CODPaymentMethod: "cash"},
		}, false},
		{"cod with card", models.ProcessPaymentRequest{
			PaymentMethod:  models.PaymentMethodCOD,
			PaymentDetails: models.PaymentDetails{CODPaymentMethod: "card"},
		}, true},
		{"unknown method", models.ProcessPaymentRequest{
			PaymentMethod: "crypto",
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePaymentRequest(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSignupRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.SignupRequest
		wantErr bool
	}{
		{"valid", models.SignupRequest{Username: "asha", Email: "asha@example.com", Password: "secret1"}, false},
		{"no email is fine", models.SignupRequest{Username: "asha", Password: "secret1"}, false},
		{"blank username", models.SignupRequest{Username: "   ", Password: "secret1"}, true},
		{"short password", models.SignupRequest{Username: "asha", Password: "12345"}, true},
		{"bad email", models.SignupRequest{Username: "asha", Email: "not-an-email", Password: "secret1"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignupRequest(&tt.req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
