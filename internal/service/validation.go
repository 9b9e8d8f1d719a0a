package service

import (
	"strings"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// ValidateApplyDiscountRequest checks the admin discount input before it
// reaches the lifecycle manager.
func ValidateApplyDiscountRequest(req *models.ApplyDiscountRequest) error {
	if req.DiscountPercentage <= 0 || req.DiscountPercentage > 100 {
		return models.NewValidationError("discount_percentage",
			"discount percentage must be between 0.01 and 100")
	}

	if req.DiscountDays <= 0 {
		return models.NewValidationError("discount_days", "discount days must be positive")
	}

	return nil
}

// ValidatePaymentRequest checks the payment method and its method-specific
// details.
func ValidatePaymentRequest(req *models.ProcessPaymentRequest) error {
	switch req.PaymentMethod {
	case models.PaymentMethodUPI:
		if req.PaymentDetails.UPIID == "" {
			return models.NewValidationError("upi_id", "please enter UPI ID")
		}
	case models.PaymentMethodCard:
		d := req.PaymentDetails
		if d.CardNumber == "" || d.Expiry == "" || d.CVV == "" || d.Name == "" {
			return models.NewValidationError("card", "please fill in all card details")
		}

		cardNumber := strings.ReplaceAll(d.CardNumber, " ", "")
		if len(cardNumber) < 13 || len(cardNumber) > 19 || !isDigits(cardNumber) {
			return models.NewValidationError("card_number", "invalid card number")
		}

		if (len(d.CVV) != 3 && len(d.CVV) != 4) || !isDigits(d.CVV) {
			return models.NewValidationError("cvv", "invalid CVV")
		}
	case models.PaymentMethodNetBanking:
		// No additional details required.
	case models.PaymentMethodCOD:
		if m := req.PaymentDetails.CODPaymentMethod; m != "" && m != "upi" && m != "cash" {
			return models.NewValidationError("cod_payment_method",
				"cash-on-delivery payment must be upi or cash")
		}
	default:
		return models.NewValidationError("payment_method", "invalid payment method")
	}

	return nil
}

// ValidateSignupRequest checks signup input.
func ValidateSignupRequest(req *models.SignupRequest) error {
	if strings.TrimSpace(req.Username) == "" {
		return models.NewValidationError("username", "username is required")
	}

	if len(req.Password) < 6 {
		return models.NewValidationError("password", "password must be at least 6 characters")
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		return models.NewValidationError("email", "invalid email address")
	}

	return nil
}

// ValidateSettingsUpdate checks the global rate bounds.
func ValidateSettingsUpdate(req *models.UpdateSettingsRequest) error {
	if req.GSTPercentage != nil && (*req.GSTPercentage < 0 || *req.GSTPercentage > 100) {
		return models.NewValidationError("gst_percentage", "GST percentage must be between 0 and 100")
	}

	if req.DiscountPercentage != nil && (*req.DiscountPercentage < 0 || *req.DiscountPercentage > 100) {
		return models.NewValidationError("discount_percentage",
			"discount percentage must be between 0 and 100")
	}

	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
