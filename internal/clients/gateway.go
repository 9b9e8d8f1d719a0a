package clients

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// ChargeRequest asks the gateway to take a payment.
type ChargeRequest struct {
	Amount decimal.Decimal
	Method models.PaymentMethod
	UserID int64
}

// ChargeResult is the gateway's answer.
type ChargeResult struct {
	Reference string
	Status    models.PaymentStatus
}

// PaymentGateway charges customers. The production integration would sit
// behind this interface; the service ships with the simulated gateway.
type PaymentGateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}

// SimulatedGateway approves every charge and fabricates a transaction
// reference. Cash-on-delivery is not charged at checkout, so it stays
// pending until the courier collects.
type SimulatedGateway struct {
	logger *logrus.Entry
}

// NewSimulatedGateway creates the demo gateway.
func NewSimulatedGateway(logger *logrus.Entry) *SimulatedGateway {
	return &SimulatedGateway{logger: logger}
}

// Charge simulates a successful payment.
func (g *SimulatedGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	result := &ChargeResult{
		Reference: "txn_" + uuid.NewString(),
		Status:    models.PaymentStatusCompleted,
	}
	if req.Method == models.PaymentMethodCOD {
		result.Status = models.PaymentStatusPending
	}

	g.logger.WithFields(logrus.Fields{
		"user_id":   req.UserID,
		"method":    req.Method,
		"amount":    req.Amount.String(),
		"reference": result.Reference,
		"status":    result.Status,
	}).Info("Payment simulated")

	return result, nil
}
