package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/clients"
	"github.com/anujghosh1220/restaurant-management-system/internal/metrics"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/pricing"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

// EventPublisher emits order lifecycle events. Publishing is best-effort:
// checkout never fails because the broker is down.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order *models.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *models.Order, previousStatus models.OrderStatus) error
}

// PaymentService runs the checkout flow: validate the payment details, price
// the cart, charge the gateway and persist the order.
type PaymentService struct {
	cartRepo     repository.CartRepository
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	gateway      clients.PaymentGateway
	publisher    EventPublisher
	logger       *logrus.Entry
}

// NewPaymentService creates a new payment service. publisher may be nil when
// order events are disabled.
func NewPaymentService(
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	gateway clients.PaymentGateway,
	publisher EventPublisher,
	logger *logrus.Entry,
) *PaymentService {
	return &PaymentService{
		cartRepo:     cartRepo,
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		publisher:    publisher,
		logger:       logger,
	}
}

// CheckoutResult is what the handler returns to the customer after checkout.
type CheckoutResult struct {
	Order  *models.Order  `json:"order"`
	Totals pricing.Totals `json:"totals"`
}

// ProcessPayment checks out the user's cart. The order, its line items and
// the cart clear are committed in one transaction; the stamped total is the
// same calculation the cart summary showed.
func (s *PaymentService) ProcessPayment(ctx context.Context, userID int64, req *models.ProcessPaymentRequest) (*CheckoutResult, error) {
	if err := ValidatePaymentRequest(req); err != nil {
		metrics.PaymentFailures.Inc()
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		metrics.PaymentFailures.Inc()
		return nil, models.NewValidationError("cart", "cart is empty")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	totals := pricing.CalculateOrderTotals(
		cartLines(cart.Items),
		settings.GSTPercentage,
		settings.DiscountPercentage,
	)

	charge, err := s.gateway.Charge(ctx, &clients.ChargeRequest{
		Amount: totals.Total,
		Method: req.PaymentMethod,
		UserID: userID,
	})
	if err != nil {
		metrics.PaymentFailures.Inc()
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"method":  req.PaymentMethod,
			"error":   err.Error(),
		}).Error("Payment charge failed")
		return nil, err
	}

	order := &models.Order{
		UserID:           userID,
		Status:           models.OrderStatusPaid,
		PaymentMethod:    req.PaymentMethod,
		PaymentStatus:    charge.Status,
		PaymentReference: charge.Reference,
		TotalAmount:      totals.Total,
	}
	if req.PaymentMethod == models.PaymentMethodCOD {
		// Cash on delivery is collected at the door, not at checkout.
		order.Status = models.OrderStatusPending
		order.CODPaymentMethod = req.PaymentDetails.CODPaymentMethod
	}

	for _, item := range cart.Items {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			Quantity:     item.Quantity,
			Price:        item.UnitPrice,
		})
	}

	if err := s.orderRepo.CreateFromCart(ctx, order, cart.ID); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(string(req.PaymentMethod)).Inc()
	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"method":   req.PaymentMethod,
		"total":    totals.Total.String(),
	}).Info("Order created")

	if s.publisher != nil {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishOrderCreated(pubCtx, order); err != nil {
			s.logger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to publish order created event")
		}
	}

	return &CheckoutResult{Order: order, Totals: totals}, nil
}
