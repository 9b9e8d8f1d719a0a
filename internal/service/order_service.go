package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/pricing"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

// OrderService reads order history and runs admin order actions.
type OrderService struct {
	orderRepo    repository.OrderRepository
	settingsRepo repository.SettingsRepository
	publisher    EventPublisher
	logger       *logrus.Entry
}

// NewOrderService creates a new order service. publisher may be nil when
// order events are disabled.
func NewOrderService(
	orderRepo repository.OrderRepository,
	settingsRepo repository.SettingsRepository,
	publisher EventPublisher,
	logger *logrus.Entry,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		settingsRepo: settingsRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// GetUserOrders returns the user's order history, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID int64) ([]*models.Order, error) {
	return s.orderRepo.ListByUser(ctx, userID)
}

// GetOrderForUser returns an order if the user owns it or is an admin.
// Orders the caller may not see are reported as not found, not forbidden,
// so order IDs don't leak.
func (s *OrderService) GetOrderForUser(ctx context.Context, user *models.User, orderID int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.UserID != user.ID && !user.IsAdmin {
		return nil, models.ErrNotFound
	}

	return order, nil
}

// OrderTotals recomputes the full breakdown for an order from its stored
// lines and the current global rates. Confirmations and invoices show the
// same subtotal, discount, GST and total that checkout computed.
func (s *OrderService) OrderTotals(ctx context.Context, order *models.Order) (pricing.Totals, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return pricing.Totals{}, err
	}

	lines := make([]pricing.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		lines = append(lines, pricing.Line{Price: item.Price, Qty: item.Quantity})
	}

	return pricing.CalculateOrderTotals(
		lines,
		settings.GSTPercentage,
		settings.DiscountPercentage,
	), nil
}

// AdminListOrders returns every order in the system, newest first.
func (s *OrderService) AdminListOrders(ctx context.Context) ([]*models.Order, error) {
	return s.orderRepo.ListAll(ctx)
}

// Admin actions on an order.
const (
	AdminActionMarkPaid      = "mark_paid"
	AdminActionMarkCompleted = "mark_completed"
	AdminActionDelete        = "delete"
)

// AdminAction applies an administrative action to an order.
func (s *OrderService) AdminAction(ctx context.Context, req *models.AdminOrderActionRequest) error {
	order, err := s.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		return err
	}

	previousStatus := order.Status

	switch req.Action {
	case AdminActionMarkPaid:
		order.Status = models.OrderStatusPaid
		order.PaymentStatus = models.PaymentStatusCompleted
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status); err != nil {
			return err
		}
	case AdminActionMarkCompleted:
		order.Status = models.OrderStatusCompleted
		if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status); err != nil {
			return err
		}
	case AdminActionDelete:
		if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
			return err
		}
		s.logger.WithFields(logrus.Fields{
			"order_id": order.ID,
		}).Info("Order deleted by admin")
		return nil
	default:
		return models.NewValidationError("action", "unknown order action")
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"action":   req.Action,
		"status":   order.Status,
	}).Info("Order status changed by admin")

	if s.publisher != nil {
		pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.publisher.PublishOrderStatusChanged(pubCtx, order, previousStatus); err != nil {
			s.logger.WithFields(logrus.Fields{
				"order_id": order.ID,
				"error":    err.Error(),
			}).Warn("Failed to publish order status event")
		}
	}

	return nil
}
