package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/pricing"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

// CartService handles the per-user cart.
type CartService struct {
	cartRepo     repository.CartRepository
	menuRepo     repository.MenuRepository
	settingsRepo repository.SettingsRepository
	logger       *logrus.Entry
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	menuRepo repository.MenuRepository,
	settingsRepo repository.SettingsRepository,
	logger *logrus.Entry,
) *CartService {
	return &CartService{
		cartRepo:     cartRepo,
		menuRepo:     menuRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetCart returns the user's cart, creating an empty one on first use.
func (s *CartService) GetCart(ctx context.Context, userID int64) (*models.Cart, error) {
	return s.cartRepo.GetOrCreateByUser(ctx, userID)
}

// AddItem puts a menu item in the user's cart, merging quantities when the
// item is already there. Returns the updated cart.
func (s *CartService) AddItem(ctx context.Context, userID, menuItemID int64, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return nil, models.NewValidationError("quantity", "quantity must be positive")
	}

	if _, err := s.menuRepo.GetByID(ctx, menuItemID); err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.AddItem(ctx, cart.ID, menuItemID, quantity); err != nil {
		return nil, err
	}

	return s.cartRepo.GetOrCreateByUser(ctx, userID)
}

// UpdateItem sets a cart line's quantity; zero or negative removes the line.
// Returns the updated cart.
func (s *CartService) UpdateItem(ctx context.Context, userID, menuItemID int64, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cartRepo.SetItemQuantity(ctx, cart.ID, menuItemID, quantity); err != nil {
		return nil, err
	}

	return s.cartRepo.GetOrCreateByUser(ctx, userID)
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}

	return s.cartRepo.Clear(ctx, cart.ID)
}

// Summary computes the cart's totals with the current global rates. This is
// the same calculation checkout, invoices and confirmations run, so the
// preview always matches the amount eventually charged.
func (s *CartService) Summary(ctx context.Context, userID int64) (*models.Cart, pricing.Totals, error) {
	cart, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, pricing.Totals{}, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, pricing.Totals{}, err
	}

	totals := pricing.CalculateOrderTotals(
		cartLines(cart.Items),
		settings.GSTPercentage,
		settings.DiscountPercentage,
	)

	return cart, totals, nil
}

func cartLines(items []models.CartItem) []pricing.LineItem {
	lines := make([]pricing.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, pricing.Line{Price: item.UnitPrice, Qty: item.Quantity})
	}
	return lines
}
