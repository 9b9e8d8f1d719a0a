package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/metrics"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

// MenuService handles menu CRUD and the discount lifecycle.
type MenuService struct {
	menuRepo repository.MenuRepository
	cache    repository.MenuCache
	caching  bool
	logger   *logrus.Entry
	now      func() time.Time

	// itemLocks serializes discount mutations per item so two concurrent
	// applies can never both snapshot a stale original price.
	itemLocks sync.Map
}

// NewMenuService creates a new menu service. cache may be nil when caching is
// disabled.
func NewMenuService(menuRepo repository.MenuRepository, cache repository.MenuCache, logger *logrus.Entry) *MenuService {
	return &MenuService{
		menuRepo: menuRepo,
		cache:    cache,
		caching:  cache != nil,
		logger:   logger,
		now:      time.Now,
	}
}

// ListMenu returns menu items, optionally filtered by category, with each
// item's effective price recomputed from its discount window rather than the
// cached column.
func (s *MenuService) ListMenu(ctx context.Context, category string) ([]*models.MenuItem, error) {
	var items []*models.MenuItem
	var err error

	if s.caching && category == "" {
		if cached, cacheErr := s.cache.GetMenu(ctx); cacheErr == nil && cached != nil {
			items = cached
		}
	}

	if items == nil {
		items, err = s.menuRepo.List(ctx, category)
		if err != nil {
			return nil, err
		}
		if s.caching && category == "" {
			if err := s.cache.SetMenu(ctx, items); err != nil {
				// Cache failures are logged, never surfaced.
				s.logger.WithField("error", err.Error()).Warn("Failed to cache menu")
			}
		}
	}

	now := s.now()
	for _, item := range items {
		item.Price = item.CurrentPriceAt(now)
	}

	return items, nil
}

// Categories returns the distinct menu categories.
func (s *MenuService) Categories(ctx context.Context) ([]string, error) {
	return s.menuRepo.Categories(ctx)
}

// GetItem returns one menu item with its effective price recomputed.
func (s *MenuService) GetItem(ctx context.Context, id int64) (*models.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Price = item.CurrentPriceAt(s.now())
	return item, nil
}

// CreateItem adds a new menu item.
func (s *MenuService) CreateItem(ctx context.Context, item *models.MenuItem) error {
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// UpdateItem edits a menu item. When no discount is active the original
// price follows the edited price; an active discount keeps its reference
// price untouched.
func (s *MenuService) UpdateItem(ctx context.Context, item *models.MenuItem) error {
	unlock := s.lockItem(item.ID)
	defer unlock()

	current, err := s.menuRepo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}

	if !current.HasActiveDiscountAt(s.now()) {
		item.OriginalPrice = item.Price
	} else {
		item.OriginalPrice = current.OriginalPrice
		item.Price = current.Price
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// DeleteItem removes a menu item.
func (s *MenuService) DeleteItem(ctx context.Context, id int64) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// ApplyDiscount puts a time-bounded percentage discount on an item.
//
// The original price is snapshotted only when the item has no active
// discount, so re-applying while a discount is running keeps the prior
// reference price and cannot compound. Callers validate the range; the
// bounds are still checked here defensively so a bad value can never
// produce a negative or inverted price.
func (s *MenuService) ApplyDiscount(ctx context.Context, itemID int64, percentage float64, days int) (*models.MenuItem, error) {
	if percentage <= 0 || percentage > 100 {
		return nil, fmt.Errorf("%w: discount percentage %v out of range", models.ErrInvalidArgument, percentage)
	}
	if days <= 0 {
		return nil, fmt.Errorf("%w: discount days %d must be positive", models.ErrInvalidArgument, days)
	}

	unlock := s.lockItem(itemID)
	defer unlock()

	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !item.HasActiveDiscountAt(now) {
		item.OriginalPrice = item.Price
	}

	start := now
	end := now.Add(time.Duration(days) * 24 * time.Hour)
	item.DiscountPercentage = percentage
	item.DiscountStart = &start
	item.DiscountEnd = &end
	item.Price = models.DiscountedPrice(item.OriginalPrice, percentage)

	if err := s.menuRepo.UpdateDiscountFields(ctx, item); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"item_id":    itemID,
		"percentage": percentage,
		"days":       days,
	}).Info("Discount applied")

	s.invalidateCache(ctx)
	return item, nil
}

// RemoveDiscount restores the original price and clears the discount window.
// Removing from an already-undiscounted item is a no-op.
func (s *MenuService) RemoveDiscount(ctx context.Context, itemID int64) (*models.MenuItem, error) {
	unlock := s.lockItem(itemID)
	defer unlock()

	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	item.Price = item.OriginalPrice
	item.DiscountPercentage = 0
	item.DiscountStart = nil
	item.DiscountEnd = nil

	if err := s.menuRepo.UpdateDiscountFields(ctx, item); err != nil {
		return nil, err
	}

	s.logger.WithField("item_id", itemID).Info("Discount removed")

	s.invalidateCache(ctx)
	return item, nil
}

// SweepExpiredDiscounts reverts every item whose discount window ended before
// now. The batch commits all-or-nothing; a failure is reported to the caller
// and repaired by the next scheduled sweep.
func (s *MenuService) SweepExpiredDiscounts(ctx context.Context, now time.Time) (int, error) {
	reverted, err := s.menuRepo.SweepExpiredDiscounts(ctx, now)
	if err != nil {
		metrics.DiscountSweeps.WithLabelValues("error").Inc()
		return 0, err
	}

	metrics.DiscountSweeps.WithLabelValues("ok").Inc()
	if reverted > 0 {
		metrics.DiscountSweepReverted.Add(float64(reverted))
		s.logger.WithField("count", reverted).Info("Removed expired discounts")
		s.invalidateCache(ctx)
	}

	return reverted, nil
}

func (s *MenuService) lockItem(id int64) func() {
	v, _ := s.itemLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (s *MenuService) invalidateCache(ctx context.Context) {
	if !s.caching {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.WithField("error", err.Error()).Warn("Failed to invalidate menu cache")
	}
}
