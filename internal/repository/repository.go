package repository

import (
	"context"
	"time"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// MenuRepository persists menu items and their discount fields.
type MenuRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.MenuItem, error)
	List(ctx context.Context, category string) ([]*models.MenuItem, error)
	Categories(ctx context.Context) ([]string, error)

	// UpdateDiscountFields writes the discount columns and the cached price
	// in a single transaction; either all fields persist or none do.
	UpdateDiscountFields(ctx context.Context, item *models.MenuItem) error

	// SweepExpiredDiscounts reverts every item whose discount window ended
	// before now, committing the whole batch at once. Returns the number of
	// items reverted.
	SweepExpiredDiscounts(ctx context.Context, now time.Time) (int, error)
}

// OrderRepository persists orders and their lines.
type OrderRepository interface {
	// CreateFromCart inserts the order with its items and clears the cart in
	// one transaction. A failure at any step rolls back everything.
	CreateFromCart(ctx context.Context, order *models.Order, cartID int64) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Order, error)
	ListAll(ctx context.Context) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error
	Delete(ctx context.Context, id int64) error
}

// CartRepository persists per-user carts.
type CartRepository interface {
	GetOrCreateByUser(ctx context.Context, userID int64) (*models.Cart, error)
	AddItem(ctx context.Context, cartID, menuItemID int64, quantity int) error
	SetItemQuantity(ctx context.Context, cartID, menuItemID int64, quantity int) error
	Clear(ctx context.Context, cartID int64) error
}

// SettingsRepository reads and writes the global rates singleton.
type SettingsRepository interface {
	// Get returns the settings row, inserting the defaults on first access.
	Get(ctx context.Context) (*models.Settings, error)
	Update(ctx context.Context, settings *models.Settings) error
}

// UserRepository persists users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// MenuCache caches the unfiltered menu listing.
type MenuCache interface {
	GetMenu(ctx context.Context) ([]*models.MenuItem, error)
	SetMenu(ctx context.Context, items []*models.MenuItem) error
	Invalidate(ctx context.Context) error
}
