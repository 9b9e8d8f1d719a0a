package service

import (
	"context"
	"io"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// In-memory repositories for service tests.

type fakeMenuRepo struct {
	items  map[int64]*models.MenuItem
	nextID int64
}

func newFakeMenuRepo() *fakeMenuRepo {
	return &fakeMenuRepo{items: make(map[int64]*models.MenuItem), nextID: 1}
}

func (r *fakeMenuRepo) Create(_ context.Context, item *models.MenuItem) error {
	item.ID = r.nextID
	r.nextID++
	if item.OriginalPrice.IsZero() {
		item.OriginalPrice = item.Price
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

// Update rewrites the editable columns only, leaving the discount window
// alone like the Postgres implementation does.
func (r *fakeMenuRepo) Update(_ context.Context, item *models.MenuItem) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Name = item.Name
	stored.Description = item.Description
	stored.Price = item.Price
	stored.OriginalPrice = item.OriginalPrice
	stored.Category = item.Category
	stored.ImagePath = item.ImagePath
	stored.GST = item.GST
	return nil
}

func (r *fakeMenuRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakeMenuRepo) GetByID(_ context.Context, id int64) (*models.MenuItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *item
	return &cp, nil
}

func (r *fakeMenuRepo) List(_ context.Context, category string) ([]*models.MenuItem, error) {
	var out []*models.MenuItem
	for _, item := range r.items {
		if category != "" && item.Category != category {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeMenuRepo) Categories(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, item := range r.items {
		if item.Category != "" && !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *fakeMenuRepo) UpdateDiscountFields(_ context.Context, item *models.MenuItem) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return models.ErrNotFound
	}
	stored.Price = item.Price
	stored.OriginalPrice = item.OriginalPrice
	stored.DiscountPercentage = item.DiscountPercentage
	stored.DiscountStart = item.DiscountStart
	stored.DiscountEnd = item.DiscountEnd
	return nil
}

func (r *fakeMenuRepo) SweepExpiredDiscounts(_ context.Context, now time.Time) (int, error) {
	var reverted int
	for _, item := range r.items {
		if item.DiscountEnd != nil && item.DiscountEnd.Before(now) {
			item.Price = item.OriginalPrice
			item.DiscountPercentage = 0
			item.DiscountStart = nil
			item.DiscountEnd = nil
			reverted++
		}
	}
	return reverted, nil
}

type fakeCartRepo struct {
	carts  map[int64]*models.Cart
	menu   *fakeMenuRepo
	nextID int64
}

func newFakeCartRepo(menu *fakeMenuRepo) *fakeCartRepo {
	return &fakeCartRepo{carts: make(map[int64]*models.Cart), menu: menu, nextID: 1}
}

func (r *fakeCartRepo) GetOrCreateByUser(_ context.Context, userID int64) (*models.Cart, error) {
	for _, cart := range r.carts {
		if cart.UserID == userID {
			cp := *cart
			cp.Items = append([]models.CartItem(nil), cart.Items...)
			return &cp, nil
		}
	}
	cart := &models.Cart{ID: r.nextID, UserID: userID}
	r.nextID++
	r.carts[cart.ID] = cart
	cp := *cart
	return &cp, nil
}

func (r *fakeCartRepo) AddItem(_ context.Context, cartID, menuItemID int64, quantity int) error {
	cart, ok := r.carts[cartID]
	if !ok {
		return models.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == menuItemID {
			cart.Items[i].Quantity += quantity
			return nil
		}
	}
	item := r.menu.items[menuItemID]
	cart.Items = append(cart.Items, models.CartItem{
		CartID:       cartID,
		MenuItemID:   menuItemID,
		Quantity:     quantity,
		MenuItemName: item.Name,
		UnitPrice:    item.Price,
	})
	return nil
}

func (r *fakeCartRepo) SetItemQuantity(_ context.Context, cartID, menuItemID int64, quantity int) error {
	cart, ok := r.carts[cartID]
	if !ok {
		return models.ErrNotFound
	}
	for i := range cart.Items {
		if cart.Items[i].MenuItemID == menuItemID {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			return nil
		}
	}
	return models.ErrNotFound
}

// Clear is a no-op on an unknown cart, like the Postgres DELETE.
func (r *fakeCartRepo) Clear(_ context.Context, cartID int64) error {
	if cart, ok := r.carts[cartID]; ok {
		cart.Items = nil
	}
	return nil
}

type fakeOrderRepo struct {
	orders map[int64]*models.Order
	carts  *fakeCartRepo
	nextID int64
}

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*models.Order), carts: carts, nextID: 1}
}

func (r *fakeOrderRepo) CreateFromCart(ctx context.Context, order *models.Order, cartID int64) error {
	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	r.orders[order.ID] = &cp
	if r.carts != nil {
		return r.carts.Clear(ctx, cartID)
	}
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *order
	cp.Items = append([]models.OrderItem(nil), order.Items...)
	return &cp, nil
}

func (r *fakeOrderRepo) ListByUser(_ context.Context, userID int64) ([]*models.Order, error) {
	var out []*models.Order
	for _, order := range r.orders {
		if order.UserID == userID {
			cp := *order
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) ListAll(_ context.Context) ([]*models.Order, error) {
	var out []*models.Order
	for _, order := range r.orders {
		cp := *order
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id int64, status models.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return models.ErrNotFound
	}
	order.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.orders[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeSettingsRepo struct {
	settings models.Settings
}

func newFakeSettingsRepo(gst, discount float64) *fakeSettingsRepo {
	return &fakeSettingsRepo{settings: models.Settings{ID: 1, GSTPercentage: gst, DiscountPercentage: discount}}
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*models.Settings, error) {
	cp := r.settings
	return &cp, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, settings *models.Settings) error {
	r.settings = *settings
	return nil
}

type fakeUserRepo struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			cp := *user
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func testLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

type fakePublisher struct {
	created       []*models.Order
	statusChanged []*models.Order
}

func (p *fakePublisher) PublishOrderCreated(_ context.Context, order *models.Order) error {
	p.created = append(p.created, order)
	return nil
}

func (p *fakePublisher) PublishOrderStatusChanged(_ context.Context, order *models.Order, _ models.OrderStatus) error {
	p.statusChanged = append(p.statusChanged, order)
	return nil
}
