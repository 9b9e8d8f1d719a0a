package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// PostgresCartRepository implements CartRepository using PostgreSQL.
type PostgresCartRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewPostgresCartRepository creates a new PostgreSQL cart repository.
func NewPostgresCartRepository(db *sql.DB, logger *logrus.Entry) *PostgresCartRepository {
	return &PostgresCartRepository{
		db:     db,
		logger: logger,
	}
}

// GetOrCreateByUser returns the user's cart with its items, creating an empty
// cart the first time the user needs one.
func (r *PostgresCartRepository) GetOrCreateByUser(ctx context.Context, userID int64) (*models.Cart, error) {
	var cart models.Cart

	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, updated_at FROM carts WHERE user_id = $1`,
		userID,
	).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)

	if err == sql.ErrNoRows {
		now := time.Now().UTC()
		err = r.db.QueryRowContext(ctx, `
			INSERT INTO carts (user_id, created_at, updated_at)
			VALUES ($1, $2, $2)
			RETURNING id
		`, userID, now).Scan(&cart.ID)
		if err != nil {
			return nil, err
		}
		cart.UserID = userID
		cart.CreatedAt = now
		cart.UpdatedAt = now

		r.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"cart_id": cart.ID,
		}).Debug("Cart created")
	} else if err != nil {
		return nil, err
	}

	items, err := r.itemsForCart(ctx, cart.ID)
	if err != nil {
		return nil, err
	}
	cart.Items = items

	return &cart, nil
}

// AddItem adds a menu item to a cart, merging the quantity into an existing
// line when the item is already present.
func (r *PostgresCartRepository) AddItem(ctx context.Context, cartID, menuItemID int64, quantity int) error {
	now := time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cart_items (cart_id, menu_item_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (cart_id, menu_item_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at
	`, cartID, menuItemID, quantity, now)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"cart_id":      cartID,
			"menu_item_id": menuItemID,
			"error":        err.Error(),
		}).Error("Failed to add cart item")
		return err
	}

	return nil
}

// SetItemQuantity sets the quantity of a cart line. Zero or negative removes
// the line.
func (r *PostgresCartRepository) SetItemQuantity(ctx context.Context, cartID, menuItemID int64, quantity int) error {
	if quantity <= 0 {
		result, err := r.db.ExecContext(ctx,
			`DELETE FROM cart_items WHERE cart_id = $1 AND menu_item_id = $2`,
			cartID, menuItemID)
		if err != nil {
			return err
		}
		rowsAffected, _ := result.RowsAffected()
		if rowsAffected == 0 {
			return models.ErrNotFound
		}
		return nil
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE cart_items SET quantity = $3, updated_at = $4
		WHERE cart_id = $1 AND menu_item_id = $2
	`, cartID, menuItemID, quantity, time.Now().UTC())
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Clear removes every line from a cart.
func (r *PostgresCartRepository) Clear(ctx context.Context, cartID int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"cart_id": cartID,
			"error":   err.Error(),
		}).Error("Failed to clear cart")
	}
	return err
}

func (r *PostgresCartRepository) itemsForCart(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	// The join pulls the current cached price; callers that need the
	// discount-aware price recompute it from the menu item.
	rows, err := r.db.QueryContext(ctx, `
		SELECT ci.id, ci.cart_id, ci.menu_item_id, ci.quantity,
		       ci.created_at, ci.updated_at,
		       mi.name, mi.price, COALESCE(mi.image_path, '')
		FROM cart_items ci
		JOIN menu_items mi ON mi.id = ci.menu_item_id
		WHERE ci.cart_id = $1
		ORDER BY ci.id
	`, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.CartItem, 0)
	for rows.Next() {
		var item models.CartItem
		err := rows.Scan(
			&item.ID,
			&item.CartID,
			&item.MenuItemID,
			&item.Quantity,
			&item.CreatedAt,
			&item.UpdatedAt,
			&item.MenuItemName,
			&item.UnitPrice,
			&item.ImagePath,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
