package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL.
type PostgresOrderRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository.
func NewPostgresOrderRepository(db *sql.DB, logger *logrus.Entry) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		db:     db,
		logger: logger,
	}
}

// CreateFromCart inserts the order and its items and clears the cart in one
// transaction. A failure at any step rolls back the whole checkout, so an
// order can never exist without its items and a cart is never cleared without
// a corresponding order.
func (r *PostgresOrderRepository) CreateFromCart(ctx context.Context, order *models.Order, cartID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			user_id, status, payment_method, cod_payment_method,
			payment_status, payment_reference, total_amount, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`,
		order.UserID,
		order.Status,
		nullString(string(order.PaymentMethod)),
		nullString(order.CODPaymentMethod),
		order.PaymentStatus,
		nullString(order.PaymentReference),
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"user_id": order.UserID,
			"error":   err.Error(),
		}).Error("Failed to insert order")
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		item.CreatedAt = now

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (
				order_id, menu_item_id, menu_item_name, quantity, price, created_at
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`,
			item.OrderID,
			item.MenuItemID,
			item.MenuItemName,
			item.Quantity,
			item.Price,
			item.CreatedAt,
		).Scan(&item.ID)
		if err != nil {
			r.logger.WithFields(logrus.Fields{
				"order_id":     order.ID,
				"menu_item_id": item.MenuItemID,
				"error":        err.Error(),
			}).Error("Failed to insert order item")
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		r.logger.WithFields(logrus.Fields{
			"cart_id": cartID,
			"error":   err.Error(),
		}).Error("Failed to clear cart during checkout")
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.TotalAmount.String(),
	}).Info("Order created")

	return nil
}

const orderColumns = `
	id, user_id, status, payment_method, cod_payment_method,
	payment_status, payment_reference, total_amount, created_at, updated_at
`

// GetByID retrieves an order with its items.
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// ListByUser retrieves a user's orders, newest first, with items.
func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAll retrieves every order, newest first, with items.
func (r *PostgresOrderRepository) ListAll(ctx context.Context) ([]*models.Order, error) {
	return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

func (r *PostgresOrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Order, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]*models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.itemsForOrder(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

// UpdateStatus sets an order's status.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC())
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"order_id":   id,
		"new_status": status,
	}).Info("Order status updated")

	return nil
}

// Delete removes an order and its items in one transaction.
func (r *PostgresOrderRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_items WHERE order_id = $1`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return tx.Commit()
}

func (r *PostgresOrderRepository) itemsForOrder(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, menu_item_id, menu_item_name, quantity, price, created_at
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0)
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.MenuItemID,
			&item.MenuItemName,
			&item.Quantity,
			&item.Price,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var paymentMethod, codPaymentMethod, paymentReference sql.NullString

	err := row.Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&paymentMethod,
		&codPaymentMethod,
		&order.PaymentStatus,
		&paymentReference,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if paymentMethod.Valid {
		order.PaymentMethod = models.PaymentMethod(paymentMethod.String)
	}
	if codPaymentMethod.Valid {
		order.CODPaymentMethod = codPaymentMethod.String
	}
	if paymentReference.Valid {
		order.PaymentReference = paymentReference.String
	}

	return &order, nil
}
