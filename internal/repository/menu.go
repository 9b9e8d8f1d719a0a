package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// PostgresMenuRepository implements MenuRepository using PostgreSQL.
type PostgresMenuRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewPostgresMenuRepository creates a new PostgreSQL menu repository.
func NewPostgresMenuRepository(db *sql.DB, logger *logrus.Entry) *PostgresMenuRepository {
	return &PostgresMenuRepository{
		db:     db,
		logger: logger,
	}
}

const menuColumns = `
	id, name, description, price, original_price, discount_percentage,
	discount_start, discount_end, category, image_path, gst,
	created_at, updated_at
`

// Create inserts a new menu item. OriginalPrice is initialized to the price
// when the caller left it unset.
func (r *PostgresMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.OriginalPrice.IsZero() {
		item.OriginalPrice = item.Price
	}

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
		INSERT INTO menu_items (
			name, description, price, original_price, discount_percentage,
			discount_start, discount_end, category, image_path, gst,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		item.Name,
		nullString(item.Description),
		item.Price,
		item.OriginalPrice,
		item.DiscountPercentage,
		item.DiscountStart,
		item.DiscountEnd,
		nullString(item.Category),
		nullString(item.ImagePath),
		item.GST,
		item.CreatedAt,
		item.UpdatedAt,
	).Scan(&item.ID)

	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"name":  item.Name,
			"error": err.Error(),
		}).Error("Failed to create menu item")
		return err
	}

	r.logger.WithFields(logrus.Fields{
		"item_id": item.ID,
		"name":    item.Name,
	}).Info("Menu item created")

	return nil
}

// Update rewrites the editable columns of a menu item.
func (r *PostgresMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, original_price = $5,
		    category = $6, image_path = $7, gst = $8, updated_at = $9
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		nullString(item.Description),
		item.Price,
		item.OriginalPrice,
		nullString(item.Category),
		nullString(item.ImagePath),
		item.GST,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"item_id": item.ID,
			"error":   err.Error(),
		}).Error("Failed to update menu item")
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// Delete removes a menu item.
func (r *PostgresMenuRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	r.logger.WithField("item_id", id).Info("Menu item deleted")
	return nil
}

// GetByID retrieves a menu item by its identifier.
func (r *PostgresMenuRepository) GetByID(ctx context.Context, id int64) (*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items WHERE id = $1`

	item, err := scanMenuItem(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"item_id": id,
			"error":   err.Error(),
		}).Error("Failed to fetch menu item")
		return nil, err
	}

	return item, nil
}

// List retrieves menu items, optionally filtered by category, newest first.
func (r *PostgresMenuRepository) List(ctx context.Context, category string) ([]*models.MenuItem, error) {
	query := `SELECT ` + menuColumns + ` FROM menu_items`
	args := make([]interface{}, 0, 1)

	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.MenuItem, 0)
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Categories returns the distinct non-empty categories.
func (r *PostgresMenuRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM menu_items WHERE category IS NOT NULL ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// UpdateDiscountFields writes the discount columns and the cached price in a
// single statement, so a failure leaves no partial update behind.
func (r *PostgresMenuRepository) UpdateDiscountFields(ctx context.Context, item *models.MenuItem) error {
	query := `
		UPDATE menu_items
		SET price = $2, original_price = $3, discount_percentage = $4,
		    discount_start = $5, discount_end = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Price,
		item.OriginalPrice,
		item.DiscountPercentage,
		item.DiscountStart,
		item.DiscountEnd,
		time.Now().UTC(),
	)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"item_id": item.ID,
			"error":   err.Error(),
		}).Error("Failed to update discount fields")
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}

// SweepExpiredDiscounts reverts every expired discount in one statement. The
// statement is its own transaction, so the batch commits all-or-nothing.
func (r *PostgresMenuRepository) SweepExpiredDiscounts(ctx context.Context, now time.Time) (int, error) {
	query := `
		UPDATE menu_items
		SET price = original_price, discount_percentage = 0,
		    discount_start = NULL, discount_end = NULL, updated_at = $2
		WHERE discount_end IS NOT NULL AND discount_end < $1
	`

	result, err := r.db.ExecContext(ctx, query, now, time.Now().UTC())
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to sweep expired discounts")
		return 0, err
	}

	rowsAffected, _ := result.RowsAffected()
	return int(rowsAffected), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMenuItem(row rowScanner) (*models.MenuItem, error) {
	var item models.MenuItem
	var description, category, imagePath sql.NullString
	var discountStart, discountEnd sql.NullTime

	err := row.Scan(
		&item.ID,
		&item.Name,
		&description,
		&item.Price,
		&item.OriginalPrice,
		&item.DiscountPercentage,
		&discountStart,
		&discountEnd,
		&category,
		&imagePath,
		&item.GST,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		item.Description = description.String
	}
	if category.Valid {
		item.Category = category.String
	}
	if imagePath.Valid {
		item.ImagePath = imagePath.String
	}
	if discountStart.Valid {
		t := discountStart.Time
		item.DiscountStart = &t
	}
	if discountEnd.Valid {
		t := discountEnd.Time
		item.DiscountEnd = &t
	}

	return &item, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
