package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// PostgresSettingsRepository implements SettingsRepository using PostgreSQL.
type PostgresSettingsRepository struct {
	db     *sql.DB
	logger *logrus.Entry
}

// NewPostgresSettingsRepository creates a new PostgreSQL settings repository.
func NewPostgresSettingsRepository(db *sql.DB, logger *logrus.Entry) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{
		db:     db,
		logger: logger,
	}
}

// Get returns the settings singleton, inserting the default rates the first
// time it is read.
func (r *PostgresSettingsRepository) Get(ctx context.Context) (*models.Settings, error) {
	var s models.Settings

	err := r.db.QueryRowContext(ctx, `
		SELECT id, gst_percentage, discount_percentage, updated_at
		FROM settings
		ORDER BY id
		LIMIT 1
	`).Scan(&s.ID, &s.GSTPercentage, &s.DiscountPercentage, &s.UpdatedAt)

	if err == sql.ErrNoRows {
		// Two concurrent first reads may race here; the conflict guard on the
		// fixed id keeps the singleton a single row, and the re-read below
		// returns whichever insert won.
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO settings (id, gst_percentage, discount_percentage, updated_at)
			VALUES (1, $1, $2, $3)
			ON CONFLICT (id) DO NOTHING
		`, models.DefaultGSTPercentage, models.DefaultDiscountPercentage, time.Now().UTC())
		if err != nil {
			return nil, err
		}

		err = r.db.QueryRowContext(ctx, `
			SELECT id, gst_percentage, discount_percentage, updated_at
			FROM settings
			ORDER BY id
			LIMIT 1
		`).Scan(&s.ID, &s.GSTPercentage, &s.DiscountPercentage, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}

		r.logger.Info("Default settings created")
		return &s, nil
	}
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Update writes new global rates.
func (r *PostgresSettingsRepository) Update(ctx context.Context, settings *models.Settings) error {
	settings.UpdatedAt = time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		UPDATE settings
		SET gst_percentage = $2, discount_percentage = $3, updated_at = $4
		WHERE id = $1
	`, settings.ID, settings.GSTPercentage, settings.DiscountPercentage, settings.UpdatedAt)
	if err != nil {
		r.logger.WithField("error", err.Error()).Error("Failed to update settings")
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return models.ErrNotFound
	}

	return nil
}
