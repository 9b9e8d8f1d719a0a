package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

// SettingsService reads and updates the global order rates.
type SettingsService struct {
	settingsRepo repository.SettingsRepository
	logger       *logrus.Entry
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo repository.SettingsRepository, logger *logrus.Entry) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo, logger: logger}
}

// Get returns the global rates, creating the defaults on first access.
func (s *SettingsService) Get(ctx context.Context) (*models.Settings, error) {
	return s.settingsRepo.Get(ctx)
}

// Update applies a partial update to the global rates. Omitted fields keep
// their current value.
func (s *SettingsService) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.Settings, error) {
	if err := ValidateSettingsUpdate(req); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.GSTPercentage != nil {
		settings.GSTPercentage = *req.GSTPercentage
	}
	if req.DiscountPercentage != nil {
		settings.DiscountPercentage = *req.DiscountPercentage
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"gst_percentage":      settings.GSTPercentage,
		"discount_percentage": settings.DiscountPercentage,
	}).Info("Settings updated")

	return settings, nil
}
