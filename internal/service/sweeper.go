package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Sweeper periodically reverts expired discounts so items never stay cheap
// past their window, even if nobody requests them.
type Sweeper struct {
	menuService *MenuService
	interval    time.Duration
	logger      *logrus.Entry
	now         func() time.Time
	stopCh      chan struct{}
}

// NewSweeper creates a new discount sweeper.
func NewSweeper(menuService *MenuService, interval time.Duration, logger *logrus.Entry) *Sweeper {
	return &Sweeper{
		menuService: menuService,
		interval:    interval,
		logger:      logger,
		now:         time.Now,
		stopCh:      make(chan struct{}),
	}
}

// Start sweeps once immediately, then on every tick until the context is
// cancelled or Stop is called.
func (s *Sweeper) Start(ctx context.Context) error {
	s.logger.WithField("interval", s.interval.String()).Info("Starting discount sweeper")

	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.stopCh:
			s.logger.Info("Discount sweeper stopped")
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop stops the sweeper.
func (s *Sweeper) Stop() {
	close(s.stopCh)
}

func (s *Sweeper) sweep(ctx context.Context) {
	if _, err := s.menuService.SweepExpiredDiscounts(ctx, s.now()); err != nil {
		s.logger.WithField("error", err.Error()).Error("Discount sweep failed")
	}
}
