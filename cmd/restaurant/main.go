package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/clients"
	"github.com/anujghosh1220/restaurant-management-system/internal/config"
	"github.com/anujghosh1220/restaurant-management-system/internal/events"
	"github.com/anujghosh1220/restaurant-management-system/internal/handlers"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
	"github.com/anujghosh1220/restaurant-management-system/internal/server"
	"github.com/anujghosh1220/restaurant-management-system/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	cfg := config.Load()

	base := logrus.New()
	base.SetFormatter(&logrus.JSONFormatter{})
	logger := base.WithField("service", "restaurant-service")

	logger.WithField("port", cfg.Server.Port).Info("Starting restaurant service")

	db, err := initDatabase(cfg)
	if err != nil {
		logger.WithField("error", err.Error()).Fatal("Failed to connect to database")
	}
	defer db.Close()

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		logger.WithField("error", err.Error()).Fatal("Failed to create upload directory")
	}

	menuRepo := repository.NewPostgresMenuRepository(db, logger.WithField("component", "menu-repo"))
	orderRepo := repository.NewPostgresOrderRepository(db, logger.WithField("component", "order-repo"))
	cartRepo := repository.NewPostgresCartRepository(db, logger.WithField("component", "cart-repo"))
	settingsRepo := repository.NewPostgresSettingsRepository(db, logger.WithField("component", "settings-repo"))
	userRepo := repository.NewPostgresUserRepository(db, logger.WithField("component", "user-repo"))

	var menuCache repository.MenuCache
	if cfg.Features.EnableMenuCaching {
		menuCache = repository.NewRedisMenuCache(cfg.Redis, logger.WithField("component", "menu-cache"))
	}

	var publisher service.EventPublisher
	if cfg.Features.EnableOrderEvents {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka, logger.WithField("component", "events"))
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	gateway := clients.NewSimulatedGateway(logger.WithField("component", "payment-gateway"))

	menuService := service.NewMenuService(menuRepo, menuCache, logger.WithField("component", "menu-service"))
	cartService := service.NewCartService(cartRepo, menuRepo, settingsRepo, logger.WithField("component", "cart-service"))
	paymentService := service.NewPaymentService(cartRepo, orderRepo, settingsRepo, gateway, publisher, logger.WithField("component", "payment-service"))
	orderService := service.NewOrderService(orderRepo, settingsRepo, publisher, logger.WithField("component", "order-service"))
	settingsService := service.NewSettingsService(settingsRepo, logger.WithField("component", "settings-service"))
	userService := service.NewUserService(userRepo, logger.WithField("component", "user-service"))

	bootCtx, bootCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userService.EnsureAdmin(bootCtx, cfg.Admin); err != nil {
		logger.WithField("error", err.Error()).Fatal("Failed to bootstrap admin account")
	}
	bootCancel()

	h := handlers.NewHandlers(
		menuService,
		cartService,
		paymentService,
		orderService,
		settingsService,
		userService,
		cfg,
		logger.WithField("component", "handlers"),
	)

	srv := server.NewServer(cfg, h, userRepo, logger.WithField("component", "server"))

	sweeper := service.NewSweeper(menuService, cfg.Sweep.Interval, logger.WithField("component", "sweeper"))
	go func() {
		if err := sweeper.Start(context.Background()); err != nil && err != context.Canceled {
			logger.WithField("error", err.Error()).Error("Discount sweeper failed")
		}
	}()

	go func() {
		if err := srv.Run(); err != nil {
			logger.WithField("error", err.Error()).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sweeper.Stop()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithField("error", err.Error()).Error("Server forced to shutdown")
	}

	logger.Info("Server exited")
}

func initDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return db, nil
}
