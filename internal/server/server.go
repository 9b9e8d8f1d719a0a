package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/config"
	"github.com/anujghosh1220/restaurant-management-system/internal/handlers"
	"github.com/anujghosh1220/restaurant-management-system/internal/middleware"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

type Server struct {
	config   *config.Config
	router   *gin.Engine
	handlers *handlers.Handlers
	userRepo repository.UserRepository
	logger   *logrus.Entry
	httpSrv  *http.Server
}

func NewServer(cfg *config.Config, h *handlers.Handlers, userRepo repository.UserRepository, logger *logrus.Entry) *Server {
	router := gin.Default()
	router.MaxMultipartMemory = cfg.Uploads.MaxSizeBytes

	s := &Server{
		config:   cfg,
		router:   router,
		handlers: h,
		userRepo: userRepo,
		logger:   logger,
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handlers.Health)
	s.router.GET("/ready", s.handlers.Ready)
	s.router.GET("/live", s.handlers.Live)
	s.router.GET("/version", s.handlers.Version)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.Static("/static/uploads", s.config.Uploads.Dir)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/auth/signup", s.handlers.Signup)
		v1.POST("/auth/login", s.handlers.Login)

		v1.GET("/menu", s.handlers.ListMenu)
		v1.GET("/menu/categories", s.handlers.ListCategories)
		v1.GET("/menu/:id", s.handlers.GetMenuItem)
		v1.GET("/menu/:id/invoice", s.handlers.ItemInvoice)

		v1.GET("/settings", s.handlers.GetSettings)
	}

	authed := v1.Group("")
	authed.Use(middleware.RequireUser(s.userRepo, s.logger))
	{
		authed.GET("/auth/me", s.handlers.Me)

		authed.GET("/cart", s.handlers.GetCart)
		authed.DELETE("/cart", s.handlers.ClearCart)
		authed.POST("/cart/items", s.handlers.AddToCart)
		authed.PUT("/cart/items", s.handlers.UpdateCartItem)

		authed.POST("/payment/process", s.handlers.ProcessPayment)

		authed.GET("/orders", s.handlers.ListMyOrders)
		authed.GET("/orders/:id", s.handlers.GetOrder)
		authed.GET("/orders/:id/confirmation", s.handlers.OrderConfirmation)
		authed.GET("/orders/:id/invoice", s.handlers.OrderInvoice)
	}

	admin := authed.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("/menu", s.handlers.CreateMenuItem)
		admin.PUT("/menu/:id", s.handlers.UpdateMenuItem)
		admin.DELETE("/menu/:id", s.handlers.DeleteMenuItem)
		admin.POST("/menu/:id/discount", s.handlers.ApplyDiscount)
		admin.DELETE("/menu/:id/discount", s.handlers.RemoveDiscount)

		admin.GET("/orders", s.handlers.AdminListOrders)
		admin.POST("/orders/action", s.handlers.AdminOrderAction)

		admin.POST("/settings", s.handlers.UpdateSettings)
	}
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)

	s.httpSrv = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	s.logger.WithField("addr", addr).Info("Starting HTTP server")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
