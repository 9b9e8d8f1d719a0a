package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/config"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/service"
)

// Handlers holds all HTTP handlers for the restaurant service.
type Handlers struct {
	menuService     *service.MenuService
	cartService     *service.CartService
	paymentService  *service.PaymentService
	orderService    *service.OrderService
	settingsService *service.SettingsService
	userService     *service.UserService
	config          *config.Config
	logger          *logrus.Entry
}

// NewHandlers creates a new handlers instance.
func NewHandlers(
	menuService *service.MenuService,
	cartService *service.CartService,
	paymentService *service.PaymentService,
	orderService *service.OrderService,
	settingsService *service.SettingsService,
	userService *service.UserService,
	cfg *config.Config,
	logger *logrus.Entry,
) *Handlers {
	return &Handlers{
		menuService:     menuService,
		cartService:     cartService,
		paymentService:  paymentService,
		orderService:    orderService,
		settingsService: settingsService,
		userService:     userService,
		config:          cfg,
		logger:          logger,
	}
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Message,
			"field": validationErr.Field,
		})
		return
	}

	if errors.Is(err, models.ErrInvalidArgument) || errors.Is(err, models.ErrMalformedInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
