package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anujghosh1220/restaurant-management-system/internal/middleware"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// GetCart handles GET /api/v1/cart
func (h *Handlers) GetCart(c *gin.Context) {
	user := middleware.UserFrom(c)

	cart, totals, err := h.cartService.Summary(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":   cart,
		"count":  cart.Count(),
		"totals": totals,
	})
}

// AddToCart handles POST /api/v1/cart/items
func (h *Handlers) AddToCart(c *gin.Context) {
	user := middleware.UserFrom(c)

	var req models.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), user.ID, req.MenuItemID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"count": cart.Count(),
	})
}

// UpdateCartItem handles PUT /api/v1/cart/items
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	user := middleware.UserFrom(c)

	var req models.UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), user.ID, req.MenuItemID, req.Quantity)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"cart":  cart,
		"count": cart.Count(),
	})
}

// ClearCart handles DELETE /api/v1/cart
func (h *Handlers) ClearCart(c *gin.Context) {
	user := middleware.UserFrom(c)

	if err := h.cartService.Clear(c.Request.Context(), user.ID); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"cleared": true})
}
