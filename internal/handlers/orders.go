package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anujghosh1220/restaurant-management-system/internal/middleware"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// ListMyOrders handles GET /api/v1/orders
func (h *Handlers) ListMyOrders(c *gin.Context) {
	user := middleware.UserFrom(c)

	orders, err := h.orderService.GetUserOrders(c.Request.Context(), user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// GetOrder handles GET /api/v1/orders/:id
func (h *Handlers) GetOrder(c *gin.Context) {
	user := middleware.UserFrom(c)

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orderService.GetOrderForUser(c.Request.Context(), user, id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

// OrderConfirmation handles GET /api/v1/orders/:id/confirmation
func (h *Handlers) OrderConfirmation(c *gin.Context) {
	h.orderWithTotals(c, "confirmation")
}

// OrderInvoice handles GET /api/v1/orders/:id/invoice
func (h *Handlers) OrderInvoice(c *gin.Context) {
	h.orderWithTotals(c, "invoice")
}

func (h *Handlers) orderWithTotals(c *gin.Context, kind string) {
	user := middleware.UserFrom(c)

	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orderService.GetOrderForUser(c.Request.Context(), user, id)
	if err != nil {
		handleError(c, err)
		return
	}

	totals, err := h.orderService.OrderTotals(c.Request.Context(), order)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"kind":   kind,
		"order":  order,
		"totals": totals,
	})
}

// AdminListOrders handles GET /api/v1/admin/orders
func (h *Handlers) AdminListOrders(c *gin.Context) {
	orders, err := h.orderService.AdminListOrders(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders": orders,
		"count":  len(orders),
	})
}

// AdminOrderAction handles POST /api/v1/admin/orders/action
func (h *Handlers) AdminOrderAction(c *gin.Context) {
	var req models.AdminOrderActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.orderService.AdminAction(c.Request.Context(), &req); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order_id": req.OrderID, "action": req.Action})
}
