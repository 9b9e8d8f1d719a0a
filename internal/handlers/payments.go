package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anujghosh1220/restaurant-management-system/internal/middleware"
	"github.com/anujghosh1220/restaurant-management-system/internal/models"
)

// ProcessPayment handles POST /api/v1/payment/process
func (h *Handlers) ProcessPayment(c *gin.Context) {
	user := middleware.UserFrom(c)

	var req models.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), user.ID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}
