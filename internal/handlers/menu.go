package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/pricing"
	"github.com/anujghosh1220/restaurant-management-system/internal/service"
)

// ListMenu handles GET /api/v1/menu
func (h *Handlers) ListMenu(c *gin.Context) {
	items, err := h.menuService.ListMenu(c.Request.Context(), c.Query("category"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// ListCategories handles GET /api/v1/menu/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := h.menuService.Categories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetMenuItem handles GET /api/v1/menu/:id
func (h *Handlers) GetMenuItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item ID"})
		return
	}

	item, err := h.menuService.GetItem(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateMenuItem handles POST /api/v1/admin/menu
func (h *Handlers) CreateMenuItem(c *gin.Context) {
	item, ok := h.bindMenuItemForm(c)
	if !ok {
		return
	}

	if err := h.menuService.CreateItem(c.Request.Context(), item); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateMenuItem handles PUT /api/v1/admin/menu/:id
func (h *Handlers) UpdateMenuItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item ID"})
		return
	}

	item, ok := h.bindMenuItemForm(c)
	if !ok {
		return
	}
	item.ID = id

	if err := h.menuService.UpdateItem(c.Request.Context(), item); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /api/v1/admin/menu/:id
func (h *Handlers) DeleteMenuItem(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item ID"})
		return
	}

	if err := h.menuService.DeleteItem(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// ApplyDiscount handles POST /api/v1/admin/menu/:id/discount
func (h *Handlers) ApplyDiscount(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item ID"})
		return
	}

	var req models.ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := service.ValidateApplyDiscountRequest(&req); err != nil {
		handleError(c, err)
		return
	}

	item, err := h.menuService.ApplyDiscount(c.Request.Context(), id, req.DiscountPercentage, req.DiscountDays)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// RemoveDiscount handles DELETE /api/v1/admin/menu/:id/discount
func (h *Handlers) RemoveDiscount(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item ID"})
		return
	}

	item, err := h.menuService.RemoveDiscount(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// ItemInvoice handles GET /api/v1/menu/:id/invoice
// Deprecated: single-item invoices use the item's own GST rate instead of the
// global settings. Use the order invoice endpoint instead.
func (h *Handlers) ItemInvoice(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item ID"})
		return
	}

	item, err := h.menuService.GetItem(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}

	qty := 1
	if q := c.Query("quantity"); q != "" {
		if parsed, err := strconv.Atoi(q); err == nil && parsed > 0 {
			qty = parsed
		}
	}

	totals := pricing.CalculateOrderTotals(
		[]pricing.LineItem{pricing.Line{Price: item.Price, Qty: qty}},
		item.GST,
		0,
	)

	c.JSON(http.StatusOK, gin.H{
		"item":     item,
		"quantity": qty,
		"totals":   totals,
	})
}

// bindMenuItemForm parses the multipart menu item form and stores the
// uploaded image, if any. Responds with 400 and returns false on bad input.
func (h *Handlers) bindMenuItemForm(c *gin.Context) (*models.MenuItem, bool) {
	var form models.MenuItemForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid menu item form"})
		return nil, false
	}

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid price"})
		return nil, false
	}

	item := &models.MenuItem{
		Name:        form.Name,
		Description: form.Description,
		Price:       price,
		Category:    form.Category,
		GST:         form.GST,
	}

	file, err := c.FormFile("image")
	if err == nil && file != nil {
		if file.Size > h.config.Uploads.MaxSizeBytes {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image too large"})
			return nil, false
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		switch ext {
		case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return nil, false
		}

		name := uuid.NewString() + ext
		dst := filepath.Join(h.config.Uploads.Dir, name)
		if err := c.SaveUploadedFile(file, dst); err != nil {
			h.logger.WithFields(logrus.Fields{
				"filename": file.Filename,
				"error":    err.Error(),
			}).Error("Failed to store uploaded image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
			return nil, false
		}
		item.ImagePath = dst
	}

	return item, true
}

func parseID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
