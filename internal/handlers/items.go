package handlers

import (
	"math"
	"net/http"

	"cartly/internal/gateway"
	"cartly/internal/models"

	"github.com/gin-gonic/gin"
)

// createItemRequest takes quantity as a bare JSON value so clients can send a
// number or a string; either way it is coerced to a positive count.
type createItemRequest struct {
	Name     string `json:"name"`
	Quantity any    `json:"quantity"`
}

type updateItemRequest struct {
	Name     *string `json:"name"`
	Quantity *int    `json:"quantity"`
	IsBought *bool   `json:"is_bought"`
}

type toggleBoughtRequest struct {
	IsBought bool `json:"is_bought"`
}

// coerceQuantity maps the decoded quantity value to a positive count. JSON
// numbers arrive as float64; stringifying those would mangle large values into
// scientific notation, so numbers are converted directly.
func coerceQuantity(v any) int {
	switch q := v.(type) {
	case float64:
		n := int(q)
		if q != math.Trunc(q) || n < 1 {
			return 1
		}
		return n
	case string:
		return gateway.CoerceQuantity(q)
	default:
		return 1
	}
}

func (h *Handler) handleListItems(c *gin.Context) {
	userID := c.GetString("user_id")
	listID := c.Param("id")

	items, err := h.gw.GetShoppingItems(c.Request.Context(), userID, listID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": models.ItemsToRecords(items)})
}

func (h *Handler) handleCreateItem(c *gin.Context) {
	userID := c.GetString("user_id")
	listID := c.Param("id")

	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	quantity := coerceQuantity(req.Quantity)

	item, err := h.gw.CreateShoppingItem(c.Request.Context(), userID, listID, req.Name, quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": models.ItemToRecord(*item)})
}

func (h *Handler) handleUpdateItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := models.ItemUpdate{
		Name:     req.Name,
		Quantity: req.Quantity,
		IsBought: req.IsBought,
	}
	if update.Quantity != nil && *update.Quantity < 1 {
		one := 1
		update.Quantity = &one
	}

	item, err := h.gw.UpdateShoppingItem(c.Request.Context(), userID, itemID, update)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": models.ItemToRecord(*item)})
}

func (h *Handler) handleDeleteItem(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	if err := h.gw.DeleteShoppingItem(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping item deleted"})
}

func (h *Handler) handleToggleBought(c *gin.Context) {
	userID := c.GetString("user_id")
	itemID := c.Param("id")

	var req toggleBoughtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item, err := h.gw.ToggleItemBought(c.Request.Context(), userID, itemID, req.IsBought)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": models.ItemToRecord(*item)})
}
