package handlers

import (
	"net/http"
	"sync"

	"cartly/internal/logger"
	"cartly/internal/models"

	"github.com/gin-gonic/gin"
)

type listWithCounts struct {
	models.ListRecord
	ItemCount      int `json:"item_count"`
	CompletedCount int `json:"completed_count"`
}

type listRequest struct {
	Name string `json:"name"`
}

// handleLists returns the caller's lists newest first, each annotated with its
// item and completed counts. Counts are fetched concurrently, one goroutine per
// list; a list whose fetch fails is reported with zero counts rather than
// failing the whole screen.
func (h *Handler) handleLists(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	lists, err := h.gw.GetShoppingLists(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	results := make([][]models.ShoppingItem, len(lists))
	var wg sync.WaitGroup
	for i, list := range lists {
		wg.Add(1)
		go func(i int, listID string) {
			defer wg.Done()
			items, err := h.gw.GetShoppingItems(ctx, userID, listID)
			if err != nil {
				logger.Warn("Failed to load items for list",
					"list_id", listID,
					"error", err)
				return
			}
			results[i] = items
		}(i, list.ID)
	}
	wg.Wait()

	annotated := make([]listWithCounts, 0, len(lists))
	for i, list := range lists {
		completed := 0
		for _, item := range results[i] {
			if item.IsBought {
				completed++
			}
		}
		annotated = append(annotated, listWithCounts{
			ListRecord:     models.ListToRecord(list),
			ItemCount:      len(results[i]),
			CompletedCount: completed,
		})
	}

	c.JSON(http.StatusOK, gin.H{"lists": annotated})
}

func (h *Handler) handleCreateList(c *gin.Context) {
	userID := c.GetString("user_id")

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	list, err := h.gw.CreateShoppingList(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"list": models.ListToRecord(*list)})
}

func (h *Handler) handleRenameList(c *gin.Context) {
	userID := c.GetString("user_id")
	listID := c.Param("id")

	var req listRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	list, err := h.gw.RenameShoppingList(c.Request.Context(), userID, listID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": models.ListToRecord(*list)})
}

func (h *Handler) handleDeleteList(c *gin.Context) {
	userID := c.GetString("user_id")
	listID := c.Param("id")

	if err := h.gw.DeleteShoppingList(c.Request.Context(), userID, listID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Shopping list deleted"})
}
