package handlers

import (
	"net/http"

	"cartly/internal/analytics"

	"github.com/gin-gonic/gin"
)

// topItemLimit caps the "most bought" ranking shown on the analytics screen.
const topItemLimit = 10

// handleAnalytics recomputes the full analytics payload from the current data:
// account-wide summary, the most frequent item names, and per-list completion.
func (h *Handler) handleAnalytics(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	lists, err := h.gw.GetShoppingLists(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	grouped, err := h.gw.ItemsByList(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	groups := make([]analytics.ListItems, 0, len(lists))
	for _, list := range lists {
		groups = append(groups, analytics.ListItems{
			List:  list,
			Items: grouped[list.ID],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"summary":   analytics.Summarize(groups),
		"top_items": analytics.TopItems(groups, topItemLimit),
		"lists":     analytics.Overview(groups),
	})
}
