package handlers

import (
	"net/http"

	"cartly/internal/analytics"
	"cartly/internal/models"

	"github.com/gin-gonic/gin"
)

// handleDashboard assembles the home screen payload: the caller's profile,
// their lists newest first, and the account-wide completion summary. Items are
// fetched in a single batched query rather than once per list.
func (h *Handler) handleDashboard(c *gin.Context) {
	userID := c.GetString("user_id")
	ctx := c.Request.Context()

	profile, err := h.gw.GetUserProfile(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}

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

	payload := gin.H{
		"profile": nil,
		"lists":   models.ListsToRecords(lists),
		"summary": analytics.Summarize(groups),
	}
	if profile != nil {
		payload["profile"] = models.ProfileToRecord(*profile)
	}

	c.JSON(http.StatusOK, payload)
}
