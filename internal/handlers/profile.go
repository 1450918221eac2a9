package handlers

import (
	"io"
	"net/http"

	"cartly/internal/logger"
	"cartly/internal/models"

	"github.com/gin-gonic/gin"
)

type updateProfileRequest struct {
	DisplayName *string `json:"display_name"`
	PhotoURL    *string `json:"photo_url"`
}

// handleProfile returns the caller's profile, or null when none has been
// created yet. A missing profile is not an error.
func (h *Handler) handleProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	profile, err := h.gw.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if profile == nil {
		c.JSON(http.StatusOK, gin.H{"profile": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": models.ProfileToRecord(*profile)})
}

func (h *Handler) handleUpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	profile, err := h.gw.UpdateUserProfile(c.Request.Context(), userID, models.ProfileUpdate{
		DisplayName: req.DisplayName,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": models.ProfileToRecord(*profile)})
}

// handleUploadPhoto accepts a multipart "photo" field and stores it as the
// caller's avatar, encoded into the profile's photo reference.
func (h *Handler) handleUploadPhoto(c *gin.Context) {
	userID := c.GetString("user_id")

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing photo upload"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read photo upload"})
		return
	}

	profile, err := h.gw.SetProfilePhoto(c.Request.Context(), userID, data)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Profile photo updated",
		"user_id", userID,
		"filename", header.Filename,
		"size", len(data))

	c.JSON(http.StatusOK, gin.H{"profile": models.ProfileToRecord(*profile)})
}
