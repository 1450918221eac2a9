package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"cartly/internal/config"
	"cartly/internal/gateway"
	"cartly/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler holds the per-request dependencies. The gateway is injected here at
// application root rather than pulled from ambient state.
type Handler struct {
	gw *gateway.Gateway
}

func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config, gw *gateway.Gateway) {
	h := &Handler{gw: gw}

	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))

	r.GET("/verify/:token", h.handleVerify)

	api := r.Group("/api")

	api.POST("/auth/signup", middleware.AuthRateLimit(cfg), h.handleSignUp)
	api.POST("/auth/signin", middleware.AuthRateLimit(cfg), h.handleSignIn)
	api.GET("/auth/session", middleware.AuthOptional(db, cfg), h.handleGetSession)
	api.POST("/auth/signout", middleware.AuthRequired(db, cfg), h.handleSignOut)

	protected := api.Group("/")
	protected.Use(middleware.AuthRequired(db, cfg))
	{
		protected.GET("/dashboard", h.handleDashboard)
		protected.GET("/analytics", h.handleAnalytics)

		protected.GET("/lists", h.handleLists)
		protected.POST("/lists", h.handleCreateList)
		protected.PATCH("/lists/:id", h.handleRenameList)
		protected.DELETE("/lists/:id", h.handleDeleteList)

		protected.GET("/lists/:id/items", h.handleListItems)
		protected.POST("/lists/:id/items", h.handleCreateItem)
		protected.PATCH("/items/:id", h.handleUpdateItem)
		protected.DELETE("/items/:id", h.handleDeleteItem)
		protected.PUT("/items/:id/bought", h.handleToggleBought)

		protected.GET("/profile", h.handleProfile)
		protected.PATCH("/profile", h.handleUpdateProfile)
		protected.POST("/profile/photo", h.handleUploadPhoto)
	}
}

// respondError maps the gateway error taxonomy onto HTTP statuses. Mutations
// surface the backend message; anything unrecognized gets a generic fallback.
func respondError(c *gin.Context, err error) {
	var verr *gateway.ValidationError
	var aerr *gateway.AuthError
	var uerr *gateway.UploadError
	var derr *gateway.DataError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":  "Validation failed",
			"fields": verr.Fields,
		})
	case errors.As(err, &aerr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": aerr.Message})
	case errors.As(err, &uerr):
		c.JSON(http.StatusBadRequest, gin.H{"error": uerr.Message})
	case errors.As(err, &derr):
		if strings.Contains(err.Error(), "not found") {
			c.JSON(http.StatusNotFound, gin.H{"error": derr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": derr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong. Please try again."})
	}
}
