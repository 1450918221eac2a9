package handlers

import (
	"net/http"

	"cartly/internal/logger"
	"cartly/internal/models"

	"github.com/gin-gonic/gin"
)

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	DisplayName     string `json:"display_name"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleSignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := h.gw.SignUp(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword, req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User signed up", "email", user.Email, "user_id", user.ID)

	c.JSON(http.StatusCreated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
		"message": "Account created. Please check your email to verify your account.",
	})
}

func (h *Handler) handleSignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	session, err := h.gw.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User signed in", "user_id", session.UserID)

	c.JSON(http.StatusOK, gin.H{"session": models.SessionToRecord(*session)})
}

func (h *Handler) handleSignOut(c *gin.Context) {
	token := c.GetString("session_token")

	if err := h.gw.SignOut(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

// handleGetSession reports the current session, or null when the caller is not
// signed in. Absence of a session is not an error here; AuthOptional leaves the
// token unset for anonymous or expired callers.
func (h *Handler) handleGetSession(c *gin.Context) {
	token := c.GetString("session_token")

	session, err := h.gw.GetSession(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	if session == nil {
		c.JSON(http.StatusOK, gin.H{"session": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": models.SessionToRecord(*session)})
}

func (h *Handler) handleVerify(c *gin.Context) {
	token := c.Param("token")

	user, err := h.gw.VerifyAccount(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("User verified", "email", user.Email, "user_id", user.ID)

	c.JSON(http.StatusOK, gin.H{"message": "Your account has been verified. You can now sign in."})
}
