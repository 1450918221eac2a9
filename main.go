package main

import (
	"context"
	"time"

	"cartly/internal/config"
	"cartly/internal/database"
	"cartly/internal/email"
	"cartly/internal/gateway"
	"cartly/internal/handlers"
	"cartly/internal/logger"
	"cartly/internal/middleware"
	"cartly/internal/models"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logger.Initialize(logger.ParseLevel(cfg.LogLevel), cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		return
	}

	mailer := email.NewService(cfg)
	if !mailer.IsEnabled() {
		logger.Warn("Email service disabled; verification emails will not be sent")
	}

	gw := gateway.New(db, cfg, mailer)
	gw.OnSessionChange(func(event gateway.SessionEvent, session *models.Session) {
		if session != nil {
			logger.Debug("Session change", "event", string(event), "user_id", session.UserID)
			return
		}
		logger.Debug("Session change", "event", string(event))
	})

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, db, cfg, gw)

	// Periodically purge expired sessions and verification tokens.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := database.CleanupExpiredSessions(ctx, db); err != nil {
				logger.Warn("Failed to clean up expired sessions", "error", err)
			}
			if err := database.CleanupExpiredVerificationTokens(ctx, db); err != nil {
				logger.Warn("Failed to clean up expired verification tokens", "error", err)
			}
			cancel()
		}
	}()

	logger.Info("Starting Cartly server",
		"port", cfg.Port,
		"environment", cfg.Environment)

	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed", "error", err)
	}
}
