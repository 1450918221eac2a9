package database

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"cartly/internal/logger"
	"cartly/internal/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func CreateUser(ctx context.Context, db *sql.DB, email, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID := uuid.New().String()

	query := `
		INSERT INTO users (id, email, password_hash, is_verified)
		VALUES (?, ?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query, userID, email, string(hashedPassword), false)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user := &models.User{
		ID:           userID,
		Email:        email,
		PasswordHash: string(hashedPassword),
		IsVerified:   false,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	return user, nil
}

func GetUserByID(ctx context.Context, db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, COALESCE(is_verified, false), created_at, updated_at
		FROM users
		WHERE id = ?
	`

	err := db.QueryRowContext(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return user, nil
}

func AuthenticateUser(ctx context.Context, db *sql.DB, email, password string) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT id, email, password_hash, COALESCE(is_verified, false), created_at, updated_at
		FROM users
		WHERE email = ?
	`

	err := db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return nil, fmt.Errorf("invalid password")
	}

	return user, nil
}

func CreateSession(ctx context.Context, db *sql.DB, userID string, sessionDuration time.Duration) (*models.Session, error) {
	token, err := generateSecureToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	expiresAt := time.Now().Add(sessionDuration)

	query := `
		INSERT INTO sessions (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	_, err = db.ExecContext(ctx, query, token, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	return session, nil
}

func GetSession(ctx context.Context, db *sql.DB, token string) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT token, user_id, expires_at, created_at
		FROM sessions
		WHERE token = ? AND expires_at > CURRENT_TIMESTAMP
	`

	err := db.QueryRowContext(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found or expired")
		}
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return session, nil
}

func ValidateSession(ctx context.Context, db *sql.DB, token string, sessionDuration time.Duration) (*models.User, error) {
	user := &models.User{}
	query := `
		SELECT u.id, u.email, u.password_hash, COALESCE(u.is_verified, false), u.created_at, u.updated_at
		FROM users u
		INNER JOIN sessions s ON u.id = s.user_id
		WHERE s.token = ? AND s.expires_at > CURRENT_TIMESTAMP
	`

	err := db.QueryRowContext(ctx, query, token).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("session not found or expired")
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	// Sliding window: extend the session on activity.
	if err := RenewSession(ctx, db, token, sessionDuration); err != nil {
		logger.Warn("Failed to renew session",
			"session_token", token,
			"error", err)
	}

	return user, nil
}

func RenewSession(ctx context.Context, db *sql.DB, token string, sessionDuration time.Duration) error {
	newExpiresAt := time.Now().Add(sessionDuration)

	query := `UPDATE sessions SET expires_at = ? WHERE token = ?`
	_, err := db.ExecContext(ctx, query, newExpiresAt, token)
	if err != nil {
		return fmt.Errorf("failed to renew session: %w", err)
	}

	return nil
}

func DeleteSession(ctx context.Context, db *sql.DB, token string) error {
	query := `DELETE FROM sessions WHERE token = ?`
	_, err := db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func CleanupExpiredSessions(ctx context.Context, db *sql.DB) error {
	query := `DELETE FROM sessions WHERE expires_at < CURRENT_TIMESTAMP`
	_, err := db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired sessions: %w", err)
	}
	return nil
}

func CreateVerificationToken(ctx context.Context, db *sql.DB, userID string) (*models.VerificationToken, error) {
	tokenUUID := uuid.New().String()
	expiresAt := time.Now().Add(24 * time.Hour)

	query := `
		INSERT INTO verification_tokens (token, user_id, expires_at)
		VALUES (?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query, tokenUUID, userID, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification token: %w", err)
	}

	token := &models.VerificationToken{
		Token:     tokenUUID,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	return token, nil
}

func ValidateVerificationToken(ctx context.Context, db *sql.DB, token string) (*models.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, COALESCE(u.is_verified, false), u.created_at, u.updated_at
		FROM users u
		JOIN verification_tokens vt ON u.id = vt.user_id
		WHERE vt.token = ? AND vt.expires_at > CURRENT_TIMESTAMP
	`

	user := &models.User{}
	err := db.QueryRowContext(ctx, query, token).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.IsVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("verification token not found or expired")
		}
		return nil, fmt.Errorf("failed to validate verification token: %w", err)
	}

	return user, nil
}

func VerifyUser(ctx context.Context, db *sql.DB, userID, token string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateUserQuery := `UPDATE users SET is_verified = TRUE WHERE id = ?`
	_, err = tx.ExecContext(ctx, updateUserQuery, userID)
	if err != nil {
		return fmt.Errorf("failed to verify user: %w", err)
	}

	deleteTokenQuery := `DELETE FROM verification_tokens WHERE token = ?`
	_, err = tx.ExecContext(ctx, deleteTokenQuery, token)
	if err != nil {
		return fmt.Errorf("failed to delete verification token: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit verification: %w", err)
	}

	return nil
}

func CleanupExpiredVerificationTokens(ctx context.Context, db *sql.DB) error {
	query := `DELETE FROM verification_tokens WHERE expires_at < CURRENT_TIMESTAMP`
	_, err := db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to cleanup expired verification tokens: %w", err)
	}
	return nil
}

func generateSecureToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
