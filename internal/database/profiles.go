package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cartly/internal/models"
)

func CreateUserProfile(ctx context.Context, db *sql.DB, userID, email, displayName string) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (id, email, display_name)
		VALUES (?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query, userID, email, displayName)
	if err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}

	profile := &models.UserProfile{
		ID:          userID,
		Email:       email,
		DisplayName: displayName,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	return profile, nil
}

// GetUserProfile returns the profile for userID, or nil when no profile row
// exists. Absence of a profile is not an error.
func GetUserProfile(ctx context.Context, db *sql.DB, userID string) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	query := `
		SELECT id, email, display_name, photo_url, created_at, updated_at
		FROM user_profiles
		WHERE id = ?
	`

	err := db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.Email,
		&profile.DisplayName,
		&profile.PhotoURL,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query user profile: %w", err)
	}

	return profile, nil
}

// UpsertUserProfile applies a partial update, creating the profile row if it
// does not exist yet. Only non-nil fields of update change.
func UpsertUserProfile(ctx context.Context, db *sql.DB, userID, email string, update models.ProfileUpdate) (*models.UserProfile, error) {
	query := `
		INSERT INTO user_profiles (id, email, display_name, photo_url, updated_at)
		VALUES (?, ?, COALESCE(?, ''), COALESCE(?, ''), CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			display_name = COALESCE(?, user_profiles.display_name),
			photo_url = COALESCE(?, user_profiles.photo_url),
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := db.ExecContext(ctx, query, userID, email,
		update.DisplayName, update.PhotoURL,
		update.DisplayName, update.PhotoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user profile: %w", err)
	}

	profile, err := GetUserProfile(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("profile missing after upsert")
	}

	return profile, nil
}
