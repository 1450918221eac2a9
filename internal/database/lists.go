package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cartly/internal/models"

	"github.com/google/uuid"
)

func CreateShoppingList(ctx context.Context, db *sql.DB, userID, name string) (*models.ShoppingList, error) {
	listID := uuid.New().String()

	query := `
		INSERT INTO shopping_lists (id, user_id, name)
		VALUES (?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query, listID, userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping list: %w", err)
	}

	list := &models.ShoppingList{
		ID:        listID,
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return list, nil
}

// GetShoppingLists returns every list owned by userID, newest first.
func GetShoppingLists(ctx context.Context, db *sql.DB, userID string) ([]models.ShoppingList, error) {
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM shopping_lists
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists: %w", err)
	}
	defer rows.Close()

	var lists []models.ShoppingList
	for rows.Next() {
		var list models.ShoppingList
		err := rows.Scan(
			&list.ID,
			&list.UserID,
			&list.Name,
			&list.CreatedAt,
			&list.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, list)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping lists: %w", err)
	}

	return lists, nil
}

func GetShoppingList(ctx context.Context, db *sql.DB, userID, listID string) (*models.ShoppingList, error) {
	list := &models.ShoppingList{}
	query := `
		SELECT id, user_id, name, created_at, updated_at
		FROM shopping_lists
		WHERE id = ? AND user_id = ?
	`

	err := db.QueryRowContext(ctx, query, listID, userID).Scan(
		&list.ID,
		&list.UserID,
		&list.Name,
		&list.CreatedAt,
		&list.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("shopping list not found")
		}
		return nil, fmt.Errorf("failed to query shopping list: %w", err)
	}

	return list, nil
}

func RenameShoppingList(ctx context.Context, db *sql.DB, userID, listID, name string) (*models.ShoppingList, error) {
	query := `
		UPDATE shopping_lists
		SET name = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ?
	`

	result, err := db.ExecContext(ctx, query, name, listID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to rename shopping list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("shopping list not found")
	}

	return GetShoppingList(ctx, db, userID, listID)
}

// DeleteShoppingList removes a list's items and then the list itself, as two
// separate statements in that order. The two steps are deliberately not wrapped
// in a transaction: if the item delete succeeds and the list delete fails, the
// list survives with zero items, which mirrors the cascade contract the client
// was built against.
func DeleteShoppingList(ctx context.Context, db *sql.DB, userID, listID string) error {
	if _, err := GetShoppingList(ctx, db, userID, listID); err != nil {
		return err
	}

	deleteItems := `DELETE FROM shopping_items WHERE list_id = ?`
	if _, err := db.ExecContext(ctx, deleteItems, listID); err != nil {
		return fmt.Errorf("failed to delete list items: %w", err)
	}

	deleteList := `DELETE FROM shopping_lists WHERE id = ? AND user_id = ?`
	result, err := db.ExecContext(ctx, deleteList, listID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("shopping list not found")
	}

	return nil
}
