package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cartly/internal/models"

	"github.com/google/uuid"
)

func CreateShoppingItem(ctx context.Context, db *sql.DB, listID, name string, quantity int) (*models.ShoppingItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	itemID := uuid.New().String()

	query := `
		INSERT INTO shopping_items (id, list_id, name, quantity, is_bought)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.ExecContext(ctx, query, itemID, listID, name, quantity, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopping item: %w", err)
	}

	item := &models.ShoppingItem{
		ID:        itemID,
		ListID:    listID,
		Name:      name,
		Quantity:  quantity,
		IsBought:  false,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	return item, nil
}

// GetShoppingItems returns a list's items in creation order, oldest first.
func GetShoppingItems(ctx context.Context, db *sql.DB, listID string) ([]models.ShoppingItem, error) {
	query := `
		SELECT id, list_id, name, quantity, is_bought, created_at, updated_at
		FROM shopping_items
		WHERE list_id = ?
		ORDER BY created_at ASC
	`

	rows, err := db.QueryContext(ctx, query, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

func GetShoppingItem(ctx context.Context, db *sql.DB, itemID string) (*models.ShoppingItem, error) {
	item := &models.ShoppingItem{}
	query := `
		SELECT id, list_id, name, quantity, is_bought, created_at, updated_at
		FROM shopping_items
		WHERE id = ?
	`

	err := db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID,
		&item.ListID,
		&item.Name,
		&item.Quantity,
		&item.IsBought,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("shopping item not found")
		}
		return nil, fmt.Errorf("failed to query shopping item: %w", err)
	}

	return item, nil
}

// UpdateShoppingItem applies a partial update. Only non-nil fields of update
// change; the updated item is returned.
func UpdateShoppingItem(ctx context.Context, db *sql.DB, itemID string, update models.ItemUpdate) (*models.ShoppingItem, error) {
	query := `
		UPDATE shopping_items
		SET name = COALESCE(?, name),
		    quantity = COALESCE(?, quantity),
		    is_bought = COALESCE(?, is_bought),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	result, err := db.ExecContext(ctx, query, update.Name, update.Quantity, update.IsBought, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to update shopping item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return nil, fmt.Errorf("shopping item not found")
	}

	return GetShoppingItem(ctx, db, itemID)
}

func DeleteShoppingItem(ctx context.Context, db *sql.DB, itemID string) error {
	query := `DELETE FROM shopping_items WHERE id = ?`

	result, err := db.ExecContext(ctx, query, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("shopping item not found")
	}

	return nil
}

// ToggleItemBought is a convenience wrapper over UpdateShoppingItem.
func ToggleItemBought(ctx context.Context, db *sql.DB, itemID string, isBought bool) (*models.ShoppingItem, error) {
	return UpdateShoppingItem(ctx, db, itemID, models.ItemUpdate{IsBought: &isBought})
}

// GetItemsByUser fetches every item across all of userID's lists in a single
// query and groups them by list ID, replacing one-query-per-list fan-out for
// the dashboard and analytics screens.
func GetItemsByUser(ctx context.Context, db *sql.DB, userID string) (map[string][]models.ShoppingItem, error) {
	query := `
		SELECT i.id, i.list_id, i.name, i.quantity, i.is_bought, i.created_at, i.updated_at
		FROM shopping_items i
		INNER JOIN shopping_lists l ON i.list_id = l.id
		WHERE l.user_id = ?
		ORDER BY i.created_at ASC
	`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user items: %w", err)
	}
	defer rows.Close()

	items, err := scanItems(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.ShoppingItem)
	for _, item := range items {
		grouped[item.ListID] = append(grouped[item.ListID], item)
	}

	return grouped, nil
}

func scanItems(rows *sql.Rows) ([]models.ShoppingItem, error) {
	var items []models.ShoppingItem
	for rows.Next() {
		var item models.ShoppingItem
		err := rows.Scan(
			&item.ID,
			&item.ListID,
			&item.Name,
			&item.Quantity,
			&item.IsBought,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shopping items: %w", err)
	}

	return items, nil
}
