package database

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"cartly/internal/models"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal("Failed to open test database:", err)
	}

	if err := Migrate(db); err != nil {
		t.Fatal("Failed to run migrations:", err)
	}

	return db
}

// setCreatedAt backdates a row so ordering tests do not depend on the
// one-second resolution of CURRENT_TIMESTAMP.
func setCreatedAt(t *testing.T, db *sql.DB, table, id string, at time.Time) {
	t.Helper()
	if _, err := db.Exec("UPDATE "+table+" SET created_at = ? WHERE id = ?", at, id); err != nil {
		t.Fatal("Failed to set created_at:", err)
	}
}

func TestUserCreationAndAuthentication(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	if user.Email != "test@example.com" {
		t.Errorf("Expected email 'test@example.com', got %s", user.Email)
	}

	if user.IsVerified {
		t.Error("New user should not be verified")
	}

	authUser, err := AuthenticateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to authenticate user:", err)
	}

	if authUser.ID != user.ID {
		t.Errorf("Expected user ID %s, got %s", user.ID, authUser.ID)
	}

	_, err = AuthenticateUser(ctx, db, "test@example.com", "wrongpassword")
	if err == nil {
		t.Error("Expected authentication to fail with wrong password")
	}

	_, err = CreateUser(ctx, db, "test@example.com", "anotherpassword")
	if err == nil {
		t.Error("Expected duplicate email to be rejected")
	}
}

func TestSessionManagement(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	session, err := CreateSession(ctx, db, user.ID, time.Hour)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	if len(session.Token) == 0 {
		t.Error("Session token should not be empty")
	}

	validatedUser, err := ValidateSession(ctx, db, session.Token, time.Hour)
	if err != nil {
		t.Fatal("Failed to validate session:", err)
	}

	if validatedUser.ID != user.ID {
		t.Errorf("Expected user ID %s, got %s", user.ID, validatedUser.ID)
	}

	err = DeleteSession(ctx, db, session.Token)
	if err != nil {
		t.Fatal("Failed to delete session:", err)
	}

	_, err = ValidateSession(ctx, db, session.Token, time.Hour)
	if err == nil {
		t.Error("Expected session validation to fail after deletion")
	}
}

func TestExpiredSessionRejected(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	session, err := CreateSession(ctx, db, user.ID, time.Hour)
	if err != nil {
		t.Fatal("Failed to create session:", err)
	}

	_, err = db.Exec("UPDATE sessions SET expires_at = ? WHERE token = ?",
		time.Now().Add(-time.Minute), session.Token)
	if err != nil {
		t.Fatal("Failed to expire session:", err)
	}

	_, err = GetSession(ctx, db, session.Token)
	if err == nil {
		t.Error("Expected expired session lookup to fail")
	}

	if err := CleanupExpiredSessions(ctx, db); err != nil {
		t.Fatal("Failed to clean up expired sessions:", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&count); err != nil {
		t.Fatal("Failed to count sessions:", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 sessions after cleanup, got %d", count)
	}
}

func TestUserProfileLifecycle(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	profile, err := GetUserProfile(ctx, db, user.ID)
	if err != nil {
		t.Fatal("Unexpected error for missing profile:", err)
	}
	if profile != nil {
		t.Error("Expected nil profile before creation")
	}

	created, err := CreateUserProfile(ctx, db, user.ID, user.Email, "Test User")
	if err != nil {
		t.Fatal("Failed to create profile:", err)
	}
	if created.DisplayName != "Test User" {
		t.Errorf("Expected display name 'Test User', got %s", created.DisplayName)
	}

	photoURL := "data:image/png;base64,abc"
	if _, err := UpsertUserProfile(ctx, db, user.ID, user.Email, models.ProfileUpdate{PhotoURL: &photoURL}); err != nil {
		t.Fatal("Failed to set photo:", err)
	}

	newName := "Renamed User"
	updated, err := UpsertUserProfile(ctx, db, user.ID, user.Email, models.ProfileUpdate{DisplayName: &newName})
	if err != nil {
		t.Fatal("Failed to update display name:", err)
	}

	if updated.DisplayName != "Renamed User" {
		t.Errorf("Expected display name 'Renamed User', got %s", updated.DisplayName)
	}
	if updated.PhotoURL != photoURL {
		t.Error("Partial update should leave the photo untouched")
	}
}

func TestShoppingListOperations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	first, err := CreateShoppingList(ctx, db, user.ID, "Groceries")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}
	second, err := CreateShoppingList(ctx, db, user.ID, "Hardware")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}

	setCreatedAt(t, db, "shopping_lists", first.ID, time.Now().Add(-2*time.Hour))
	setCreatedAt(t, db, "shopping_lists", second.ID, time.Now().Add(-time.Hour))

	lists, err := GetShoppingLists(ctx, db, user.ID)
	if err != nil {
		t.Fatal("Failed to get lists:", err)
	}

	if len(lists) != 2 {
		t.Fatalf("Expected 2 lists, got %d", len(lists))
	}
	if lists[0].ID != second.ID {
		t.Error("Expected newest list first")
	}

	renamed, err := RenameShoppingList(ctx, db, user.ID, first.ID, "Weekly Groceries")
	if err != nil {
		t.Fatal("Failed to rename list:", err)
	}
	if renamed.Name != "Weekly Groceries" {
		t.Errorf("Expected name 'Weekly Groceries', got %s", renamed.Name)
	}

	_, err = RenameShoppingList(ctx, db, "other-user", first.ID, "Stolen")
	if err == nil {
		t.Error("Expected rename by another user to fail")
	}

	if err := DeleteShoppingList(ctx, db, user.ID, first.ID); err != nil {
		t.Fatal("Failed to delete list:", err)
	}

	_, err = GetShoppingList(ctx, db, user.ID, first.ID)
	if err == nil {
		t.Error("Expected list retrieval to fail after deletion")
	}
}

func TestDeleteShoppingListRemovesItems(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	doomed, err := CreateShoppingList(ctx, db, user.ID, "Doomed")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}
	kept, err := CreateShoppingList(ctx, db, user.ID, "Kept")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}

	if _, err := CreateShoppingItem(ctx, db, doomed.ID, "Milk", 1); err != nil {
		t.Fatal("Failed to create item:", err)
	}
	keptItem, err := CreateShoppingItem(ctx, db, kept.ID, "Bread", 1)
	if err != nil {
		t.Fatal("Failed to create item:", err)
	}

	if err := DeleteShoppingList(ctx, db, user.ID, doomed.ID); err != nil {
		t.Fatal("Failed to delete list:", err)
	}

	items, err := GetShoppingItems(ctx, db, doomed.ID)
	if err != nil {
		t.Fatal("Failed to query items:", err)
	}
	if len(items) != 0 {
		t.Errorf("Expected 0 items on deleted list, got %d", len(items))
	}

	if _, err := GetShoppingItem(ctx, db, keptItem.ID); err != nil {
		t.Error("Item on another list should survive:", err)
	}
}

func TestShoppingItemOperations(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	list, err := CreateShoppingList(ctx, db, user.ID, "Groceries")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}

	milk, err := CreateShoppingItem(ctx, db, list.ID, "Milk", 0)
	if err != nil {
		t.Fatal("Failed to create item:", err)
	}
	if milk.Quantity != 1 {
		t.Errorf("Expected quantity below 1 to be coerced to 1, got %d", milk.Quantity)
	}

	bread, err := CreateShoppingItem(ctx, db, list.ID, "Bread", 2)
	if err != nil {
		t.Fatal("Failed to create item:", err)
	}

	setCreatedAt(t, db, "shopping_items", milk.ID, time.Now().Add(-2*time.Hour))
	setCreatedAt(t, db, "shopping_items", bread.ID, time.Now().Add(-time.Hour))

	items, err := GetShoppingItems(ctx, db, list.ID)
	if err != nil {
		t.Fatal("Failed to get items:", err)
	}
	if len(items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(items))
	}
	if items[0].ID != milk.ID {
		t.Error("Expected oldest item first")
	}

	newName := "Whole Milk"
	updated, err := UpdateShoppingItem(ctx, db, milk.ID, models.ItemUpdate{Name: &newName})
	if err != nil {
		t.Fatal("Failed to update item:", err)
	}
	if updated.Name != "Whole Milk" {
		t.Errorf("Expected name 'Whole Milk', got %s", updated.Name)
	}
	if updated.Quantity != 1 || updated.IsBought {
		t.Error("Partial update should leave other fields untouched")
	}

	toggled, err := ToggleItemBought(ctx, db, bread.ID, true)
	if err != nil {
		t.Fatal("Failed to toggle item:", err)
	}
	if !toggled.IsBought {
		t.Error("Expected item to be marked bought")
	}

	other, err := GetShoppingItem(ctx, db, milk.ID)
	if err != nil {
		t.Fatal("Failed to get item:", err)
	}
	if other.IsBought {
		t.Error("Toggling one item should not affect another")
	}

	if err := DeleteShoppingItem(ctx, db, milk.ID); err != nil {
		t.Fatal("Failed to delete item:", err)
	}

	_, err = GetShoppingItem(ctx, db, milk.ID)
	if err == nil {
		t.Error("Expected item retrieval to fail after deletion")
	}
}

func TestGetItemsByUser(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}
	stranger, err := CreateUser(ctx, db, "other@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	groceries, err := CreateShoppingList(ctx, db, user.ID, "Groceries")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}
	hardware, err := CreateShoppingList(ctx, db, user.ID, "Hardware")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}
	foreign, err := CreateShoppingList(ctx, db, stranger.ID, "Not Yours")
	if err != nil {
		t.Fatal("Failed to create list:", err)
	}

	for _, name := range []string{"Milk", "Bread"} {
		if _, err := CreateShoppingItem(ctx, db, groceries.ID, name, 1); err != nil {
			t.Fatal("Failed to create item:", err)
		}
	}
	if _, err := CreateShoppingItem(ctx, db, hardware.ID, "Nails", 1); err != nil {
		t.Fatal("Failed to create item:", err)
	}
	if _, err := CreateShoppingItem(ctx, db, foreign.ID, "Secret", 1); err != nil {
		t.Fatal("Failed to create item:", err)
	}

	grouped, err := GetItemsByUser(ctx, db, user.ID)
	if err != nil {
		t.Fatal("Failed to get items by user:", err)
	}

	if len(grouped) != 2 {
		t.Fatalf("Expected items under 2 lists, got %d", len(grouped))
	}
	if len(grouped[groceries.ID]) != 2 {
		t.Errorf("Expected 2 grocery items, got %d", len(grouped[groceries.ID]))
	}
	if len(grouped[hardware.ID]) != 1 {
		t.Errorf("Expected 1 hardware item, got %d", len(grouped[hardware.ID]))
	}
	if len(grouped[foreign.ID]) != 0 {
		t.Error("Another user's items should not appear")
	}
}

func TestVerificationFlow(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	user, err := CreateUser(ctx, db, "test@example.com", "password123")
	if err != nil {
		t.Fatal("Failed to create user:", err)
	}

	token, err := CreateVerificationToken(ctx, db, user.ID)
	if err != nil {
		t.Fatal("Failed to create verification token:", err)
	}

	tokenUser, err := ValidateVerificationToken(ctx, db, token.Token)
	if err != nil {
		t.Fatal("Failed to validate verification token:", err)
	}
	if tokenUser.ID != user.ID {
		t.Errorf("Expected user ID %s, got %s", user.ID, tokenUser.ID)
	}

	if err := VerifyUser(ctx, db, user.ID, token.Token); err != nil {
		t.Fatal("Failed to verify user:", err)
	}

	verified, err := GetUserByID(ctx, db, user.ID)
	if err != nil {
		t.Fatal("Failed to get user:", err)
	}
	if !verified.IsVerified {
		t.Error("Expected user to be verified")
	}

	_, err = ValidateVerificationToken(ctx, db, token.Token)
	if err == nil {
		t.Error("Expected verification token to be consumed")
	}
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
