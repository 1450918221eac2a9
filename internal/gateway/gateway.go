package gateway

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"cartly/internal/config"
	"cartly/internal/database"
	"cartly/internal/email"
	"cartly/internal/logger"
	"cartly/internal/models"
)

// SessionEvent describes a session-change notification.
type SessionEvent string

const (
	SessionSignedIn  SessionEvent = "SIGNED_IN"
	SessionSignedOut SessionEvent = "SIGNED_OUT"
)

// SessionChangeFunc receives session-change events. The session is nil for
// sign-out events.
type SessionChangeFunc func(event SessionEvent, session *models.Session)

// Gateway is the typed operation surface over the store and auth layer. All
// dependencies are injected at construction; there is no ambient state.
type Gateway struct {
	db     *sql.DB
	cfg    *config.Config
	mailer *email.Service

	mu          sync.Mutex
	nextSubID   int
	subscribers map[int]SessionChangeFunc
}

func New(db *sql.DB, cfg *config.Config, mailer *email.Service) *Gateway {
	return &Gateway{
		db:          db,
		cfg:         cfg,
		mailer:      mailer,
		subscribers: make(map[int]SessionChangeFunc),
	}
}

// OnSessionChange registers a callback for sign-in/sign-out events and returns
// an unsubscribe function.
func (g *Gateway) OnSessionChange(fn SessionChangeFunc) func() {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := g.nextSubID
	g.nextSubID++
	g.subscribers[id] = fn

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.subscribers, id)
	}
}

func (g *Gateway) notifySessionChange(event SessionEvent, session *models.Session) {
	g.mu.Lock()
	fns := make([]SessionChangeFunc, 0, len(g.subscribers))
	for _, fn := range g.subscribers {
		fns = append(fns, fn)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(event, session)
	}
}

// SignUp creates the auth identity and its profile record, then kicks off the
// verification email. Validation runs before anything touches the store.
func (g *Gateway) SignUp(ctx context.Context, emailAddr, password, confirmPassword, displayName string) (*models.User, error) {
	if verr := validateSignUp(emailAddr, password, confirmPassword, displayName); verr != nil {
		return nil, verr
	}

	user, err := database.CreateUser(ctx, g.db, emailAddr, password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, &AuthError{Message: "An account with that email already exists"}
		}
		return nil, &DataError{Message: "failed to create account", Err: err}
	}

	if _, err := database.CreateUserProfile(ctx, g.db, user.ID, user.Email, displayName); err != nil {
		return nil, &DataError{Message: "failed to create profile", Err: err}
	}

	token, err := database.CreateVerificationToken(ctx, g.db, user.ID)
	if err != nil {
		logger.Error("Failed to create verification token",
			"email", user.Email,
			"user_id", user.ID,
			"error", err)
	} else if g.mailer != nil && g.mailer.IsEnabled() {
		if err := g.mailer.SendVerificationEmail(user, displayName, token.Token); err != nil {
			logger.Warn("Failed to send verification email",
				"email", user.Email,
				"user_id", user.ID,
				"error", err)
		}
	}

	return user, nil
}

// SignIn establishes a session for the credentials.
func (g *Gateway) SignIn(ctx context.Context, emailAddr, password string) (*models.Session, error) {
	if verr := validateSignIn(emailAddr, password); verr != nil {
		return nil, verr
	}

	user, err := database.AuthenticateUser(ctx, g.db, emailAddr, password)
	if err != nil {
		return nil, &AuthError{Message: "Invalid email or password"}
	}

	session, err := database.CreateSession(ctx, g.db, user.ID, g.cfg.SessionDuration)
	if err != nil {
		return nil, &DataError{Message: "failed to create session", Err: err}
	}

	g.notifySessionChange(SessionSignedIn, session)

	return session, nil
}

// SignOut invalidates the session token. Unknown tokens are not an error.
func (g *Gateway) SignOut(ctx context.Context, token string) error {
	if err := database.DeleteSession(ctx, g.db, token); err != nil {
		return &DataError{Message: "failed to sign out", Err: err}
	}

	g.notifySessionChange(SessionSignedOut, nil)

	return nil
}

// GetSession returns the current session, or nil when the token is missing,
// unknown, or expired. "No session" is never an error.
func (g *Gateway) GetSession(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}

	session, err := database.GetSession(ctx, g.db, token)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, nil
		}
		return nil, &DataError{Message: "failed to look up session", Err: err}
	}

	return session, nil
}

// GetCurrentUser resolves the session token to its user, or nil when
// unauthenticated.
func (g *Gateway) GetCurrentUser(ctx context.Context, token string) (*models.User, error) {
	session, err := g.GetSession(ctx, token)
	if err != nil || session == nil {
		return nil, err
	}

	user, err := database.GetUserByID(ctx, g.db, session.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, nil
		}
		return nil, &DataError{Message: "failed to look up user", Err: err}
	}

	return user, nil
}

// VerifyAccount consumes an email verification token.
func (g *Gateway) VerifyAccount(ctx context.Context, token string) (*models.User, error) {
	user, err := database.ValidateVerificationToken(ctx, g.db, token)
	if err != nil {
		return nil, &AuthError{Message: "This verification link is invalid or has expired"}
	}

	if user.IsVerified {
		return user, nil
	}

	if err := database.VerifyUser(ctx, g.db, user.ID, token); err != nil {
		return nil, &DataError{Message: "failed to verify account", Err: err}
	}

	user.IsVerified = true
	return user, nil
}

// GetUserProfile returns the caller's profile, or nil when none exists yet.
func (g *Gateway) GetUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	profile, err := database.GetUserProfile(ctx, g.db, userID)
	if err != nil {
		return nil, &DataError{Message: "failed to load profile", Err: err}
	}
	return profile, nil
}

// UpdateUserProfile applies a partial profile update and returns the stored
// profile.
func (g *Gateway) UpdateUserProfile(ctx context.Context, userID string, update models.ProfileUpdate) (*models.UserProfile, error) {
	user, err := database.GetUserByID(ctx, g.db, userID)
	if err != nil {
		return nil, &AuthError{Message: "User not authenticated"}
	}

	profile, err := database.UpsertUserProfile(ctx, g.db, user.ID, user.Email, update)
	if err != nil {
		return nil, &DataError{Message: "failed to update profile", Err: err}
	}

	return profile, nil
}

// GetShoppingLists returns the caller's lists, newest first.
func (g *Gateway) GetShoppingLists(ctx context.Context, userID string) ([]models.ShoppingList, error) {
	lists, err := database.GetShoppingLists(ctx, g.db, userID)
	if err != nil {
		return nil, &DataError{Message: "failed to load shopping lists", Err: err}
	}
	return lists, nil
}

func (g *Gateway) CreateShoppingList(ctx context.Context, userID, name string) (*models.ShoppingList, error) {
	if verr := validateListName(name); verr != nil {
		return nil, verr
	}

	list, err := database.CreateShoppingList(ctx, g.db, userID, strings.TrimSpace(name))
	if err != nil {
		return nil, &DataError{Message: "failed to create shopping list", Err: err}
	}

	return list, nil
}

func (g *Gateway) RenameShoppingList(ctx context.Context, userID, listID, name string) (*models.ShoppingList, error) {
	if verr := validateListName(name); verr != nil {
		return nil, verr
	}

	list, err := database.RenameShoppingList(ctx, g.db, userID, listID, strings.TrimSpace(name))
	if err != nil {
		return nil, &DataError{Message: "failed to rename shopping list", Err: err}
	}

	return list, nil
}

// DeleteShoppingList removes the list's items, then the list. The two calls
// are sequential and not atomic; see DeleteShoppingList in the database
// package for the contract.
func (g *Gateway) DeleteShoppingList(ctx context.Context, userID, listID string) error {
	if err := database.DeleteShoppingList(ctx, g.db, userID, listID); err != nil {
		return &DataError{Message: "failed to delete shopping list", Err: err}
	}
	return nil
}

// GetShoppingItems returns a list's items oldest first, after checking the
// list belongs to the caller.
func (g *Gateway) GetShoppingItems(ctx context.Context, userID, listID string) ([]models.ShoppingItem, error) {
	if _, err := database.GetShoppingList(ctx, g.db, userID, listID); err != nil {
		return nil, &DataError{Message: "failed to load shopping list", Err: err}
	}

	items, err := database.GetShoppingItems(ctx, g.db, listID)
	if err != nil {
		return nil, &DataError{Message: "failed to load shopping items", Err: err}
	}

	return items, nil
}

func (g *Gateway) CreateShoppingItem(ctx context.Context, userID, listID, name string, quantity int) (*models.ShoppingItem, error) {
	if verr := validateItemName(name); verr != nil {
		return nil, verr
	}

	if _, err := database.GetShoppingList(ctx, g.db, userID, listID); err != nil {
		return nil, &DataError{Message: "failed to load shopping list", Err: err}
	}

	item, err := database.CreateShoppingItem(ctx, g.db, listID, strings.TrimSpace(name), quantity)
	if err != nil {
		return nil, &DataError{Message: "failed to create shopping item", Err: err}
	}

	return item, nil
}

func (g *Gateway) UpdateShoppingItem(ctx context.Context, userID, itemID string, update models.ItemUpdate) (*models.ShoppingItem, error) {
	if update.Name != nil {
		if verr := validateItemName(*update.Name); verr != nil {
			return nil, verr
		}
	}

	if err := g.checkItemOwnership(ctx, userID, itemID); err != nil {
		return nil, err
	}

	item, err := database.UpdateShoppingItem(ctx, g.db, itemID, update)
	if err != nil {
		return nil, &DataError{Message: "failed to update shopping item", Err: err}
	}

	return item, nil
}

func (g *Gateway) DeleteShoppingItem(ctx context.Context, userID, itemID string) error {
	if err := g.checkItemOwnership(ctx, userID, itemID); err != nil {
		return err
	}

	if err := database.DeleteShoppingItem(ctx, g.db, itemID); err != nil {
		return &DataError{Message: "failed to delete shopping item", Err: err}
	}

	return nil
}

// ToggleItemBought flips the bought flag on a single item after checking the
// item belongs to the caller.
func (g *Gateway) ToggleItemBought(ctx context.Context, userID, itemID string, isBought bool) (*models.ShoppingItem, error) {
	if err := g.checkItemOwnership(ctx, userID, itemID); err != nil {
		return nil, err
	}

	item, err := database.ToggleItemBought(ctx, g.db, itemID, isBought)
	if err != nil {
		return nil, &DataError{Message: "failed to update shopping item", Err: err}
	}

	return item, nil
}

// ItemsByList fetches all of the caller's items in one batched query, grouped
// by list ID.
func (g *Gateway) ItemsByList(ctx context.Context, userID string) (map[string][]models.ShoppingItem, error) {
	grouped, err := database.GetItemsByUser(ctx, g.db, userID)
	if err != nil {
		return nil, &DataError{Message: "failed to load items", Err: err}
	}
	return grouped, nil
}

func (g *Gateway) checkItemOwnership(ctx context.Context, userID, itemID string) error {
	item, err := database.GetShoppingItem(ctx, g.db, itemID)
	if err != nil {
		return &DataError{Message: "failed to load shopping item", Err: err}
	}

	if _, err := database.GetShoppingList(ctx, g.db, userID, item.ListID); err != nil {
		return &AuthError{Message: "Item does not belong to the current user"}
	}

	return nil
}
