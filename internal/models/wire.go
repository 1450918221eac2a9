package models

import "time"

// Wire records are the row shapes the API exposes. Handlers only ever encode
// these, so a storage-layer rename stays behind the mapping functions below.

type ProfileRecord struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	PhotoURL    string    `json:"photo_url,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ListRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ItemRecord struct {
	ID        string    `json:"id"`
	ListID    string    `json:"list_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	IsBought  bool      `json:"is_bought"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SessionRecord struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func ProfileToRecord(p UserProfile) ProfileRecord {
	return ProfileRecord{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		PhotoURL:    p.PhotoURL,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ListToRecord(l ShoppingList) ListRecord {
	return ListRecord{
		ID:        l.ID,
		UserID:    l.UserID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func ListsToRecords(lists []ShoppingList) []ListRecord {
	records := make([]ListRecord, 0, len(lists))
	for _, l := range lists {
		records = append(records, ListToRecord(l))
	}
	return records
}

func ItemToRecord(i ShoppingItem) ItemRecord {
	return ItemRecord{
		ID:        i.ID,
		ListID:    i.ListID,
		Name:      i.Name,
		Quantity:  i.Quantity,
		IsBought:  i.IsBought,
		CreatedAt: i.CreatedAt,
		UpdatedAt: i.UpdatedAt,
	}
}

func ItemsToRecords(items []ShoppingItem) []ItemRecord {
	records := make([]ItemRecord, 0, len(items))
	for _, i := range items {
		records = append(records, ItemToRecord(i))
	}
	return records
}

func SessionToRecord(s Session) SessionRecord {
	return SessionRecord{
		Token:     s.Token,
		UserID:    s.UserID,
		ExpiresAt: s.ExpiresAt,
	}
}
