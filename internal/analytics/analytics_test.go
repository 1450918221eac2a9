package analytics

import (
	"testing"

	"cartly/internal/models"
)

func group(listID, name string, items ...models.ShoppingItem) ListItems {
	return ListItems{
		List:  models.ShoppingList{ID: listID, Name: name},
		Items: items,
	}
}

func item(name string, bought bool) models.ShoppingItem {
	return models.ShoppingItem{Name: name, Quantity: 1, IsBought: bought}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		completed int
		total     int
		want      int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 4, 25},
		{2, 3, 67},
		{1, 3, 33},
		{5, 5, 100},
	}

	for _, tt := range tests {
		if got := Percent(tt.completed, tt.total); got != tt.want {
			t.Errorf("Percent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	groups := []ListItems{
		group("l1", "Groceries",
			item("Milk", true),
			item("Bread", false),
			item("Eggs", false),
		),
		group("l2", "Hardware",
			item("Nails", false),
		),
	}

	summary := Summarize(groups)

	if summary.TotalItems != 4 {
		t.Errorf("Expected 4 total items, got %d", summary.TotalItems)
	}
	if summary.CompletedItems != 1 {
		t.Errorf("Expected 1 completed item, got %d", summary.CompletedItems)
	}
	if summary.PendingItems != 3 {
		t.Errorf("Expected 3 pending items, got %d", summary.PendingItems)
	}
	if summary.CompletionRate != 25 {
		t.Errorf("Expected completion rate 25, got %d", summary.CompletionRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)

	if summary.TotalItems != 0 || summary.CompletedItems != 0 || summary.PendingItems != 0 {
		t.Error("Expected zero counts for no data")
	}
	if summary.CompletionRate != 0 {
		t.Errorf("Expected completion rate 0 for no items, got %d", summary.CompletionRate)
	}
}

func TestTopItemsCaseInsensitive(t *testing.T) {
	groups := []ListItems{
		group("l1", "Groceries",
			item("Milk", false),
			item("Bread", false),
		),
		group("l2", "More Groceries",
			item("milk", true),
			item("MILK", false),
		),
	}

	top := TopItems(groups, 10)

	if len(top) != 2 {
		t.Fatalf("Expected 2 distinct names, got %d", len(top))
	}
	if top[0].Name != "milk" || top[0].Count != 3 {
		t.Errorf("Expected milk x3 first, got %s x%d", top[0].Name, top[0].Count)
	}
	if top[1].Name != "bread" || top[1].Count != 1 {
		t.Errorf("Expected bread x1 second, got %s x%d", top[1].Name, top[1].Count)
	}
}

func TestTopItemsTiesKeepEncounterOrder(t *testing.T) {
	groups := []ListItems{
		group("l1", "Groceries",
			item("Bread", false),
			item("Milk", false),
			item("Eggs", false),
		),
	}

	top := TopItems(groups, 10)

	want := []string{"bread", "milk", "eggs"}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("Expected %s at position %d, got %s", name, i, top[i].Name)
		}
	}
}

func TestTopItemsLimit(t *testing.T) {
	var items []models.ShoppingItem
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		items = append(items, item(name, false))
	}

	top := TopItems([]ListItems{group("l1", "Big", items...)}, 3)

	if len(top) != 3 {
		t.Errorf("Expected 3 items, got %d", len(top))
	}
}

func TestOverviewSkipsEmptyLists(t *testing.T) {
	groups := []ListItems{
		group("l1", "Groceries",
			item("Milk", true),
			item("Bread", true),
			item("Eggs", false),
			item("Butter", false),
		),
		group("l2", "Empty"),
		group("l3", "Hardware",
			item("Nails", true),
		),
	}

	overviews := Overview(groups)

	if len(overviews) != 2 {
		t.Fatalf("Expected 2 overviews, got %d", len(overviews))
	}

	if overviews[0].ListID != "l1" || overviews[1].ListID != "l3" {
		t.Error("Expected overviews in supplied list order")
	}

	if overviews[0].Total != 4 || overviews[0].Completed != 2 || overviews[0].Percent != 50 {
		t.Errorf("Unexpected first overview: %+v", overviews[0])
	}
	if overviews[1].Percent != 100 {
		t.Errorf("Expected 100 percent, got %d", overviews[1].Percent)
	}
}
