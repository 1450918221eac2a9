// Package analytics derives completion statistics from already-fetched lists
// and items. Everything here is pure: inputs are never mutated and results are
// recomputed in full on every refresh.
package analytics

import (
	"math"
	"sort"
	"strings"

	"cartly/internal/models"
)

// ListItems pairs a list with its items, in the order lists came back from the
// store (newest first).
type ListItems struct {
	List  models.ShoppingList
	Items []models.ShoppingItem
}

type Summary struct {
	TotalItems     int `json:"total_items"`
	CompletedItems int `json:"completed_items"`
	PendingItems   int `json:"pending_items"`
	CompletionRate int `json:"completion_rate"`
}

type TopItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ListOverview struct {
	ListID    string `json:"list_id"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Percent   int    `json:"percent"`
}

// Percent returns round(100 * completed / total), and 0 when total is 0.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

// Summarize computes the account-wide item totals and completion rate.
func Summarize(groups []ListItems) Summary {
	var total, completed int
	for _, g := range groups {
		total += len(g.Items)
		for _, item := range g.Items {
			if item.IsBought {
				completed++
			}
		}
	}

	return Summary{
		TotalItems:     total,
		CompletedItems: completed,
		PendingItems:   total - completed,
		CompletionRate: Percent(completed, total),
	}
}

// TopItems counts item names case-insensitively across all lists and returns
// the n most frequent. The sort is stable: ties keep first-encounter order.
func TopItems(groups []ListItems, n int) []TopItem {
	counts := make(map[string]int)
	var order []string

	for _, g := range groups {
		for _, item := range g.Items {
			name := strings.ToLower(item.Name)
			if _, seen := counts[name]; !seen {
				order = append(order, name)
			}
			counts[name]++
		}
	}

	top := make([]TopItem, 0, len(order))
	for _, name := range order {
		top = append(top, TopItem{Name: name, Count: counts[name]})
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Count > top[j].Count
	})

	if n >= 0 && len(top) > n {
		top = top[:n]
	}
	return top
}

// Overview computes per-list completion. Lists without items are skipped;
// the rest keep the order they were supplied in.
func Overview(groups []ListItems) []ListOverview {
	overviews := make([]ListOverview, 0, len(groups))
	for _, g := range groups {
		if len(g.Items) == 0 {
			continue
		}

		completed := 0
		for _, item := range g.Items {
			if item.IsBought {
				completed++
			}
		}

		overviews = append(overviews, ListOverview{
			ListID:    g.List.ID,
			Name:      g.List.Name,
			Total:     len(g.Items),
			Completed: completed,
			Percent:   Percent(completed, len(g.Items)),
		})
	}
	return overviews
}
