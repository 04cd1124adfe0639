package engine_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

func ids(view []engine.ScheduledPerson) []string {
	out := make([]string, 0, len(view))
	for _, sp := range view {
		out = append(out, sp.Person.ID)
	}
	return out
}

func giftIDs(gifts []engine.Gift) []string {
	out := make([]string, 0, len(gifts))
	for _, g := range gifts {
		out = append(out, g.ID)
	}
	return out
}

// TestOrderPeople verifies favorites come first and each group is sorted by countdown.
func TestOrderPeople(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	people := []engine.Person{
		{ID: "a", Name: "Ana", Birthday: "22 de Noviembre"},
		{ID: "b", Name: "Bea", Birthday: "algún día"},
		{ID: "c", Name: "Carlos", Birthday: "2 de Mayo", IsFavorite: true},
		{ID: "d", Name: "Diego", Birthday: "15 de Mayo"},
		{ID: "e", Name: "Eva", Birthday: "1 de Mayo", IsFavorite: true},
		{ID: "f", Name: "Fran", Birthday: ""},
	}
	before := make([]engine.Person, len(people))
	copy(before, people)

	view := engine.OrderPeople(people, now)

	assert.Equal(t, []string{"e", "c"}, ids(view.Favorites))
	assert.Equal(t, []string{"d", "a", "b", "f"}, ids(view.Others), "Unscheduled people keep input order at the end")
	assert.Equal(t, []string{"e", "c", "d", "a", "b", "f"}, ids(view.All()))

	assert.Equal(t, 0, view.Favorites[0].Days)
	assert.True(t, view.Favorites[0].Scheduled)
	assert.Equal(t, 14, view.Others[0].Days)
	assert.False(t, view.Others[2].Scheduled)

	assert.Empty(t, cmp.Diff(before, people), "Input slice must not be reordered")
}

// TestOrderPeople_StableTies checks that equal countdowns keep insertion order.
func TestOrderPeople_StableTies(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	people := []engine.Person{
		{ID: "x", Birthday: "10 de Marzo"},
		{ID: "y", Birthday: "10 de marzo,"},
		{ID: "z", Birthday: "10 DE MARZO"},
	}

	view := engine.OrderPeople(people, now)

	assert.Empty(t, view.Favorites)
	assert.Equal(t, []string{"x", "y", "z"}, ids(view.Others))
}

func TestOrderPeople_Empty(t *testing.T) {
	view := engine.OrderPeople(nil, time.Now())
	assert.Empty(t, view.All())
}

// TestOrderGifts verifies pending gifts are ranked and purchased gifts are split off.
func TestOrderGifts(t *testing.T) {
	gifts := []engine.Gift{
		{ID: "low", Priority: engine.PriorityLow},
		{ID: "bought-1", Status: engine.StatusPurchased, Priority: engine.PriorityHigh},
		{ID: "med-1", Priority: engine.PriorityMedium},
		{ID: "high", Priority: engine.PriorityHigh},
		{ID: "med-2"},
		{ID: "bought-2", Status: engine.StatusPurchased, Priority: engine.PriorityLow},
	}

	view := engine.OrderGifts(gifts)

	assert.Equal(t, []string{"high", "med-1", "med-2", "low"}, giftIDs(view.Pending))
	assert.Equal(t, []string{"bought-1", "bought-2"}, giftIDs(view.Purchased), "Purchased gifts keep insertion order")
	assert.Equal(t, "low", gifts[0].ID, "Input slice must not be reordered")
}

// TestBudget verifies that missing prices count as zero and spending is split by status.
func TestBudget(t *testing.T) {
	tests := []struct {
		name     string
		gifts    []engine.Gift
		expected engine.BudgetSummary
	}{
		{
			name:     "No gifts",
			gifts:    nil,
			expected: engine.BudgetSummary{},
		},
		{
			name:     "No prices",
			gifts:    []engine.Gift{{ID: "a"}, {ID: "b"}},
			expected: engine.BudgetSummary{},
		},
		{
			name: "Mixed",
			gifts: []engine.Gift{
				{ID: "a", Price: engine.Price(45), Status: engine.StatusPurchased},
				{ID: "b", Price: engine.Price(25)},
				{ID: "c"},
			},
			expected: engine.BudgetSummary{Total: 70, Spent: 45, Pending: 25, Priced: true},
		},
		{
			name:     "Zero price still counts as priced",
			gifts:    []engine.Gift{{ID: "a", Price: engine.Price(0)}},
			expected: engine.BudgetSummary{Priced: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Budget(tt.gifts)
			require.Equal(t, tt.expected.Priced, got.Priced)
			assert.InDelta(t, tt.expected.Total, got.Total, 0.001)
			assert.InDelta(t, tt.expected.Spent, got.Spent, 0.001)
			assert.InDelta(t, tt.expected.Pending, got.Pending, 0.001)
		})
	}
}

// TestOrderPeople_Idempotent orders the same mixed collection twice.
func TestOrderPeople_Idempotent(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	people := []engine.Person{
		{ID: "a", Name: "Ana", Birthday: "22 de Noviembre"},
		{ID: "b", Name: "Bea", Birthday: "sin fecha"},
		{ID: "c", Name: "Carlos", Birthday: "15 de Mayo", IsFavorite: true},
		{ID: "d", Name: "Diego", Birthday: "15 de mayo"},
		{ID: "e", Name: "Eva", Birthday: "15 de Mayo", IsFavorite: true},
		{ID: "f", Name: "Fran", Birthday: "", IsFavorite: true},
		{ID: "g", Name: "Gala", Birthday: "22 de Noviembre"},
		{ID: "h", Name: "Hugo", Birthday: "31 de Febrero"},
	}

	first := engine.OrderPeople(people, now)
	second := engine.OrderPeople(people, now)

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, []string{"c", "e", "f", "d", "a", "g", "b", "h"}, ids(first.All()))
}

// TestOrderGifts_Idempotent orders the same mixed gift list twice.
func TestOrderGifts_Idempotent(t *testing.T) {
	gifts := []engine.Gift{
		{ID: "1", Priority: engine.PriorityLow},
		{ID: "2", Priority: engine.PriorityHigh, Status: engine.StatusPurchased},
		{ID: "3", Priority: engine.PriorityMedium},
		{ID: "4", Priority: engine.PriorityHigh},
		{ID: "5", Priority: engine.PriorityLow, Status: engine.StatusPurchased},
		{ID: "6", Priority: engine.PriorityHigh},
		{ID: "7"},
	}

	first := engine.OrderGifts(gifts)
	second := engine.OrderGifts(gifts)

	assert.Empty(t, cmp.Diff(first, second))
	assert.Equal(t, []string{"4", "6", "3", "7", "1"}, giftIDs(first.Pending))
	assert.Equal(t, []string{"2", "5"}, giftIDs(first.Purchased))
}
