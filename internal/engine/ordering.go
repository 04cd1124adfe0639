package engine

import (
	"slices"
	"time"
)

// ScheduledPerson pairs a person with the derived birthday countdown.
type ScheduledPerson struct {
	Person Person

	// Days until the next birthday. Only meaningful when Scheduled is true.
	Days int

	// Scheduled is false when the birthday text could not be parsed.
	Scheduled bool
}

// PeopleView is the display order of the people collection.
type PeopleView struct {
	Favorites []ScheduledPerson
	Others    []ScheduledPerson
}

// All returns favorites followed by the others.
func (v PeopleView) All() []ScheduledPerson {
	out := make([]ScheduledPerson, 0, len(v.Favorites)+len(v.Others))
	out = append(out, v.Favorites...)
	return append(out, v.Others...)
}

// OrderPeople partitions people into favorites and others, each sorted by
// ascending days until birthday with unscheduled entries last. The sort is
// stable and the input slice is not modified.
func OrderPeople(people []Person, now time.Time) PeopleView {
	var view PeopleView
	for _, p := range people {
		days, ok := DaysUntilBirthday(p.Birthday, now)
		sp := ScheduledPerson{Person: p, Days: days, Scheduled: ok}
		if p.IsFavorite {
			view.Favorites = append(view.Favorites, sp)
		} else {
			view.Others = append(view.Others, sp)
		}
	}
	slices.SortStableFunc(view.Favorites, compareSchedule)
	slices.SortStableFunc(view.Others, compareSchedule)
	return view
}

func compareSchedule(a, b ScheduledPerson) int {
	switch {
	case !a.Scheduled && !b.Scheduled:
		return 0
	case !a.Scheduled:
		return 1
	case !b.Scheduled:
		return -1
	default:
		return a.Days - b.Days
	}
}

// GiftView is the display order of one person's gifts.
type GiftView struct {
	// Pending gifts, highest priority first.
	Pending []Gift

	// Purchased gifts in insertion order, shown as a secondary group.
	Purchased []Gift
}

// OrderGifts splits gifts into pending and purchased. Pending gifts are
// sorted by descending priority rank; ties keep their input order.
func OrderGifts(gifts []Gift) GiftView {
	var view GiftView
	for _, g := range gifts {
		if g.Purchased() {
			view.Purchased = append(view.Purchased, g)
		} else {
			view.Pending = append(view.Pending, g)
		}
	}
	slices.SortStableFunc(view.Pending, func(a, b Gift) int {
		return b.Priority.Rank() - a.Priority.Rank()
	})
	return view
}

// BudgetSummary totals the known gift prices of a person.
type BudgetSummary struct {
	Total   float64
	Spent   float64
	Pending float64

	// Priced is false when no gift carries a price.
	Priced bool
}

// Budget sums gift prices. Gifts without a price count as zero.
func Budget(gifts []Gift) BudgetSummary {
	var sum BudgetSummary
	for _, g := range gifts {
		if g.Price == nil {
			continue
		}
		sum.Priced = true
		sum.Total += *g.Price
		if g.Purchased() {
			sum.Spent += *g.Price
		} else {
			sum.Pending += *g.Price
		}
	}
	return sum
}
