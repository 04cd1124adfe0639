package store

import (
	"slices"
	"strings"

	"github.com/tartampluch/go-wishlist/internal/engine"
)

// State is an immutable snapshot of the people collection.
// Reducers never modify a State in place; they return a new one.
type State struct {
	People []engine.Person
}

// GiftInput carries the user-editable fields of a gift.
type GiftInput struct {
	Name        string
	Description string
	Price       *float64
	Link        string
	Priority    engine.Priority
}

// normalized trims the text fields.
func (in GiftInput) normalized() GiftInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Link = strings.TrimSpace(in.Link)
	if in.Price != nil {
		in.Price = engine.Price(*in.Price)
	}
	return in
}

// Person returns a copy of the person with the given id.
func (s State) Person(id string) (engine.Person, bool) {
	i := s.index(id)
	if i < 0 {
		return engine.Person{}, false
	}
	return s.People[i].Clone(), true
}

func (s State) index(id string) int {
	return slices.IndexFunc(s.People, func(p engine.Person) bool { return p.ID == id })
}

// updatePerson applies fn to a copy of one person. Unknown ids return s unchanged.
func (s State) updatePerson(id string, fn func(p *engine.Person)) State {
	i := s.index(id)
	if i < 0 {
		return s
	}
	people := slices.Clone(s.People)
	p := people[i].Clone()
	fn(&p)
	people[i] = p
	return State{People: people}
}

// updateGift applies fn to a copy of one gift of one person.
func (s State) updateGift(personID, giftID string, fn func(g *engine.Gift)) State {
	return s.updatePerson(personID, func(p *engine.Person) {
		for i := range p.Gifts {
			if p.Gifts[i].ID == giftID {
				fn(&p.Gifts[i])
				return
			}
		}
	})
}

// AddPerson puts a new person at the front of the collection.
// The caller supplies a unique id.
func AddPerson(s State, p engine.Person) State {
	p = p.Clone()
	if p.Gifts == nil {
		p.Gifts = []engine.Gift{}
	}
	people := make([]engine.Person, 0, len(s.People)+1)
	people = append(people, p)
	return State{People: append(people, s.People...)}
}

// EditPerson updates name, birthday and optionally color. Changing the birthday
// text clears the reminder flag, since the calendar event no longer matches.
func EditPerson(s State, id, name, birthday string, color *engine.Color) State {
	return s.updatePerson(id, func(p *engine.Person) {
		if p.Birthday != birthday {
			p.ReminderSet = false
		}
		p.Name = name
		p.Birthday = birthday
		if color != nil {
			p.Color = *color
		}
	})
}

// DeletePerson removes a person and all of their gifts.
func DeletePerson(s State, id string) State {
	i := s.index(id)
	if i < 0 {
		return s
	}
	return State{People: slices.Delete(slices.Clone(s.People), i, i+1)}
}

// ToggleFavorite flips the favorite flag.
func ToggleFavorite(s State, id string) State {
	return s.updatePerson(id, func(p *engine.Person) {
		p.IsFavorite = !p.IsFavorite
	})
}

// SetReminder marks that a calendar reminder was created.
func SetReminder(s State, id string) State {
	return s.updatePerson(id, func(p *engine.Person) {
		p.ReminderSet = true
	})
}

// AddGift appends a pending gift. A blank name is a no-op.
func AddGift(s State, personID, giftID string, in GiftInput) State {
	in = in.normalized()
	if in.Name == "" {
		return s
	}
	return s.updatePerson(personID, func(p *engine.Person) {
		p.Gifts = append(p.Gifts, engine.Gift{
			ID:          giftID,
			Name:        in.Name,
			Description: in.Description,
			Status:      engine.StatusPending,
			Price:       in.Price,
			Link:        in.Link,
			Priority:    in.Priority,
		})
	})
}

// EditGift replaces the editable fields. Id and status are kept.
// A blank name is a no-op.
func EditGift(s State, personID, giftID string, in GiftInput) State {
	in = in.normalized()
	if in.Name == "" {
		return s
	}
	return s.updateGift(personID, giftID, func(g *engine.Gift) {
		g.Name = in.Name
		g.Description = in.Description
		g.Price = in.Price
		g.Link = in.Link
		g.Priority = in.Priority
	})
}

// ToggleGiftStatus flips a gift between pending and purchased.
func ToggleGiftStatus(s State, personID, giftID string) State {
	return s.updateGift(personID, giftID, func(g *engine.Gift) {
		g.Status = g.Status.Toggle()
	})
}

// DeleteGift removes one gift.
func DeleteGift(s State, personID, giftID string) State {
	return s.updatePerson(personID, func(p *engine.Person) {
		p.Gifts = slices.DeleteFunc(p.Gifts, func(g engine.Gift) bool { return g.ID == giftID })
	})
}

// ImportPeople appends the people whose id is not yet present. Re-importing
// the same address book therefore adds nothing.
func ImportPeople(s State, incoming []engine.Person) State {
	seen := make(map[string]bool, len(s.People))
	for _, p := range s.People {
		seen[p.ID] = true
	}

	people := slices.Clone(s.People)
	for _, p := range incoming {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		p = p.Clone()
		if p.Gifts == nil {
			p.Gifts = []engine.Gift{}
		}
		people = append(people, p)
	}
	if len(people) == len(s.People) {
		return s
	}
	return State{People: people}
}
