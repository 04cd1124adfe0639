package store

import (
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// IDFunc generates a unique id with the given prefix.
type IDFunc func(prefix string) string

// UUIDs is the default IDFunc.
func UUIDs(prefix string) string {
	return prefix + uuid.NewString()
}

// Store owns the current State. Mutations run to completion, then every
// subscriber is called with the new snapshot, outside the lock.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
	newID IDFunc
}

// New creates a store holding people. A nil newID uses UUIDs.
func New(people []engine.Person, newID IDFunc) *Store {
	if newID == nil {
		newID = UUIDs
	}
	return &Store{
		state: ImportPeople(State{}, people),
		newID: newID,
	}
}

// Subscribe registers fn to run after every mutation.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// State returns the current snapshot. Callers must treat it as read-only.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// People returns a deep copy of the collection, safe to use from any goroutine.
func (s *Store) People() []engine.Person {
	st := s.State()
	out := make([]engine.Person, len(st.People))
	for i, p := range st.People {
		out[i] = p.Clone()
	}
	return out
}

func (s *Store) apply(action string, reduce func(State) State, attrs ...any) {
	s.mu.Lock()
	next := reduce(s.state)
	s.state = next
	subs := make([]func(State), len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	args := append([]any{
		config.LogKeyComponent, config.CompStore,
		config.LogKeyAction, action,
		config.LogKeyPeople, len(next.People),
	}, attrs...)
	slog.Debug(config.MsgStateChanged, args...)

	for _, fn := range subs {
		fn(next)
	}
}

// Replace swaps the whole collection, e.g. after loading from storage.
func (s *Store) Replace(people []engine.Person) {
	s.apply(config.ActionReplace, func(State) State {
		return ImportPeople(State{}, people)
	})
}

// AddPerson creates a person with a fresh id and returns it.
func (s *Store) AddPerson(name, birthday string, color engine.Color) string {
	id := s.newID(config.IDPrefixPerson)
	p := engine.Person{
		ID:       id,
		Name:     strings.TrimSpace(name),
		Birthday: birthday,
		Color:    color,
	}
	s.apply(config.ActionAddPerson, func(st State) State {
		return AddPerson(st, p)
	}, config.LogKeyPersonID, id)
	return id
}

// EditPerson updates a person. A nil color keeps the current one.
func (s *Store) EditPerson(id, name, birthday string, color *engine.Color) {
	name = strings.TrimSpace(name)
	s.apply(config.ActionEditPerson, func(st State) State {
		return EditPerson(st, id, name, birthday, color)
	}, config.LogKeyPersonID, id)
}

// DeletePerson removes a person and their gifts.
func (s *Store) DeletePerson(id string) {
	s.apply(config.ActionDeletePerson, func(st State) State {
		return DeletePerson(st, id)
	}, config.LogKeyPersonID, id)
}

// ToggleFavorite flips the favorite flag.
func (s *Store) ToggleFavorite(id string) {
	s.apply(config.ActionToggleFavorite, func(st State) State {
		return ToggleFavorite(st, id)
	}, config.LogKeyPersonID, id)
}

// SetReminder records that a calendar reminder was created.
func (s *Store) SetReminder(id string) {
	s.apply(config.ActionSetReminder, func(st State) State {
		return SetReminder(st, id)
	}, config.LogKeyPersonID, id)
}

// AddGift appends a pending gift and returns its id, or "" when nothing was
// added (blank name or unknown person).
func (s *Store) AddGift(personID string, in GiftInput) string {
	id := s.newID(config.IDPrefixGift)
	var added bool
	s.apply(config.ActionAddGift, func(st State) State {
		next := AddGift(st, personID, id, in)
		p, ok := next.Person(personID)
		added = ok && slices.ContainsFunc(p.Gifts, func(g engine.Gift) bool { return g.ID == id })
		return next
	}, config.LogKeyPersonID, personID, config.LogKeyGiftID, id)
	if !added {
		return ""
	}
	return id
}

// EditGift replaces the editable fields of a gift.
func (s *Store) EditGift(personID, giftID string, in GiftInput) {
	s.apply(config.ActionEditGift, func(st State) State {
		return EditGift(st, personID, giftID, in)
	}, config.LogKeyPersonID, personID, config.LogKeyGiftID, giftID)
}

// ToggleGiftStatus flips a gift between pending and purchased.
func (s *Store) ToggleGiftStatus(personID, giftID string) {
	s.apply(config.ActionToggleGift, func(st State) State {
		return ToggleGiftStatus(st, personID, giftID)
	}, config.LogKeyPersonID, personID, config.LogKeyGiftID, giftID)
}

// DeleteGift removes a gift.
func (s *Store) DeleteGift(personID, giftID string) {
	s.apply(config.ActionDeleteGift, func(st State) State {
		return DeleteGift(st, personID, giftID)
	}, config.LogKeyPersonID, personID, config.LogKeyGiftID, giftID)
}

// ImportPeople merges imported people and returns how many were new.
func (s *Store) ImportPeople(people []engine.Person) int {
	var added int
	s.apply(config.ActionImportPeople, func(st State) State {
		next := ImportPeople(st, people)
		added = len(next.People) - len(st.People)
		return next
	})
	slog.Info(config.MsgStateChanged,
		config.LogKeyComponent, config.CompStore,
		config.LogKeyAction, config.ActionImportPeople,
		config.LogKeyImported, added)
	return added
}
