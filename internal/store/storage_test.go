package store_test

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
	"github.com/tartampluch/go-wishlist/internal/store"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockStorage lets tests inject load and save failures.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Load() ([]engine.Person, error) {
	args := m.Called()
	if p := args.Get(0); p != nil {
		return p.([]engine.Person), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockStorage) Save(people []engine.Person) error {
	return m.Called(people).Error(0)
}

// -----------------------------------------------------------------------------
// Test Cases
// -----------------------------------------------------------------------------

func TestPreferencesStorage_RoundTrip(t *testing.T) {
	a := test.NewTempApp(t)
	st := store.NewPreferencesStorage(a.Preferences())

	people := engine.SeedPeople()
	people[1].IsFavorite = true
	people[1].ReminderSet = true
	require.NoError(t, st.Save(people))

	raw := a.Preferences().String(config.StorageKey)
	assert.Contains(t, raw, `"version":1`)

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(people, loaded))
}

func TestPreferencesStorage_Empty(t *testing.T) {
	a := test.NewTempApp(t)
	st := store.NewPreferencesStorage(a.Preferences())

	_, err := st.Load()
	assert.ErrorIs(t, err, store.ErrNoData)

	require.NoError(t, st.Save(nil))
	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded, "An emptied wishlist stays empty and does not reseed")
}

// TestPreferencesStorage_LegacyArray verifies snapshots saved before the envelope still load.
func TestPreferencesStorage_LegacyArray(t *testing.T) {
	a := test.NewTempApp(t)
	a.Preferences().SetString(config.StorageKey,
		`[{"id":"1","name":"Mamá","birthday":"15 de Mayo","reminderSet":false,"isFavorite":true,"color":"rose",`+
			`"gifts":[{"id":"101","name":"Set","description":"","status":"pendiente","priority":"alta"}]}]`)

	loaded, err := store.NewPreferencesStorage(a.Preferences()).Load()

	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].IsFavorite)
	assert.Equal(t, engine.ColorRose, loaded[0].Color)
	assert.Equal(t, engine.PriorityHigh, loaded[0].Gifts[0].Priority)
}

func TestPreferencesStorage_Corrupt(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{"Not JSON", "{{{", config.ErrStorageDecode},
		{"Truncated array", `[{"id":"1"`, config.ErrStorageDecode},
		{"Future version", `{"version":9,"people":[]}`, config.ErrStorageVersion},
		{"Unknown enum", `{"version":1,"people":[{"id":"1","gifts":[{"id":"g","status":"lost"}]}]}`, config.ErrStorageDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := test.NewTempApp(t)
			a.Preferences().SetString(config.StorageKey, tt.raw)

			_, err := store.NewPreferencesStorage(a.Preferences()).Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadOrSeed(t *testing.T) {
	t.Run("Stored data wins", func(t *testing.T) {
		m := new(MockStorage)
		m.On("Load").Return([]engine.Person{{ID: "x"}}, nil)
		people := store.LoadOrSeed(m)
		require.Len(t, people, 1)
		assert.Equal(t, "x", people[0].ID)
	})

	t.Run("Missing data seeds", func(t *testing.T) {
		m := new(MockStorage)
		m.On("Load").Return(nil, store.ErrNoData)
		assert.Empty(t, cmp.Diff(engine.SeedPeople(), store.LoadOrSeed(m)))
	})

	t.Run("Corrupt data seeds", func(t *testing.T) {
		m := new(MockStorage)
		m.On("Load").Return(nil, errors.New("boom"))
		assert.Len(t, store.LoadOrSeed(m), 2)
	})
}

// TestPersister_SavesAfterEveryMutation wires the store to real preferences.
func TestPersister_SavesAfterEveryMutation(t *testing.T) {
	a := test.NewTempApp(t)
	st := store.NewPreferencesStorage(a.Preferences())

	s := store.New(engine.SeedPeople(), nil)
	s.Subscribe(store.Persister(st))

	s.ToggleFavorite("person-2")
	giftID := s.AddGift("person-2", store.GiftInput{Name: "Libro"})

	reloaded, err := st.Load()
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(s.People(), reloaded))

	restored := store.New(store.LoadOrSeed(st), nil)
	p, ok := restored.State().Person("person-2")
	require.True(t, ok)
	assert.True(t, p.IsFavorite)
	assert.Equal(t, giftID, p.Gifts[len(p.Gifts)-1].ID)
}

// TestPersister_FailureKeepsState verifies a save error does not roll back memory.
func TestPersister_FailureKeepsState(t *testing.T) {
	m := new(MockStorage)
	m.On("Save", mock.Anything).Return(errors.New("disk full"))

	s := store.New(engine.SeedPeople(), nil)
	s.Subscribe(store.Persister(m))

	assert.NotPanics(t, func() { s.DeletePerson("person-1") })
	assert.Len(t, s.People(), 1)
	m.AssertNumberOfCalls(t, "Save", 1)
}
