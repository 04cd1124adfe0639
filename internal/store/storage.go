package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-wishlist/internal/config"
	"github.com/tartampluch/go-wishlist/internal/engine"
)

// ErrNoData is returned by Load when nothing has been saved yet.
var ErrNoData = errors.New(config.ErrStorageEmpty)

// Storage persists the whole people collection as one snapshot.
type Storage interface {
	Load() ([]engine.Person, error)
	Save(people []engine.Person) error
}

// snapshot is the stored envelope. Older data is a bare JSON array.
type snapshot struct {
	Version int             `json:"version"`
	People  []engine.Person `json:"people"`
}

// PreferencesStorage keeps the snapshot under a single key of the app preferences.
type PreferencesStorage struct {
	Prefs fyne.Preferences
	Key   string
}

// NewPreferencesStorage uses the default storage key.
func NewPreferencesStorage(prefs fyne.Preferences) *PreferencesStorage {
	return &PreferencesStorage{Prefs: prefs, Key: config.StorageKey}
}

// Load decodes the stored snapshot.
func (ps *PreferencesStorage) Load() ([]engine.Person, error) {
	raw := ps.Prefs.String(ps.Key)
	if raw == "" {
		return nil, ErrNoData
	}
	return decodeSnapshot([]byte(raw))
}

// Save encodes people and overwrites the stored snapshot.
func (ps *PreferencesStorage) Save(people []engine.Person) error {
	if people == nil {
		people = []engine.Person{}
	}
	data, err := json.Marshal(snapshot{Version: config.StorageVersion, People: people})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrStorageEncode, err)
	}
	ps.Prefs.SetString(ps.Key, string(data))
	return nil
}

func decodeSnapshot(data []byte) ([]engine.Person, error) {
	data = bytes.TrimSpace(data)

	if len(data) > 0 && data[0] == '[' {
		var people []engine.Person
		if err := json.Unmarshal(data, &people); err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrStorageDecode, err)
		}
		return people, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrStorageDecode, err)
	}
	if snap.Version != config.StorageVersion {
		return nil, fmt.Errorf("%s: %d", config.ErrStorageVersion, snap.Version)
	}
	return snap.People, nil
}

// LoadOrSeed returns the stored people, or the seed collection when nothing
// is stored or the stored data cannot be read.
func LoadOrSeed(st Storage) []engine.Person {
	people, err := st.Load()
	if err != nil {
		level := slog.LevelWarn
		if errors.Is(err, ErrNoData) {
			level = slog.LevelInfo
		}
		slog.Log(context.Background(), level, config.MsgSeedFallback,
			config.LogKeyComponent, config.CompStorage,
			config.LogKeyError, err)
		return engine.SeedPeople()
	}

	slog.Info(config.MsgStateLoaded,
		config.LogKeyComponent, config.CompStorage,
		config.LogKeyPeople, len(people))
	return people
}

// Persister returns a store subscriber that saves every new state.
// A failed save is logged; the in-memory state stays authoritative.
func Persister(st Storage) func(State) {
	return func(s State) {
		if err := st.Save(s.People); err != nil {
			slog.Error(config.MsgPersistFailed,
				config.LogKeyComponent, config.CompStorage,
				config.LogKeyError, err)
		}
	}
}
