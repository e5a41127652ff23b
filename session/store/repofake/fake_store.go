// Package repofake provides an in-memory session store for tests.
package repofake

import (
	"encoding/json"
	"sync"

	"github.com/amane-app/amane-go/session/store"
	"github.com/amane-app/amane-go/users"
)

// FakeStore keeps the same per-key semantics as the file store but in a
// map, so manager tests can inspect exactly which entries were written.
type FakeStore struct {
	mu        sync.Mutex
	entries   map[string][]byte
	ephemeral map[string]string

	// Unavailable makes every durable operation behave like restricted
	// storage: writes fail silently, reads find nothing.
	Unavailable bool
}

var _ store.Repo = (*FakeStore)(nil)

func NewFakeStore() *FakeStore {
	return &FakeStore{
		entries:   make(map[string][]byte),
		ephemeral: make(map[string]string),
	}
}

// Seed preloads a full session, as if a previous process had logged in.
func (f *FakeStore) Seed(user *users.UserProfile, accessToken, refreshToken string) {
	raw, _ := json.Marshal(user)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[store.UserKey] = raw
	f.entries[store.AccessTokenKey] = []byte(accessToken)
	f.entries[store.RefreshTokenKey] = []byte(refreshToken)
}

// SeedRaw writes an entry verbatim, used to inject corrupt state.
func (f *FakeStore) SeedRaw(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = value
}

// Entry exposes a raw entry for assertions.
func (f *FakeStore) Entry(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.entries[key]
	return v, ok
}

func (f *FakeStore) SaveUser(user *users.UserProfile) error {
	if f.Unavailable {
		return nil
	}
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[store.UserKey] = raw
	return nil
}

func (f *FakeStore) SaveTokens(accessToken, refreshToken string) error {
	if f.Unavailable {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[store.AccessTokenKey] = []byte(accessToken)
	f.entries[store.RefreshTokenKey] = []byte(refreshToken)
	return nil
}

func (f *FakeStore) Load() (*store.StoredSession, bool) {
	if f.Unavailable {
		return nil, false
	}
	f.mu.Lock()
	userRaw, userPresent := f.entries[store.UserKey]
	tokenRaw, tokenPresent := f.entries[store.AccessTokenKey]
	refreshRaw := f.entries[store.RefreshTokenKey]
	f.mu.Unlock()

	if !userPresent && !tokenPresent {
		return nil, false
	}
	if !userPresent || !tokenPresent || len(tokenRaw) == 0 {
		_ = f.Clear()
		return nil, false
	}

	var user users.UserProfile
	if err := json.Unmarshal(userRaw, &user); err != nil {
		_ = f.Clear()
		return nil, false
	}

	return &store.StoredSession{
		User:         &user,
		AccessToken:  string(tokenRaw),
		RefreshToken: string(refreshRaw),
	}, true
}

func (f *FakeStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, store.UserKey)
	delete(f.entries, store.AccessTokenKey)
	delete(f.entries, store.RefreshTokenKey)
	delete(f.entries, store.LocaleKey)
	f.ephemeral = make(map[string]string)
	return nil
}

func (f *FakeStore) Locale() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return string(f.entries[store.LocaleKey])
}

func (f *FakeStore) SetLocale(locale string) error {
	if f.Unavailable {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[store.LocaleKey] = []byte(locale)
	return nil
}

func (f *FakeStore) PutEphemeral(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ephemeral[key] = value
}

func (f *FakeStore) Ephemeral(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.ephemeral[key]
	return v, ok
}
