package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amane-app/amane-go/users"
)

// FileStore keeps each entry in its own file under a data folder. One
// file per key mirrors the independence of the entries: a partial write
// or a corrupt value affects that key alone.
type FileStore struct {
	dir string
	log zerolog.Logger

	mu        sync.Mutex
	ephemeral map[string]string
}

var _ Repo = (*FileStore)(nil)

// FileStoreOption modifies a FileStore at construction time.
type FileStoreOption func(*FileStore)

func WithLogger(l zerolog.Logger) FileStoreOption {
	return func(fs *FileStore) {
		fs.log = l
	}
}

// NewFileStore creates the data folder if needed. A folder that cannot
// be created is not fatal: reads will report an absent session and
// writes will fail with a logged error, matching restricted-storage
// environments.
func NewFileStore(dir string, options ...FileStoreOption) *FileStore {
	fs := &FileStore{
		dir:       dir,
		log:       log.Logger,
		ephemeral: make(map[string]string),
	}
	for _, opt := range options {
		opt(fs)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		fs.log.Warn().Err(err).Str("dir", dir).Msg("session storage unavailable")
	}
	return fs
}

func (fs *FileStore) SaveUser(user *users.UserProfile) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "[FileStore.SaveUser] encoding user")
	}
	return fs.write(UserKey, raw)
}

func (fs *FileStore) SaveTokens(accessToken, refreshToken string) error {
	if err := fs.write(AccessTokenKey, []byte(accessToken)); err != nil {
		return err
	}
	return fs.write(RefreshTokenKey, []byte(refreshToken))
}

func (fs *FileStore) Load() (*StoredSession, bool) {
	userRaw, userPresent := fs.read(UserKey)
	tokenRaw, tokenPresent := fs.read(AccessTokenKey)

	if !userPresent && !tokenPresent {
		return nil, false
	}

	// user and access token must be present together; a half-written or
	// corrupt session is cleared so the next load starts clean
	if !userPresent || !tokenPresent || len(tokenRaw) == 0 {
		fs.selfHeal("incomplete session entries")
		return nil, false
	}

	var user users.UserProfile
	if err := json.Unmarshal(userRaw, &user); err != nil {
		fs.selfHeal("stored user entry is not valid JSON")
		return nil, false
	}

	refreshRaw, _ := fs.read(RefreshTokenKey)
	return &StoredSession{
		User:         &user,
		AccessToken:  string(tokenRaw),
		RefreshToken: string(refreshRaw),
	}, true
}

func (fs *FileStore) Clear() error {
	fs.mu.Lock()
	fs.ephemeral = make(map[string]string)
	fs.mu.Unlock()

	var firstErr error
	for _, key := range []string{UserKey, AccessTokenKey, RefreshTokenKey, LocaleKey} {
		if err := os.Remove(fs.path(key)); err != nil && !os.IsNotExist(err) {
			if firstErr == nil {
				firstErr = errors.Wrapf(err, "[FileStore.Clear] removing %s", key)
			}
		}
	}
	return firstErr
}

func (fs *FileStore) Locale() string {
	raw, _ := fs.read(LocaleKey)
	return string(raw)
}

func (fs *FileStore) SetLocale(locale string) error {
	return fs.write(LocaleKey, []byte(locale))
}

func (fs *FileStore) PutEphemeral(key, value string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.ephemeral[key] = value
}

func (fs *FileStore) Ephemeral(key string) (string, bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	v, ok := fs.ephemeral[key]
	return v, ok
}

func (fs *FileStore) selfHeal(reason string) {
	fs.log.Warn().Str("reason", reason).Msg("clearing session storage")
	if err := fs.Clear(); err != nil {
		fs.log.Warn().Err(err).Msg("session storage self-heal failed")
	}
}

func (fs *FileStore) write(key string, value []byte) error {
	if err := os.WriteFile(fs.path(key), value, 0o600); err != nil {
		return errors.Wrapf(err, "[FileStore.write] writing %s", key)
	}
	return nil
}

func (fs *FileStore) read(key string) ([]byte, bool) {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		return nil, false
	}
	return raw, true
}

func (fs *FileStore) path(key string) string {
	return filepath.Join(fs.dir, key)
}
