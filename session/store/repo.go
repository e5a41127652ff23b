// Package store persists the session fields durably on the client
// machine. Each field is an independent entry so partial writes are
// possible: refreshing the user rewrites only the user entry.
package store

import "github.com/amane-app/amane-go/users"

// Storage entry keys. They survive process restarts but are scoped to
// one client instance, never shared across devices.
const (
	UserKey         = "amane-user"
	AccessTokenKey  = "amane-access-token"
	RefreshTokenKey = "amane-refresh-token"
	LocaleKey       = "amane-locale"
)

// StoredSession is what Load hands back when a durable session exists.
type StoredSession struct {
	User         *users.UserProfile
	AccessToken  string
	RefreshToken string
}

// Repo is the durable session store. Implementations must treat
// unavailable storage as "absent session", never as a fatal error.
type Repo interface {
	// SaveUser writes only the user entry.
	SaveUser(user *users.UserProfile) error

	// SaveTokens writes the access and refresh token entries.
	SaveTokens(accessToken, refreshToken string) error

	// Load reads all entries. ok is true only when both the user entry
	// and the access token entry deserialize successfully. A present but
	// corrupt user entry clears all entries before reporting absent.
	Load() (session *StoredSession, ok bool)

	// Clear removes the user, token and locale entries and drops all
	// ephemeral entries. Logout resets the locale on purpose so the next
	// login starts from the default.
	Clear() error

	// Locale preference, kept alongside the session because logout
	// clears it.
	Locale() string
	SetLocale(locale string) error

	// Ephemeral entries live only as long as the process.
	PutEphemeral(key, value string)
	Ephemeral(key string) (string, bool)
}
