// Package users models the authenticated identity — profile, wallet and
// score — and wraps the account endpoints of the backend (current user,
// profile update, password flows).
package users

import (
	"github.com/amane-app/amane-go/internal/utils"
)

// RoleType represents the backend-assigned role of a user.
type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

// Wallet is the user's balance summary as reported by the backend.
type Wallet struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

// UserProfile is the authenticated identity and its financial summary.
// It is treated as an opaque value: replaced wholesale on every refresh,
// never partially patched in place.
type UserProfile struct {
	ID          string   `json:"id"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phoneNumber"`
	Role        RoleType `json:"role"`
	Wallet      Wallet   `json:"wallet"`
	Score       float64  `json:"score"`
}

// FullName returns the display name, falling back to the email when the
// backend sent no name fields.
func (u *UserProfile) FullName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}

// ProfileFromPayload builds a UserProfile from a decoded JSON object,
// coercing missing or malformed fields to safe defaults. The backend
// schema drifts; dropping a field is preferred over failing the page.
func ProfileFromPayload(payload map[string]any) *UserProfile {
	wallet := utils.Map(payload["wallet"])
	return &UserProfile{
		ID:          utils.String(payload["id"]),
		FirstName:   utils.String(payload["firstName"]),
		LastName:    utils.String(payload["lastName"]),
		Email:       utils.String(payload["email"]),
		PhoneNumber: utils.String(payload["phoneNumber"]),
		Role:        RoleType(utils.StringOr(payload["role"], string(RoleUser))),
		Wallet: Wallet{
			Balance:  utils.Number(wallet["balance"]),
			Currency: utils.String(wallet["currency"]),
		},
		Score: utils.Number(payload["score"]),
	}
}
