package users

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/amane-app/amane-go/api"
)

// Credentials identify a user at login. Exactly one of Email or
// PhoneNumber is expected; the backend rejects requests carrying
// neither.
type Credentials struct {
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Password    string `json:"password"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *UserProfile
}

// Service wraps the account endpoints. Callers hand it the bearer token
// explicitly; it never touches session storage.
type Service struct {
	client *api.Client
}

func NewService(client *api.Client) (*Service, error) {
	if client == nil {
		return nil, errors.New("[users.NewService] api client is required")
	}
	return &Service{client: client}, nil
}

// Login exchanges credentials for tokens and the user profile.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	payload, err := api.Post[map[string]any](ctx, s.client, "/api/auth/login", creds, &api.Options{SkipUnauthorizedSignal: true})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] POST /api/auth/login")
	}

	result := &LoginResult{
		AccessToken:  stringField(payload, "accessToken"),
		RefreshToken: stringField(payload, "refreshToken"),
	}
	if user, ok := payload["user"].(map[string]any); ok {
		result.User = ProfileFromPayload(user)
	}
	if result.AccessToken == "" || result.User == nil {
		return nil, errors.New("[Service.Login] malformed login response")
	}
	return result, nil
}

// Me fetches the current user, wallet and score included.
func (s *Service) Me(ctx context.Context, token string) (*UserProfile, error) {
	payload, err := api.Get[map[string]any](ctx, s.client, "/api/users/me", &api.Options{Token: token})
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Me] GET /api/users/me")
	}
	return ProfileFromPayload(payload), nil
}

// Update applies a partial profile update and returns the new profile.
func (s *Service) Update(ctx context.Context, token, id string, patch map[string]any) (*UserProfile, error) {
	path := fmt.Sprintf("/api/users/%s", id)
	payload, err := api.Patch[map[string]any](ctx, s.client, path, patch, &api.Options{Token: token})
	if err != nil {
		return nil, errors.Wrapf(err, "[Service.Update] PATCH %s", path)
	}
	return ProfileFromPayload(payload), nil
}

// ForgotPassword asks the backend to start a password reset for email.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if _, err := api.Post[map[string]any](ctx, s.client, "/api/auth/forgot-password", body, nil); err != nil {
		return errors.Wrap(err, "[Service.ForgotPassword] POST /api/auth/forgot-password")
	}
	return nil
}

// ResendOTP asks the backend to resend the reset code.
func (s *Service) ResendOTP(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	if _, err := api.Post[map[string]any](ctx, s.client, "/api/auth/resend-otp", body, nil); err != nil {
		return errors.Wrap(err, "[Service.ResendOTP] POST /api/auth/resend-otp")
	}
	return nil
}

// ResetPassword completes the forgot-password flow with the OTP.
func (s *Service) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	body := map[string]string{"email": email, "otp": otp, "password": newPassword}
	if _, err := api.Post[map[string]any](ctx, s.client, "/api/auth/forgot-password/reset", body, nil); err != nil {
		return errors.Wrap(err, "[Service.ResetPassword] POST /api/auth/forgot-password/reset")
	}
	return nil
}

// ChangePassword changes the password of the authenticated user.
func (s *Service) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	if _, err := api.Post[map[string]any](ctx, s.client, "/api/auth/change-password", body, &api.Options{Token: token}); err != nil {
		return errors.Wrap(err, "[Service.ChangePassword] POST /api/auth/change-password")
	}
	return nil
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
