package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/wayfarer/internal/models"
)

// AuthAPI covers login, registration, logout, token refresh, and password
// management.
type AuthAPI struct {
	pipeline *Pipeline
}

// TokenGrant is the payload of the login and refresh endpoints.
type TokenGrant struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *models.User `json:"user,omitempty"`
}

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

// Login authenticates with username and password, persists the granted token,
// and resolves the principal before returning.
func (a *AuthAPI) Login(ctx context.Context, username, password string) (*models.User, error) {
	payload := map[string]string{"username": username, "password": password}
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/auth/login", payload, CallOpts{})
	if err != nil {
		return nil, err
	}

	grant, err := decode[TokenGrant](env)
	if err != nil {
		return nil, err
	}
	if err := a.pipeline.creds.Persist(grant.AccessToken); err != nil {
		return nil, err
	}

	user := grant.User
	if user == nil {
		meEnv, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/user/me", nil, CallOpts{})
		if err != nil {
			return nil, err
		}
		me, err := decode[models.User](meEnv)
		if err != nil {
			return nil, err
		}
		user = &me
	}

	a.pipeline.creds.SetPrincipal(*user)
	return user, nil
}

// Register creates a new account. The caller logs in separately.
func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/auth/register", req, CallOpts{})
	if err != nil {
		return nil, err
	}

	user, err := decode[models.User](env)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout invalidates the session server-side, then clears local credentials.
// The local session is cleared even when the server call fails.
func (a *AuthAPI) Logout(ctx context.Context) error {
	_, callErr := a.pipeline.Do(ctx, http.MethodPost, "/v1/auth/logout", nil, CallOpts{})
	if err := a.pipeline.creds.Clear(); err != nil {
		return err
	}
	return callErr
}

// Exchange trades the current token for a fresh one. Wired into the
// credential store as its refresh function at startup.
func (a *AuthAPI) Exchange(ctx context.Context, current string) (string, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/auth/refresh", nil, CallOpts{})
	if err != nil {
		return "", err
	}

	grant, err := decode[TokenGrant](env)
	if err != nil {
		return "", err
	}
	return grant.AccessToken, nil
}

// ResetPassword requests a password-reset email for the account.
func (a *AuthAPI) ResetPassword(ctx context.Context, email string) error {
	payload := map[string]string{"email": email}
	_, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/auth/reset-password", payload, CallOpts{})
	return err
}

// ChangePassword replaces the current user's password.
func (a *AuthAPI) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := map[string]string{
		"old_password": oldPassword,
		"new_password": newPassword,
	}
	_, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/auth/change-password", payload, CallOpts{})
	return err
}
