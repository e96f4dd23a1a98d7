package services

import (
	"context"
	"net/http"

	"github.com/desertthunder/wayfarer/internal/models"
)

// UserAPI covers the current-user surface: identity, profile, avatar, and
// per-user statistics.
type UserAPI struct {
	pipeline *Pipeline
}

// ProfileUpdate carries the mutable profile fields. Nil fields are omitted
// and left unchanged server-side.
type ProfileUpdate struct {
	FullName    *string                 `json:"full_name,omitempty"`
	Email       *string                 `json:"email,omitempty"`
	Preferences *models.UserPreferences `json:"preferences,omitempty"`
}

// Me fetches the authenticated principal.
func (a *UserAPI) Me(ctx context.Context) (*models.User, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/user/me", nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	user, err := decode[models.User](env)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the full profile with preferences and stats.
func (a *UserAPI) Profile(ctx context.Context) (*models.UserProfile, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/user/profile", nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	profile, err := decode[models.UserProfile](env)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies a partial profile update and returns the new profile.
func (a *UserAPI) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.UserProfile, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPut, "/v1/user/profile", update, CallOpts{})
	if err != nil {
		return nil, err
	}

	profile, err := decode[models.UserProfile](env)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UploadAvatar uploads a new avatar image and returns its URL.
func (a *UserAPI) UploadAvatar(ctx context.Context, filename string, content []byte) (string, error) {
	env, err := a.pipeline.Upload(ctx, "/v1/user/avatar", "file", filename, content)
	if err != nil {
		return "", err
	}

	payload, err := decode[struct {
		Avatar string `json:"avatar"`
	}](env)
	if err != nil {
		return "", err
	}
	return payload.Avatar, nil
}

// Stats fetches the current user's generation statistics.
func (a *UserAPI) Stats(ctx context.Context) (*models.UserStats, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/user/stats", nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	stats, err := decode[models.UserStats](env)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
