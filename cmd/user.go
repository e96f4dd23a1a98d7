package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/urfave/cli/v3"
)

// UserProfile shows the current user's profile.
func (r *Runner) UserProfile(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.api.User.Profile(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, true)
	}

	r.writePlainHeader(profile.DisplayName())
	r.writePlain("Username: %s\n", profile.Username)
	r.writePlain("Email: %s\n", profile.Email)
	r.writePlain("Role: %s\n", profile.Role)
	r.writePlain("Default provider: %s\n", profile.Preferences.DefaultAIProvider)
	r.writePlain("Itineraries: %d\n", profile.Stats.TotalItineraries)
	if len(profile.Stats.FavoriteDestinations) > 0 {
		r.writePlain("Favorites: %s\n", strings.Join(profile.Stats.FavoriteDestinations, ", "))
	}
	return nil
}

// UserUpdate applies a partial profile update from the provided flags.
func (r *Runner) UserUpdate(ctx context.Context, cmd *cli.Command) error {
	update := services.ProfileUpdate{}

	if name := cmd.String("full-name"); name != "" {
		update.FullName = &name
	}
	if email := cmd.String("email"); email != "" {
		update.Email = &email
	}

	provider := cmd.String("provider")
	language := cmd.String("language")
	timezone := cmd.String("timezone")
	if provider != "" || language != "" || timezone != "" {
		update.Preferences = &models.UserPreferences{
			DefaultAIProvider: provider,
			Language:          language,
			Timezone:          timezone,
		}
	}

	if update.FullName == nil && update.Email == nil && update.Preferences == nil {
		return fmt.Errorf("%w: nothing to update", shared.ErrMissingArgument)
	}

	profile, err := r.api.User.UpdateProfile(ctx, update)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Profile updated for %s\n", profile.DisplayName())
}

// UserAvatar uploads a new avatar image.
func (r *Runner) UserAvatar(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: image path", shared.ErrMissingArgument)
	}

	content, err := shared.VerifyAndReadFile(path)
	if err != nil {
		return err
	}

	r.logger.Info("uploading avatar", "path", path, "bytes", len(content))

	url, err := r.api.User.UploadAvatar(ctx, filepath.Base(path), content)
	if err != nil {
		return err
	}

	return r.writePlain("✓ Avatar uploaded: %s\n", url)
}

// UserStats shows the current user's generation statistics.
func (r *Runner) UserStats(ctx context.Context, cmd *cli.Command) error {
	stats, err := r.api.User.Stats(ctx)
	if err != nil {
		return err
	}

	r.writePlain("Itineraries: %d\n", stats.TotalItineraries)
	if stats.SuccessfulGenerations > 0 {
		r.writePlain("Successful generations: %d\n", stats.SuccessfulGenerations)
	}
	if len(stats.FavoriteDestinations) > 0 {
		r.writePlain("Favorite destinations: %s\n", strings.Join(stats.FavoriteDestinations, ", "))
	}
	if stats.MemberSince != "" {
		r.writePlain("Member since: %s\n", stats.MemberSince)
	}
	return nil
}
