package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/desertthunder/wayfarer/internal/models"
)

// StatsAPI covers the aggregate statistics surface.
type StatsAPI struct {
	pipeline *Pipeline
}

// Generation fetches system-wide generation metrics.
func (a *StatsAPI) Generation(ctx context.Context) (*models.GenerationStats, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/stats/generation", nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	stats, err := decode[models.GenerationStats](env)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// PopularDestinations lists the most-generated destinations.
func (a *StatsAPI) PopularDestinations(ctx context.Context, limit int) ([]models.PopularDestination, error) {
	path := "/v1/stats/popular-destinations"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}

	env, err := a.pipeline.Do(ctx, http.MethodGet, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}
	return decode[[]models.PopularDestination](env)
}

// SystemStatus fetches backend health, admin-only server-side.
func (a *StatsAPI) SystemStatus(ctx context.Context) (*models.SystemStatus, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/stats/system-status", nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	status, err := decode[models.SystemStatus](env)
	if err != nil {
		return nil, err
	}
	return &status, nil
}
