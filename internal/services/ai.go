package services

import (
	"context"
	"net/http"
	"net/url"

	"github.com/desertthunder/wayfarer/internal/models"
)

// AIAPI covers provider discovery, connectivity tests, and direct text
// generation.
type AIAPI struct {
	pipeline *Pipeline
}

// Providers lists the configured AI providers and their availability.
func (a *AIAPI) Providers(ctx context.Context) ([]models.AIProvider, error) {
	env, err := a.pipeline.Do(ctx, http.MethodGet, "/v1/ai/providers", nil, CallOpts{})
	if err != nil {
		return nil, err
	}
	return decode[[]models.AIProvider](env)
}

// TestConnection probes a provider's backend.
func (a *AIAPI) TestConnection(ctx context.Context, provider string) (*models.ConnectionTest, error) {
	path := "/v1/ai/test?provider=" + url.QueryEscape(provider)
	env, err := a.pipeline.Do(ctx, http.MethodPost, path, nil, CallOpts{})
	if err != nil {
		return nil, err
	}

	test, err := decode[models.ConnectionTest](env)
	if err != nil {
		return nil, err
	}
	return &test, nil
}

// GenerateText runs a raw prompt through a provider. Counts as long-running
// for the busy indicator.
func (a *AIAPI) GenerateText(ctx context.Context, req models.AIGenerationRequest) (*models.GeneratedText, error) {
	env, err := a.pipeline.Do(ctx, http.MethodPost, "/v1/ai/generate", req, CallOpts{LongRunning: true})
	if err != nil {
		return nil, err
	}

	text, err := decode[models.GeneratedText](env)
	if err != nil {
		return nil, err
	}
	return &text, nil
}
