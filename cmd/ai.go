package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/urfave/cli/v3"
)

// AIProviders lists configured AI providers and their availability.
func (r *Runner) AIProviders(ctx context.Context, cmd *cli.Command) error {
	providers, err := r.api.AI.Providers(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(providers, true)
	}

	if len(providers) == 0 {
		return r.writePlain("No providers configured\n")
	}

	for _, p := range providers {
		marker := "✗"
		if p.Available() {
			marker = "✓"
		}
		r.writePlain("%s %-12s %-24s %s\n", marker, p.Name, p.Config.Model, p.Description)
	}
	return nil
}

// AITest probes a provider's backend.
func (r *Runner) AITest(ctx context.Context, cmd *cli.Command) error {
	provider := cmd.StringArg("provider")
	if provider == "" {
		return fmt.Errorf("%w: provider name", shared.ErrMissingArgument)
	}

	r.logger.Info("testing provider connectivity", "provider", provider)

	test, err := r.api.AI.TestConnection(ctx, provider)
	if err != nil {
		return err
	}

	if test.Status == "success" {
		return r.writePlain("✓ %s: %s\n", provider, test.Message)
	}
	return r.writePlain("✗ %s: %s\n", provider, test.Message)
}

// AIGenerate runs a raw prompt through a provider.
func (r *Runner) AIGenerate(ctx context.Context, cmd *cli.Command) error {
	req := models.AIGenerationRequest{
		Prompt:      cmd.String("prompt"),
		Provider:    cmd.String("provider"),
		Temperature: cmd.Float("temperature"),
		MaxTokens:   cmd.Int("max-tokens"),
	}

	text, err := r.api.AI.GenerateText(ctx, req)
	if err != nil {
		return err
	}

	return r.writePlain("%s\n", text.Text)
}
