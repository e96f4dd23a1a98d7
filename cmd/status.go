package main

import (
	"context"
	"strings"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

// Status fans out over the statistics endpoints and renders a dashboard. The
// admin-only system health check is attempted only for admin sessions.
func (r *Runner) Status(ctx context.Context, cmd *cli.Command) error {
	session, err := services.InitSession(ctx, r.api, r.creds)
	if err != nil {
		return err
	}

	var (
		generation *models.GenerationStats
		providers  []models.AIProvider
		popular    []models.PopularDestination
		system     *models.SystemStatus
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		generation, err = r.api.Stats.Generation(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		providers, err = r.api.AI.Providers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		popular, err = r.api.Stats.PopularDestinations(gctx, 5)
		return err
	})
	if session.Authenticated() && session.Principal.IsAdmin() {
		g.Go(func() error {
			var err error
			system, err = r.api.Stats.SystemStatus(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"generation": generation,
			"providers":  providers,
			"popular":    popular,
			"system":     system,
		}, true)
	}

	r.writePlainHeader("Wayfarer Status")

	r.writePlain("Itineraries: %d  Users: %d  Success rate: %.0f%%\n",
		generation.TotalItineraries, generation.TotalUsers, generation.SuccessRate*100)
	r.writePlain("Average generation time: %.0fs over %.1f days\n\n",
		generation.AvgGenerationTime, generation.AverageDays)

	r.writePlainln("Providers:")
	for _, p := range providers {
		marker := "✗"
		if p.Available() {
			marker = "✓"
		}
		r.writePlain("  %s %s (%s)\n", marker, p.DisplayName, p.Config.Model)
	}

	if len(popular) > 0 {
		r.writePlain("\n")
		r.writePlainln("Popular destinations:")
		for _, d := range popular {
			r.writePlain("  %-24s %d trips\n", d.Destination, d.Count)
		}
	}

	if system != nil {
		r.writePlain("\n")
		r.writePlain("System health: %s\n", strings.ToUpper(system.SystemHealth))
		for name, up := range system.AIProviderStatus {
			marker := "✗"
			if up {
				marker = "✓"
			}
			r.writePlain("  %s %s\n", marker, name)
		}
	}
	return nil
}
