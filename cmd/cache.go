package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/repositories"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/urfave/cli/v3"
)

// openCacheDB opens the local cache database from the runner's config.
func (r *Runner) openCacheDB() (*sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database (run 'wayfarer setup database'): %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return db, nil
}

// CacheList shows locally cached itineraries without touching the network.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewItineraryRepository(db)
	itineraries, err := repo.List(models.Status(cmd.String("status")))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(itineraries, true)
	}

	if len(itineraries) == 0 {
		return r.writePlain("Cache is empty\n")
	}

	r.writePlain("Cached itineraries (%d):\n\n", len(itineraries))
	for _, it := range itineraries {
		r.writePlain("%4d  %-30s %-20s %d days  %s\n", it.ID, it.Title, it.Destination, it.Days, it.Status)
	}
	return nil
}

// CacheShow renders a cached itinerary with its daily records.
func (r *Runner) CacheShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd)
	if err != nil {
		return err
	}

	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	detail, err := repositories.NewItineraryRepository(db).Get(id)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, true)
	}

	it := detail.Itinerary
	r.writePlainHeader(fmt.Sprintf("%s — %s (cached)", it.Title, it.Destination))
	r.writePlain("Status: %s (%d%%)  Days: %d\n", it.Status, it.Progress, it.Days)
	if it.OverviewContent != "" {
		r.writePlainln("%s", it.OverviewContent)
	}
	for _, day := range detail.DailyItineraries {
		r.writePlainln("Day %d: %s", day.DayNumber, day.Title)
		if day.Content != "" {
			r.writePlain("%s\n", day.Content)
		}
	}
	return nil
}

// CacheSync pulls the server-side listing into the local cache. Completed
// itineraries also get their daily records fetched and stored.
func (r *Runner) CacheSync(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewItineraryRepository(db)

	page, err := r.api.Itinerary.List(ctx, services.ListParams{PageSize: cmd.Int("page-size")})
	if err != nil {
		return err
	}

	var synced, detailed int
	for _, it := range page.Items {
		if err := repo.SaveSummary(&it); err != nil {
			r.logger.Warn("failed to cache summary", "id", it.ID, "error", err)
			continue
		}
		synced++

		if it.Status != models.StatusCompleted {
			continue
		}
		detail, err := r.api.Itinerary.Detail(ctx, it.ID)
		if err != nil {
			r.logger.Warn("failed to fetch detail", "id", it.ID, "error", err)
			continue
		}
		if err := repo.SaveDetail(detail); err != nil {
			r.logger.Warn("failed to cache detail", "id", it.ID, "error", err)
			continue
		}
		detailed++
	}

	return r.writePlain("✓ Synced %d itinerary(ies), %d with full detail\n", synced, detailed)
}

// CacheDelete removes a cached itinerary locally only.
func (r *Runner) CacheDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd)
	if err != nil {
		return err
	}

	db, err := r.openCacheDB()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repositories.NewItineraryRepository(db).Delete(id); err != nil {
		return err
	}
	return r.writePlain("✓ Removed itinerary %d from the local cache\n", id)
}
