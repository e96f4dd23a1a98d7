package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/desertthunder/wayfarer/internal/tasks"
	"github.com/urfave/cli/v3"
)

// parseIDArg reads the "id" string argument as an itinerary id.
func parseIDArg(cmd *cli.Command) (int64, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: itinerary id", shared.ErrMissingArgument)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid itinerary id '%s'", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// ItineraryGenerate requests a new itinerary and, with --wait, tracks it to
// completion, streaming progress lines.
func (r *Runner) ItineraryGenerate(ctx context.Context, cmd *cli.Command) error {
	req := models.GenerationRequest{
		Destination:         cmd.String("destination"),
		Days:                cmd.Int("days"),
		TravelStyle:         cmd.String("style"),
		GroupSize:           cmd.Int("group-size"),
		StartDate:           cmd.String("start-date"),
		AIProvider:          cmd.String("provider"),
		SpecialRequirements: cmd.String("requirements"),
	}
	if min := cmd.Float("budget-min"); min > 0 {
		req.BudgetMin = &min
	}
	if max := cmd.Float("budget-max"); max > 0 {
		req.BudgetMax = &max
	}

	r.logger.Info("requesting itinerary", "destination", req.Destination, "days", req.Days)
	r.writePlain("Requesting %d-day itinerary for %s...\n", req.Days, req.Destination)

	itinerary, err := r.api.Itinerary.Generate(ctx, req)
	if err != nil {
		return err
	}

	// The provisional record goes into the cache before tracking starts;
	// the tracker only patches records, it never creates them.
	r.store.Upsert(*itinerary)
	r.writePlain("✓ Itinerary %d accepted (%s)\n", itinerary.ID, itinerary.Status)

	if !cmd.Bool("wait") || itinerary.Status.Terminal() {
		return nil
	}

	return r.trackToCompletion(ctx, itinerary.ID)
}

// trackToCompletion polls an itinerary until it reaches a terminal state,
// streaming progress lines to the output.
func (r *Runner) trackToCompletion(ctx context.Context, id int64) error {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.PollTick:
				r.writePlain("  [%3d%%] %s\n", update.Percent, update.Message)
			case tasks.FetchDetail:
				r.writePlain("  %s\n", update.Message)
			case tasks.JobFailed, tasks.JobStalled:
				r.writePlain("  ✗ %s\n", update.Message)
			}
		}
	}()

	r.tracker.Start(ctx, id, progressCh)
	r.tracker.Wait(id)
	close(progressCh)
	<-done

	record, ok := r.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %d", shared.ErrItineraryNotFound, id)
	}

	switch record.Status {
	case models.StatusCompleted:
		r.writePlainHeader("Itinerary Ready")
		r.writePlain("%s — %s, %d days\n", record.Title, record.Destination, record.Days)
		r.writePlain("Run 'wayfarer itinerary show %d' to read it\n", id)
		return nil
	case models.StatusFailed:
		return fmt.Errorf("generation failed for itinerary %d", id)
	default:
		r.writePlain("Polling stopped with itinerary %d at %d%% (%s)\n", id, record.Progress, record.Status)
		return nil
	}
}

// ItineraryList fetches a page of itineraries and caches it.
func (r *Runner) ItineraryList(ctx context.Context, cmd *cli.Command) error {
	params := services.ListParams{
		Page:        cmd.Int("page"),
		PageSize:    cmd.Int("page-size"),
		Status:      models.Status(cmd.String("status")),
		Destination: cmd.String("destination"),
	}
	if params.Status != "" && !params.Status.Valid() {
		return fmt.Errorf("%w: unknown status '%s'", shared.ErrInvalidArgument, params.Status)
	}

	page, err := r.api.Itinerary.List(ctx, params)
	if err != nil {
		return err
	}

	r.store.ReplaceList(page)

	if cmd.Bool("json") {
		return r.writeJSON(page, true)
	}

	if len(page.Items) == 0 {
		return r.writePlain("No itineraries found\n")
	}

	r.writePlain("Itineraries (page %d of %d, %d total):\n\n", page.Page, page.Pages, page.Total)
	for _, it := range page.Items {
		marker := " "
		switch it.Status {
		case models.StatusCompleted:
			marker = "✓"
		case models.StatusFailed:
			marker = "✗"
		}
		r.writePlain("%s %4d  %-30s %-20s %d days  %s %d%%\n",
			marker, it.ID, it.Title, it.Destination, it.Days, it.Status, it.Progress)
	}
	return nil
}

// ItineraryShow fetches an itinerary with its daily records.
func (r *Runner) ItineraryShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.api.Itinerary.Detail(ctx, id)
	if err != nil {
		return err
	}

	r.store.SetDetail(detail)

	if cmd.Bool("json") {
		return r.writeJSON(detail, true)
	}

	it := detail.Itinerary
	r.writePlainHeader(fmt.Sprintf("%s — %s", it.Title, it.Destination))
	r.writePlain("Status: %s (%d%%)  Days: %d  Group: %d\n", it.Status, it.Progress, it.Days, it.GroupSize)
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

// ItineraryProgress shows generation progress for an itinerary once.
func (r *Runner) ItineraryProgress(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd)
	if err != nil {
		return err
	}

	progress, err := r.api.Itinerary.Progress(ctx, id)
	if err != nil {
		return err
	}

	r.writePlain("Itinerary %d: %s (%d%%)\n", progress.ItineraryID, progress.Status, progress.Progress)
	if progress.CurrentStep != "" {
		r.writePlain("Current step: %s\n", progress.CurrentStep)
	}
	if progress.Message != "" {
		r.writePlain("%s\n", progress.Message)
	}
	return nil
}

// ItineraryDelete deletes an itinerary, cancelling any live tracker first.
func (r *Runner) ItineraryDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := parseIDArg(cmd)
	if err != nil {
		return err
	}

	r.tracker.Cancel(id)

	if err := r.api.Itinerary.Delete(ctx, id); err != nil {
		return err
	}

	r.store.Remove(id)
	return r.writePlain("✓ Deleted itinerary %d\n", id)
}

// ItineraryExport exports one itinerary, or every completed one with --all.
func (r *Runner) ItineraryExport(ctx context.Context, cmd *cli.Command) error {
	opts := tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: r.config.Export.NumWorkers,
		RateLimit:  r.config.Export.RateLimit,
	}
	if opts.Format == "" {
		opts.Format = r.config.Export.Format
	}
	if opts.OutputDir == "" {
		opts.OutputDir = r.config.Export.OutputDir
	}

	var ids []int64
	if cmd.Bool("all") {
		page, err := r.api.Itinerary.List(ctx, services.ListParams{Status: models.StatusCompleted, PageSize: 100})
		if err != nil {
			return err
		}
		for _, it := range page.Items {
			ids = append(ids, it.ID)
		}
		if len(ids) == 0 {
			return r.writePlain("No completed itineraries to export\n")
		}
	} else {
		id, err := parseIDArg(cmd)
		if err != nil {
			return err
		}
		ids = []int64{id}
	}

	r.writePlain("Exporting %d itinerary(ies) as %s...\n", len(ids), opts.Format)

	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			r.writePlain("  %s\n", update.Message)
		}
	}()

	result, err := r.exporter.BulkExport(ctx, progressCh, ids, opts)
	close(progressCh)
	if err != nil {
		return err
	}

	r.writePlain("\n✓ Exported %d/%d to %s\n", result.SuccessfulExports, result.TotalItineraries, result.OutputDirectory)
	if result.FailedExports > 0 {
		r.writePlain("✗ %d export(s) failed; see %s\n", result.FailedExports, result.ManifestPath)
	}
	return nil
}

// ItineraryValidate checks whether a destination can be resolved.
func (r *Runner) ItineraryValidate(ctx context.Context, cmd *cli.Command) error {
	destination := cmd.StringArg("destination")
	if destination == "" {
		return fmt.Errorf("%w: destination", shared.ErrMissingArgument)
	}

	check, err := r.api.Itinerary.ValidateDestination(ctx, destination)
	if err != nil {
		return err
	}

	if check.Valid {
		r.writePlain("✓ '%s' resolves", destination)
		if check.Location != nil {
			r.writePlain(" to %.4f, %.4f", check.Location.Latitude, check.Location.Longitude)
		}
		return r.writePlain("\n")
	}

	r.writePlain("✗ '%s' could not be resolved\n", destination)
	for _, suggestion := range check.Suggestions {
		r.writePlain("  maybe: %s\n", suggestion)
	}
	return nil
}

// ItineraryTemplates lists generation templates.
func (r *Runner) ItineraryTemplates(ctx context.Context, cmd *cli.Command) error {
	templates, err := r.api.Itinerary.Templates(ctx, cmd.String("type"))
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(templates, true)
	}

	if len(templates) == 0 {
		return r.writePlain("No templates available\n")
	}

	for _, t := range templates {
		active := " "
		if t.IsActive {
			active = "✓"
		}
		r.writePlain("%s %4d  %-10s %-30s %s\n", active, t.ID, t.Type, t.Name, t.Description)
	}
	return nil
}

// ItineraryExamples lists curated example generation requests.
func (r *Runner) ItineraryExamples(ctx context.Context, cmd *cli.Command) error {
	examples, err := r.api.Itinerary.Examples(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(examples, true)
	}

	if len(examples) == 0 {
		return r.writePlain("No examples available\n")
	}

	for _, ex := range examples {
		r.writePlain("%-20s %d days", ex.Destination, ex.Days)
		if ex.TravelStyle != "" {
			r.writePlain("  %s", ex.TravelStyle)
		}
		r.writePlain("\n")
		if ex.SpecialRequirements != "" {
			r.writePlain("  %s\n", ex.SpecialRequirements)
		}
	}
	return nil
}
