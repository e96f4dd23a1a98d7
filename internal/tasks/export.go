package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/wayfarer/internal/formatter"
	"github.com/desertthunder/wayfarer/internal/models"
	"golang.org/x/time/rate"
)

// ExportSource is the slice of the backend surface bulk export needs:
// server-side rendering for the document formats, detail fetches for the
// local json format.
type ExportSource interface {
	Export(ctx context.Context, id int64, format string) ([]byte, error)
	Detail(ctx context.Context, id int64) (*models.ItineraryDetail, error)
}

// BulkExportOpts contains configuration for bulk itinerary exports.
type BulkExportOpts struct {
	Format     string  // Export format: markdown, html, pdf, json
	OutputDir  string  // Base output directory (default: itinerary_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// ItineraryExportResult records the outcome of one itinerary in a bulk run.
type ItineraryExportResult struct {
	ItineraryID int64
	Title       string
	File        string
	Success     bool
	Error       error
}

// BulkExportResult contains all data from a bulk export run.
type BulkExportResult struct {
	TotalItineraries  int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []ItineraryExportResult
}

// ExportEngine exports itineraries to disk in bulk.
type ExportEngine struct {
	source ExportSource
}

// NewExportEngine creates an export engine over the given backend surface.
func NewExportEngine(source ExportSource) *ExportEngine {
	return &ExportEngine{source: source}
}

// BulkExport exports multiple itineraries concurrently with rate limiting
// and progress tracking.
//
// A worker pool drains the id list; each worker waits on a shared rate
// limiter before touching the backend. Partial failures are recorded per
// itinerary rather than aborting the run, and a manifest file summarizing
// the outcome is written alongside the exports.
func (e *ExportEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []int64,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("itinerary_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalItineraries: len(ids),
		OutputDirectory:  opts.OutputDir,
		Results:          make([]ItineraryExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan int64, len(ids))
	results := make(chan ItineraryExportResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	for i, id := range ids {
		sendProgress(prog, exportingUpdate(i+1, len(ids), id))
		jobs <- id
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.ItineraryID, res.File))
		} else {
			result.FailedExports++
			sendProgress(prog, exportFailedUpdate(completed, len(ids), res.ItineraryID, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteManifest(manifest(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker drains the jobs channel, exporting one itinerary at a time.
func (e *ExportEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan int64,
	results chan<- ItineraryExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for id := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- ItineraryExportResult{ItineraryID: id, Error: err}
			continue
		}

		results <- e.exportSingle(ctx, id, opts)
	}
}

// exportSingle exports one itinerary to the configured format.
func (e *ExportEngine) exportSingle(ctx context.Context, id int64, opts BulkExportOpts) ItineraryExportResult {
	result := ItineraryExportResult{ItineraryID: id}

	if opts.Format == "json" {
		detail, err := e.source.Detail(ctx, id)
		if err != nil {
			result.Error = fmt.Errorf("detail fetch failed: %w", err)
			return result
		}

		file, err := formatter.WriteJSONExport(detail, opts.OutputDir)
		if err != nil {
			result.Error = err
			return result
		}
		result.Title = detail.Itinerary.Title
		result.File = file
		result.Success = true
		return result
	}

	data, err := e.source.Export(ctx, id, opts.Format)
	if err != nil {
		result.Error = fmt.Errorf("export failed: %w", err)
		return result
	}

	file, err := formatter.WriteExportFile(opts.OutputDir, id, opts.Format, data)
	if err != nil {
		result.Error = err
		return result
	}
	result.File = file
	result.Success = true
	return result
}

// manifest converts a run result to its serialized form.
func manifest(result *BulkExportResult, format string) *formatter.Manifest {
	m := &formatter.Manifest{
		Format:     format,
		OutputDir:  result.OutputDirectory,
		Total:      result.TotalItineraries,
		Successful: result.SuccessfulExports,
		Failed:     result.FailedExports,
		Entries:    make([]formatter.ManifestEntry, 0, len(result.Results)),
	}
	for _, res := range result.Results {
		entry := formatter.ManifestEntry{
			ItineraryID: res.ItineraryID,
			Title:       res.Title,
			File:        res.File,
			Success:     res.Success,
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		m.Entries = append(m.Entries, entry)
	}
	return m
}
