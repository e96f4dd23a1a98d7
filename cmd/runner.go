package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wayfarer/internal/cache"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/shared"
	"github.com/desertthunder/wayfarer/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	creds    *services.CredentialStore
	pipeline *services.Pipeline
	api      *services.API
	store    *cache.Store
	tracker  *tasks.Tracker
	exporter *tasks.ExportEngine
	notifier *cliNotifier
	logger   *log.Logger
	output   io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration, wiring the
// transport client, credential store, pipeline, typed API surface, cache,
// and job tracker together.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.Config.Server.Timeout()}
	}

	notifier := newCLINotifier(opts.Output, opts.Logger)
	client := services.NewClient(opts.Config.Server.BaseURL, opts.HTTPClient, opts.Config.Server.RateLimit)
	creds := services.NewCredentialStore(opts.Config.Auth.ResolveTokenPath(), opts.Logger)
	pipeline := services.NewPipeline(client, creds, notifier, opts.Logger)
	api := services.NewAPI(pipeline)
	creds.SetExchange(api.Auth.Exchange)

	store := cache.NewStore()
	tracker := tasks.NewTracker(api.Itinerary, store, notifier, opts.Config.Tracking.PollInterval(), opts.Logger)

	return &Runner{
		config:   opts.Config,
		creds:    creds,
		pipeline: pipeline,
		api:      api,
		store:    store,
		tracker:  tracker,
		exporter: tasks.NewExportEngine(api.Itinerary),
		notifier: notifier,
		logger:   opts.Logger,
		output:   opts.Output,
	}
}

// SetLogger swaps the runner's logger, used when the TUI redirects logs to a file.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, itineraryCommand, userCommand, aiCommand, mapsCommand, statusCommand, cacheCommand, watchCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
