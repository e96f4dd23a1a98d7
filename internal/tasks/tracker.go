package tasks

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/wayfarer/internal/cache"
	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/shared"
)

// DefaultPollInterval matches the backend's expected progress cadence.
const DefaultPollInterval = 2 * time.Second

// ProgressSource is the slice of the backend surface the tracker needs:
// progress-by-id polling and the one post-completion detail fetch.
type ProgressSource interface {
	Progress(ctx context.Context, id int64) (*models.GenerationProgress, error)
	Detail(ctx context.Context, id int64) (*models.ItineraryDetail, error)
}

// job is one live polling schedule. Identity matters: staleness is decided
// by comparing the resolving job pointer against the tracker's current entry
// for its id.
type job struct {
	id       int64
	cancel   context.CancelFunc
	done     chan struct{}
	attempts int
}

// Tracker polls generation progress for itineraries until they reach a
// terminal state, publishing every observed change into the cache.
//
// At most one live schedule exists per itinerary id; starting a second
// schedule for the same id cancels the first. Distinct ids poll
// independently with no ordering between them. Within one job, ticks are
// strictly sequential: the next poll is not scheduled until the previous
// outcome has been fully processed.
type Tracker struct {
	source   ProgressSource
	store    *cache.Store
	notifier services.Notifier
	interval time.Duration
	logger   *log.Logger

	mu   sync.Mutex
	jobs map[int64]*job
}

// NewTracker creates a tracker polling source at the given interval.
func NewTracker(source ProgressSource, store *cache.Store, notifier services.Notifier, interval time.Duration, logger *log.Logger) *Tracker {
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Tracker{
		source:   source,
		store:    store,
		notifier: notifier,
		interval: interval,
		logger:   logger,
	}
}

// Start begins polling for an itinerary id. A live job for the same id is
// cancelled first, so restarts are idempotent. The caller is responsible for
// having placed a provisional record in the cache; the tracker never creates
// records.
//
// Progress events are sent to progress without blocking; a nil channel
// discards them.
func (t *Tracker) Start(ctx context.Context, id int64, progress chan<- ProgressUpdate) {
	jobCtx, cancel := context.WithCancel(ctx)
	j := &job{id: id, cancel: cancel, done: make(chan struct{})}

	t.mu.Lock()
	if t.jobs == nil {
		t.jobs = make(map[int64]*job)
	}
	if existing, ok := t.jobs[id]; ok {
		existing.cancel()
	}
	t.jobs[id] = j
	t.mu.Unlock()

	go t.run(jobCtx, j, progress)
}

// Cancel stops the schedule for an id. Safe to call when no job exists and
// safe to call repeatedly.
func (t *Tracker) Cancel(id int64) {
	t.mu.Lock()
	j, ok := t.jobs[id]
	if ok {
		delete(t.jobs, id)
	}
	t.mu.Unlock()

	if ok {
		j.cancel()
	}
}

// CancelAll stops every live schedule. Called on logout and shutdown.
func (t *Tracker) CancelAll() {
	t.mu.Lock()
	jobs := t.jobs
	t.jobs = nil
	t.mu.Unlock()

	for _, j := range jobs {
		j.cancel()
	}
}

// Active returns the number of live schedules.
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.jobs)
}

// Tracking reports whether a live schedule exists for id.
func (t *Tracker) Tracking(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.jobs[id]
	return ok
}

// Wait blocks until the schedule for id finishes, for callers that want
// synchronous completion (the --wait flag). Returns immediately when no job
// exists.
func (t *Tracker) Wait(id int64) {
	t.mu.Lock()
	j, ok := t.jobs[id]
	t.mu.Unlock()

	if ok {
		<-j.done
	}
}

// run is the per-job polling loop. Each iteration waits the interval, polls
// once, and fully processes the outcome before scheduling the next wait.
func (t *Tracker) run(ctx context.Context, j *job, progress chan<- ProgressUpdate) {
	defer close(j.done)

	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		j.attempts++
		if !t.tick(ctx, j, progress) {
			return
		}

		timer.Reset(t.interval)
	}
}

// tick performs one poll round trip and applies its outcome. Returns false
// when the schedule should stop.
func (t *Tracker) tick(ctx context.Context, j *job, progress chan<- ProgressUpdate) bool {
	update, err := t.source.Progress(ctx, j.id)

	// The round trip is a suspension point: the job may have been cancelled
	// or replaced while it was in flight. A stale resolution is discarded.
	if err != nil {
		if !t.current(j) {
			return false
		}
		// Pipeline failures stop this schedule; the cache record keeps its
		// last known non-terminal state.
		t.retire(j)
		t.logger.Warn("polling stopped", "itinerary", j.id, "attempts", j.attempts, "error", err)
		sendProgress(progress, stalledUpdate(j.id, err))
		return false
	}

	if !t.applyIfCurrent(j, *update) {
		return false
	}
	sendProgress(progress, pollUpdate(*update))

	switch update.Status {
	case models.StatusCompleted:
		t.retire(j)
		t.fetchDetail(ctx, j.id, progress)
		return false

	case models.StatusFailed:
		t.retire(j)
		sendProgress(progress, failedUpdate(j.id, update.Message))
		t.notifier.Notify(services.LevelError, failedUpdate(j.id, update.Message).Message)
		return false
	}

	return true
}

// fetchDetail issues the single post-completion fetch and publishes the full
// record.
func (t *Tracker) fetchDetail(ctx context.Context, id int64, progress chan<- ProgressUpdate) {
	sendProgress(progress, fetchDetailUpdate(id))

	detail, err := t.source.Detail(ctx, id)
	if err != nil {
		t.logger.Warn("detail fetch after completion failed", "itinerary", id, "error", err)
		return
	}

	t.store.SetDetail(detail)
	sendProgress(progress, completedUpdate(detail))
	t.notifier.Notify(services.LevelSuccess, completedUpdate(detail).Message)
}

// current reports whether j is still the registered schedule for its id.
func (t *Tracker) current(j *job) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.jobs[j.id] == j
}

// applyIfCurrent folds a polled update into the cache only while j is still
// the registered schedule. The check and the write share one critical
// section, so once Cancel or a restart has removed j no resolution can land
// a write. Store subscribers fire inside this section and must not call back
// into the tracker.
func (t *Tracker) applyIfCurrent(j *job, update models.GenerationProgress) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.jobs[j.id] != j {
		return false
	}
	t.store.ApplyProgress(update)
	return true
}

// retire removes j from the live set if it is still the current schedule.
func (t *Tracker) retire(j *job) {
	t.mu.Lock()
	if t.jobs[j.id] == j {
		delete(t.jobs, j.id)
	}
	t.mu.Unlock()
}

// sendProgress sends a progress update through the channel without blocking.
// A full buffer drops the update. The channel must stay open until the job's
// done channel closes; callers close it only after Wait returns.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
		// Buffer full, drop this update
	}
}
