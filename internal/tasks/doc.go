// Package tasks runs the asynchronous side of the client: generation
// tracking and bulk exports.
//
// # Generation Tracking
//
// [Tracker] polls the progress endpoint for each started itinerary at a
// fixed interval until the job reaches a terminal state. Observed changes
// flow into the entity cache; the UI reads from the cache, never from the
// tracker. Starting a job that is already tracked cancels the old schedule
// first, and a tick that resolves after its schedule was replaced or
// cancelled is discarded.
//
// On completed, the tracker issues exactly one detail fetch to pull the
// content the progress endpoint does not carry. On failed, or on any
// transport or auth failure, the schedule stops without touching the cached
// record further.
//
// # Bulk Export
//
// [ExportEngine.BulkExport] exports many itineraries through a worker pool
// behind a shared rate limiter, then writes a manifest summarizing the run.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates. The
// [ProgressUpdate] struct contains phase, counters, messages, and optional
// data for advanced UI rendering. Updates use select with default to
// prevent blocking.
package tasks
