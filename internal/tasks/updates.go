package tasks

import (
	"fmt"

	"github.com/desertthunder/wayfarer/internal/models"
)

// ProgressUpdate represents a progress event during a tracked generation or
// a bulk export.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase       Phase  // Operation phase
	ItineraryID int64  // Itinerary the event belongs to (zero for export-wide events)
	Percent     int    // Generation progress 0–100 where applicable
	Message     string // Human-readable message for display
	Data        any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	PollTick Phase = iota
	JobCompleted
	JobFailed
	JobStalled
	FetchDetail
	ExportItinerary
)

func (p Phase) String() string {
	switch p {
	case PollTick:
		return "poll_tick"
	case JobCompleted:
		return "job_completed"
	case JobFailed:
		return "job_failed"
	case JobStalled:
		return "job_stalled"
	case FetchDetail:
		return "fetch_detail"
	case ExportItinerary:
		return "export_itinerary"
	default:
		return ""
	}
}

func pollUpdate(p models.GenerationProgress) ProgressUpdate {
	message := p.Message
	if message == "" {
		message = fmt.Sprintf("%s (%d%%)", p.Status, p.Progress)
	}
	return ProgressUpdate{
		Phase:       PollTick,
		ItineraryID: p.ItineraryID,
		Percent:     p.Progress,
		Message:     message,
	}
}

func completedUpdate(detail *models.ItineraryDetail) ProgressUpdate {
	return ProgressUpdate{
		Phase:       JobCompleted,
		ItineraryID: detail.Itinerary.ID,
		Percent:     100,
		Message:     fmt.Sprintf("Itinerary ready: %s", detail.Itinerary.Title),
		Data:        detail,
	}
}

func failedUpdate(id int64, message string) ProgressUpdate {
	if message == "" {
		message = "generation failed"
	}
	return ProgressUpdate{
		Phase:       JobFailed,
		ItineraryID: id,
		Message:     message,
	}
}

func stalledUpdate(id int64, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:       JobStalled,
		ItineraryID: id,
		Message:     fmt.Sprintf("polling stopped: %v", err),
	}
}

func fetchDetailUpdate(id int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:       FetchDetail,
		ItineraryID: id,
		Percent:     100,
		Message:     "Fetching completed itinerary...",
	}
}

func exportingUpdate(step, total int, id int64) ProgressUpdate {
	return ProgressUpdate{
		Phase:       ExportItinerary,
		ItineraryID: id,
		Message:     fmt.Sprintf("[%d/%d] Exporting itinerary %d...", step, total, id),
	}
}

func exportCompletedUpdate(step, total int, id int64, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:       ExportItinerary,
		ItineraryID: id,
		Message:     fmt.Sprintf("[%d/%d] ✓ itinerary %d → %s", step, total, id, file),
	}
}

func exportFailedUpdate(step, total int, id int64, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:       ExportItinerary,
		ItineraryID: id,
		Message:     fmt.Sprintf("[%d/%d] ✗ itinerary %d: %v", step, total, id, err),
	}
}
