package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/wayfarer/internal/models"
)

var _ list.Item = itineraryItem{}

// itineraryItem wraps [models.Itinerary] to implement [list.Item].
type itineraryItem struct {
	itinerary models.Itinerary
}

func (i itineraryItem) FilterValue() string { return i.itinerary.Title }
func (i itineraryItem) Title() string       { return i.itinerary.Title }
func (i itineraryItem) Description() string {
	desc := fmt.Sprintf("%s • %d days", i.itinerary.Destination, i.itinerary.Days)
	switch i.itinerary.Status {
	case models.StatusCompleted:
		desc = fmt.Sprintf("%s • done", desc)
	case models.StatusFailed:
		desc = fmt.Sprintf("%s • failed", desc)
	default:
		desc = fmt.Sprintf("%s • %s %d%%", desc, i.itinerary.Status, i.itinerary.Progress)
	}
	return desc
}
