// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-view workflow over the entity cache:
//  1. [ItineraryListView] : Browse cached itineraries with live generation progress
//  2. [DetailView] : Read a completed itinerary and its daily records
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Generation progress flows through a channel from the job tracker; each update
// re-renders the list from the cache, so the TUI never holds its own copy of a record.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, w, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
