package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/wayfarer/internal/cache"
	"github.com/desertthunder/wayfarer/internal/models"
	"github.com/desertthunder/wayfarer/internal/services"
	"github.com/desertthunder/wayfarer/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ItineraryListView ViewState = iota
	DetailView
)

type listFetchedMsg struct {
	page *models.ItineraryPage
	err  error
}

type detailFetchedMsg struct {
	detail *models.ItineraryDetail
	err    error
}

type deleteDoneMsg struct {
	id  int64
	err error
}

type progressUpdateMsg tasks.ProgressUpdate

type progressClosedMsg struct{}

// Model represents the TUI application state.
//
// The entity cache is the source of truth: tracker updates land there and the
// list re-renders from it on every progress message.
type Model struct {
	ctx     context.Context
	view    ViewState
	api     *services.API
	store   *cache.Store
	tracker *tasks.Tracker

	width  int
	height int

	itineraryList list.Model
	listReady     bool
	detail        *models.ItineraryDetail
	progressBar   progress.Model
	progressChan  chan tasks.ProgressUpdate
	lastUpdate    tasks.ProgressUpdate
	err           error
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, api *services.API, store *cache.Store, tracker *tasks.Tracker) *Model {
	return &Model{
		ctx:          ctx,
		view:         ItineraryListView,
		api:          api,
		store:        store,
		tracker:      tracker,
		progressBar:  progress.New(progress.WithDefaultGradient()),
		progressChan: make(chan tasks.ProgressUpdate, 50),
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init fetches the itinerary list.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.fetchList(), m.waitForProgress())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listReady {
			m.itineraryList.SetSize(msg.Width-4, msg.Height-8)
		}
		m.progressBar.Width = msg.Width - 8
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ItineraryListView:
			return m.handleListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		}

	case listFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.store.ReplaceList(msg.page)
		m.rebuildList()
		return m, m.watchUnfinished()

	case detailFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.store.SetDetail(msg.detail)
		m.detail = msg.detail
		m.view = DetailView
		return m, nil

	case deleteDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.store.Remove(msg.id)
		m.rebuildList()
		return m, nil

	case progressUpdateMsg:
		m.lastUpdate = tasks.ProgressUpdate(msg)
		m.rebuildList()
		return m, m.waitForProgress()

	case progressClosedMsg:
		return m, nil
	}

	return m.updateList(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case DetailView:
		return m.renderDetail()
	default:
		return m.renderList()
	}
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.tracker.CancelAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.refresh):
		return m, m.fetchList()
	case key.Matches(msg, m.keys.enter):
		if it, ok := m.selected(); ok {
			return m, m.fetchDetail(it.ID)
		}
	case key.Matches(msg, m.keys.watch):
		if it, ok := m.selected(); ok && !it.Status.Terminal() {
			m.tracker.Start(m.ctx, it.ID, m.progressChan)
		}
		return m, nil
	case key.Matches(msg, m.keys.delete):
		if it, ok := m.selected(); ok {
			m.tracker.Cancel(it.ID)
			return m, m.deleteItinerary(it.ID)
		}
	}

	return m.updateList(msg)
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.tracker.CancelAll()
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = ItineraryListView
		m.detail = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.listReady {
		return m, nil
	}
	var cmd tea.Cmd
	m.itineraryList, cmd = m.itineraryList.Update(msg)
	return m, cmd
}

func (m *Model) selected() (models.Itinerary, bool) {
	if !m.listReady {
		return models.Itinerary{}, false
	}
	item, ok := m.itineraryList.SelectedItem().(itineraryItem)
	if !ok {
		return models.Itinerary{}, false
	}
	return item.itinerary, true
}

// rebuildList re-renders the list items from the cache, preserving the
// cursor.
func (m *Model) rebuildList() {
	itineraries := m.store.List()
	items := make([]list.Item, len(itineraries))
	for i, it := range itineraries {
		items[i] = itineraryItem{itinerary: it}
	}

	if !m.listReady {
		m.itineraryList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.itineraryList.Title = "Itineraries"
		m.itineraryList.SetSize(m.width-4, m.height-8)
		m.listReady = true
		return
	}

	cursor := m.itineraryList.Index()
	m.itineraryList.SetItems(items)
	if cursor < len(items) {
		m.itineraryList.Select(cursor)
	}
}

// watchUnfinished starts trackers for every cached non-terminal itinerary.
func (m *Model) watchUnfinished() tea.Cmd {
	for _, it := range m.store.List() {
		if !it.Status.Terminal() && !m.tracker.Tracking(it.ID) {
			m.tracker.Start(m.ctx, it.ID, m.progressChan)
		}
	}
	return nil
}

func (m *Model) fetchList() tea.Cmd {
	return func() tea.Msg {
		page, err := m.api.Itinerary.List(m.ctx, services.ListParams{})
		return listFetchedMsg{page: page, err: err}
	}
}

func (m *Model) fetchDetail(id int64) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.api.Itinerary.Detail(m.ctx, id)
		return detailFetchedMsg{detail: detail, err: err}
	}
}

func (m *Model) deleteItinerary(id int64) tea.Cmd {
	return func() tea.Msg {
		err := m.api.Itinerary.Delete(m.ctx, id)
		return deleteDoneMsg{id: id, err: err}
	}
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		update, ok := <-m.progressChan
		if !ok {
			return progressClosedMsg{}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderList() string {
	if !m.listReady {
		if m.err != nil {
			return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
		}
		return styles.help.Render("Loading itineraries...")
	}

	var status string
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	} else if m.lastUpdate.Message != "" {
		status = fmt.Sprintf("%s\n%s",
			m.progressBar.ViewAs(float64(m.lastUpdate.Percent)/100),
			styles.help.Render(m.lastUpdate.Message),
		)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.watch, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n\n%s", m.itineraryList.View(), status, helpView)
}

func (m *Model) renderDetail() string {
	if m.detail == nil {
		return styles.help.Render("No itinerary selected")
	}

	it := m.detail.Itinerary
	title := styles.title.Render(fmt.Sprintf("%s — %s", it.Title, it.Destination))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(fmt.Sprintf("\n%d days • %s • %d%%\n", it.Days, it.Status, it.Progress))
	if it.OverviewContent != "" {
		b.WriteString("\n" + it.OverviewContent + "\n")
	}

	if len(m.detail.DailyItineraries) > 0 {
		b.WriteString("\n" + styles.ok.Render("Days") + "\n")
		for _, day := range m.detail.DailyItineraries {
			b.WriteString(fmt.Sprintf("  %d. %s\n", day.DayNumber, day.Title))
		}
	}

	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	b.WriteString("\n" + m.help.ShortHelpView(helpKeys))
	return b.String()
}
