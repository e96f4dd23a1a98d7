// package cache holds the in-memory itinerary state shared by the CLI
// commands, the job tracker, and the watch UI.
package cache

import (
	"sync"

	"github.com/desertthunder/wayfarer/internal/models"
)

// Subscriber is invoked after every committed mutation with the new version.
// Callbacks run outside the store lock; implementations may call back into
// the store.
type Subscriber func(version uint64)

// Store is the single in-memory home for itinerary state.
//
// The list is kept in server order. At most one detail is held at a time;
// fetching a detail replaces the previous one. Every committed mutation
// bumps a version counter so observers can cheaply detect change.
type Store struct {
	mu          sync.Mutex
	version     uint64
	order       []int64
	byID        map[int64]*models.Itinerary
	total       int
	detail      *models.ItineraryDetail
	subscribers []Subscriber
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[int64]*models.Itinerary)}
}

// Subscribe registers a callback for committed mutations. Subscriptions are
// process-lifetime; there is no unsubscribe.
func (s *Store) Subscribe(fn Subscriber) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	s.mu.Unlock()
}

// notify snapshots the subscriber list and version under the lock; the
// caller invokes the returned function after unlocking.
func (s *Store) notify() func() {
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	version := s.version

	return func() {
		for _, fn := range subs {
			fn(version)
		}
	}
}

// ReplaceList installs a freshly fetched page, replacing the current list
// wholesale. The detail slot is left untouched.
func (s *Store) ReplaceList(page *models.ItineraryPage) {
	s.mu.Lock()

	s.order = s.order[:0]
	clear(s.byID)
	for i := range page.Items {
		item := page.Items[i]
		s.order = append(s.order, item.ID)
		s.byID[item.ID] = &item
	}
	s.total = page.Total

	s.version++
	done := s.notify()
	s.mu.Unlock()
	done()
}

// Upsert inserts or updates a single itinerary. New records are prepended,
// matching the server's newest-first ordering.
func (s *Store) Upsert(itinerary models.Itinerary) {
	s.mu.Lock()

	if _, ok := s.byID[itinerary.ID]; !ok {
		s.order = append([]int64{itinerary.ID}, s.order...)
		s.total++
	}
	record := itinerary
	s.byID[itinerary.ID] = &record

	s.version++
	done := s.notify()
	s.mu.Unlock()
	done()
}

// ApplyProgress folds a polled progress payload into the matching list entry
// and, when the detail slot holds the same id, into that copy in the same
// call.
//
// Updates for ids held in neither location are dropped; a tracked job always
// has a provisional record created at job-start time by the caller, never
// here. Progress never moves backward, a completed record is pinned at 100,
// and a failed record accepts no further updates. Returns true when the
// cache changed.
func (s *Store) ApplyProgress(p models.GenerationProgress) bool {
	s.mu.Lock()

	changed := false
	if record, ok := s.byID[p.ItineraryID]; ok {
		changed = patchProgress(record, p) || changed
	}
	if s.detail != nil && s.detail.Itinerary.ID == p.ItineraryID {
		changed = patchProgress(&s.detail.Itinerary, p) || changed
	}

	if !changed {
		s.mu.Unlock()
		return false
	}

	s.version++
	done := s.notify()
	s.mu.Unlock()
	done()
	return true
}

func patchProgress(record *models.Itinerary, p models.GenerationProgress) bool {
	if record.Status == models.StatusFailed {
		return false
	}

	changed := false
	if p.Status.Valid() && p.Status != record.Status {
		record.Status = p.Status
		changed = true
	}

	progress := p.Progress
	if record.Status == models.StatusCompleted {
		progress = 100
	}
	if progress > record.Progress {
		record.Progress = progress
		changed = true
	}
	return changed
}

// SetDetail installs a fetched detail, replacing any previous one, and folds
// the itinerary fields into the list record when present.
func (s *Store) SetDetail(detail *models.ItineraryDetail) {
	s.mu.Lock()

	s.detail = detail
	if record, ok := s.byID[detail.Itinerary.ID]; ok {
		*record = detail.Itinerary
	}

	s.version++
	done := s.notify()
	s.mu.Unlock()
	done()
}

// Remove deletes an itinerary from the list and clears the detail slot when
// it references the removed record. The detail slot is checked regardless of
// list membership: a detail can be held for an id the list never contained.
func (s *Store) Remove(id int64) {
	s.mu.Lock()

	changed := false
	if _, ok := s.byID[id]; ok {
		delete(s.byID, id)
		for i, existing := range s.order {
			if existing == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		s.total--
		changed = true
	}

	if s.detail != nil && s.detail.Itinerary.ID == id {
		s.detail = nil
		changed = true
	}

	if !changed {
		s.mu.Unlock()
		return
	}

	s.version++
	done := s.notify()
	s.mu.Unlock()
	done()
}

// List returns a copy of the cached list in server order.
func (s *Store) List() []models.Itinerary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Itinerary, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// Get returns a copy of a single cached itinerary.
func (s *Store) Get(id int64) (models.Itinerary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.byID[id]
	if !ok {
		return models.Itinerary{}, false
	}
	return *record, true
}

// Detail returns a copy of the current detail, if any.
func (s *Store) Detail() (models.ItineraryDetail, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.detail == nil {
		return models.ItineraryDetail{}, false
	}

	out := models.ItineraryDetail{
		Itinerary:        s.detail.Itinerary,
		DailyItineraries: make([]models.DailyItinerary, len(s.detail.DailyItineraries)),
	}
	copy(out.DailyItineraries, s.detail.DailyItineraries)
	return out, true
}

// Total returns the server-reported total across all pages.
func (s *Store) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// Version returns the current mutation counter.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
