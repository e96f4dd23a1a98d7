package cache

import (
	"testing"

	"github.com/desertthunder/wayfarer/internal/models"
)

func page(items ...models.Itinerary) *models.ItineraryPage {
	return &models.ItineraryPage{Items: items, Total: len(items), Page: 1, Pages: 1}
}

func TestStoreList(t *testing.T) {
	t.Run("ReplaceList Installs Server Order", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(
			models.Itinerary{ID: 3, Title: "Lisbon"},
			models.Itinerary{ID: 1, Title: "Kyoto"},
		))

		list := store.List()
		if len(list) != 2 || list[0].ID != 3 || list[1].ID != 1 {
			t.Errorf("unexpected order: %+v", list)
		}
		if store.Total() != 2 {
			t.Errorf("expected total 2, got %d", store.Total())
		}
	})

	t.Run("ReplaceList Is Wholesale", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1}, models.Itinerary{ID: 2}))
		store.ReplaceList(page(models.Itinerary{ID: 9}))

		if _, ok := store.Get(1); ok {
			t.Error("expected old entries dropped")
		}
		if _, ok := store.Get(9); !ok {
			t.Error("expected new entry present")
		}
	})

	t.Run("ReplaceList Leaves Detail Untouched", func(t *testing.T) {
		store := NewStore()
		store.SetDetail(&models.ItineraryDetail{
			Itinerary: models.Itinerary{ID: 7, Title: "Oslo"},
		})

		// The new page no longer contains id 7.
		store.ReplaceList(page(models.Itinerary{ID: 1}))

		detail, ok := store.Detail()
		if !ok || detail.Itinerary.ID != 7 {
			t.Error("expected detail slot to survive a list replacement")
		}
	})

	t.Run("Upsert Prepends New Records", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1}))
		store.Upsert(models.Itinerary{ID: 2, Title: "Porto"})

		list := store.List()
		if list[0].ID != 2 {
			t.Errorf("expected new record first, got %+v", list)
		}
		if store.Total() != 2 {
			t.Errorf("expected total 2, got %d", store.Total())
		}
	})

	t.Run("Upsert Updates In Place", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Title: "Kyoto"}, models.Itinerary{ID: 2}))
		store.Upsert(models.Itinerary{ID: 2, Title: "Porto, revised"})

		list := store.List()
		if list[1].ID != 2 || list[1].Title != "Porto, revised" {
			t.Errorf("expected in-place update preserving order, got %+v", list)
		}
		if store.Total() != 2 {
			t.Errorf("expected total unchanged, got %d", store.Total())
		}
	})

	t.Run("List Returns Copies", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Title: "Kyoto"}))

		list := store.List()
		list[0].Title = "changed"

		record, _ := store.Get(1)
		if record.Title != "Kyoto" {
			t.Error("expected mutation of the returned slice to not leak into the store")
		}
	})
}

func TestStoreApplyProgress(t *testing.T) {
	t.Run("Patches List Entry", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusPending, Progress: 0}))

		changed := store.ApplyProgress(models.GenerationProgress{
			ItineraryID: 1, Status: models.StatusGenerating, Progress: 40,
		})
		if !changed {
			t.Fatal("expected change")
		}

		record, _ := store.Get(1)
		if record.Status != models.StatusGenerating || record.Progress != 40 {
			t.Errorf("unexpected record: %+v", record)
		}
	})

	t.Run("Patches Detail In Same Call", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 20}))
		store.SetDetail(&models.ItineraryDetail{
			Itinerary: models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 20},
		})

		before := store.Version()
		store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: models.StatusGenerating, Progress: 60})

		record, _ := store.Get(1)
		detail, _ := store.Detail()
		if record.Progress != 60 || detail.Itinerary.Progress != 60 {
			t.Errorf("expected both copies patched, got list %d detail %d", record.Progress, detail.Itinerary.Progress)
		}
		if store.Version() != before+1 {
			t.Errorf("expected a single version bump, got %d -> %d", before, store.Version())
		}
	})

	t.Run("Unknown Id Is Dropped", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1}))

		before := store.Version()
		if store.ApplyProgress(models.GenerationProgress{ItineraryID: 99, Progress: 50}) {
			t.Error("expected update for unknown id to be dropped")
		}
		if store.Version() != before {
			t.Error("expected no version bump for a dropped update")
		}
	})

	t.Run("Progress Never Moves Backward", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 60}))

		if store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: models.StatusGenerating, Progress: 30}) {
			t.Error("expected backward progress to be a no-op")
		}
		record, _ := store.Get(1)
		if record.Progress != 60 {
			t.Errorf("expected progress pinned at 60, got %d", record.Progress)
		}
	})

	t.Run("Completed Pins Progress At 100", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 80}))

		store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: models.StatusCompleted, Progress: 97})

		record, _ := store.Get(1)
		if record.Status != models.StatusCompleted || record.Progress != 100 {
			t.Errorf("expected completed at 100, got %+v", record)
		}
	})

	t.Run("Failed Status Is Applied Once", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 40}))

		if !store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: models.StatusFailed, Progress: 40}) {
			t.Fatal("expected the failing update itself to be applied")
		}

		record, _ := store.Get(1)
		if record.Status != models.StatusFailed {
			t.Errorf("expected failed, got %s", record.Status)
		}

		// A failed record accepts no further updates.
		if store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: models.StatusGenerating, Progress: 90}) {
			t.Error("expected update after failure to be rejected")
		}
		record, _ = store.Get(1)
		if record.Status != models.StatusFailed || record.Progress != 40 {
			t.Errorf("expected record frozen after failure, got %+v", record)
		}
	})

	t.Run("Invalid Status Keeps Current One", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 10}))

		store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: "exploded", Progress: 50})

		record, _ := store.Get(1)
		if record.Status != models.StatusGenerating || record.Progress != 50 {
			t.Errorf("expected progress applied with status unchanged, got %+v", record)
		}
	})
}

func TestStoreDetail(t *testing.T) {
	t.Run("SetDetail Replaces Previous", func(t *testing.T) {
		store := NewStore()
		store.SetDetail(&models.ItineraryDetail{Itinerary: models.Itinerary{ID: 1}})
		store.SetDetail(&models.ItineraryDetail{Itinerary: models.Itinerary{ID: 2}})

		detail, ok := store.Detail()
		if !ok || detail.Itinerary.ID != 2 {
			t.Errorf("expected latest detail, got %+v", detail)
		}
	})

	t.Run("SetDetail Folds Into List Record", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusGenerating, Progress: 90}))

		store.SetDetail(&models.ItineraryDetail{
			Itinerary: models.Itinerary{ID: 1, Title: "Kyoto in 5 days", Status: models.StatusCompleted, Progress: 100},
			DailyItineraries: []models.DailyItinerary{
				{ItineraryID: 1, DayNumber: 1, Title: "Arrival"},
			},
		})

		record, _ := store.Get(1)
		if record.Status != models.StatusCompleted || record.Title != "Kyoto in 5 days" {
			t.Errorf("expected detail folded into list record, got %+v", record)
		}
	})

	t.Run("Remove Clears Matching Detail", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1}, models.Itinerary{ID: 2}))
		store.SetDetail(&models.ItineraryDetail{Itinerary: models.Itinerary{ID: 1}})

		store.Remove(1)

		if _, ok := store.Get(1); ok {
			t.Error("expected record removed")
		}
		if _, ok := store.Detail(); ok {
			t.Error("expected matching detail slot cleared")
		}
		if store.Total() != 1 {
			t.Errorf("expected total 1, got %d", store.Total())
		}
	})

	t.Run("Remove Clears Detail Absent From List", func(t *testing.T) {
		store := NewStore()
		store.SetDetail(&models.ItineraryDetail{Itinerary: models.Itinerary{ID: 5}})

		before := store.Version()
		store.Remove(5)

		if _, ok := store.Detail(); ok {
			t.Error("expected detail slot cleared without a list entry")
		}
		if store.Version() == before {
			t.Error("expected a version bump for the cleared detail")
		}
	})

	t.Run("Remove Keeps Unrelated Detail", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1}, models.Itinerary{ID: 2}))
		store.SetDetail(&models.ItineraryDetail{Itinerary: models.Itinerary{ID: 2}})

		store.Remove(1)

		if _, ok := store.Detail(); !ok {
			t.Error("expected unrelated detail slot to survive")
		}
	})

	t.Run("Remove Unknown Id Is No-Op", func(t *testing.T) {
		store := NewStore()
		store.ReplaceList(page(models.Itinerary{ID: 1}))

		before := store.Version()
		store.Remove(99)
		if store.Version() != before {
			t.Error("expected no version bump for unknown id")
		}
	})
}

func TestStoreSubscribe(t *testing.T) {
	store := NewStore()

	var versions []uint64
	store.Subscribe(func(version uint64) {
		versions = append(versions, version)
	})

	store.ReplaceList(page(models.Itinerary{ID: 1, Status: models.StatusPending}))
	store.ApplyProgress(models.GenerationProgress{ItineraryID: 1, Status: models.StatusGenerating, Progress: 10})
	store.ApplyProgress(models.GenerationProgress{ItineraryID: 99, Progress: 50}) // dropped, no callback

	if len(versions) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(versions))
	}
	if versions[0] != 1 || versions[1] != 2 {
		t.Errorf("expected versions [1 2], got %v", versions)
	}

	t.Run("Callback May Reenter The Store", func(t *testing.T) {
		reentrant := NewStore()
		reentrant.Subscribe(func(uint64) {
			reentrant.List()
		})
		reentrant.ReplaceList(page(models.Itinerary{ID: 1}))
	})
}
