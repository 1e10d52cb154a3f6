package update

import (
	"testing"
	"time"

	"github.com/recaplabs/recapd/internal/model"
)

func TestRecapStoreDefaults(t *testing.T) {
	s := NewRecapStore()
	if s.Current() != nil {
		t.Fatal("expected no current recap")
	}
	if s.IsLoading() {
		t.Fatal("expected loading false")
	}
	if s.Err() != "" {
		t.Fatalf("expected empty error, got %q", s.Err())
	}
	if s.IsExpanded() {
		t.Fatal("expected expanded false")
	}
}

func TestRecapStoreSettersAndSnapshot(t *testing.T) {
	s := NewRecapStore()
	recap := model.Recap{
		Date:        model.DayKey("2026-08-24"),
		Preferences: model.DefaultPreferences(),
		GeneratedAt: time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC),
	}

	s.SetLoading(true)
	s.SetError("boom")
	s.SetCurrentRecap(&recap)
	s.SetExpanded(true)

	snap := s.Snapshot()
	if snap.CurrentRecap == nil || snap.CurrentRecap.Date != recap.Date {
		t.Fatalf("unexpected snapshot recap: %+v", snap.CurrentRecap)
	}
	if !snap.IsLoading || snap.Err != "boom" || !snap.IsExpanded {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}

	s.SetCurrentRecap(nil)
	s.SetLoading(false)
	s.SetError("")
	s.SetExpanded(false)
	snap = s.Snapshot()
	if snap.CurrentRecap != nil || snap.IsLoading || snap.Err != "" || snap.IsExpanded {
		t.Fatalf("expected cleared snapshot, got %+v", snap)
	}
}
