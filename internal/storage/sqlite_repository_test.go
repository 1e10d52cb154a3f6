package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "recapd-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func sampleStoredRecap(day string) Recap {
	return Recap{
		Day:            day,
		Quote:          "Momentum beats motivation.",
		DaySummary:     "Three focused blocks, one long meeting.",
		EnergyPatterns: []string{"strong morning", "slow 15:00"},
		TaskImpact:     []string{"closed the release"},
		CoachInsights:  []string{"batch the small tasks"},
		PowerQuestions: []string{"what made the morning work?"},
		TomorrowFocus:  []string{"review queue first"},
		CoachingStyle:  "supportive",
		VisibleSections: map[string]bool{
			"quote": true, "daySummary": true, "energyPatterns": true,
			"taskImpact": true, "coachInsights": true, "powerQuestions": true, "tomorrowFocus": true,
		},
		AutoGenerate: false,
		GeneratedAt:  time.Date(2024, 5, 1, 21, 0, 0, 0, time.UTC),
	}
}

func TestRecapUpsertGetRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	in := sampleStoredRecap("2024-05-01")

	if err := repo.UpsertRecap(ctx, in); err != nil {
		t.Fatalf("upsert recap: %v", err)
	}

	got, err := repo.GetRecap(ctx, in.Day)
	if err != nil {
		t.Fatalf("get recap: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, in)
	}
}

func TestRecapUpsertReplacesExistingDay(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	in := sampleStoredRecap("2024-05-01")

	if err := repo.UpsertRecap(ctx, in); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	in.Quote = "Regenerated quote."
	in.CoachingStyle = "analytical"
	in.GeneratedAt = in.GeneratedAt.Add(time.Hour)
	if err := repo.UpsertRecap(ctx, in); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	got, err := repo.GetRecap(ctx, in.Day)
	if err != nil {
		t.Fatalf("get recap: %v", err)
	}
	if got.Quote != "Regenerated quote." || got.CoachingStyle != "analytical" {
		t.Fatalf("upsert did not replace row: %#v", got)
	}

	all, err := repo.ListRecaps(ctx, RecapListFilter{})
	if err != nil {
		t.Fatalf("list recaps: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected single row per day, got %d", len(all))
	}
}

func TestGetRecapNotFound(t *testing.T) {
	repo := setupRepo(t)
	if _, err := repo.GetRecap(context.Background(), "2024-05-02"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRecapsOrderAndPagination(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	for _, day := range []string{"2024-05-01", "2024-05-03", "2024-05-02"} {
		if err := repo.UpsertRecap(ctx, sampleStoredRecap(day)); err != nil {
			t.Fatalf("upsert %s: %v", day, err)
		}
	}

	got, err := repo.ListRecaps(ctx, RecapListFilter{Limit: 2})
	if err != nil {
		t.Fatalf("list recaps: %v", err)
	}
	if len(got) != 2 || got[0].Day != "2024-05-03" || got[1].Day != "2024-05-02" {
		t.Fatalf("unexpected list order: %#v", got)
	}
}

func TestActivityCreateListDelete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	entries := []ActivityEntry{
		{ID: "act-2", Day: "2024-05-01", Label: "standup", Kind: "meeting", Energy: "Social", Minutes: 15, OccurredAt: base.Add(30 * time.Minute)},
		{ID: "act-1", Day: "2024-05-01", Label: "deep work", Kind: "focus", Energy: "Deep", Minutes: 90, OccurredAt: base},
		{ID: "act-3", Day: "2024-05-02", Label: "review", Kind: "focus", Energy: "Light", Minutes: 30, OccurredAt: base.Add(24 * time.Hour)},
	}
	for _, e := range entries {
		if err := repo.CreateActivity(ctx, e); err != nil {
			t.Fatalf("create activity %s: %v", e.ID, err)
		}
	}

	day1, err := repo.ListActivity(ctx, ActivityListFilter{Day: "2024-05-01"})
	if err != nil {
		t.Fatalf("list activity: %v", err)
	}
	if len(day1) != 2 || day1[0].ID != "act-1" || day1[1].ID != "act-2" {
		t.Fatalf("unexpected day activity: %#v", day1)
	}

	focus, err := repo.ListActivity(ctx, ActivityListFilter{Day: "2024-05-01", Kind: "focus"})
	if err != nil {
		t.Fatalf("list focus activity: %v", err)
	}
	if len(focus) != 1 || focus[0].ID != "act-1" {
		t.Fatalf("unexpected kind filter result: %#v", focus)
	}

	if err := repo.DeleteActivityForDay(ctx, "2024-05-01"); err != nil {
		t.Fatalf("delete activity: %v", err)
	}
	remaining, err := repo.ListActivity(ctx, ActivityListFilter{})
	if err != nil {
		t.Fatalf("list remaining: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "act-3" {
		t.Fatalf("unexpected remaining activity: %#v", remaining)
	}
}

func TestDeleteRecapMissingRow(t *testing.T) {
	repo := setupRepo(t)
	if err := repo.DeleteRecap(context.Background(), "2024-05-09"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
