package update

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/recaplabs/recapd/internal/model"
)

type fakeService struct {
	mu sync.Mutex

	recaps   map[model.DayKey]model.Recap
	fetchErr error
	genErr   error

	generateCalls int
	saved         []model.Recap
	saveErr       error
	history       []model.Recap
	historyErr    error
}

func newFakeService() *fakeService {
	return &fakeService{recaps: make(map[model.DayKey]model.Recap)}
}

func (f *fakeService) Fetch(_ context.Context, day model.DayKey) (model.Recap, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetchErr != nil {
		return model.Recap{}, false, f.fetchErr
	}
	recap, ok := f.recaps[day]
	return recap, ok, nil
}

func (f *fakeService) Generate(_ context.Context, day model.DayKey) (model.Recap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generateCalls++
	if f.genErr != nil {
		return model.Recap{}, f.genErr
	}
	recap := model.Recap{
		Date:        day,
		Insights:    model.Insights{DaySummary: "generated " + string(day)},
		Preferences: model.DefaultPreferences(),
		GeneratedAt: time.Date(2026, 8, 24, 21, 0, 0, 0, time.UTC),
	}
	f.recaps[day] = recap
	return recap, nil
}

func (f *fakeService) Save(_ context.Context, recap model.Recap) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, recap)
	return nil
}

func (f *fakeService) History(_ context.Context, _ int) ([]model.Recap, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history, f.historyErr
}

func testModel(t *testing.T, svc *fakeService) Model {
	t.Helper()
	m := NewModelWithConfig(svc, nil, nil, RuntimeConfig{HistoryLimit: 5, AutoRefreshMinutes: 30})
	m = m.WithClock(func() time.Time {
		return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	})
	m.Day = model.DayKey("2026-08-24")
	return m
}

func storedRecap(day model.DayKey, summary string) model.Recap {
	return model.Recap{
		Date:        day,
		Insights:    model.Insights{Quote: "steady wins", DaySummary: summary},
		Preferences: model.DefaultPreferences(),
		GeneratedAt: time.Date(2026, 8, 24, 20, 0, 0, 0, time.UTC),
	}
}

func TestFetchSettledAppliesResult(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")
	svc.recaps[day] = storedRecap(day, "a fine day")

	m := testModel(t, svc)
	m, _ = m.startFetch(day)
	if !m.Store.IsLoading() {
		t.Fatal("expected loading true after fetch start")
	}

	m, _ = m.onFetchSettled(FetchSettledMsg{Day: day, Seq: m.seqs[day], Recap: svc.recaps[day], Present: true})
	if m.Store.IsLoading() {
		t.Fatal("expected loading false after settle")
	}
	current := m.Store.Current()
	if current == nil || current.Insights.DaySummary != "a fine day" {
		t.Fatalf("unexpected current recap: %+v", current)
	}
	if !m.Store.IsExpanded() {
		t.Fatal("expected recap expanded after load")
	}
}

func TestStaleFetchDoesNotOverwriteNewerGenerate(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")

	m := testModel(t, svc)
	m, _ = m.startFetch(day)
	staleSeq := m.seqs[day]
	m, _ = m.startGenerate(day)
	newSeq := m.seqs[day]
	if staleSeq == newSeq {
		t.Fatalf("expected distinct sequence numbers, both %d", newSeq)
	}

	m, _ = m.onFetchSettled(FetchSettledMsg{Day: day, Seq: staleSeq, Recap: storedRecap(day, "stale"), Present: true})
	if m.Store.Current() != nil {
		t.Fatalf("stale fetch should not apply, got %+v", m.Store.Current())
	}
	if !m.Store.IsLoading() {
		t.Fatal("generate still pending, loading should stay true")
	}

	m, _ = m.onGenerateSettled(GenerateSettledMsg{Day: day, Seq: newSeq, Recap: storedRecap(day, "fresh")})
	current := m.Store.Current()
	if current == nil || current.Insights.DaySummary != "fresh" {
		t.Fatalf("expected fresh recap, got %+v", current)
	}
}

func TestBackToBackGeneratesOnlyNewestApplies(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")

	m := testModel(t, svc)
	m, _ = m.startGenerate(day)
	first := m.seqs[day]
	m, _ = m.startGenerate(day)
	second := m.seqs[day]

	m, _ = m.onGenerateSettled(GenerateSettledMsg{Day: day, Seq: first, Recap: storedRecap(day, "first")})
	if m.Store.Current() != nil {
		t.Fatal("superseded generate should not apply")
	}

	m, _ = m.onGenerateSettled(GenerateSettledMsg{Day: day, Seq: second, Recap: storedRecap(day, "second")})
	current := m.Store.Current()
	if current == nil || current.Insights.DaySummary != "second" {
		t.Fatalf("expected second generate applied, got %+v", current)
	}
}

func TestDaySwitchDiscardsInFlightResults(t *testing.T) {
	svc := newFakeService()
	dayA := model.DayKey("2026-08-24")
	dayB := model.DayKey("2026-08-23")
	svc.recaps[dayB] = storedRecap(dayB, "yesterday")

	m := testModel(t, svc)
	m, _ = m.startFetch(dayA)
	seqA := m.seqs[dayA]

	m, _ = m.switchDay(dayB)
	if m.Day != dayB {
		t.Fatalf("expected day %s, got %s", dayB, m.Day)
	}

	m, _ = m.onFetchSettled(FetchSettledMsg{Day: dayA, Seq: seqA, Recap: storedRecap(dayA, "old day"), Present: true})
	if m.Store.Current() != nil {
		t.Fatal("result for abandoned day should be dropped")
	}

	m, _ = m.onFetchSettled(FetchSettledMsg{Day: dayB, Seq: m.seqs[dayB], Recap: svc.recaps[dayB], Present: true})
	current := m.Store.Current()
	if current == nil || current.Date != dayB {
		t.Fatalf("expected recap for %s, got %+v", dayB, current)
	}
}

func TestFetchAbsentWithoutAutoGenerate(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")

	m := testModel(t, svc)
	m, _ = m.startFetch(day)
	m, cmd := m.onFetchSettled(FetchSettledMsg{Day: day, Seq: m.seqs[day], Present: false})
	if m.Store.Current() != nil {
		t.Fatal("expected empty state for absent recap")
	}
	if m.Store.IsLoading() {
		t.Fatal("expected loading false")
	}
	if cmd != nil {
		t.Fatal("expected no follow-up command without auto-generate")
	}
	if m.Status.IsError {
		t.Fatalf("absent recap is not an error: %+v", m.Status)
	}
}

func TestFetchAbsentTriggersAutoGenerate(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")

	m := testModel(t, svc)
	m.autoGen = true
	m, _ = m.startFetch(day)
	m, cmd := m.onFetchSettled(FetchSettledMsg{Day: day, Seq: m.seqs[day], Present: false})
	if cmd == nil {
		t.Fatal("expected generate command for absent recap")
	}
	if !m.Store.IsLoading() {
		t.Fatal("expected loading true while generate runs")
	}
}

func TestGenerateFailureKeepsExistingRecap(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")
	existing := storedRecap(day, "keep me")

	m := testModel(t, svc)
	m.Store.SetCurrentRecap(&existing)

	m, _ = m.startGenerate(day)
	m, _ = m.onGenerateSettled(GenerateSettledMsg{Day: day, Seq: m.seqs[day], Err: errors.New("boom")})
	current := m.Store.Current()
	if current == nil || current.Insights.DaySummary != "keep me" {
		t.Fatalf("generate failure must not clobber recap, got %+v", current)
	}
	if m.Store.Err() == "" {
		t.Fatal("expected store error set")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestFetchFailureSetsError(t *testing.T) {
	svc := newFakeService()
	svc.fetchErr = errors.New("db locked")
	day := model.DayKey("2026-08-24")

	m := testModel(t, svc)
	m, _ = m.startFetch(day)
	m, _ = m.onFetchSettled(FetchSettledMsg{Day: day, Seq: m.seqs[day], Err: svc.fetchErr})
	if m.Store.Err() == "" {
		t.Fatal("expected store error")
	}
	if m.Store.IsLoading() {
		t.Fatal("expected loading false after failed settle")
	}
}

func TestSwitchDayRejectsInvalidKey(t *testing.T) {
	svc := newFakeService()
	m := testModel(t, svc)
	before := m.Day

	m, cmd := m.switchDay(model.DayKey("not-a-day"))
	if m.Day != before {
		t.Fatalf("expected day unchanged, got %s", m.Day)
	}
	if cmd != nil {
		t.Fatal("expected no command for invalid day")
	}
	if !m.Status.IsError {
		t.Fatalf("expected error status, got %+v", m.Status)
	}
}

func TestStartGenerateClosesSettings(t *testing.T) {
	svc := newFakeService()
	m := testModel(t, svc)
	m.SettingsOpen = true

	m, cmd := m.startGenerate(m.Day)
	if m.SettingsOpen {
		t.Fatal("expected settings closed when generation starts")
	}
	if cmd == nil {
		t.Fatal("expected generate command")
	}
}

func TestFetchCmdReturnsSettleMessage(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")
	svc.recaps[day] = storedRecap(day, "from service")

	msg := fetchCmd(svc, day, 7)()
	settled, ok := msg.(FetchSettledMsg)
	if !ok {
		t.Fatalf("expected FetchSettledMsg, got %T", msg)
	}
	if settled.Seq != 7 || !settled.Present || settled.Recap.Insights.DaySummary != "from service" {
		t.Fatalf("unexpected settle message: %+v", settled)
	}
}

func TestGenerateCmdReturnsSettleMessage(t *testing.T) {
	svc := newFakeService()
	day := model.DayKey("2026-08-24")

	msg := generateCmd(svc, day, 3)()
	settled, ok := msg.(GenerateSettledMsg)
	if !ok {
		t.Fatalf("expected GenerateSettledMsg, got %T", msg)
	}
	if settled.Seq != 3 || settled.Err != nil || settled.Recap.Date != day {
		t.Fatalf("unexpected settle message: %+v", settled)
	}
	if svc.generateCalls != 1 {
		t.Fatalf("expected one generate call, got %d", svc.generateCalls)
	}
}
