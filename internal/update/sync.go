package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recaplabs/recapd/internal/model"
	"github.com/recaplabs/recapd/internal/scheduler"
	"github.com/recaplabs/recapd/internal/service"
)

// Sync layer: every fetch/generate is tagged with (day, seq) when issued and
// checked against the latest issued pair when it settles. A settle that lost
// the race mutates nothing, so a slow fetch can never overwrite a newer
// generate result and results for an abandoned day are always dropped.

func (m *Model) issueSeq(day model.DayKey) uint64 {
	if m.seqs == nil {
		m.seqs = make(map[model.DayKey]uint64)
	}
	m.seqs[day]++
	return m.seqs[day]
}

// isLatest reports whether a settling operation may touch the store. Day
// mismatch covers subject switches; seq mismatch covers supersession within
// the same day.
func (m Model) isLatest(day model.DayKey, seq uint64) bool {
	if day != m.Day {
		return false
	}
	return m.seqs[day] == seq
}

func (m Model) startFetch(day model.DayKey) (Model, tea.Cmd) {
	m.Store.SetError("")
	m.Store.SetLoading(true)
	seq := m.issueSeq(day)
	return m, tea.Batch(m.loadSpinner.Tick, fetchCmd(m.svc, day, seq))
}

func (m Model) startGenerate(day model.DayKey) (Model, tea.Cmd) {
	// The settings panel closes before generation so the fresh recap is
	// what the user sees land. A convenience, not a correctness rule.
	m.SettingsOpen = false
	m.Store.SetError("")
	m.Store.SetLoading(true)
	seq := m.issueSeq(day)
	return m, tea.Batch(m.loadSpinner.Tick, generateCmd(m.svc, day, seq))
}

func (m Model) switchDay(day model.DayKey) (Model, tea.Cmd) {
	if !day.IsValid() {
		m.Status = StatusBar{Text: fmt.Sprintf("invalid day: %s", day), IsError: true}
		return m, nil
	}
	m.Day = day
	m.Store.SetError("")
	m.Store.SetCurrentRecap(nil)
	m.Store.SetExpanded(false)
	if m.stateFilePath != "" {
		_ = persistLastViewedDay(m.stateFilePath, day)
	}
	return m.startFetch(day)
}

func (m Model) onFetchSettled(msg FetchSettledMsg) (Model, tea.Cmd) {
	if !m.isLatest(msg.Day, msg.Seq) {
		return m, nil
	}
	m.Store.SetLoading(false)
	if msg.Err != nil {
		m.Store.SetError(fmt.Sprintf("could not load recap for %s", msg.Day))
		m.Status = StatusBar{Text: m.Store.Err(), IsError: true}
		m.notify("Load Failed", msg.Err.Error(), "error")
		return m, nil
	}
	if !msg.Present {
		m.Store.SetCurrentRecap(nil)
		if m.autoGen {
			m.Status = StatusBar{Text: fmt.Sprintf("no recap for %s, generating", msg.Day), IsError: false}
			return m.startGenerate(msg.Day)
		}
		m.Status = StatusBar{Text: fmt.Sprintf("no recap for %s yet", msg.Day), IsError: false}
		return m, nil
	}
	recap := msg.Recap
	m.Store.SetCurrentRecap(&recap)
	m.Store.SetExpanded(true)
	m.refreshInsightsViewport()
	m.Status = StatusBar{Text: fmt.Sprintf("recap loaded for %s", msg.Day), IsError: false}
	return m, nil
}

func (m Model) onGenerateSettled(msg GenerateSettledMsg) (Model, tea.Cmd) {
	if !m.isLatest(msg.Day, msg.Seq) {
		return m, nil
	}
	m.Store.SetLoading(false)
	if msg.Err != nil {
		m.Store.SetError(fmt.Sprintf("could not generate recap for %s", msg.Day))
		m.Status = StatusBar{Text: m.Store.Err(), IsError: true}
		m.notify("Generate Failed", msg.Err.Error(), "error")
		return m, nil
	}
	recap := msg.Recap
	m.Store.SetCurrentRecap(&recap)
	m.Store.SetExpanded(true)
	m.refreshInsightsViewport()
	m.Status = StatusBar{Text: fmt.Sprintf("recap generated for %s", msg.Day), IsError: false}
	m.notify("Recap Ready", m.Status.Text, "info")

	if recap.Preferences.AutoGenerate {
		m.scheduleAutoRefresh(msg.Day)
	}
	return m, nil
}

func (m Model) onRefreshDue(ev scheduler.RefreshEvent) (Model, tea.Cmd) {
	rearm := waitForRefreshCmd(m.schedulerC())
	day := model.DayKey(ev.Day)
	if day != m.Day {
		return m, rearm
	}
	current := m.Store.Current()
	wantsAuto := m.autoGen || (current != nil && current.Preferences.AutoGenerate)
	if !wantsAuto {
		return m, rearm
	}
	m.Status = StatusBar{Text: fmt.Sprintf("auto refresh (%s) for %s", ev.Reason, ev.Day), IsError: false}
	next, genCmd := m.startGenerate(day)
	return next, tea.Batch(rearm, genCmd)
}

func (m *Model) scheduleAutoRefresh(day model.DayKey) {
	if m.Scheduler == nil || m.autoRefreshMinutes <= 0 {
		return
	}
	at := m.clock().Add(time.Duration(m.autoRefreshMinutes) * time.Minute)
	ev := scheduler.RefreshEvent{
		ID:        fmt.Sprintf("refresh-%s-%d", day, at.Unix()),
		Day:       string(day),
		Reason:    "auto",
		TriggerAt: at,
	}
	if err := m.Scheduler.Schedule(ev); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("auto refresh scheduling failed: %v", err), IsError: true}
	}
}

func (m Model) schedulerC() <-chan scheduler.RefreshEvent {
	if m.Scheduler == nil {
		return nil
	}
	return m.Scheduler.C()
}

func fetchCmd(svc service.Service, day model.DayKey, seq uint64) tea.Cmd {
	return func() tea.Msg {
		recap, present, err := svc.Fetch(context.Background(), day)
		return FetchSettledMsg{Day: day, Seq: seq, Recap: recap, Present: present, Err: err}
	}
}

func generateCmd(svc service.Service, day model.DayKey, seq uint64) tea.Cmd {
	return func() tea.Msg {
		recap, err := svc.Generate(context.Background(), day)
		return GenerateSettledMsg{Day: day, Seq: seq, Recap: recap, Err: err}
	}
}

func loadHistoryCmd(lister HistoryLister, limit int) tea.Cmd {
	if lister == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := lister.History(context.Background(), limit)
		return HistoryLoadedMsg{Items: items, Err: err}
	}
}

func waitForRefreshCmd(ch <-chan scheduler.RefreshEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return RefreshDueMsg{Event: ev}
	}
}
