package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/recaplabs/recapd/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, 3)
	if m.Scheduler != nil {
		cmds = append(cmds, waitForRefreshCmd(m.Scheduler.C()))
	}
	m.Store.SetLoading(true)
	seq := m.issueSeq(m.Day)
	cmds = append(cmds, m.loadSpinner.Tick, fetchCmd(m.svc, m.Day, seq))
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			if typed.String() == m.Keys.Help {
				m.HelpVisible = !m.HelpVisible
				return m, nil
			}
			return m.handlePaletteKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Recap:
			m.CurrentView = ViewRecap
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			m.Status = StatusBar{Text: "loading history", IsError: false}
			return m, loadHistoryCmd(m.lister, m.historyLimit)
		case m.Keys.Generate:
			return m.startGenerate(m.Day)
		case m.Keys.Settings:
			m.SettingsOpen = !m.SettingsOpen
			if m.SettingsOpen {
				m.Status = StatusBar{Text: "settings open", IsError: false}
			} else {
				m.Status = StatusBar{Text: "settings closed", IsError: false}
			}
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "h", "left":
			if m.CurrentView == ViewRecap {
				return m.switchDay(m.Day.Prev())
			}
		case "l", "right":
			if m.CurrentView == ViewRecap {
				return m.switchDay(m.Day.Next())
			}
		case "t":
			if m.CurrentView == ViewRecap {
				return m.switchDay(m.todayKey())
			}
		case "e":
			if m.CurrentView == ViewRecap && m.Store.Current() != nil {
				m.Store.SetExpanded(!m.Store.IsExpanded())
				m.refreshInsightsViewport()
				return m, nil
			}
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		if m.CurrentView == ViewHistory {
			return m.handleHistoryKey(typed)
		}
		if m.CurrentView == ViewRecap && m.Store.IsExpanded() {
			var cmd tea.Cmd
			m.insightsViewport, cmd = m.insightsViewport.Update(typed)
			return m, cmd
		}
	case spinner.TickMsg:
		if m.Store.IsLoading() {
			var cmd tea.Cmd
			m.loadSpinner, cmd = m.loadSpinner.Update(typed)
			return m, cmd
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewHistory {
				return m, loadHistoryCmd(m.lister, m.historyLimit)
			}
		}
		return m, nil
	case SwitchDayMsg:
		return m.switchDay(typed.Day)
	case GenerateRequestedMsg:
		return m.startGenerate(m.Day)
	case ToggleSettingsMsg:
		m.SettingsOpen = !m.SettingsOpen
		return m, nil
	case FetchSettledMsg:
		return m.onFetchSettled(typed)
	case GenerateSettledMsg:
		return m.onGenerateSettled(typed)
	case SetCoachingStyleMsg:
		return m.onSetCoachingStyle(typed.Style)
	case ToggleSectionMsg:
		return m.onToggleSection(typed.Section)
	case ToggleAutoGenerateMsg:
		return m.onToggleAutoGenerate()
	case RecapSavedMsg:
		if typed.Err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("could not save preferences for %s", typed.Day), IsError: true}
			m.notify("Save Failed", typed.Err.Error(), "error")
		}
		return m, nil
	case HistoryLoadedMsg:
		return m.onHistoryLoaded(typed)
	case RefreshDueMsg:
		return m.onRefreshDue(typed.Event)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewRecap:
		leftPane = m.renderRecapView()
		rightPane = m.renderSettingsIfVisible() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("recapd | view: %s | day: %s", m.CurrentView, m.Day),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s recap | %s history | h/l day | %s generate | %s settings | / cmd | %s help | %s quit", m.Keys.Recap, m.Keys.History, m.Keys.Generate, m.Keys.Settings, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if item, ok := m.currentHistoryItem(); ok {
			m.CurrentView = ViewRecap
			return m.switchDay(item.Date)
		}
		return m, nil
	case "j", "down":
		if m.History.Cursor < len(m.History.Items)-1 {
			m.History.Cursor++
		}
	case "k", "up":
		if m.History.Cursor > 0 {
			m.History.Cursor--
		}
	}
	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m Model) onHistoryLoaded(msg HistoryLoadedMsg) (Model, tea.Cmd) {
	if msg.Err != nil {
		m.Status = StatusBar{Text: "could not load history", IsError: true}
		m.notify("History Failed", msg.Err.Error(), "error")
		return m, nil
	}
	m.History.Items = msg.Items
	m.History.Cursor = 0
	m.syncHistoryTable()
	m.Status = StatusBar{Text: fmt.Sprintf("history loaded: %d recap(s)", len(msg.Items)), IsError: false}
	return m, nil
}

func isKnownView(v View) bool {
	switch v {
	case ViewRecap, ViewHistory:
		return true
	default:
		return false
	}
}
