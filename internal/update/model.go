package update

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/recaplabs/recapd/internal/model"
	"github.com/recaplabs/recapd/internal/scheduler"
	"github.com/recaplabs/recapd/internal/service"
)

type View string

const (
	ViewRecap   View = "Recap"
	ViewHistory View = "History"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Recap    string
	History  string
	Generate string
	Settings string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type HistoryState struct {
	Items  []model.Recap
	Cursor int
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// RecapSaver persists preference edits. Optional: without one, edits live
// only in the store.
type RecapSaver interface {
	Save(ctx context.Context, recap model.Recap) error
}

// HistoryLister feeds the history view. Optional for the same reason.
type HistoryLister interface {
	History(ctx context.Context, limit int) ([]model.Recap, error)
}

type Model struct {
	CurrentView  View
	Day          model.DayKey
	Store        *RecapStore
	SettingsOpen bool
	History      HistoryState
	Scheduler    *scheduler.Engine
	Palette      CommandPaletteState
	HelpVisible  bool

	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier

	Status    StatusBar
	Keys      GlobalKeyMap
	Quitting  bool
	LastError error

	svc     service.Service
	saver   RecapSaver
	lister  HistoryLister
	clock   func() time.Time
	autoGen bool

	// Per-day operation counters; a settling fetch/generate mutates the
	// store only when it still carries the latest number for its day.
	seqs map[model.DayKey]uint64

	// Bubble components used for rich TUI controls
	commandInput     textinput.Model
	insightsViewport viewport.Model
	historyTable     table.Model
	loadSpinner      spinner.Model
	helpModel        help.Model

	historyLimit       int
	autoRefreshMinutes int
	stateFilePath      string
}

// Messages

type SwitchViewMsg struct {
	View View
}

type SwitchDayMsg struct {
	Day model.DayKey
}

type GenerateRequestedMsg struct{}

type ToggleSettingsMsg struct{}

type FetchSettledMsg struct {
	Day     model.DayKey
	Seq     uint64
	Recap   model.Recap
	Present bool
	Err     error
}

type GenerateSettledMsg struct {
	Day   model.DayKey
	Seq   uint64
	Recap model.Recap
	Err   error
}

type SetCoachingStyleMsg struct {
	Style model.CoachingStyle
}

type ToggleSectionMsg struct {
	Section model.Section
}

type ToggleAutoGenerateMsg struct{}

type RecapSavedMsg struct {
	Day model.DayKey
	Err error
}

type HistoryLoadedMsg struct {
	Items []model.Recap
	Err   error
}

type RefreshDueMsg struct {
	Event scheduler.RefreshEvent
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

func NewModel(svc service.Service) Model {
	m := Model{
		CurrentView: ViewRecap,
		Store:       NewRecapStore(),
		svc:         svc,
		clock:       func() time.Time { return time.Now().UTC() },
		notifier:    NoopDesktopNotifier{},
		seqs:        make(map[model.DayKey]uint64),
		Keys: GlobalKeyMap{
			Recap:    "1",
			History:  "2",
			Generate: "g",
			Settings: "s",
			Help:     "?",
			Quit:     "q",
		},
		historyLimit:       14,
		autoRefreshMinutes: 60,
	}
	m.Day = model.DayKeyFor(m.clock())
	m.initBubbleComponents()
	return m
}

func NewModelWithConfig(svc service.Service, engine *scheduler.Engine, notifier DesktopNotifier, cfg RuntimeConfig) Model {
	m := NewModel(svc)
	m.Scheduler = engine
	m.DesktopEnabled = cfg.DesktopNotifications
	m.autoGen = cfg.AutoGenerate
	if notifier != nil {
		m.notifier = notifier
	}
	if cfg.HistoryLimit > 0 {
		m.historyLimit = cfg.HistoryLimit
	}
	if cfg.AutoRefreshMinutes > 0 {
		m.autoRefreshMinutes = cfg.AutoRefreshMinutes
	}
	m.stateFilePath = cfg.UIStatePath
	if m.stateFilePath != "" {
		if day, err := loadLastViewedDay(m.stateFilePath); err == nil && day != "" {
			m.Day = day
		}
	}
	if saver, ok := svc.(RecapSaver); ok {
		m.saver = saver
	}
	if lister, ok := svc.(HistoryLister); ok {
		m.lister = lister
	}
	return m
}

// WithClock pins the time source; tests use it to make "today" stable.
func (m Model) WithClock(clock func() time.Time) Model {
	m.clock = clock
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.insightsViewport = viewport.New(54, 14)

	cols := []table.Column{
		{Title: "Day", Width: 12},
		{Title: "Style", Width: 13},
		{Title: "Summary", Width: 30},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.loadSpinner = spinner.New()
	m.loadSpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}
