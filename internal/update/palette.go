package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recaplabs/recapd/internal/commands"
	"github.com/recaplabs/recapd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	// Handlers that only adjust model state run inline; anything that needs
	// a fetch or generate records the target and starts it after dispatch.
	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Goto: func(a commands.GotoArgs) (commands.Result, error) {
			day, derr := m.resolveDayArg(a.Day)
			if derr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: derr.Error()}
			}
			next, dayCmd := m.switchDay(day)
			m = next
			followUp = dayCmd
			return commands.Result{Message: fmt.Sprintf("switched to %s", day)}, nil
		},
		Generate: func() (commands.Result, error) {
			next, genCmd := m.startGenerate(m.Day)
			m = next
			followUp = genCmd
			return commands.Result{Message: fmt.Sprintf("generating recap for %s", m.Day)}, nil
		},
		Style: func(a commands.StyleArgs) (commands.Result, error) {
			style, perr := model.ParseCoachingStyle(a.Style)
			if perr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: perr.Error()}
			}
			next, styleCmd := m.onSetCoachingStyle(style)
			m = next
			followUp = styleCmd
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Toggle: func(a commands.ToggleArgs) (commands.Result, error) {
			section, perr := model.ParseSection(a.Section)
			if perr != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: perr.Error()}
			}
			next, toggleCmd := m.onToggleSection(section)
			m = next
			followUp = toggleCmd
			if m.Status.IsError {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: m.Status.Text}
			}
			return commands.Result{Message: m.Status.Text}, nil
		},
		Autogen: func(a commands.AutogenArgs) (commands.Result, error) {
			current := m.Store.Current()
			if current == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no recap to edit yet"}
			}
			if current.Preferences.AutoGenerate != a.Enabled {
				next, autoCmd := m.onToggleAutoGenerate()
				m = next
				followUp = autoCmd
			}
			state := "off"
			if a.Enabled {
				state = "on"
			}
			return commands.Result{Message: fmt.Sprintf("auto-generate %s", state)}, nil
		},
		History: func() (commands.Result, error) {
			m.CurrentView = ViewHistory
			followUp = loadHistoryCmd(m.lister, m.historyLimit)
			return commands.Result{Message: "loading history"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message, IsError: false}
	m.notify("Command", res.Message, "info")
	return m, followUp
}

func (m Model) resolveDayArg(raw string) (model.DayKey, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return m.todayKey(), nil
	case "yesterday":
		return m.todayKey().Prev(), nil
	case "tomorrow":
		return m.todayKey().Next(), nil
	default:
		return model.ParseDayKey(raw)
	}
}
