package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/recaplabs/recapd/internal/model"
)

// Preference edits are synchronous copy-and-replace operations on the current
// recap. They never touch the sync layer's sequence counters: an edit landing
// while a fetch or generate is in flight must not disturb that operation, and
// vice versa. With no current recap an edit is a no-op with a status hint.

func (m Model) applyPreferenceEdit(describe string, edit func(model.Recap) model.Recap) (Model, tea.Cmd) {
	current := m.Store.Current()
	if current == nil {
		m.Status = StatusBar{Text: "no recap to edit yet", IsError: true}
		return m, nil
	}
	next := edit(*current)
	m.Store.SetCurrentRecap(&next)
	m.Status = StatusBar{Text: describe, IsError: false}

	var cmd tea.Cmd
	if m.saver != nil {
		cmd = saveRecapCmd(m.saver, next)
	}
	return m, cmd
}

func (m Model) onSetCoachingStyle(style model.CoachingStyle) (Model, tea.Cmd) {
	if !style.IsValid() {
		m.Status = StatusBar{Text: fmt.Sprintf("unknown coaching style: %s", style), IsError: true}
		return m, nil
	}
	return m.applyPreferenceEdit(
		fmt.Sprintf("coaching style: %s", style),
		func(r model.Recap) model.Recap { return r.WithCoachingStyle(style) },
	)
}

func (m Model) onToggleSection(section model.Section) (Model, tea.Cmd) {
	if !section.IsValid() {
		m.Status = StatusBar{Text: fmt.Sprintf("unknown section: %s", section), IsError: true}
		return m, nil
	}
	next, cmd := m.applyPreferenceEdit(
		fmt.Sprintf("toggled section: %s", section),
		func(r model.Recap) model.Recap { return r.WithSectionToggled(section) },
	)
	next.refreshInsightsViewport()
	return next, cmd
}

func (m Model) onToggleAutoGenerate() (Model, tea.Cmd) {
	return m.applyPreferenceEdit(
		"toggled auto-generate",
		func(r model.Recap) model.Recap { return r.WithAutoGenerateToggled() },
	)
}

func saveRecapCmd(saver RecapSaver, recap model.Recap) tea.Cmd {
	return func() tea.Msg {
		err := saver.Save(context.Background(), recap)
		return RecapSavedMsg{Day: recap.Date, Err: err}
	}
}
