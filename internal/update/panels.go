package update

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/recaplabs/recapd/internal/model"
	"github.com/recaplabs/recapd/internal/views"
)

func (m Model) renderRecapView() string {
	snap := m.Store.Snapshot()
	data := views.RecapPanelData{
		Day:         string(m.Day),
		IsLoading:   snap.IsLoading,
		SpinnerView: m.loadSpinner.View(),
		Err:         snap.Err,
		IsExpanded:  snap.IsExpanded,
	}
	if snap.CurrentRecap != nil {
		r := snap.CurrentRecap
		data.HasRecap = true
		data.CoachingStyle = string(r.Preferences.CoachingStyle)
		data.AutoGenerate = r.Preferences.AutoGenerate
		data.GeneratedAt = r.GeneratedAt.Format(time.RFC3339)
		data.Sections = visibleSectionData(*r)
		data.InsightsView = m.insightsViewport.View()
	}
	return views.RenderRecapPanel(data)
}

func (m Model) renderHistoryView() string {
	items := make([]views.HistoryItemData, 0, len(m.History.Items))
	for _, r := range m.History.Items {
		items = append(items, views.HistoryItemData{
			Day:     string(r.Date),
			Style:   string(r.Preferences.CoachingStyle),
			Summary: r.Insights.DaySummary,
		})
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		TableView: m.historyTable.View(),
		Items:     items,
		Cursor:    m.History.Cursor,
	})
}

func (m Model) renderSettingsIfVisible() string {
	if !m.SettingsOpen {
		return ""
	}
	data := views.SettingsPanelData{}
	if current := m.Store.Current(); current != nil {
		data.HasRecap = true
		data.CoachingStyle = string(current.Preferences.CoachingStyle)
		data.AutoGenerate = current.Preferences.AutoGenerate
		for _, s := range model.AllSections() {
			data.Sections = append(data.Sections, views.SettingToggleData{
				Name:    string(s),
				Visible: current.Preferences.VisibleSections[s],
			})
		}
	}
	return views.RenderSettingsPanel(data)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m Model) currentHistoryItem() (model.Recap, bool) {
	if m.History.Cursor < 0 || m.History.Cursor >= len(m.History.Items) {
		return model.Recap{}, false
	}
	return m.History.Items[m.History.Cursor], true
}

func (m *Model) syncHistoryTable() {
	rows := make([]table.Row, 0, len(m.History.Items))
	for _, r := range m.History.Items {
		rows = append(rows, table.Row{
			string(r.Date),
			string(r.Preferences.CoachingStyle),
			truncate(r.Insights.DaySummary, 30),
		})
	}
	m.historyTable.SetRows(rows)
}

func (m *Model) refreshInsightsViewport() {
	current := m.Store.Current()
	if current == nil {
		m.insightsViewport.SetContent("")
		return
	}
	m.insightsViewport.SetContent(views.RenderMarkdown(insightsMarkdown(*current)))
	m.insightsViewport.GotoTop()
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func (m Model) todayKey() model.DayKey {
	return model.DayKeyFor(m.clock())
}

// visibleSectionData walks the closed section set in display order and keeps
// only what the recap's preferences mark visible.
func visibleSectionData(r model.Recap) []views.RecapSectionData {
	out := make([]views.RecapSectionData, 0, len(model.AllSections()))
	for _, s := range model.AllSections() {
		if !r.Preferences.VisibleSections[s] {
			continue
		}
		lines := sectionLines(r.Insights, s)
		if len(lines) == 0 {
			continue
		}
		out = append(out, views.RecapSectionData{
			Title: sectionTitle(s),
			Lines: lines,
		})
	}
	return out
}

func sectionLines(in model.Insights, s model.Section) []string {
	switch s {
	case model.SectionQuote:
		if strings.TrimSpace(in.Quote) == "" {
			return nil
		}
		return []string{in.Quote}
	case model.SectionDaySummary:
		if strings.TrimSpace(in.DaySummary) == "" {
			return nil
		}
		return []string{in.DaySummary}
	case model.SectionEnergyPatterns:
		return in.EnergyPatterns
	case model.SectionTaskImpact:
		return in.TaskImpact
	case model.SectionCoachInsights:
		return in.CoachInsights
	case model.SectionPowerQuestions:
		return in.PowerQuestions
	case model.SectionTomorrowFocus:
		return in.TomorrowFocus
	default:
		return nil
	}
}

func sectionTitle(s model.Section) string {
	switch s {
	case model.SectionQuote:
		return "Quote"
	case model.SectionDaySummary:
		return "Day Summary"
	case model.SectionEnergyPatterns:
		return "Energy Patterns"
	case model.SectionTaskImpact:
		return "Task Impact"
	case model.SectionCoachInsights:
		return "Coach Insights"
	case model.SectionPowerQuestions:
		return "Power Questions"
	case model.SectionTomorrowFocus:
		return "Tomorrow Focus"
	default:
		return string(s)
	}
}

func insightsMarkdown(r model.Recap) string {
	var b strings.Builder
	b.WriteString("# Daily Recap: " + string(r.Date) + "\n")
	for _, section := range visibleSectionData(r) {
		b.WriteString("\n## " + section.Title + "\n")
		if len(section.Lines) == 1 {
			b.WriteString(section.Lines[0] + "\n")
			continue
		}
		for _, line := range section.Lines {
			b.WriteString("- " + line + "\n")
		}
	}
	return b.String()
}
