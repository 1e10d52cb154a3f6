package views

import (
	"fmt"
	"strings"
)

type RecapSectionData struct {
	Title string
	Lines []string
}

type RecapPanelData struct {
	Day           string
	IsLoading     bool
	SpinnerView   string
	Err           string
	HasRecap      bool
	IsExpanded    bool
	CoachingStyle string
	AutoGenerate  bool
	GeneratedAt   string
	Sections      []RecapSectionData
	InsightsView  string
}

type SettingToggleData struct {
	Name    string
	Visible bool
}

type SettingsPanelData struct {
	HasRecap      bool
	CoachingStyle string
	AutoGenerate  bool
	Sections      []SettingToggleData
}

type HistoryItemData struct {
	Day     string
	Style   string
	Summary string
}

type HistoryPanelData struct {
	TableView string
	Items     []HistoryItemData
	Cursor    int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderRecapPanel(data RecapPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("recap: %s\n", data.Day))
	b.WriteString("actions: [h/l]day [t]today [g]generate [e]expand [s]settings\n")
	if data.IsLoading {
		b.WriteString(fmt.Sprintf("%s loading\n", data.SpinnerView))
		return strings.TrimSpace(b.String())
	}
	if data.Err != "" {
		b.WriteString("error: " + data.Err + "\n")
		return strings.TrimSpace(b.String())
	}
	if !data.HasRecap {
		b.WriteString("(no recap for this day, press [g] to generate)")
		return strings.TrimSpace(b.String())
	}

	b.WriteString(fmt.Sprintf("style: %s | auto-generate: %s | generated: %s\n",
		data.CoachingStyle, onOff(data.AutoGenerate), data.GeneratedAt))
	if data.IsExpanded {
		b.WriteString("\n" + data.InsightsView)
		return strings.TrimSpace(b.String())
	}
	for _, section := range data.Sections {
		b.WriteString(fmt.Sprintf("\n%s:\n", section.Title))
		for _, line := range section.Lines {
			b.WriteString("- " + line + "\n")
		}
	}
	if len(data.Sections) == 0 {
		b.WriteString("\n(all sections hidden)")
	}
	return strings.TrimSpace(b.String())
}

func RenderSettingsPanel(data SettingsPanelData) string {
	var b strings.Builder
	b.WriteString("settings:\n")
	if !data.HasRecap {
		b.WriteString("(no recap loaded, nothing to edit)")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("coaching style: %s\n", data.CoachingStyle))
	b.WriteString(fmt.Sprintf("auto-generate: %s\n", onOff(data.AutoGenerate)))
	b.WriteString("sections:\n")
	for _, s := range data.Sections {
		marker := "[ ]"
		if s.Visible {
			marker = "[x]"
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", marker, s.Name))
	}
	b.WriteString("commands: /style <name> | /toggle <section> | /autogen on|off")
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	b.WriteString("actions: [j/k]move [enter]open day\n")
	b.WriteString(data.TableView + "\n")
	if len(data.Items) == 0 {
		b.WriteString("(no recaps yet)")
		return strings.TrimSpace(b.String())
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s [%s] %s\n", cursor, item.Day, item.Style, item.Summary))
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
