package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/recaplabs/recapd/internal/model"
	"github.com/recaplabs/recapd/internal/storage"
)

// Generator builds recap insights from a day's recorded activity. Output is
// deterministic for a given day, style and activity set, so regenerating
// without new activity yields the same recap.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

var quotesByStyle = map[model.CoachingStyle][]string{
	model.StyleMotivational: {
		"Momentum beats motivation.",
		"You don't need a perfect day, just a forward one.",
		"Every finished block is a vote for tomorrow.",
	},
	model.StyleAnalytical: {
		"What gets measured gets improved.",
		"Patterns repeat until they are named.",
		"The data of one day is noise; the data of a week is signal.",
	},
	model.StyleSupportive: {
		"A slow day is still a day you showed up.",
		"Rest is part of the work.",
		"Be as kind to yourself as you were useful to others.",
	},
	model.StyleDirective: {
		"Decide tonight, execute tomorrow.",
		"One priority. Everything else waits.",
		"Cut the list until it fits the day.",
	},
}

func (g *Generator) Build(day model.DayKey, style model.CoachingStyle, activity []storage.ActivityEntry) model.Insights {
	if !style.IsValid() {
		style = model.StyleSupportive
	}
	return model.Insights{
		Quote:          g.quoteFor(day, style),
		DaySummary:     summarizeDay(day, activity),
		EnergyPatterns: energyPatterns(activity),
		TaskImpact:     taskImpact(activity),
		CoachInsights:  coachInsights(style, activity),
		PowerQuestions: powerQuestions(style, activity),
		TomorrowFocus:  tomorrowFocus(activity),
	}
}

func (g *Generator) quoteFor(day model.DayKey, style model.CoachingStyle) string {
	quotes := quotesByStyle[style]
	if len(quotes) == 0 {
		return ""
	}
	return quotes[dayIndex(day)%len(quotes)]
}

// dayIndex folds a day key into a small stable number so quote rotation
// varies per day without randomness.
func dayIndex(day model.DayKey) int {
	sum := 0
	for _, r := range string(day) {
		sum += int(r)
	}
	return sum
}

func summarizeDay(day model.DayKey, activity []storage.ActivityEntry) string {
	if len(activity) == 0 {
		return fmt.Sprintf("No activity recorded for %s.", day)
	}
	total := 0
	kinds := make(map[string]int)
	for _, entry := range activity {
		total += entry.Minutes
		kind := strings.TrimSpace(entry.Kind)
		if kind == "" {
			kind = "untracked"
		}
		kinds[kind]++
	}
	kindNames := make([]string, 0, len(kinds))
	for k := range kinds {
		kindNames = append(kindNames, k)
	}
	sort.Strings(kindNames)
	return fmt.Sprintf("%d entries across %s, %d minutes tracked.", len(activity), strings.Join(kindNames, ", "), total)
}

func energyPatterns(activity []storage.ActivityEntry) []string {
	out := make([]string, 0, 3)
	byEnergy := make(map[string]int)
	for _, entry := range activity {
		e := strings.TrimSpace(entry.Energy)
		if e == "" {
			continue
		}
		byEnergy[e] += entry.Minutes
	}
	energies := make([]string, 0, len(byEnergy))
	for e := range byEnergy {
		energies = append(energies, e)
	}
	sort.Slice(energies, func(i, j int) bool {
		if byEnergy[energies[i]] != byEnergy[energies[j]] {
			return byEnergy[energies[i]] > byEnergy[energies[j]]
		}
		return energies[i] < energies[j]
	})
	for _, e := range energies {
		out = append(out, fmt.Sprintf("%s energy: %d minutes", strings.ToLower(e), byEnergy[e]))
	}
	morning := 0
	for _, entry := range activity {
		if entry.OccurredAt.Hour() < 12 {
			morning += entry.Minutes
		}
	}
	if morning > 0 && len(activity) > 0 {
		out = append(out, fmt.Sprintf("%d minutes landed before noon", morning))
	}
	return out
}

func taskImpact(activity []storage.ActivityEntry) []string {
	sorted := make([]storage.ActivityEntry, len(activity))
	copy(sorted, activity)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Minutes > sorted[j].Minutes })
	out := make([]string, 0, 3)
	for _, entry := range sorted {
		if len(out) >= 3 {
			break
		}
		if strings.TrimSpace(entry.Label) == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s (%d min)", entry.Label, entry.Minutes))
	}
	return out
}

func coachInsights(style model.CoachingStyle, activity []storage.ActivityEntry) []string {
	if len(activity) == 0 {
		return []string{"Record a few activity entries to unlock day insights."}
	}
	switch style {
	case model.StyleAnalytical:
		return []string{
			"Compare today's minute totals against your weekly average.",
			"Your longest block sets the ceiling for the day; note what preceded it.",
		}
	case model.StyleMotivational:
		return []string{
			"You logged real work today; carry that streak into tomorrow.",
			"Name the win of the day out loud before closing the laptop.",
		}
	case model.StyleDirective:
		return []string{
			"Pick the single highest-impact entry and schedule its follow-up now.",
			"Drop the smallest recurring entry if it didn't earn its slot.",
		}
	default:
		return []string{
			"The day had a shape; you don't need to fight it, just work with it.",
			"Keep the block that felt easiest and protect it tomorrow.",
		}
	}
}

func powerQuestions(style model.CoachingStyle, activity []storage.ActivityEntry) []string {
	base := []string{"What would make tomorrow feel 10% lighter?"}
	if style == model.StyleAnalytical {
		base = append(base, "Which hour produced the most output per minute?")
	} else {
		base = append(base, "When did you feel most in flow today?")
	}
	if len(activity) > 4 {
		base = append(base, "Was the day fragmented by choice or by default?")
	}
	return base
}

func tomorrowFocus(activity []storage.ActivityEntry) []string {
	out := make([]string, 0, 2)
	seen := make(map[string]bool)
	for _, entry := range activity {
		kind := strings.TrimSpace(entry.Kind)
		if kind == "" || seen[kind] {
			continue
		}
		seen[kind] = true
		out = append(out, fmt.Sprintf("reserve one block for %s work", kind))
		if len(out) >= 2 {
			break
		}
	}
	if len(out) == 0 {
		out = append(out, "start the day by recording your first block")
	}
	return out
}
