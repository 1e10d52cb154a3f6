package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDayKey        = errors.New("model: invalid day key")
	ErrInvalidCoachingStyle = errors.New("model: invalid coaching style")
	ErrInvalidSection       = errors.New("model: invalid section")
)

const dayKeyLayout = "2006-01-02"

// DayKey identifies the calendar day a recap belongs to.
type DayKey string

func ParseDayKey(raw string) (DayKey, error) {
	trimmed := strings.TrimSpace(raw)
	if _, err := time.Parse(dayKeyLayout, trimmed); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDayKey, raw)
	}
	return DayKey(trimmed), nil
}

func DayKeyFor(t time.Time) DayKey {
	return DayKey(t.UTC().Format(dayKeyLayout))
}

func (d DayKey) IsValid() bool {
	_, err := time.Parse(dayKeyLayout, string(d))
	return err == nil
}

func (d DayKey) Time() time.Time {
	t, err := time.Parse(dayKeyLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

func (d DayKey) Next() DayKey {
	return DayKeyFor(d.Time().AddDate(0, 0, 1))
}

func (d DayKey) Prev() DayKey {
	return DayKeyFor(d.Time().AddDate(0, 0, -1))
}

type CoachingStyle string

const (
	StyleMotivational CoachingStyle = "motivational"
	StyleAnalytical   CoachingStyle = "analytical"
	StyleSupportive   CoachingStyle = "supportive"
	StyleDirective    CoachingStyle = "directive"
)

func (s CoachingStyle) IsValid() bool {
	switch s {
	case StyleMotivational, StyleAnalytical, StyleSupportive, StyleDirective:
		return true
	default:
		return false
	}
}

func ParseCoachingStyle(raw string) (CoachingStyle, error) {
	s := CoachingStyle(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCoachingStyle, raw)
	}
	return s, nil
}

// Section names one block of the recap. The set is closed: preferences carry
// a visibility flag for every section and never for anything else.
type Section string

const (
	SectionQuote          Section = "quote"
	SectionDaySummary     Section = "daySummary"
	SectionEnergyPatterns Section = "energyPatterns"
	SectionTaskImpact     Section = "taskImpact"
	SectionCoachInsights  Section = "coachInsights"
	SectionPowerQuestions Section = "powerQuestions"
	SectionTomorrowFocus  Section = "tomorrowFocus"
)

// AllSections returns the closed section set in display order.
func AllSections() []Section {
	return []Section{
		SectionQuote,
		SectionDaySummary,
		SectionEnergyPatterns,
		SectionTaskImpact,
		SectionCoachInsights,
		SectionPowerQuestions,
		SectionTomorrowFocus,
	}
}

func (s Section) IsValid() bool {
	switch s {
	case SectionQuote, SectionDaySummary, SectionEnergyPatterns, SectionTaskImpact,
		SectionCoachInsights, SectionPowerQuestions, SectionTomorrowFocus:
		return true
	default:
		return false
	}
}

func ParseSection(raw string) (Section, error) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	for _, s := range AllSections() {
		if strings.ToLower(string(s)) == needle {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSection, raw)
}

// Insights holds the generated content of a recap. Values are immutable once
// produced; preference edits copy the recap and carry insights across as-is.
type Insights struct {
	Quote          string
	DaySummary     string
	EnergyPatterns []string
	TaskImpact     []string
	CoachInsights  []string
	PowerQuestions []string
	TomorrowFocus  []string
}

type Preferences struct {
	CoachingStyle   CoachingStyle
	VisibleSections map[Section]bool
	AutoGenerate    bool
}

func DefaultPreferences() Preferences {
	visible := make(map[Section]bool, len(AllSections()))
	for _, s := range AllSections() {
		visible[s] = true
	}
	return Preferences{
		CoachingStyle:   StyleSupportive,
		VisibleSections: visible,
		AutoGenerate:    false,
	}
}

type Recap struct {
	Date        DayKey
	Insights    Insights
	Preferences Preferences
	GeneratedAt time.Time
}

func (r Recap) Validate() error {
	if !r.Date.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDayKey, r.Date)
	}
	if !r.Preferences.CoachingStyle.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCoachingStyle, r.Preferences.CoachingStyle)
	}
	if len(r.Preferences.VisibleSections) != len(AllSections()) {
		return errors.New("model: visible sections must cover the full section set")
	}
	for _, s := range AllSections() {
		if _, ok := r.Preferences.VisibleSections[s]; !ok {
			return fmt.Errorf("model: visible sections missing key %q", s)
		}
	}
	return nil
}
