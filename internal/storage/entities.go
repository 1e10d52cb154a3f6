package storage

import "time"

// Recap is the persisted form of a daily recap. Insight lists and the section
// visibility map are stored as JSON text columns; everything else is flat.
type Recap struct {
	Day             string
	Quote           string
	DaySummary      string
	EnergyPatterns  []string
	TaskImpact      []string
	CoachInsights   []string
	PowerQuestions  []string
	TomorrowFocus   []string
	CoachingStyle   string
	VisibleSections map[string]bool
	AutoGenerate    bool
	GeneratedAt     time.Time
}

// ActivityEntry is one recorded unit of the user's day. The insight generator
// reads these when building a recap.
type ActivityEntry struct {
	ID         string
	Day        string
	Label      string
	Kind       string
	Energy     string
	Minutes    int
	OccurredAt time.Time
}

type RecapListFilter struct {
	Limit  int
	Offset int
}

type ActivityListFilter struct {
	Day    string
	Kind   string
	Limit  int
	Offset int
}
