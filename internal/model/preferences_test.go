package model

import (
	"reflect"
	"testing"
)

func sampleRecap() Recap {
	return Recap{
		Date: "2024-05-01",
		Insights: Insights{
			Quote:          "Small steps add up.",
			DaySummary:     "A steady day with two deep-work blocks.",
			EnergyPatterns: []string{"morning peak", "post-lunch dip"},
			TaskImpact:     []string{"shipped the migration"},
			CoachInsights:  []string{"protect the morning block"},
			PowerQuestions: []string{"what drained you at 15:00?"},
			TomorrowFocus:  []string{"start with the review queue"},
		},
		Preferences: DefaultPreferences(),
	}
}

func TestWithCoachingStyleReplacesOnlyStyle(t *testing.T) {
	original := sampleRecap()
	edited := original.WithCoachingStyle(StyleAnalytical)

	if edited.Preferences.CoachingStyle != StyleAnalytical {
		t.Fatalf("style = %q", edited.Preferences.CoachingStyle)
	}
	if original.Preferences.CoachingStyle != StyleSupportive {
		t.Fatalf("original style mutated: %q", original.Preferences.CoachingStyle)
	}
	if !reflect.DeepEqual(edited.Insights, original.Insights) {
		t.Fatalf("insights changed by preference edit: %#v", edited.Insights)
	}
	if !reflect.DeepEqual(edited.Preferences.VisibleSections, original.Preferences.VisibleSections) {
		t.Fatal("visible sections changed by style edit")
	}
}

func TestWithSectionToggledFlipsExactlyOneKey(t *testing.T) {
	original := sampleRecap()
	edited := original.WithSectionToggled(SectionEnergyPatterns)

	if edited.Preferences.VisibleSections[SectionEnergyPatterns] {
		t.Fatal("energyPatterns should be hidden after toggle")
	}
	for _, s := range AllSections() {
		if s == SectionEnergyPatterns {
			continue
		}
		if edited.Preferences.VisibleSections[s] != original.Preferences.VisibleSections[s] {
			t.Fatalf("section %q changed by unrelated toggle", s)
		}
	}
	if !original.Preferences.VisibleSections[SectionEnergyPatterns] {
		t.Fatal("original recap mutated by toggle")
	}
	if !reflect.DeepEqual(edited.Insights, original.Insights) {
		t.Fatal("insights changed by section toggle")
	}

	back := edited.WithSectionToggled(SectionEnergyPatterns)
	if !reflect.DeepEqual(back.Preferences, original.Preferences) {
		t.Fatalf("double toggle should restore preferences: %#v", back.Preferences)
	}
}

func TestWithSectionToggledIgnoresUnknownKey(t *testing.T) {
	original := sampleRecap()
	edited := original.WithSectionToggled(Section("mood"))
	if !reflect.DeepEqual(edited.Preferences, original.Preferences) {
		t.Fatalf("unknown key should not change preferences: %#v", edited.Preferences)
	}
	if len(edited.Preferences.VisibleSections) != len(AllSections()) {
		t.Fatalf("section set grew to %d keys", len(edited.Preferences.VisibleSections))
	}
}

func TestStackedEditsPreserveInsights(t *testing.T) {
	original := sampleRecap()
	edited := original.WithCoachingStyle(StyleAnalytical).WithAutoGenerateToggled()

	if !reflect.DeepEqual(edited.Insights, original.Insights) {
		t.Fatal("insights changed by stacked preference edits")
	}
	if edited.Preferences.CoachingStyle != StyleAnalytical {
		t.Fatalf("style = %q", edited.Preferences.CoachingStyle)
	}
	if !edited.Preferences.AutoGenerate {
		t.Fatal("autoGenerate should be on after toggle")
	}
	if original.Preferences.AutoGenerate {
		t.Fatal("original autoGenerate mutated")
	}
}

func TestCloneDoesNotAliasSectionsMap(t *testing.T) {
	original := sampleRecap()
	edited := original.WithAutoGenerateToggled()
	edited.Preferences.VisibleSections[SectionQuote] = false
	if !original.Preferences.VisibleSections[SectionQuote] {
		t.Fatal("edit on copy leaked into original sections map")
	}
}
