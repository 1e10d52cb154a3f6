package model

// Copy-with constructors for preference edits. Each one returns a new Recap
// with exactly the targeted field replaced; insights are carried across
// untouched so an edit can never disturb generated content.

func (r Recap) WithCoachingStyle(style CoachingStyle) Recap {
	out := r.clone()
	out.Preferences.CoachingStyle = style
	return out
}

// WithSectionToggled flips the visibility of one section. Unknown keys leave
// the recap unchanged: the section set is closed and never grows at runtime.
func (r Recap) WithSectionToggled(section Section) Recap {
	if !section.IsValid() {
		return r.clone()
	}
	out := r.clone()
	out.Preferences.VisibleSections[section] = !out.Preferences.VisibleSections[section]
	return out
}

func (r Recap) WithAutoGenerateToggled() Recap {
	out := r.clone()
	out.Preferences.AutoGenerate = !out.Preferences.AutoGenerate
	return out
}

// clone deep-copies the one mutable structure (the sections map) so edits on
// the copy never alias the original.
func (r Recap) clone() Recap {
	out := r
	visible := make(map[Section]bool, len(r.Preferences.VisibleSections))
	for k, v := range r.Preferences.VisibleSections {
		visible[k] = v
	}
	out.Preferences.VisibleSections = visible
	return out
}
