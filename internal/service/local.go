package service

import (
	"context"
	"errors"
	"time"

	"github.com/recaplabs/recapd/internal/model"
	"github.com/recaplabs/recapd/internal/storage"
)

// LocalService serves recaps from the sqlite repository. Fetch is a plain
// read; Generate runs the insight generator over the day's recorded activity
// and persists the result before returning it.
type LocalService struct {
	repo      storage.Repository
	generator *Generator
	clock     func() time.Time
}

func NewLocalService(repo storage.Repository, generator *Generator) *LocalService {
	return &LocalService{
		repo:      repo,
		generator: generator,
		clock:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the timestamp source. Tests use this to pin GeneratedAt.
func (s *LocalService) WithClock(clock func() time.Time) *LocalService {
	s.clock = clock
	return s
}

func (s *LocalService) Fetch(ctx context.Context, day model.DayKey) (model.Recap, bool, error) {
	stored, err := s.repo.GetRecap(ctx, string(day))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Recap{}, false, nil
		}
		return model.Recap{}, false, &ServiceError{Op: "fetch", Day: day, Err: err}
	}
	recap, err := recapFromStored(stored)
	if err != nil {
		return model.Recap{}, false, &ServiceError{Op: "fetch", Day: day, Err: err}
	}
	return recap, true, nil
}

func (s *LocalService) Generate(ctx context.Context, day model.DayKey) (model.Recap, error) {
	activity, err := s.repo.ListActivity(ctx, storage.ActivityListFilter{Day: string(day)})
	if err != nil {
		return model.Recap{}, &ServiceError{Op: "generate", Day: day, Err: err}
	}

	// Regeneration keeps whatever preferences the user already set for the
	// day; only a first-time generate starts from defaults.
	prefs := model.DefaultPreferences()
	if stored, getErr := s.repo.GetRecap(ctx, string(day)); getErr == nil {
		if parsed, convErr := preferencesFromStored(stored); convErr == nil {
			prefs = parsed
		}
	} else if !errors.Is(getErr, storage.ErrNotFound) {
		return model.Recap{}, &ServiceError{Op: "generate", Day: day, Err: getErr}
	}

	recap := model.Recap{
		Date:        day,
		Insights:    s.generator.Build(day, prefs.CoachingStyle, activity),
		Preferences: prefs,
		GeneratedAt: s.clock(),
	}
	if err := s.repo.UpsertRecap(ctx, recapToStored(recap)); err != nil {
		return model.Recap{}, &ServiceError{Op: "generate", Day: day, Err: err}
	}
	return recap, nil
}

// Save persists preference edits so they survive restarts. Kept off the
// Service interface: the sync layer treats edits as local state, and the
// update loop calls this as a fire-and-forget side effect.
func (s *LocalService) Save(ctx context.Context, recap model.Recap) error {
	if err := s.repo.UpsertRecap(ctx, recapToStored(recap)); err != nil {
		return &ServiceError{Op: "save", Day: recap.Date, Err: err}
	}
	return nil
}

// History lists the most recent stored recaps, newest first.
func (s *LocalService) History(ctx context.Context, limit int) ([]model.Recap, error) {
	stored, err := s.repo.ListRecaps(ctx, storage.RecapListFilter{Limit: limit})
	if err != nil {
		return nil, &ServiceError{Op: "history", Day: "", Err: err}
	}
	out := make([]model.Recap, 0, len(stored))
	for _, item := range stored {
		recap, convErr := recapFromStored(item)
		if convErr != nil {
			return nil, &ServiceError{Op: "history", Day: model.DayKey(item.Day), Err: convErr}
		}
		out = append(out, recap)
	}
	return out, nil
}

func recapToStored(in model.Recap) storage.Recap {
	sections := make(map[string]bool, len(in.Preferences.VisibleSections))
	for k, v := range in.Preferences.VisibleSections {
		sections[string(k)] = v
	}
	return storage.Recap{
		Day:             string(in.Date),
		Quote:           in.Insights.Quote,
		DaySummary:      in.Insights.DaySummary,
		EnergyPatterns:  copyList(in.Insights.EnergyPatterns),
		TaskImpact:      copyList(in.Insights.TaskImpact),
		CoachInsights:   copyList(in.Insights.CoachInsights),
		PowerQuestions:  copyList(in.Insights.PowerQuestions),
		TomorrowFocus:   copyList(in.Insights.TomorrowFocus),
		CoachingStyle:   string(in.Preferences.CoachingStyle),
		VisibleSections: sections,
		AutoGenerate:    in.Preferences.AutoGenerate,
		GeneratedAt:     in.GeneratedAt,
	}
}

func recapFromStored(in storage.Recap) (model.Recap, error) {
	day, err := model.ParseDayKey(in.Day)
	if err != nil {
		return model.Recap{}, err
	}
	prefs, err := preferencesFromStored(in)
	if err != nil {
		return model.Recap{}, err
	}
	return model.Recap{
		Date: day,
		Insights: model.Insights{
			Quote:          in.Quote,
			DaySummary:     in.DaySummary,
			EnergyPatterns: copyList(in.EnergyPatterns),
			TaskImpact:     copyList(in.TaskImpact),
			CoachInsights:  copyList(in.CoachInsights),
			PowerQuestions: copyList(in.PowerQuestions),
			TomorrowFocus:  copyList(in.TomorrowFocus),
		},
		Preferences: prefs,
		GeneratedAt: in.GeneratedAt,
	}, nil
}

func preferencesFromStored(in storage.Recap) (model.Preferences, error) {
	style, err := model.ParseCoachingStyle(in.CoachingStyle)
	if err != nil {
		return model.Preferences{}, err
	}
	prefs := model.DefaultPreferences()
	prefs.CoachingStyle = style
	prefs.AutoGenerate = in.AutoGenerate
	// Stored rows from older schema revisions may miss keys; the closed
	// section set always wins, with stored flags layered on top.
	for _, s := range model.AllSections() {
		if v, ok := in.VisibleSections[string(s)]; ok {
			prefs.VisibleSections[s] = v
		}
	}
	return prefs, nil
}

func copyList(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
