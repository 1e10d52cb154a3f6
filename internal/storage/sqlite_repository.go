package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) DB() *sql.DB {
	return r.db
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) UpsertRecap(ctx context.Context, in Recap) error {
	patterns, err := marshalList(in.EnergyPatterns)
	if err != nil {
		return err
	}
	impact, err := marshalList(in.TaskImpact)
	if err != nil {
		return err
	}
	coach, err := marshalList(in.CoachInsights)
	if err != nil {
		return err
	}
	questions, err := marshalList(in.PowerQuestions)
	if err != nil {
		return err
	}
	focus, err := marshalList(in.TomorrowFocus)
	if err != nil {
		return err
	}
	sections, err := marshalSections(in.VisibleSections)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO recaps (day, quote, day_summary, energy_patterns, task_impact, coach_insights, power_questions, tomorrow_focus, coaching_style, visible_sections, auto_generate, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			quote = excluded.quote,
			day_summary = excluded.day_summary,
			energy_patterns = excluded.energy_patterns,
			task_impact = excluded.task_impact,
			coach_insights = excluded.coach_insights,
			power_questions = excluded.power_questions,
			tomorrow_focus = excluded.tomorrow_focus,
			coaching_style = excluded.coaching_style,
			visible_sections = excluded.visible_sections,
			auto_generate = excluded.auto_generate,
			generated_at = excluded.generated_at`,
		in.Day, in.Quote, in.DaySummary, patterns, impact, coach, questions, focus,
		in.CoachingStyle, sections, boolInt(in.AutoGenerate), mustTime(in.GeneratedAt),
	)
	return err
}

func (r *SQLiteRepository) GetRecap(ctx context.Context, day string) (Recap, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT day, quote, day_summary, energy_patterns, task_impact, coach_insights, power_questions, tomorrow_focus, coaching_style, visible_sections, auto_generate, generated_at
		FROM recaps WHERE day = ?`, day)
	recap, err := scanRecap(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Recap{}, ErrNotFound
		}
		return Recap{}, err
	}
	return recap, nil
}

func (r *SQLiteRepository) DeleteRecap(ctx context.Context, day string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM recaps WHERE day = ?`, day)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListRecaps(ctx context.Context, filter RecapListFilter) ([]Recap, error) {
	args := make([]any, 0, 2)
	query := `SELECT day, quote, day_summary, energy_patterns, task_impact, coach_insights, power_questions, tomorrow_focus, coaching_style, visible_sections, auto_generate, generated_at
		FROM recaps ORDER BY day DESC` + applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Recap, 0)
	for rows.Next() {
		recap, scanErr := scanRecap(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, recap)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) CreateActivity(ctx context.Context, in ActivityEntry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activity_entries (id, day, label, kind, energy, minutes, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		in.ID, in.Day, in.Label, in.Kind, in.Energy, in.Minutes, mustTime(in.OccurredAt),
	)
	return err
}

func (r *SQLiteRepository) ListActivity(ctx context.Context, filter ActivityListFilter) ([]ActivityEntry, error) {
	query := `SELECT id, day, label, kind, energy, minutes, occurred_at FROM activity_entries`
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.Day != "" {
		clauses = append(clauses, "day = ?")
		args = append(args, filter.Day)
	}
	if filter.Kind != "" {
		clauses = append(clauses, "kind = ?")
		args = append(args, filter.Kind)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY occurred_at ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ActivityEntry, 0)
	for rows.Next() {
		entry, scanErr := scanActivity(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) DeleteActivityForDay(ctx context.Context, day string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM activity_entries WHERE day = ?`, day)
	return err
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func marshalList(items []string) (string, error) {
	if items == nil {
		items = []string{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("marshal list: %w", err)
	}
	return string(raw), nil
}

func unmarshalList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("unmarshal list: %w", err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

func marshalSections(sections map[string]bool) (string, error) {
	if sections == nil {
		sections = map[string]bool{}
	}
	raw, err := json.Marshal(sections)
	if err != nil {
		return "", fmt.Errorf("marshal sections: %w", err)
	}
	return string(raw), nil
}

func unmarshalSections(raw string) (map[string]bool, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]bool{}, nil
	}
	var out map[string]bool
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	if out == nil {
		out = map[string]bool{}
	}
	return out, nil
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecap(s scanner) (Recap, error) {
	var out Recap
	var patterns, impact, coach, questions, focus, sections string
	var autoGenerate int
	var generated string
	if err := s.Scan(&out.Day, &out.Quote, &out.DaySummary, &patterns, &impact, &coach, &questions, &focus, &out.CoachingStyle, &sections, &autoGenerate, &generated); err != nil {
		return Recap{}, err
	}

	var err error
	if out.EnergyPatterns, err = unmarshalList(patterns); err != nil {
		return Recap{}, err
	}
	if out.TaskImpact, err = unmarshalList(impact); err != nil {
		return Recap{}, err
	}
	if out.CoachInsights, err = unmarshalList(coach); err != nil {
		return Recap{}, err
	}
	if out.PowerQuestions, err = unmarshalList(questions); err != nil {
		return Recap{}, err
	}
	if out.TomorrowFocus, err = unmarshalList(focus); err != nil {
		return Recap{}, err
	}
	if out.VisibleSections, err = unmarshalSections(sections); err != nil {
		return Recap{}, err
	}
	out.AutoGenerate = autoGenerate != 0
	if out.GeneratedAt, err = parseRequiredTime(generated); err != nil {
		return Recap{}, err
	}
	return out, nil
}

func scanActivity(s scanner) (ActivityEntry, error) {
	var out ActivityEntry
	var occurred string
	if err := s.Scan(&out.ID, &out.Day, &out.Label, &out.Kind, &out.Energy, &out.Minutes, &occurred); err != nil {
		return ActivityEntry{}, err
	}
	occurredAt, err := parseRequiredTime(occurred)
	if err != nil {
		return ActivityEntry{}, err
	}
	out.OccurredAt = occurredAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
