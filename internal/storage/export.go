// ABOUTME: Export and import functionality for mood data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/mood/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for mood data.
type ExportData struct {
	Version        string                 `json:"version" yaml:"version"`
	ExportedAt     time.Time              `json:"exported_at" yaml:"exported_at"`
	Tool           string                 `json:"tool" yaml:"tool"`
	MoodEntries    []*models.MoodEntry    `json:"mood_entries" yaml:"mood_entries"`
	JournalEntries []*models.JournalEntry `json:"journal_entries" yaml:"journal_entries"`
	Goals          []*models.DailyGoal    `json:"goals" yaml:"goals"`
	Preferences    []*models.Preferences  `json:"preferences" yaml:"preferences"`
}

// CollectData builds an ExportData from the repository's list operations.
// Backends use it for GetAllData, adding preferences they can enumerate.
func CollectData(r Repository, prefs []*models.Preferences) (*ExportData, error) {
	moods, err := r.ListMoodEntries(0, 0)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	journal, err := r.ListJournalEntries(0, 0)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	goals, err := r.ListGoals(0, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	return &ExportData{
		Version:        ExportVersion,
		ExportedAt:     time.Now(),
		Tool:           "mood",
		MoodEntries:    moods,
		JournalEntries: journal,
		Goals:          goals,
		Preferences:    prefs,
	}, nil
}

// ImportInto creates every record of data in r. Entry lists are exported
// newest first, so they are replayed in reverse to keep creation order.
func ImportInto(r Repository, data *ExportData) error {
	for i := len(data.MoodEntries) - 1; i >= 0; i-- {
		if err := r.CreateMoodEntry(data.MoodEntries[i]); err != nil {
			return fmt.Errorf("import mood entry: %w", err)
		}
	}
	for i := len(data.JournalEntries) - 1; i >= 0; i-- {
		if err := r.CreateJournalEntry(data.JournalEntries[i]); err != nil {
			return fmt.Errorf("import journal entry: %w", err)
		}
	}
	for _, g := range data.Goals {
		if err := r.CreateGoal(g); err != nil {
			return fmt.Errorf("import goal: %w", err)
		}
	}
	for _, p := range data.Preferences {
		if _, err := r.UpdatePreferences(p.UserID, p.Patch()); err != nil {
			return fmt.Errorf("import preferences: %w", err)
		}
	}
	return nil
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData() (*ExportData, error) {
	prefs, err := d.listPreferences()
	if err != nil {
		return nil, err
	}
	return CollectData(d, prefs)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(data *ExportData) error {
	return ImportInto(d, data)
}

// ExportJSON exports all data as JSON.
func ExportJSON(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(r Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return r.ImportData(&data)
}

// ExportYAML exports all data as YAML with mood entries grouped by mood.
func ExportYAML(r Repository) ([]byte, error) {
	data, err := r.GetAllData()
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                        `yaml:"version"`
		ExportedAt string                        `yaml:"exported_at"`
		Tool       string                        `yaml:"tool"`
		Moods      map[string][]yamlMoodEntry    `yaml:"moods"`
		Journal    []yamlJournalEntry            `yaml:"journal"`
		Goals      []yamlGoal                    `yaml:"goals"`
		Prefs      map[int64]*models.Preferences `yaml:"preferences,omitempty"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Moods:      make(map[string][]yamlMoodEntry),
		Journal:    make([]yamlJournalEntry, 0, len(data.JournalEntries)),
		Goals:      make([]yamlGoal, 0, len(data.Goals)),
	}

	for _, e := range data.MoodEntries {
		ye := yamlMoodEntry{
			ID:         e.ID.String()[:8],
			Emoji:      e.Emoji,
			TimeOfDay:  string(e.TimeOfDay),
			RecordedAt: e.RecordedAt.Format(time.RFC3339),
		}
		if e.Note != nil {
			ye.Note = *e.Note
		}
		if e.Weather != nil {
			ye.Weather = e.Weather.Condition
		}
		m := string(e.Mood)
		yamlData.Moods[m] = append(yamlData.Moods[m], ye)
	}

	for _, j := range data.JournalEntries {
		yamlData.Journal = append(yamlData.Journal, yamlJournalEntry{
			ID:         j.ID.String()[:8],
			Mood:       string(j.Mood),
			Content:    j.Content,
			RecordedAt: j.RecordedAt.Format(time.RFC3339),
		})
	}

	for _, g := range data.Goals {
		yg := yamlGoal{
			ID:        g.ID.String()[:8],
			Title:     g.Title,
			Progress:  g.Progress,
			Target:    g.Target,
			Date:      g.Date.Format("2006-01-02"),
			Completed: g.Completed,
		}
		if g.Description != nil {
			yg.Description = *g.Description
		}
		yamlData.Goals = append(yamlData.Goals, yg)
	}

	if len(data.Preferences) > 0 {
		yamlData.Prefs = make(map[int64]*models.Preferences, len(data.Preferences))
		for _, p := range data.Preferences {
			yamlData.Prefs[p.UserID] = p
		}
	}

	return yaml.Marshal(yamlData)
}

type yamlMoodEntry struct {
	ID         string `yaml:"id"`
	Emoji      string `yaml:"emoji"`
	TimeOfDay  string `yaml:"time_of_day"`
	RecordedAt string `yaml:"recorded_at"`
	Note       string `yaml:"note,omitempty"`
	Weather    string `yaml:"weather,omitempty"`
}

type yamlJournalEntry struct {
	ID         string `yaml:"id"`
	Mood       string `yaml:"mood"`
	Content    string `yaml:"content"`
	RecordedAt string `yaml:"recorded_at"`
}

type yamlGoal struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Progress    int    `yaml:"progress"`
	Target      int    `yaml:"target"`
	Date        string `yaml:"date"`
	Completed   bool   `yaml:"completed"`
}

// ExportMarkdown exports mood entries, journal, and goals as Markdown tables.
// When since is set, older records are left out.
func ExportMarkdown(r Repository, since *time.Time) (string, error) {
	data, err := r.GetAllData()
	if err != nil {
		return "", err
	}
	keep := func(t time.Time) bool {
		return since == nil || !t.Before(*since)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Mood Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	sb.WriteString("## Moods\n\n")
	sb.WriteString("| Date | Mood | Time of day | Note |\n")
	sb.WriteString("|------|------|-------------|------|\n")
	for _, e := range data.MoodEntries {
		if !keep(e.RecordedAt) {
			continue
		}
		note := ""
		if e.Note != nil {
			note = escapeCell(*e.Note)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s %s | %s | %s |\n",
			e.RecordedAt.Format("2006-01-02 15:04"), e.Emoji, e.Mood, e.TimeOfDay, note))
	}
	sb.WriteString("\n")

	var journal []*models.JournalEntry
	for _, j := range data.JournalEntries {
		if keep(j.RecordedAt) {
			journal = append(journal, j)
		}
	}
	if len(journal) > 0 {
		sb.WriteString("## Journal\n\n")
		for _, j := range journal {
			sb.WriteString(fmt.Sprintf("### %s (%s)\n\n%s\n\n",
				j.RecordedAt.Format("2006-01-02 15:04"), j.Mood, j.Content))
		}
	}

	var goals []*models.DailyGoal
	for _, g := range data.Goals {
		if keep(g.Date) {
			goals = append(goals, g)
		}
	}
	if len(goals) > 0 {
		sb.WriteString("## Goals\n\n")
		sb.WriteString("| Date | Goal | Progress | Done |\n")
		sb.WriteString("|------|------|----------|------|\n")
		for _, g := range goals {
			done := ""
			if g.Completed {
				done = "✓"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %d/%d | %s |\n",
				g.Date.Format("2006-01-02"), escapeCell(g.Title), g.Progress, g.Target, done))
		}
	}

	return sb.String(), nil
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
