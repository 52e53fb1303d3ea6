// ABOUTME: Tests for MoodEntry, JournalEntry, DailyGoal, and Preferences models.
// ABOUTME: Validates constructors, builders, and derived fields.
package models

import (
	"testing"
	"time"
)

func TestNewMoodEntry(t *testing.T) {
	e := NewMoodEntry(MoodCalm)

	if e.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if e.UserID != GuestUserID {
		t.Errorf("UserID = %d, want %d", e.UserID, GuestUserID)
	}
	if e.Emoji != "😌" {
		t.Errorf("Emoji = %s, want 😌", e.Emoji)
	}
	if e.RecordedAt.IsZero() || e.CreatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if e.Note != nil || e.Weather != nil {
		t.Error("expected no note or weather")
	}
}

func TestMoodEntryBuilders(t *testing.T) {
	ts := time.Date(2025, 6, 11, 19, 0, 0, 0, time.UTC)
	w := &Weather{Temperature: 18, Condition: ConditionRainy}
	e := NewMoodEntry(MoodSad).
		WithUser(7).
		WithRecordedAt(ts).
		WithNote("long day").
		WithWeather(w)

	if e.UserID != 7 {
		t.Errorf("UserID = %d, want 7", e.UserID)
	}
	if !e.RecordedAt.Equal(ts) {
		t.Errorf("RecordedAt = %v, want %v", e.RecordedAt, ts)
	}
	if e.TimeOfDay != Evening {
		t.Errorf("TimeOfDay = %s, want evening", e.TimeOfDay)
	}
	if e.Note == nil || *e.Note != "long day" {
		t.Errorf("Note = %v, want long day", e.Note)
	}
	if e.Weather != w {
		t.Error("Weather not attached")
	}

	e.WithUser(0)
	if e.UserID != 7 {
		t.Errorf("WithUser(0) changed UserID to %d", e.UserID)
	}
}

func TestNewJournalEntry(t *testing.T) {
	ts := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)
	j := NewJournalEntry("walked by the river", MoodHappy).WithUser(3).WithRecordedAt(ts)

	if j.Content != "walked by the river" {
		t.Errorf("Content = %s", j.Content)
	}
	if j.Mood != MoodHappy {
		t.Errorf("Mood = %s, want happy", j.Mood)
	}
	if j.UserID != 3 {
		t.Errorf("UserID = %d, want 3", j.UserID)
	}
	if !j.RecordedAt.Equal(ts) {
		t.Errorf("RecordedAt = %v, want %v", j.RecordedAt, ts)
	}
}

func TestDailyGoalProgress(t *testing.T) {
	tests := []struct {
		name          string
		target        int
		progress      int
		wantCompleted bool
		wantPercent   int
	}{
		{"default target halfway", 0, 50, false, 50},
		{"default target reached", 0, 100, true, 100},
		{"over target", 0, 150, true, 100},
		{"custom target", 8, 4, false, 50},
		{"custom target reached", 8, 8, true, 100},
		{"negative clamps", 0, -5, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewDailyGoal("drink water").WithTarget(tt.target).SetProgress(tt.progress)
			if g.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, want %v", g.Completed, tt.wantCompleted)
			}
			if g.Percent() != tt.wantPercent {
				t.Errorf("Percent() = %d, want %d", g.Percent(), tt.wantPercent)
			}
		})
	}
}

func TestNewDailyGoalDefaults(t *testing.T) {
	g := NewDailyGoal("read").WithDescription("20 pages")
	if g.Target != DefaultGoalTarget {
		t.Errorf("Target = %d, want %d", g.Target, DefaultGoalTarget)
	}
	if g.Description == nil || *g.Description != "20 pages" {
		t.Errorf("Description = %v", g.Description)
	}
	if g.Completed || g.Progress != 0 {
		t.Error("new goal should start incomplete at 0")
	}
}

func TestPreferencesPatch(t *testing.T) {
	p := DefaultPreferences(0)
	if p.UserID != GuestUserID || p.WeatherLocation != "Paris" || p.Theme != "auto" || !p.Notifications || p.Language != "fr" {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	city := "Lyon"
	off := false
	empty := ""
	PreferencesPatch{WeatherLocation: &city, Notifications: &off, Language: &empty}.Apply(p)

	if p.WeatherLocation != "Lyon" {
		t.Errorf("WeatherLocation = %s, want Lyon", p.WeatherLocation)
	}
	if p.Notifications {
		t.Error("Notifications should be off")
	}
	if p.Language != "fr" {
		t.Errorf("empty language should be ignored, got %s", p.Language)
	}
	if p.Theme != "auto" {
		t.Errorf("Theme = %s, want auto", p.Theme)
	}
}
