// ABOUTME: MoodEntry and JournalEntry models for the mood log.
// ABOUTME: Entries belong to a user (guest user 1 by default) and may carry weather.
package models

import (
	"time"

	"github.com/google/uuid"
)

// GuestUserID owns data created without an explicit user.
const GuestUserID int64 = 1

// MoodEntry records a mood picked at a point in time.
type MoodEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     int64     `json:"userId"`
	Mood       Mood      `json:"mood"`
	Emoji      string    `json:"emoji"`
	Note       *string   `json:"note,omitempty"`
	Weather    *Weather  `json:"weatherData,omitempty"`
	TimeOfDay  TimeOfDay `json:"timeOfDay"`
	RecordedAt time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewMoodEntry creates a MoodEntry for the guest user with emoji and
// time of day derived from the mood and the current time.
func NewMoodEntry(mood Mood) *MoodEntry {
	now := time.Now()
	return &MoodEntry{
		ID:         uuid.New(),
		UserID:     GuestUserID,
		Mood:       mood,
		Emoji:      mood.Emoji(),
		TimeOfDay:  TimeOfDayAt(now),
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithUser sets the owning user.
func (e *MoodEntry) WithUser(userID int64) *MoodEntry {
	if userID > 0 {
		e.UserID = userID
	}
	return e
}

// WithRecordedAt sets a custom timestamp and recomputes the time of day.
func (e *MoodEntry) WithRecordedAt(t time.Time) *MoodEntry {
	e.RecordedAt = t
	e.TimeOfDay = TimeOfDayAt(t)
	return e
}

// WithNote sets a note on the entry.
func (e *MoodEntry) WithNote(note string) *MoodEntry {
	e.Note = &note
	return e
}

// WithWeather attaches the weather observed when the mood was logged.
func (e *MoodEntry) WithWeather(w *Weather) *MoodEntry {
	e.Weather = w
	return e
}

// JournalEntry is a free-text journal note tagged with the current mood.
type JournalEntry struct {
	ID         uuid.UUID `json:"id"`
	UserID     int64     `json:"userId"`
	Content    string    `json:"content"`
	Mood       Mood      `json:"mood"`
	Weather    *Weather  `json:"weatherData,omitempty"`
	RecordedAt time.Time `json:"timestamp"`
	CreatedAt  time.Time `json:"createdAt"`
}

// NewJournalEntry creates a JournalEntry for the guest user.
func NewJournalEntry(content string, mood Mood) *JournalEntry {
	now := time.Now()
	return &JournalEntry{
		ID:         uuid.New(),
		UserID:     GuestUserID,
		Content:    content,
		Mood:       mood,
		RecordedAt: now,
		CreatedAt:  now,
	}
}

// WithUser sets the owning user.
func (j *JournalEntry) WithUser(userID int64) *JournalEntry {
	if userID > 0 {
		j.UserID = userID
	}
	return j
}

// WithRecordedAt sets a custom timestamp.
func (j *JournalEntry) WithRecordedAt(t time.Time) *JournalEntry {
	j.RecordedAt = t
	return j
}

// WithWeather attaches weather to the journal entry.
func (j *JournalEntry) WithWeather(w *Weather) *JournalEntry {
	j.Weather = w
	return j
}
