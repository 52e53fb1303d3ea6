// ABOUTME: Repository interface for mood tracker storage.
// ABOUTME: Defines the contract for mood, journal, goal, and preference operations.
package storage

import (
	"errors"
	"strings"
	"time"

	"github.com/harperreed/mood/internal/models"
)

// Default page sizes used by callers when no limit is given.
const (
	DefaultMoodLimit    = 50
	DefaultJournalLimit = 20
)

var (
	// ErrNotFound is returned (wrapped) when no record matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned (wrapped) when an ID prefix matches several records.
	ErrAmbiguous = errors.New("ambiguous prefix")
)

// Repository defines the storage interface for mood data.
// A userID of 0 in list operations means all users; a limit of 0 means no limit.
type Repository interface {
	// Mood entries
	CreateMoodEntry(e *models.MoodEntry) error
	GetMoodEntry(idOrPrefix string) (*models.MoodEntry, error)
	ListMoodEntries(userID int64, limit int) ([]*models.MoodEntry, error)
	// ListMoodEntriesInRange returns entries with RecordedAt in [from, to],
	// ordered by creation time ascending.
	ListMoodEntriesInRange(userID int64, from, to time.Time) ([]*models.MoodEntry, error)
	DeleteMoodEntry(idOrPrefix string) error

	// Journal entries
	CreateJournalEntry(j *models.JournalEntry) error
	GetJournalEntry(idOrPrefix string) (*models.JournalEntry, error)
	ListJournalEntries(userID int64, limit int) ([]*models.JournalEntry, error)
	DeleteJournalEntry(idOrPrefix string) error

	// Daily goals. A zero day lists goals of every day.
	CreateGoal(g *models.DailyGoal) error
	GetGoal(idOrPrefix string) (*models.DailyGoal, error)
	ListGoals(userID int64, day time.Time) ([]*models.DailyGoal, error)
	// UpdateGoalProgress sets progress; a nil completed is derived from the target.
	UpdateGoalProgress(idOrPrefix string, progress int, completed *bool) (*models.DailyGoal, error)
	DeleteGoal(idOrPrefix string) error

	// Preferences
	GetPreferences(userID int64) (*models.Preferences, error)
	UpdatePreferences(userID int64, patch models.PreferencesPatch) (*models.Preferences, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}

// DayBounds returns midnight of day and midnight of the following day in
// day's location.
func DayBounds(day time.Time) (time.Time, time.Time) {
	y, m, d := day.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1)
}

// ApplyGoalProgress updates g the way every backend does for UpdateGoalProgress.
func ApplyGoalProgress(g *models.DailyGoal, progress int, completed *bool) {
	g.SetProgress(progress)
	if completed != nil {
		g.Completed = *completed
	}
}

// IsFullID reports whether s looks like a complete UUID rather than a prefix.
func IsFullID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}
