// ABOUTME: Tests for the SQLite Repository implementation.
// ABOUTME: Verifies CRUD for mood entries, journal entries, goals, and preferences.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/mood/internal/models"
)

var (
	_ Repository = (*DB)(nil)
	_ Repository = (*PGStore)(nil)
)

func TestCreateAndGetMoodEntry(t *testing.T) {
	db := setupTestDB(t)

	w := &models.Weather{Temperature: 21, Condition: models.ConditionSunny, City: "Paris"}
	e := models.NewMoodEntry(models.MoodCalm).WithNote("quiet morning").WithWeather(w)

	if err := db.CreateMoodEntry(e); err != nil {
		t.Fatalf("CreateMoodEntry failed: %v", err)
	}

	got, err := db.GetMoodEntry(e.ID.String())
	if err != nil {
		t.Fatalf("GetMoodEntry failed: %v", err)
	}

	if got.ID != e.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, e.ID)
	}
	if got.Mood != models.MoodCalm {
		t.Errorf("Mood mismatch: got %s, want calm", got.Mood)
	}
	if got.Emoji != "😌" {
		t.Errorf("Emoji mismatch: got %s", got.Emoji)
	}
	if got.Note == nil || *got.Note != "quiet morning" {
		t.Errorf("Note mismatch: got %v", got.Note)
	}
	if got.Weather == nil || got.Weather.City != "Paris" || got.Weather.Temperature != 21 {
		t.Errorf("Weather mismatch: got %+v", got.Weather)
	}
	if !got.RecordedAt.Equal(e.RecordedAt) {
		t.Errorf("RecordedAt mismatch: got %v, want %v", got.RecordedAt, e.RecordedAt)
	}
	if got.TimeOfDay != e.TimeOfDay {
		t.Errorf("TimeOfDay mismatch: got %s, want %s", got.TimeOfDay, e.TimeOfDay)
	}
}

func TestGetMoodEntryByPrefix(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewMoodEntry(models.MoodHappy)
	if err := db.CreateMoodEntry(e); err != nil {
		t.Fatalf("CreateMoodEntry failed: %v", err)
	}

	got, err := db.GetMoodEntry(e.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetMoodEntry by prefix failed: %v", err)
	}
	if got.ID != e.ID {
		t.Errorf("ID mismatch: got %v, want %v", got.ID, e.ID)
	}
}

func TestGetMoodEntryNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetMoodEntry("deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = db.GetMoodEntry("00000000-0000-0000-0000-000000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for full ID, got %v", err)
	}
}

func TestListMoodEntries(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	e1 := models.NewMoodEntry(models.MoodSad).WithRecordedAt(now.Add(-2 * time.Hour))
	e2 := models.NewMoodEntry(models.MoodCalm).WithRecordedAt(now.Add(-1 * time.Hour))
	e3 := models.NewMoodEntry(models.MoodHappy).WithRecordedAt(now).WithUser(2)

	for _, e := range []*models.MoodEntry{e1, e2, e3} {
		if err := db.CreateMoodEntry(e); err != nil {
			t.Fatalf("CreateMoodEntry failed: %v", err)
		}
	}

	all, err := db.ListMoodEntries(0, 0)
	if err != nil {
		t.Fatalf("ListMoodEntries failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].ID != e3.ID || all[2].ID != e1.ID {
		t.Error("expected entries sorted most recent first")
	}

	guest, err := db.ListMoodEntries(models.GuestUserID, 0)
	if err != nil {
		t.Fatalf("ListMoodEntries failed: %v", err)
	}
	if len(guest) != 2 {
		t.Errorf("expected 2 guest entries, got %d", len(guest))
	}

	limited, err := db.ListMoodEntries(0, 1)
	if err != nil {
		t.Fatalf("ListMoodEntries failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 entry with limit, got %d", len(limited))
	}
}

func TestListMoodEntriesInRange(t *testing.T) {
	db := setupTestDB(t)

	from := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 7).Add(-time.Nanosecond)
	created := time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC)

	mk := func(m models.Mood, at time.Time, user int64, seq int) *models.MoodEntry {
		e := models.NewMoodEntry(m).WithRecordedAt(at).WithUser(user)
		e.CreatedAt = created.Add(time.Duration(seq) * time.Second)
		return e
	}

	entries := []*models.MoodEntry{
		mk(models.MoodExcited, from.Add(-time.Millisecond), 1, 0), // before
		mk(models.MoodSad, from.Add(48*time.Hour), 1, 1),
		mk(models.MoodCalm, from, 1, 2), // exactly at start
		mk(models.MoodHappy, to, 1, 3),  // exactly at end
		mk(models.MoodAnxious, from.Add(24*time.Hour), 2, 4),
		mk(models.MoodEnergetic, to.Add(time.Nanosecond), 1, 5), // after
	}
	for _, e := range entries {
		if err := db.CreateMoodEntry(e); err != nil {
			t.Fatalf("CreateMoodEntry failed: %v", err)
		}
	}

	got, err := db.ListMoodEntriesInRange(models.GuestUserID, from, to)
	if err != nil {
		t.Fatalf("ListMoodEntriesInRange failed: %v", err)
	}

	want := []models.Mood{models.MoodSad, models.MoodCalm, models.MoodHappy}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i, m := range want {
		if got[i].Mood != m {
			t.Errorf("entry %d: got %s, want %s (creation order)", i, got[i].Mood, m)
		}
	}

	all, err := db.ListMoodEntriesInRange(0, from, to)
	if err != nil {
		t.Fatalf("ListMoodEntriesInRange failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 entries across users, got %d", len(all))
	}

	empty, err := db.ListMoodEntriesInRange(1, to.AddDate(1, 0, 0), to.AddDate(1, 0, 7))
	if err != nil {
		t.Fatalf("ListMoodEntriesInRange failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected no entries, got %d", len(empty))
	}
}

func TestListMoodEntriesInRangeSameCreatedAt(t *testing.T) {
	db := setupTestDB(t)

	ts := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	moods := []models.Mood{models.MoodHappy, models.MoodSad, models.MoodCalm}
	for _, m := range moods {
		e := models.NewMoodEntry(m).WithRecordedAt(ts)
		e.CreatedAt = ts
		if err := db.CreateMoodEntry(e); err != nil {
			t.Fatalf("CreateMoodEntry failed: %v", err)
		}
	}

	got, err := db.ListMoodEntriesInRange(1, ts.Add(-time.Hour), ts.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListMoodEntriesInRange failed: %v", err)
	}
	for i, m := range moods {
		if got[i].Mood != m {
			t.Errorf("entry %d: got %s, want %s (insertion order)", i, got[i].Mood, m)
		}
	}
}

func TestDeleteMoodEntry(t *testing.T) {
	db := setupTestDB(t)

	e := models.NewMoodEntry(models.MoodAnxious)
	if err := db.CreateMoodEntry(e); err != nil {
		t.Fatalf("CreateMoodEntry failed: %v", err)
	}

	if err := db.DeleteMoodEntry(e.ID.String()[:8]); err != nil {
		t.Fatalf("DeleteMoodEntry failed: %v", err)
	}

	if _, err := db.GetMoodEntry(e.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := db.DeleteMoodEntry(e.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestAmbiguousPrefix(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 40; i++ {
		if err := db.CreateMoodEntry(models.NewMoodEntry(models.MoodHappy)); err != nil {
			t.Fatalf("CreateMoodEntry failed: %v", err)
		}
	}

	// 40 random UUIDs over 16 leading hex digits guarantee a shared first character.
	entries, _ := db.ListMoodEntries(0, 0)
	seen := map[byte]bool{}
	var prefix string
	for _, e := range entries {
		c := e.ID.String()[0]
		if seen[c] {
			prefix = string(c)
			break
		}
		seen[c] = true
	}

	if _, err := db.GetMoodEntry(prefix); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("expected ErrAmbiguous for prefix %q, got %v", prefix, err)
	}
}

func TestJournalEntries(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	j1 := models.NewJournalEntry("first", models.MoodHappy).WithRecordedAt(now.Add(-time.Hour))
	j2 := models.NewJournalEntry("second", models.MoodSad).WithRecordedAt(now).
		WithWeather(&models.Weather{Condition: models.ConditionRainy})

	for _, j := range []*models.JournalEntry{j1, j2} {
		if err := db.CreateJournalEntry(j); err != nil {
			t.Fatalf("CreateJournalEntry failed: %v", err)
		}
	}

	list, err := db.ListJournalEntries(models.GuestUserID, 0)
	if err != nil {
		t.Fatalf("ListJournalEntries failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(list))
	}
	if list[0].Content != "second" {
		t.Errorf("expected most recent first, got %s", list[0].Content)
	}
	if list[0].Weather == nil || list[0].Weather.Condition != models.ConditionRainy {
		t.Errorf("weather not round-tripped: %+v", list[0].Weather)
	}

	got, err := db.GetJournalEntry(j1.ID.String()[:8])
	if err != nil {
		t.Fatalf("GetJournalEntry failed: %v", err)
	}
	if got.Content != "first" || got.Mood != models.MoodHappy {
		t.Errorf("unexpected entry: %+v", got)
	}

	if err := db.DeleteJournalEntry(j1.ID.String()); err != nil {
		t.Fatalf("DeleteJournalEntry failed: %v", err)
	}
	list, _ = db.ListJournalEntries(0, 0)
	if len(list) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(list))
	}
}

func TestGoals(t *testing.T) {
	db := setupTestDB(t)

	today := time.Date(2025, 6, 11, 15, 0, 0, 0, time.UTC)
	g1 := models.NewDailyGoal("meditate").WithDate(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC))
	g2 := models.NewDailyGoal("walk").WithDescription("30 minutes").WithDate(time.Date(2025, 6, 11, 23, 59, 0, 0, time.UTC))
	g3 := models.NewDailyGoal("yesterday").WithDate(time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC))
	g4 := models.NewDailyGoal("tomorrow").WithDate(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC))

	for _, g := range []*models.DailyGoal{g1, g2, g3, g4} {
		if err := db.CreateGoal(g); err != nil {
			t.Fatalf("CreateGoal failed: %v", err)
		}
	}

	goals, err := db.ListGoals(models.GuestUserID, today)
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals today, got %d", len(goals))
	}
	if goals[1].Description == nil || *goals[1].Description != "30 minutes" {
		t.Errorf("description not round-tripped: %v", goals[1].Description)
	}

	all, err := db.ListGoals(0, time.Time{})
	if err != nil {
		t.Fatalf("ListGoals failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 goals overall, got %d", len(all))
	}
}

func TestUpdateGoalProgress(t *testing.T) {
	db := setupTestDB(t)

	g := models.NewDailyGoal("stretch")
	if err := db.CreateGoal(g); err != nil {
		t.Fatalf("CreateGoal failed: %v", err)
	}

	updated, err := db.UpdateGoalProgress(g.ID.String()[:8], 60, nil)
	if err != nil {
		t.Fatalf("UpdateGoalProgress failed: %v", err)
	}
	if updated.Progress != 60 || updated.Completed {
		t.Errorf("unexpected goal after 60: %+v", updated)
	}

	updated, err = db.UpdateGoalProgress(g.ID.String(), 100, nil)
	if err != nil {
		t.Fatalf("UpdateGoalProgress failed: %v", err)
	}
	if !updated.Completed {
		t.Error("expected goal completed at target")
	}

	notDone := false
	updated, err = db.UpdateGoalProgress(g.ID.String(), 100, &notDone)
	if err != nil {
		t.Fatalf("UpdateGoalProgress failed: %v", err)
	}
	if updated.Completed {
		t.Error("explicit completed=false should win")
	}

	stored, err := db.GetGoal(g.ID.String())
	if err != nil {
		t.Fatalf("GetGoal failed: %v", err)
	}
	if stored.Progress != 100 || stored.Completed {
		t.Errorf("stored goal mismatch: %+v", stored)
	}

	if _, err := db.UpdateGoalProgress("ffffffff", 10, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPreferences(t *testing.T) {
	db := setupTestDB(t)

	p, err := db.GetPreferences(models.GuestUserID)
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if p.WeatherLocation != "Paris" || p.Theme != "auto" || !p.Notifications || p.Language != "fr" {
		t.Errorf("unexpected defaults: %+v", p)
	}

	city := "Marseille"
	off := false
	p, err = db.UpdatePreferences(models.GuestUserID, models.PreferencesPatch{WeatherLocation: &city, Notifications: &off})
	if err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}
	if p.WeatherLocation != "Marseille" || p.Notifications {
		t.Errorf("patch not applied: %+v", p)
	}

	theme := "evening"
	if _, err := db.UpdatePreferences(models.GuestUserID, models.PreferencesPatch{Theme: &theme}); err != nil {
		t.Fatalf("UpdatePreferences failed: %v", err)
	}

	p, err = db.GetPreferences(models.GuestUserID)
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if p.WeatherLocation != "Marseille" || p.Theme != "evening" || p.Notifications {
		t.Errorf("stored preferences mismatch: %+v", p)
	}

	other, err := db.GetPreferences(2)
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if other.UserID != 2 || other.WeatherLocation != "Paris" {
		t.Errorf("other user should get defaults: %+v", other)
	}
}

func TestOpenCreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", DBFileName)

	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if db.Path() != dbPath {
		t.Errorf("Path() = %s, want %s", db.Path(), dbPath)
	}
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2025, 6, 11, 15, 4, 5, 0, time.UTC))
	if !start.Equal(time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v", end)
	}
}

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "mood-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	dbPath := filepath.Join(tmpDir, DBFileName)
	db, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
