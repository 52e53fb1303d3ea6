// ABOUTME: Tests for loading a weekly recap through a range source.
// ABOUTME: Uses an in-memory fake to check the queried bounds.
package recap

import (
	"errors"
	"testing"
	"time"

	"github.com/harperreed/mood/internal/models"
)

type fakeSource struct {
	entries  []*models.MoodEntry
	err      error
	userID   int64
	from, to time.Time
}

func (f *fakeSource) ListMoodEntriesInRange(userID int64, from, to time.Time) ([]*models.MoodEntry, error) {
	f.userID, f.from, f.to = userID, from, to
	return f.entries, f.err
}

func TestWeekly(t *testing.T) {
	ref := time.Date(2025, 6, 12, 15, 0, 0, 0, time.UTC) // Thursday
	src := &fakeSource{entries: []*models.MoodEntry{
		models.NewMoodEntry(models.MoodSad).WithRecordedAt(time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)),
		models.NewMoodEntry(models.MoodExcited).WithRecordedAt(time.Date(2025, 6, 9, 20, 0, 0, 0, time.UTC)),
	}}

	rc, err := Weekly(src, 4, ref)
	if err != nil {
		t.Fatalf("Weekly() failed: %v", err)
	}

	if src.userID != 4 {
		t.Errorf("queried user %d, want 4", src.userID)
	}
	if !src.from.Equal(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("from = %v, want Monday midnight", src.from)
	}
	if !src.to.Equal(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)) {
		t.Errorf("to = %v, want end of Sunday", src.to)
	}
	if rc.Days[0].Height != 65 || rc.Days[0].Color != models.ColorYellow {
		t.Errorf("Monday = %+v, want height 65 yellow", rc.Days[0])
	}
	if rc.Stats.TotalEntries != 2 || !rc.Stats.HasPositivePeak {
		t.Errorf("stats = %+v", rc.Stats)
	}
}

func TestWeeklyError(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	if _, err := Weekly(src, 1, time.Now()); err == nil {
		t.Error("expected error from source")
	}
}
