// ABOUTME: Loads a week of mood entries from storage and computes the recap.
// ABOUTME: Shared by the HTTP API, MCP server, and CLI.
package recap

import (
	"fmt"
	"time"

	"github.com/harperreed/mood/internal/models"
)

// RangeSource lists mood entries recorded in an inclusive time range,
// in creation order.
type RangeSource interface {
	ListMoodEntriesInRange(userID int64, from, to time.Time) ([]*models.MoodEntry, error)
}

// Weekly fetches the week containing ref for userID and computes its recap.
func Weekly(src RangeSource, userID int64, ref time.Time) (Recap, error) {
	w := WeekOf(ref)
	entries, err := src.ListMoodEntriesInRange(userID, w.Start, w.RangeEnd())
	if err != nil {
		return Recap{}, fmt.Errorf("list week entries: %w", err)
	}
	return Compute(FromEntries(entries), ref), nil
}
