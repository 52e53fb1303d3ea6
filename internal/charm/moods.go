// ABOUTME: Mood and journal entry operations for Charm KV storage.
// ABOUTME: Uses type-prefixed keys and client-side filtering and sorting.
package charm

import (
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/mood/internal/models"
)

// CreateMoodEntry stores a new mood entry in the KV store.
func (c *Client) CreateMoodEntry(e *models.MoodEntry) error {
	data, err := marshalJSON(e)
	if err != nil {
		return fmt.Errorf("marshal mood entry: %w", err)
	}
	return c.set(MoodPrefix+e.ID.String(), data)
}

// GetMoodEntry retrieves a mood entry by ID or ID prefix.
func (c *Client) GetMoodEntry(idOrPrefix string) (*models.MoodEntry, error) {
	data, err := c.getByIDPrefix(MoodPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get mood entry: %w", err)
	}

	e, err := unmarshalJSON[models.MoodEntry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal mood entry: %w", err)
	}
	return e, nil
}

// ListMoodEntries returns entries sorted by RecordedAt descending.
func (c *Client) ListMoodEntries(userID int64, limit int) ([]*models.MoodEntry, error) {
	entries, err := c.allMoodEntries(userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RecordedAt.After(entries[j].RecordedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// ListMoodEntriesInRange returns entries recorded within [from, to] in
// creation order.
func (c *Client) ListMoodEntriesInRange(userID int64, from, to time.Time) ([]*models.MoodEntry, error) {
	all, err := c.allMoodEntries(userID)
	if err != nil {
		return nil, err
	}

	var entries []*models.MoodEntry
	for _, e := range all {
		if e.RecordedAt.Before(from) || e.RecordedAt.After(to) {
			continue
		}
		entries = append(entries, e)
	}

	sort.Slice(entries, func(i, j int) bool {
		return createdBefore(entries[i], entries[j])
	})
	return entries, nil
}

// createdBefore orders entries by creation time. Imported entries can share
// a creation time, so ties fall back to the recorded time and then the ID.
func createdBefore(a, b *models.MoodEntry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	if !a.RecordedAt.Equal(b.RecordedAt) {
		return a.RecordedAt.Before(b.RecordedAt)
	}
	return a.ID.String() < b.ID.String()
}

// DeleteMoodEntry removes a mood entry by ID or prefix.
func (c *Client) DeleteMoodEntry(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(MoodPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}

func (c *Client) allMoodEntries(userID int64) ([]*models.MoodEntry, error) {
	allData, err := c.listByPrefix(MoodPrefix)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}

	var entries []*models.MoodEntry
	for _, data := range allData {
		e, err := unmarshalJSON[models.MoodEntry](data)
		if err != nil {
			continue // Skip invalid entries
		}
		if userID > 0 && e.UserID != userID {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// CreateJournalEntry stores a new journal entry.
func (c *Client) CreateJournalEntry(j *models.JournalEntry) error {
	data, err := marshalJSON(j)
	if err != nil {
		return fmt.Errorf("marshal journal entry: %w", err)
	}
	return c.set(JournalPrefix+j.ID.String(), data)
}

// GetJournalEntry retrieves a journal entry by ID or ID prefix.
func (c *Client) GetJournalEntry(idOrPrefix string) (*models.JournalEntry, error) {
	data, err := c.getByIDPrefix(JournalPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get journal entry: %w", err)
	}

	j, err := unmarshalJSON[models.JournalEntry](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal journal entry: %w", err)
	}
	return j, nil
}

// ListJournalEntries returns journal entries, most recent first.
func (c *Client) ListJournalEntries(userID int64, limit int) ([]*models.JournalEntry, error) {
	allData, err := c.listByPrefix(JournalPrefix)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}

	var entries []*models.JournalEntry
	for _, data := range allData {
		j, err := unmarshalJSON[models.JournalEntry](data)
		if err != nil {
			continue
		}
		if userID > 0 && j.UserID != userID {
			continue
		}
		entries = append(entries, j)
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].RecordedAt.After(entries[b].RecordedAt)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// DeleteJournalEntry removes a journal entry by ID or prefix.
func (c *Client) DeleteJournalEntry(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(JournalPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}
