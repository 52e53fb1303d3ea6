// ABOUTME: Daily goal, preference, and export operations for Charm KV storage.
// ABOUTME: Preferences are keyed by user ID; export reuses the storage helpers.
package charm

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
)

// CreateGoal stores a new daily goal.
func (c *Client) CreateGoal(g *models.DailyGoal) error {
	data, err := marshalJSON(g)
	if err != nil {
		return fmt.Errorf("marshal goal: %w", err)
	}
	return c.set(GoalPrefix+g.ID.String(), data)
}

// GetGoal retrieves a goal by ID or ID prefix.
func (c *Client) GetGoal(idOrPrefix string) (*models.DailyGoal, error) {
	data, err := c.getByIDPrefix(GoalPrefix, idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	g, err := unmarshalJSON[models.DailyGoal](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal goal: %w", err)
	}
	return g, nil
}

// ListGoals returns goals dated on day's calendar day; a zero day returns all goals.
func (c *Client) ListGoals(userID int64, day time.Time) ([]*models.DailyGoal, error) {
	allData, err := c.listByPrefix(GoalPrefix)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	var start, end time.Time
	if !day.IsZero() {
		start, end = storage.DayBounds(day)
	}

	var goals []*models.DailyGoal
	for _, data := range allData {
		g, err := unmarshalJSON[models.DailyGoal](data)
		if err != nil {
			continue
		}
		if userID > 0 && g.UserID != userID {
			continue
		}
		if !day.IsZero() && (g.Date.Before(start) || !g.Date.Before(end)) {
			continue
		}
		goals = append(goals, g)
	}

	sort.SliceStable(goals, func(i, j int) bool {
		return goals[i].Date.Before(goals[j].Date)
	})
	return goals, nil
}

// UpdateGoalProgress sets a goal's progress and completion.
func (c *Client) UpdateGoalProgress(idOrPrefix string, progress int, completed *bool) (*models.DailyGoal, error) {
	g, err := c.GetGoal(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	storage.ApplyGoalProgress(g, progress, completed)

	if err := c.CreateGoal(g); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

// DeleteGoal removes a goal by ID or prefix.
func (c *Client) DeleteGoal(idOrPrefix string) error {
	if err := c.deleteByIDPrefix(GoalPrefix, idOrPrefix); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func prefsKey(userID int64) string {
	return PrefsPrefix + strconv.FormatInt(userID, 10)
}

// GetPreferences returns the user's preferences, or defaults when none are stored.
func (c *Client) GetPreferences(userID int64) (*models.Preferences, error) {
	if userID <= 0 {
		userID = models.GuestUserID
	}

	c.mu.RLock()
	data, err := c.kv.Get([]byte(prefsKey(userID)))
	c.mu.RUnlock()
	if err != nil || len(data) == 0 {
		return models.DefaultPreferences(userID), nil
	}

	p, err := unmarshalJSON[models.Preferences](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return p, nil
}

// UpdatePreferences applies patch over the stored (or default) preferences.
func (c *Client) UpdatePreferences(userID int64, patch models.PreferencesPatch) (*models.Preferences, error) {
	p, err := c.GetPreferences(userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	data, err := marshalJSON(p)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	if err := c.set(prefsKey(p.UserID), data); err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return p, nil
}

// GetAllData retrieves all data for export.
func (c *Client) GetAllData() (*storage.ExportData, error) {
	allData, err := c.listByPrefix(PrefsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}

	var prefs []*models.Preferences
	for _, data := range allData {
		p, err := unmarshalJSON[models.Preferences](data)
		if err != nil {
			continue
		}
		prefs = append(prefs, p)
	}
	sort.Slice(prefs, func(i, j int) bool { return prefs[i].UserID < prefs[j].UserID })

	return storage.CollectData(c, prefs)
}

// ImportData imports data from an export file.
func (c *Client) ImportData(data *storage.ExportData) error {
	return storage.ImportInto(c, data)
}
