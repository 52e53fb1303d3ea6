// ABOUTME: User preference storage for SQLite.
// ABOUTME: Missing rows read as defaults; updates upsert the merged result.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harperreed/mood/internal/models"
)

// GetPreferences returns the user's preferences, or defaults when none are stored.
func (d *DB) GetPreferences(userID int64) (*models.Preferences, error) {
	if userID <= 0 {
		userID = models.GuestUserID
	}

	p := models.Preferences{UserID: userID}
	err := d.db.QueryRow(`
		SELECT weather_location, theme, notifications, language
		FROM user_preferences WHERE user_id = ?
	`, userID).Scan(&p.WeatherLocation, &p.Theme, &p.Notifications, &p.Language)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

// UpdatePreferences applies patch over the stored (or default) preferences.
func (d *DB) UpdatePreferences(userID int64, patch models.PreferencesPatch) (*models.Preferences, error) {
	p, err := d.GetPreferences(userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	_, err = d.db.Exec(`
		INSERT INTO user_preferences (user_id, weather_location, theme, notifications, language)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			weather_location = excluded.weather_location,
			theme = excluded.theme,
			notifications = excluded.notifications,
			language = excluded.language
	`, p.UserID, p.WeatherLocation, p.Theme, p.Notifications, p.Language)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return p, nil
}

// listPreferences returns every stored preference row.
func (d *DB) listPreferences() ([]*models.Preferences, error) {
	rows, err := d.db.Query(`
		SELECT user_id, weather_location, theme, notifications, language
		FROM user_preferences ORDER BY user_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	defer rows.Close()

	var prefs []*models.Preferences
	for rows.Next() {
		var p models.Preferences
		if err := rows.Scan(&p.UserID, &p.WeatherLocation, &p.Theme, &p.Notifications, &p.Language); err != nil {
			return nil, fmt.Errorf("scan preferences: %w", err)
		}
		prefs = append(prefs, &p)
	}
	return prefs, rows.Err()
}
