// ABOUTME: Mood entry CRUD operations for SQLite storage.
// ABOUTME: Includes the inclusive date-range query used by the weekly recap.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mood/internal/models"
)

const moodColumns = `id, user_id, mood, emoji, note, weather_data, time_of_day, recorded_at, created_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// CreateMoodEntry stores a new mood entry.
func (d *DB) CreateMoodEntry(e *models.MoodEntry) error {
	weather, err := encodeWeather(e.Weather)
	if err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO mood_entries (`+moodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID.String(),
		e.UserID,
		string(e.Mood),
		e.Emoji,
		e.Note,
		weather,
		string(e.TimeOfDay),
		formatTime(e.RecordedAt),
		formatTime(e.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	return nil
}

// GetMoodEntry retrieves a mood entry by ID or ID prefix.
func (d *DB) GetMoodEntry(idOrPrefix string) (*models.MoodEntry, error) {
	id, err := d.resolveID("mood_entries", idOrPrefix)
	if err != nil {
		return nil, err
	}

	e, err := scanMoodEntry(d.db.QueryRow(`SELECT `+moodColumns+` FROM mood_entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return e, err
}

// ListMoodEntries returns entries sorted by RecordedAt descending (most recent first).
func (d *DB) ListMoodEntries(userID int64, limit int) ([]*models.MoodEntry, error) {
	query, args := userFilter(`SELECT `+moodColumns+` FROM mood_entries WHERE 1=1`, nil, userID)
	query += " ORDER BY recorded_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	return scanMoodEntries(rows)
}

// ListMoodEntriesInRange returns entries recorded within [from, to] in
// creation order.
func (d *DB) ListMoodEntriesInRange(userID int64, from, to time.Time) ([]*models.MoodEntry, error) {
	query, args := userFilter(
		`SELECT `+moodColumns+` FROM mood_entries WHERE recorded_at >= ? AND recorded_at <= ?`,
		[]any{formatTime(from), formatTime(to)},
		userID,
	)
	query += " ORDER BY created_at ASC, rowid ASC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mood entries in range: %w", err)
	}
	defer rows.Close()

	return scanMoodEntries(rows)
}

// DeleteMoodEntry removes a mood entry by ID or prefix.
func (d *DB) DeleteMoodEntry(idOrPrefix string) error {
	if err := d.deleteByID("mood_entries", idOrPrefix); err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}

func scanMoodEntry(row rowScanner) (*models.MoodEntry, error) {
	var e models.MoodEntry
	var idStr, mood, timeOfDay, recordedAt, createdAt string
	var note, weather sql.NullString

	err := row.Scan(&idStr, &e.UserID, &mood, &e.Emoji, &note, &weather, &timeOfDay, &recordedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan mood entry: %w", err)
	}

	e.ID, _ = uuid.Parse(idStr)
	e.Mood = models.Mood(mood)
	e.TimeOfDay = models.TimeOfDay(timeOfDay)
	e.RecordedAt = parseTime(recordedAt)
	e.CreatedAt = parseTime(createdAt)
	if note.Valid {
		e.Note = &note.String
	}
	e.Weather = decodeWeather(weather)
	return &e, nil
}

func scanMoodEntries(rows *sql.Rows) ([]*models.MoodEntry, error) {
	var entries []*models.MoodEntry
	for rows.Next() {
		e, err := scanMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// encodeWeather serializes weather for a TEXT column; nil stays NULL.
func encodeWeather(w *models.Weather) (sql.NullString, error) {
	if w == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode weather: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

// decodeWeather parses a weather column; unreadable data is dropped.
func decodeWeather(s sql.NullString) *models.Weather {
	if !s.Valid || s.String == "" {
		return nil
	}
	var w models.Weather
	if err := json.Unmarshal([]byte(s.String), &w); err != nil {
		return nil
	}
	return &w
}
