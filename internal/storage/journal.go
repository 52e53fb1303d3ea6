// ABOUTME: Journal entry CRUD operations for SQLite storage.
// ABOUTME: Entries are listed newest first.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/mood/internal/models"
)

const journalColumns = `id, user_id, content, mood, weather_data, recorded_at, created_at`

// CreateJournalEntry stores a new journal entry.
func (d *DB) CreateJournalEntry(j *models.JournalEntry) error {
	weather, err := encodeWeather(j.Weather)
	if err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}

	_, err = d.db.Exec(`
		INSERT INTO journal_entries (`+journalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		j.ID.String(),
		j.UserID,
		j.Content,
		string(j.Mood),
		weather,
		formatTime(j.RecordedAt),
		formatTime(j.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}
	return nil
}

// GetJournalEntry retrieves a journal entry by ID or ID prefix.
func (d *DB) GetJournalEntry(idOrPrefix string) (*models.JournalEntry, error) {
	id, err := d.resolveID("journal_entries", idOrPrefix)
	if err != nil {
		return nil, err
	}

	j, err := scanJournalEntry(d.db.QueryRow(`SELECT `+journalColumns+` FROM journal_entries WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return j, err
}

// ListJournalEntries returns journal entries, most recent first.
func (d *DB) ListJournalEntries(userID int64, limit int) ([]*models.JournalEntry, error) {
	query, args := userFilter(`SELECT `+journalColumns+` FROM journal_entries WHERE 1=1`, nil, userID)
	query += " ORDER BY recorded_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		j, err := scanJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, j)
	}
	return entries, rows.Err()
}

// DeleteJournalEntry removes a journal entry by ID or prefix.
func (d *DB) DeleteJournalEntry(idOrPrefix string) error {
	if err := d.deleteByID("journal_entries", idOrPrefix); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}

func scanJournalEntry(row rowScanner) (*models.JournalEntry, error) {
	var j models.JournalEntry
	var idStr, mood, recordedAt, createdAt string
	var weather sql.NullString

	err := row.Scan(&idStr, &j.UserID, &j.Content, &mood, &weather, &recordedAt, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan journal entry: %w", err)
	}

	j.ID, _ = uuid.Parse(idStr)
	j.Mood = models.Mood(mood)
	j.RecordedAt = parseTime(recordedAt)
	j.CreatedAt = parseTime(createdAt)
	j.Weather = decodeWeather(weather)
	return &j, nil
}
