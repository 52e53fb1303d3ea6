// ABOUTME: Daily goal CRUD operations for SQLite storage.
// ABOUTME: Goals are listed per calendar day and completed at their target.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mood/internal/models"
)

const goalColumns = `id, user_id, title, description, progress, target, date, completed`

// CreateGoal stores a new daily goal.
func (d *DB) CreateGoal(g *models.DailyGoal) error {
	_, err := d.db.Exec(`
		INSERT INTO daily_goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		g.ID.String(),
		g.UserID,
		g.Title,
		g.Description,
		g.Progress,
		g.Target,
		formatTime(g.Date),
		g.Completed,
	)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

// GetGoal retrieves a goal by ID or ID prefix.
func (d *DB) GetGoal(idOrPrefix string) (*models.DailyGoal, error) {
	id, err := d.resolveID("daily_goals", idOrPrefix)
	if err != nil {
		return nil, err
	}

	g, err := scanGoal(d.db.QueryRow(`SELECT `+goalColumns+` FROM daily_goals WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return g, err
}

// ListGoals returns goals dated on the calendar day of day (in day's
// location). A zero day returns every goal.
func (d *DB) ListGoals(userID int64, day time.Time) ([]*models.DailyGoal, error) {
	query := `SELECT ` + goalColumns + ` FROM daily_goals WHERE 1=1`
	var args []any
	if !day.IsZero() {
		start, end := DayBounds(day)
		query += " AND date >= ? AND date < ?"
		args = append(args, formatTime(start), formatTime(end))
	}
	query, args = userFilter(query, args, userID)
	query += " ORDER BY date ASC, rowid ASC"

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.DailyGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoalProgress sets a goal's progress and completion.
func (d *DB) UpdateGoalProgress(idOrPrefix string, progress int, completed *bool) (*models.DailyGoal, error) {
	g, err := d.GetGoal(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	ApplyGoalProgress(g, progress, completed)

	_, err = d.db.Exec(`UPDATE daily_goals SET progress = ?, completed = ? WHERE id = ?`,
		g.Progress, g.Completed, g.ID.String())
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

// DeleteGoal removes a goal by ID or prefix.
func (d *DB) DeleteGoal(idOrPrefix string) error {
	if err := d.deleteByID("daily_goals", idOrPrefix); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func scanGoal(row rowScanner) (*models.DailyGoal, error) {
	var g models.DailyGoal
	var idStr, date string
	var description sql.NullString

	err := row.Scan(&idStr, &g.UserID, &g.Title, &description, &g.Progress, &g.Target, &date, &g.Completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}

	g.ID, _ = uuid.Parse(idStr)
	g.Date = parseTime(date)
	if description.Valid {
		g.Description = &description.String
	}
	return &g, nil
}
