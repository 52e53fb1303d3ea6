// ABOUTME: Postgres-backed Repository using a pgx connection pool.
// ABOUTME: Mirrors the SQLite schema with native timestamps and a sequence for creation order.
package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/mood/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgQueryTimeout = 10 * time.Second

// PGStore implements Repository on Postgres.
type PGStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to dsn, verifies the connection, and ensures the schema.
func OpenPostgres(ctx context.Context, dsn string) (*PGStore, error) {
	ctx, cancel := context.WithTimeout(ctx, pgQueryTimeout)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// EnsureSchema creates the tables if they do not exist.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS mood_entries (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    user_id BIGINT NOT NULL DEFAULT 1,
    mood TEXT NOT NULL,
    emoji TEXT NOT NULL,
    note TEXT,
    weather_data JSONB,
    time_of_day TEXT NOT NULL,
    recorded_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`CREATE TABLE IF NOT EXISTS journal_entries (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    user_id BIGINT NOT NULL DEFAULT 1,
    content TEXT NOT NULL,
    mood TEXT NOT NULL,
    weather_data JSONB,
    recorded_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
		`CREATE TABLE IF NOT EXISTS daily_goals (
    id TEXT PRIMARY KEY,
    seq BIGSERIAL,
    user_id BIGINT NOT NULL DEFAULT 1,
    title TEXT NOT NULL,
    description TEXT,
    progress INTEGER NOT NULL DEFAULT 0,
    target INTEGER NOT NULL DEFAULT 100,
    date TIMESTAMPTZ NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT false
);`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
    user_id BIGINT PRIMARY KEY,
    weather_location TEXT NOT NULL DEFAULT 'Paris',
    theme TEXT NOT NULL DEFAULT 'auto',
    notifications BOOLEAN NOT NULL DEFAULT true,
    language TEXT NOT NULL DEFAULT 'fr'
);`,
		`CREATE INDEX IF NOT EXISTS idx_mood_user_recorded ON mood_entries (user_id, recorded_at);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_user_recorded ON journal_entries (user_id, recorded_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_goals_user_date ON daily_goals (user_id, date);`,
	}
	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure mood schema: %w", err)
		}
	}
	return nil
}

// Close releases the pool.
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PGStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), pgQueryTimeout)
}

// pgArgs numbers placeholders as conditions are appended.
type pgArgs struct {
	where []string
	args  []any
}

func (a *pgArgs) add(cond string, v any) {
	a.args = append(a.args, v)
	a.where = append(a.where, fmt.Sprintf(cond, len(a.args)))
}

func (a *pgArgs) clause() string {
	q := ""
	for i, w := range a.where {
		if i == 0 {
			q += " WHERE " + w
		} else {
			q += " AND " + w
		}
	}
	return q
}

func (a *pgArgs) limit(n int) string {
	if n <= 0 {
		return ""
	}
	a.args = append(a.args, n)
	return fmt.Sprintf(" LIMIT $%d", len(a.args))
}

func (s *PGStore) resolveID(ctx context.Context, table, idOrPrefix string) (string, error) {
	if IsFullID(idOrPrefix) {
		return idOrPrefix, nil
	}
	if idOrPrefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.pool.Query(ctx, `SELECT id FROM `+table+` WHERE id LIKE $1 || '%' LIMIT 2`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}
	matches, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return "", fmt.Errorf("resolve %s ID: %w", table, err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguous, idOrPrefix)
	}
}

func (s *PGStore) deleteByID(table, idOrPrefix string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	id, err := s.resolveID(ctx, table, idOrPrefix)
	if err != nil {
		return err
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return nil
}

// --- mood entries ---

const pgMoodColumns = `id, user_id, mood, emoji, note, weather_data, time_of_day, recorded_at, created_at`

// CreateMoodEntry stores a new mood entry.
func (s *PGStore) CreateMoodEntry(e *models.MoodEntry) error {
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.pool.Exec(ctx, `
INSERT INTO mood_entries (`+pgMoodColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, e.ID.String(), e.UserID, string(e.Mood), e.Emoji, e.Note, e.Weather,
		string(e.TimeOfDay), e.RecordedAt, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("create mood entry: %w", err)
	}
	return nil
}

// GetMoodEntry retrieves a mood entry by ID or ID prefix.
func (s *PGStore) GetMoodEntry(idOrPrefix string) (*models.MoodEntry, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	id, err := s.resolveID(ctx, "mood_entries", idOrPrefix)
	if err != nil {
		return nil, err
	}
	e, err := scanPGMoodEntry(s.pool.QueryRow(ctx, `SELECT `+pgMoodColumns+` FROM mood_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return e, err
}

// ListMoodEntries returns entries, most recent first.
func (s *PGStore) ListMoodEntries(userID int64, limit int) ([]*models.MoodEntry, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var a pgArgs
	if userID > 0 {
		a.add("user_id = $%d", userID)
	}
	query := `SELECT ` + pgMoodColumns + ` FROM mood_entries` + a.clause() + ` ORDER BY recorded_at DESC, seq DESC`
	query += a.limit(limit)

	return s.queryMoodEntries(ctx, query, a.args)
}

// ListMoodEntriesInRange returns entries recorded within [from, to] in creation order.
func (s *PGStore) ListMoodEntriesInRange(userID int64, from, to time.Time) ([]*models.MoodEntry, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var a pgArgs
	a.add("recorded_at >= $%d", from)
	a.add("recorded_at <= $%d", to)
	if userID > 0 {
		a.add("user_id = $%d", userID)
	}
	query := `SELECT ` + pgMoodColumns + ` FROM mood_entries` + a.clause() + ` ORDER BY created_at ASC, seq ASC`

	return s.queryMoodEntries(ctx, query, a.args)
}

// DeleteMoodEntry removes a mood entry by ID or prefix.
func (s *PGStore) DeleteMoodEntry(idOrPrefix string) error {
	if err := s.deleteByID("mood_entries", idOrPrefix); err != nil {
		return fmt.Errorf("delete mood entry: %w", err)
	}
	return nil
}

func (s *PGStore) queryMoodEntries(ctx context.Context, query string, args []any) ([]*models.MoodEntry, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.MoodEntry
	for rows.Next() {
		e, err := scanPGMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanPGMoodEntry(row pgx.Row) (*models.MoodEntry, error) {
	var e models.MoodEntry
	var idStr, mood, timeOfDay string

	err := row.Scan(&idStr, &e.UserID, &mood, &e.Emoji, &e.Note, &e.Weather, &timeOfDay, &e.RecordedAt, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan mood entry: %w", err)
	}
	e.ID, _ = uuid.Parse(idStr)
	e.Mood = models.Mood(mood)
	e.TimeOfDay = models.TimeOfDay(timeOfDay)
	return &e, nil
}

// --- journal entries ---

const pgJournalColumns = `id, user_id, content, mood, weather_data, recorded_at, created_at`

// CreateJournalEntry stores a new journal entry.
func (s *PGStore) CreateJournalEntry(j *models.JournalEntry) error {
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.pool.Exec(ctx, `
INSERT INTO journal_entries (`+pgJournalColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`, j.ID.String(), j.UserID, j.Content, string(j.Mood), j.Weather, j.RecordedAt, j.CreatedAt)
	if err != nil {
		return fmt.Errorf("create journal entry: %w", err)
	}
	return nil
}

// GetJournalEntry retrieves a journal entry by ID or ID prefix.
func (s *PGStore) GetJournalEntry(idOrPrefix string) (*models.JournalEntry, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	id, err := s.resolveID(ctx, "journal_entries", idOrPrefix)
	if err != nil {
		return nil, err
	}
	j, err := scanPGJournalEntry(s.pool.QueryRow(ctx, `SELECT `+pgJournalColumns+` FROM journal_entries WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return j, err
}

// ListJournalEntries returns journal entries, most recent first.
func (s *PGStore) ListJournalEntries(userID int64, limit int) ([]*models.JournalEntry, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var a pgArgs
	if userID > 0 {
		a.add("user_id = $%d", userID)
	}
	query := `SELECT ` + pgJournalColumns + ` FROM journal_entries` + a.clause() + ` ORDER BY recorded_at DESC, seq DESC`
	query += a.limit(limit)

	rows, err := s.pool.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.JournalEntry
	for rows.Next() {
		j, err := scanPGJournalEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, j)
	}
	return entries, rows.Err()
}

// DeleteJournalEntry removes a journal entry by ID or prefix.
func (s *PGStore) DeleteJournalEntry(idOrPrefix string) error {
	if err := s.deleteByID("journal_entries", idOrPrefix); err != nil {
		return fmt.Errorf("delete journal entry: %w", err)
	}
	return nil
}

func scanPGJournalEntry(row pgx.Row) (*models.JournalEntry, error) {
	var j models.JournalEntry
	var idStr, mood string

	err := row.Scan(&idStr, &j.UserID, &j.Content, &mood, &j.Weather, &j.RecordedAt, &j.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan journal entry: %w", err)
	}
	j.ID, _ = uuid.Parse(idStr)
	j.Mood = models.Mood(mood)
	return &j, nil
}

// --- daily goals ---

const pgGoalColumns = `id, user_id, title, description, progress, target, date, completed`

// CreateGoal stores a new daily goal.
func (s *PGStore) CreateGoal(g *models.DailyGoal) error {
	ctx, cancel := s.ctx()
	defer cancel()

	_, err := s.pool.Exec(ctx, `
INSERT INTO daily_goals (`+pgGoalColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, g.ID.String(), g.UserID, g.Title, g.Description, g.Progress, g.Target, g.Date, g.Completed)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	return nil
}

// GetGoal retrieves a goal by ID or ID prefix.
func (s *PGStore) GetGoal(idOrPrefix string) (*models.DailyGoal, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	id, err := s.resolveID(ctx, "daily_goals", idOrPrefix)
	if err != nil {
		return nil, err
	}
	g, err := scanPGGoal(s.pool.QueryRow(ctx, `SELECT `+pgGoalColumns+` FROM daily_goals WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	return g, err
}

// ListGoals returns goals dated on day's calendar day; a zero day returns all goals.
func (s *PGStore) ListGoals(userID int64, day time.Time) ([]*models.DailyGoal, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var a pgArgs
	if !day.IsZero() {
		start, end := DayBounds(day)
		a.add("date >= $%d", start)
		a.add("date < $%d", end)
	}
	if userID > 0 {
		a.add("user_id = $%d", userID)
	}
	query := `SELECT ` + pgGoalColumns + ` FROM daily_goals` + a.clause() + ` ORDER BY date ASC, seq ASC`

	rows, err := s.pool.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*models.DailyGoal
	for rows.Next() {
		g, err := scanPGGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoalProgress sets a goal's progress and completion.
func (s *PGStore) UpdateGoalProgress(idOrPrefix string, progress int, completed *bool) (*models.DailyGoal, error) {
	g, err := s.GetGoal(idOrPrefix)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	ApplyGoalProgress(g, progress, completed)

	ctx, cancel := s.ctx()
	defer cancel()
	_, err = s.pool.Exec(ctx, `UPDATE daily_goals SET progress = $2, completed = $3 WHERE id = $1`,
		g.ID.String(), g.Progress, g.Completed)
	if err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return g, nil
}

// DeleteGoal removes a goal by ID or prefix.
func (s *PGStore) DeleteGoal(idOrPrefix string) error {
	if err := s.deleteByID("daily_goals", idOrPrefix); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

func scanPGGoal(row pgx.Row) (*models.DailyGoal, error) {
	var g models.DailyGoal
	var idStr string

	err := row.Scan(&idStr, &g.UserID, &g.Title, &g.Description, &g.Progress, &g.Target, &g.Date, &g.Completed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan goal: %w", err)
	}
	g.ID, _ = uuid.Parse(idStr)
	return &g, nil
}

// --- preferences ---

// GetPreferences returns the user's preferences, or defaults when none are stored.
func (s *PGStore) GetPreferences(userID int64) (*models.Preferences, error) {
	if userID <= 0 {
		userID = models.GuestUserID
	}
	ctx, cancel := s.ctx()
	defer cancel()

	p := models.Preferences{UserID: userID}
	err := s.pool.QueryRow(ctx, `
SELECT weather_location, theme, notifications, language
FROM user_preferences WHERE user_id = $1
`, userID).Scan(&p.WeatherLocation, &p.Theme, &p.Notifications, &p.Language)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.DefaultPreferences(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	return &p, nil
}

// UpdatePreferences applies patch over the stored (or default) preferences.
func (s *PGStore) UpdatePreferences(userID int64, patch models.PreferencesPatch) (*models.Preferences, error) {
	p, err := s.GetPreferences(userID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	ctx, cancel := s.ctx()
	defer cancel()
	_, err = s.pool.Exec(ctx, `
INSERT INTO user_preferences (user_id, weather_location, theme, notifications, language)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id)
DO UPDATE SET weather_location = EXCLUDED.weather_location,
              theme = EXCLUDED.theme,
              notifications = EXCLUDED.notifications,
              language = EXCLUDED.language
`, p.UserID, p.WeatherLocation, p.Theme, p.Notifications, p.Language)
	if err != nil {
		return nil, fmt.Errorf("update preferences: %w", err)
	}
	return p, nil
}

// GetAllData retrieves all data for export.
func (s *PGStore) GetAllData() (*ExportData, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	rows, err := s.pool.Query(ctx, `
SELECT user_id, weather_location, theme, notifications, language
FROM user_preferences ORDER BY user_id
`)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	prefs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*models.Preferences, error) {
		var p models.Preferences
		err := row.Scan(&p.UserID, &p.WeatherLocation, &p.Theme, &p.Notifications, &p.Language)
		return &p, err
	})
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", err)
	}
	return CollectData(s, prefs)
}

// ImportData imports data from an export file.
func (s *PGStore) ImportData(data *ExportData) error {
	return ImportInto(s, data)
}
