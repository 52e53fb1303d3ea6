// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for mood entries, journal entries, daily goals, and preferences.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS mood_entries (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL DEFAULT 1,
		mood TEXT NOT NULL,
		emoji TEXT NOT NULL,
		note TEXT,
		weather_data TEXT,
		time_of_day TEXT NOT NULL,
		recorded_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_entries (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL DEFAULT 1,
		content TEXT NOT NULL,
		mood TEXT NOT NULL,
		weather_data TEXT,
		recorded_at TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS daily_goals (
		id TEXT PRIMARY KEY,
		user_id INTEGER NOT NULL DEFAULT 1,
		title TEXT NOT NULL,
		description TEXT,
		progress INTEGER NOT NULL DEFAULT 0,
		target INTEGER NOT NULL DEFAULT 100,
		date TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS user_preferences (
		user_id INTEGER PRIMARY KEY,
		weather_location TEXT NOT NULL DEFAULT 'Paris',
		theme TEXT NOT NULL DEFAULT 'auto',
		notifications INTEGER NOT NULL DEFAULT 1,
		language TEXT NOT NULL DEFAULT 'fr'
	);

	CREATE INDEX IF NOT EXISTS idx_mood_user_recorded ON mood_entries(user_id, recorded_at);
	CREATE INDEX IF NOT EXISTS idx_mood_created ON mood_entries(created_at);
	CREATE INDEX IF NOT EXISTS idx_journal_user_recorded ON journal_entries(user_id, recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_goals_user_date ON daily_goals(user_id, date);
	`

	_, err := d.db.Exec(schema)
	return err
}
