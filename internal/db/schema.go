package db

import "database/sql"

// SchemaSQL is the complete modern schema for fresh installs.
// This schema reflects the current state after all migrations.
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(). If repository code references a column that
// doesn't exist here, tests fail immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
//  3. Run `make test` to verify alignment
const SchemaSQL = `
-- Habits (tracked by the user)
CREATE TABLE IF NOT EXISTS habits (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL DEFAULT 'local',
	name TEXT NOT NULL,
	icon TEXT,
	color TEXT,
	archived INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL,
	archived_at TEXT
);

CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id);

-- Completions (one row per check-off)
CREATE TABLE IF NOT EXISTS habit_completions (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	completed_date TEXT NOT NULL,
	completed_time TEXT NOT NULL,
	completed_at TEXT NOT NULL,
	FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_completions_habit_date ON habit_completions(habit_id, completed_date);

-- Customizations (name/icon/color changes)
CREATE TABLE IF NOT EXISTS habit_customizations (
	id TEXT PRIMARY KEY,
	habit_id TEXT NOT NULL,
	name TEXT,
	icon TEXT,
	color TEXT,
	created_at TEXT NOT NULL,
	FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
);

-- Unlocked achievements (one row per user and achievement, never duplicated)
CREATE TABLE IF NOT EXISTS unlocked_achievements (
	user_id TEXT NOT NULL,
	achievement_id TEXT NOT NULL,
	unlocked_at TEXT NOT NULL,
	trigger_task_id TEXT,
	metadata TEXT,
	viewed INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (user_id, achievement_id)
);

-- Partial progress toward locked achievements
CREATE TABLE IF NOT EXISTS achievement_progress (
	user_id TEXT NOT NULL,
	achievement_id TEXT NOT NULL,
	current_value INTEGER NOT NULL,
	target_value INTEGER NOT NULL,
	percentage INTEGER NOT NULL CHECK(percentage BETWEEN 0 AND 100),
	last_updated_at TEXT NOT NULL,
	PRIMARY KEY (user_id, achievement_id)
);

-- Grid layout (one per user)
CREATE TABLE IF NOT EXISTS achievement_grid (
	user_id TEXT PRIMARY KEY,
	seed TEXT NOT NULL,
	version INTEGER NOT NULL,
	size INTEGER NOT NULL,
	positions TEXT NOT NULL,
	created_at TEXT NOT NULL
);

-- Audit log
CREATE TABLE IF NOT EXISTS achievement_log (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	entity_type TEXT NOT NULL,
	entity_id TEXT NOT NULL,
	action TEXT NOT NULL CHECK(action IN ('create', 'update', 'delete')),
	field_name TEXT,
	old_value TEXT,
	new_value TEXT
);

CREATE INDEX IF NOT EXISTS idx_achievement_log_user ON achievement_log(user_id, timestamp);
`

// InitSchema brings the database schema up to date.
func InitSchema(db *sql.DB) error {
	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		// schema_version table exists - run any pending migrations
		return RunMigrations(db)
	}

	// Completely fresh install - create modern schema directly and mark all
	// migrations as applied
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(SchemaSQL); err != nil {
		return err
	}
	if _, err := tx.Exec(schemaVersionSQL); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
