package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "initial_habits_and_achievements",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_habit_customizations",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_achievement_log",
		Up:      migrationV3,
	},
}

const schemaVersionSQL = `
	CREATE TABLE IF NOT EXISTS schema_version (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)
`

// LatestVersion returns the highest known migration version.
func LatestVersion() int {
	return migrations[len(migrations)-1].Version
}

// CurrentVersion returns the highest applied migration version.
func CurrentVersion(db *sql.DB) (int, error) {
	var v int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v); err != nil {
		return 0, fmt.Errorf("failed to get current schema version: %w", err)
	}
	return v, nil
}

// RunMigrations executes all pending migrations
func RunMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaVersionSQL); err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	currentVersion, err := CurrentVersion(db)
	if err != nil {
		return err
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", migration.Version, migration.Name, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// migrationV1 creates habits, completions and the achievement tables
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE habits (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL DEFAULT 'local',
			name TEXT NOT NULL,
			archived INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			archived_at TEXT
		);
		CREATE INDEX idx_habits_user ON habits(user_id);

		CREATE TABLE habit_completions (
			id TEXT PRIMARY KEY,
			habit_id TEXT NOT NULL,
			completed_date TEXT NOT NULL,
			completed_time TEXT NOT NULL,
			completed_at TEXT NOT NULL,
			FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);
		CREATE INDEX idx_completions_habit_date ON habit_completions(habit_id, completed_date);

		CREATE TABLE unlocked_achievements (
			user_id TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			unlocked_at TEXT NOT NULL,
			trigger_task_id TEXT,
			metadata TEXT,
			viewed INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, achievement_id)
		);

		CREATE TABLE achievement_progress (
			user_id TEXT NOT NULL,
			achievement_id TEXT NOT NULL,
			current_value INTEGER NOT NULL,
			target_value INTEGER NOT NULL,
			percentage INTEGER NOT NULL CHECK(percentage BETWEEN 0 AND 100),
			last_updated_at TEXT NOT NULL,
			PRIMARY KEY (user_id, achievement_id)
		);

		CREATE TABLE achievement_grid (
			user_id TEXT PRIMARY KEY,
			seed TEXT NOT NULL,
			version INTEGER NOT NULL,
			size INTEGER NOT NULL,
			positions TEXT NOT NULL,
			created_at TEXT NOT NULL
		);
	`)
	return err
}

// migrationV2 adds habit icon/color and the customization history
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec(`
		ALTER TABLE habits ADD COLUMN icon TEXT;
		ALTER TABLE habits ADD COLUMN color TEXT;

		CREATE TABLE habit_customizations (
			id TEXT PRIMARY KEY,
			habit_id TEXT NOT NULL,
			name TEXT,
			icon TEXT,
			color TEXT,
			created_at TEXT NOT NULL,
			FOREIGN KEY (habit_id) REFERENCES habits(id) ON DELETE CASCADE
		);
	`)
	return err
}

// migrationV3 adds the achievement audit log
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE TABLE achievement_log (
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
		CREATE INDEX idx_achievement_log_user ON achievement_log(user_id, timestamp);
	`)
	return err
}
