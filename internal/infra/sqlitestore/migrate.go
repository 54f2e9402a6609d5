package sqlitestore

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the latest schema version supported by the migrator.
const SchemaVersion = 1

// Migrate ensures the SQLite schema exists and is upgraded to SchemaVersion.
func Migrate(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("migrate: db is nil")
	}

	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY);`)
	if err != nil {
		return fmt.Errorf("migrate: create schema_migrations: %w", err)
	}

	var current int
	err = db.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations;`).Scan(&current)
	if err != nil {
		return fmt.Errorf("migrate: read current version: %w", err)
	}
	if current >= SchemaVersion {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("migrate: begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	steps := []struct {
		name string
		ddl  string
	}{
		{"create tasks table", `
			CREATE TABLE IF NOT EXISTS tasks (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				owner_id TEXT NULL,
				info TEXT NOT NULL DEFAULT '',
				created_at TEXT NOT NULL,
				completed_at TEXT NULL,
				hours_spent REAL NOT NULL DEFAULT 0,
				session_start REAL NULL,
				active INTEGER NOT NULL DEFAULT 0,
				completed INTEGER NOT NULL DEFAULT 0
			);`},
		{"create notes table", `
			CREATE TABLE IF NOT EXISTS notes (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				task_id INTEGER NOT NULL,
				text TEXT NOT NULL,
				done INTEGER NOT NULL DEFAULT 0,
				created_at TEXT NOT NULL,
				FOREIGN KEY(task_id) REFERENCES tasks(id) ON DELETE CASCADE
			);`},
		{"create idx_tasks_owner", `CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks(owner_id);`},
		{"create idx_notes_task", `CREATE INDEX IF NOT EXISTS idx_notes_task ON notes(task_id, id);`},
	}
	for _, step := range steps {
		if _, err := tx.Exec(step.ddl); err != nil {
			return fmt.Errorf("migrate: %s: %w", step.name, err)
		}
	}

	_, err = tx.Exec(`INSERT INTO schema_migrations(version) VALUES (?);`, SchemaVersion)
	if err != nil {
		return fmt.Errorf("migrate: record schema version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migrate: commit transaction: %w", err)
	}
	return nil
}
