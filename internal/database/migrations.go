package database

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history. New schema changes get a new
// version; applied versions are recorded in the migrations table and never
// re-run.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_core_tables",
		SQL: `
			CREATE TABLE IF NOT EXISTS logtypes (
				_id INTEGER PRIMARY KEY AUTOINCREMENT,
				_name TEXT NOT NULL,
				_timetype INTEGER NOT NULL
			);
			CREATE TABLE IF NOT EXISTS logs (
				_id INTEGER PRIMARY KEY AUTOINCREMENT,
				_type INTEGER NOT NULL,
				_from INTEGER NOT NULL,
				_from_y INTEGER NOT NULL,
				_from_m INTEGER NOT NULL,
				_from_w INTEGER NOT NULL,
				_from_d INTEGER NOT NULL,
				_to INTEGER NOT NULL DEFAULT 0,
				_comment TEXT NOT NULL DEFAULT '',
				_startbyauto INTEGER NOT NULL DEFAULT 0
			);
			CREATE TABLE IF NOT EXISTS cells (
				_id INTEGER PRIMARY KEY AUTOINCREMENT,
				_latitude INTEGER NOT NULL,
				_longitude INTEGER NOT NULL,
				_type INTEGER NOT NULL DEFAULT 0,
				_radius INTEGER NOT NULL DEFAULT 0,
				_seen_first INTEGER NOT NULL DEFAULT 0,
				_seen_last INTEGER NOT NULL DEFAULT 0
			);
		`,
	},
	{
		Version: 2,
		Name:    "create_app_state",
		SQL: `
			CREATE TABLE IF NOT EXISTS app_state (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			);
		`,
	},
	{
		Version: 3,
		Name:    "add_log_indexes",
		SQL: `
			CREATE INDEX IF NOT EXISTS idx_logs_to ON logs(_to);
			CREATE INDEX IF NOT EXISTS idx_logs_day ON logs(_from_y, _from_d);
		`,
	},
}

// Migrate brings the schema up to date and seeds the default logtypes.
func Migrate(db *sql.DB) error {
	if err := initMigrationsTable(db); err != nil {
		return err
	}

	applied, err := appliedMigrations(db)
	if err != nil {
		return err
	}

	pending := make([]Migration, 0, len(migrations))
	for _, m := range migrations {
		if !applied[m.Version] {
			pending = append(pending, m)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })

	for _, m := range pending {
		if err := applyMigration(db, m); err != nil {
			return err
		}
		log.Printf("Applied migration %d: %s", m.Version, m.Name)
	}

	return seedLogtypes(db)
}

// initMigrationsTable creates the migrations tracking table
func initMigrationsTable(db *sql.DB) error {
	query := `
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`
	_, err := db.Exec(query)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

// appliedMigrations returns the set of applied migration versions
func appliedMigrations(db *sql.DB) (map[int]bool, error) {
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}

	return applied, rows.Err()
}

// applyMigration runs one migration and records it, atomically
func applyMigration(db *sql.DB, m Migration) error {
	return Transaction(db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(m.SQL); err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		return nil
	})
}

// seedLogtypes inserts the three default logtypes when the table is empty.
// The seed ids match the TimeKind values so fresh installs keep the
// historical id layout.
func seedLogtypes(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM logtypes").Scan(&count); err != nil {
		return fmt.Errorf("failed to count logtypes: %w", err)
	}
	if count > 0 {
		return nil
	}

	log.Printf("Seeding default logtypes")
	seeds := []struct {
		id   int64
		name string
		kind int
	}{
		{1, "Pause", 1},
		{2, "Travel", 2},
		{3, "Work", 3},
	}
	for _, s := range seeds {
		_, err := db.Exec(
			"INSERT INTO logtypes (_id, _name, _timetype) VALUES (?, ?, ?)",
			s.id, s.name, s.kind,
		)
		if err != nil {
			return fmt.Errorf("failed to seed logtype %s: %w", s.name, err)
		}
	}
	return nil
}
