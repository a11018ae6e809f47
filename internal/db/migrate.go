package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every startup. Statements must stay
// idempotent (CREATE ... IF NOT EXISTS / tolerated ALTER errors) because the
// migration system re-runs all of them.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS goals (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		title           TEXT NOT NULL,
		category        TEXT NOT NULL
		                CHECK(category IN ('salud','idioma','ahorro','enfoque','otro')),
		minutes_per_day INTEGER NOT NULL,
		level           INTEGER NOT NULL DEFAULT 1,
		xp              INTEGER NOT NULL DEFAULT 0,
		streak          INTEGER NOT NULL DEFAULT 0,
		hearts          INTEGER NOT NULL DEFAULT 3,
		active          INTEGER NOT NULL DEFAULT 1,
		target_metric   INTEGER,
		deadline_weeks  INTEGER,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_goals_user_active ON goals(user_id, active)`,

	`CREATE TABLE IF NOT EXISTS challenges (
		id         TEXT PRIMARY KEY,
		goal_id    TEXT NOT NULL REFERENCES goals(id) ON DELETE CASCADE,
		day        TEXT NOT NULL,
		kind       TEXT NOT NULL,
		minutes    INTEGER NOT NULL,
		text       TEXT NOT NULL,
		status     TEXT NOT NULL DEFAULT 'pending'
		           CHECK(status IN ('pending','done','skipped')),
		created_at TEXT NOT NULL,
		UNIQUE(goal_id, day)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_challenges_goal ON challenges(goal_id)`,
	`CREATE INDEX IF NOT EXISTS idx_challenges_day ON challenges(day)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
