// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// modernc.org/sqlite is a pure Go translation of SQLite — no CGo, no
// external database server. The connection pool lives in a single file
// (or in memory for tests), which is all this deployment needs.
//
// The original product ran on Postgres; the SQL here reproduces the same
// semantics. SQLite's `INSERT .. ON CONFLICT DO UPDATE` matches Postgres
// upserts, `ORDER BY .. NULLS FIRST` is supported natively, and LIKE is
// case-insensitive for ASCII, matching ILIKE for the skill vocabulary.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// One DB value implements every repository interface; the server hands the
// same instance to each service.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for tests.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL allows concurrent reads while a write is in flight — required
	// for a web server where requests share the pool.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates all tables. CREATE TABLE IF NOT EXISTS keeps this safe
// to run on every start.
func (db *DB) migrate() error {
	stmts := []struct {
		name string
		sql  string
	}{
		{"users", `
			CREATE TABLE IF NOT EXISTS users (
				id            TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				email         TEXT NOT NULL UNIQUE,
				password_hash TEXT,
				google_id     TEXT UNIQUE,
				user_type     TEXT NOT NULL DEFAULT 'student',
				usn           TEXT,
				contact       TEXT,
				created_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`},
		{"videos", `
			CREATE TABLE IF NOT EXISTS videos (
				id          TEXT PRIMARY KEY,
				title       TEXT NOT NULL,
				subject     TEXT NOT NULL DEFAULT '',
				teacher_id  TEXT NOT NULL REFERENCES users(id),
				description TEXT NOT NULL DEFAULT '',
				video_url   TEXT NOT NULL DEFAULT '',
				created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
			CREATE INDEX IF NOT EXISTS idx_videos_teacher_id ON videos(teacher_id);
			CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at);
		`},
		{"course_progress", `
			CREATE TABLE IF NOT EXISTS course_progress (
				id                  TEXT PRIMARY KEY,
				student_id          TEXT NOT NULL REFERENCES users(id),
				video_id            TEXT NOT NULL REFERENCES videos(id),
				progress_percentage INTEGER NOT NULL DEFAULT 0,
				completed           INTEGER NOT NULL DEFAULT 0,
				last_watched_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at          DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(student_id, video_id)
			);
		`},
		{"student_learning_data", `
			CREATE TABLE IF NOT EXISTS student_learning_data (
				id         TEXT PRIMARY KEY,
				student_id TEXT NOT NULL REFERENCES users(id),
				video_id   TEXT NOT NULL REFERENCES videos(id),
				goals      TEXT NOT NULL DEFAULT '',
				notes      TEXT NOT NULL DEFAULT '',
				created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(student_id, video_id)
			);
		`},
		{"student_skills", `
			CREATE TABLE IF NOT EXISTS student_skills (
				student_id  TEXT NOT NULL REFERENCES users(id),
				skill_name  TEXT NOT NULL,
				skill_type  TEXT NOT NULL,
				is_active   INTEGER NOT NULL DEFAULT 0,
				proficiency REAL NOT NULL DEFAULT 0,
				updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
				UNIQUE(student_id, skill_name)
			);
		`},
		{"student_profiles", `
			CREATE TABLE IF NOT EXISTS student_profiles (
				user_id        TEXT NOT NULL UNIQUE REFERENCES users(id),
				github_profile TEXT NOT NULL DEFAULT '',
				updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
			);
		`},
	}

	for _, s := range stmts {
		if _, err := db.conn.Exec(s.sql); err != nil {
			return fmt.Errorf("creating %s table: %w", s.name, err)
		}
	}

	return nil
}
