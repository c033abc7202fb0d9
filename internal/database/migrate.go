package database

import (
	"context"
	"database/sql"
	"fmt"
)

// A migration is one schema version: an identifier recorded in the
// schema_migrations table and a function applying the change.  Every apply
// function must be idempotent on its own because databases created before
// version tracking existed carry no schema_migrations rows.
type migration struct {
	version string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

// migrations is the ordered schema history.  Append only; never reorder or
// edit an entry that has shipped.
var migrations = []migration{
	{version: "001_users", apply: execSQL(`
		CREATE TABLE IF NOT EXISTS users (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			username      TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at    DATETIME DEFAULT CURRENT_TIMESTAMP
		)`)},
	{version: "002_movies", apply: execSQL(`
		CREATE TABLE IF NOT EXISTS movies (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT NOT NULL UNIQUE,
			year         INTEGER,
			director     TEXT,
			rating       REAL DEFAULT 0,
			watched_date TEXT,
			poster_url   TEXT,
			user_id      INTEGER NOT NULL DEFAULT 1,
			created_at   DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`)},
	{version: "003_reviews", apply: execSQL(`
		CREATE TABLE IF NOT EXISTS reviews (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			movie_id   INTEGER NOT NULL,
			user_id    INTEGER NOT NULL,
			review     TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(movie_id) REFERENCES movies(id) ON DELETE CASCADE,
			FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
		)`)},
	// Movies tables from before ownership tracking lack the user_id column.
	// Rows predating the column are attributed to the bootstrap user (id 1).
	{version: "004_movies_owner", apply: addColumnIfMissing("movies", "user_id",
		"ALTER TABLE movies ADD COLUMN user_id INTEGER NOT NULL DEFAULT 1")},
	// poster_url was likewise added after the first release.
	{version: "005_movies_poster", apply: addColumnIfMissing("movies", "poster_url",
		"ALTER TABLE movies ADD COLUMN poster_url TEXT")},
}

// Migrate applies all pending schema migrations in order inside a single
// transaction.  Safe to run on every startup: applied versions are recorded
// in schema_migrations and skipped on later runs.  A migration failure
// leaves the schema untouched and must be treated as fatal by the caller.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY)"); err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var count int
		row := tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM schema_migrations WHERE version = ?", m.version)
		if err := row.Scan(&count); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		if count > 0 {
			continue
		}
		if err := m.apply(ctx, tx); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.version, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("record migration %s: %w", m.version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}
	return nil
}

// execSQL wraps a plain statement as a migration apply function.
func execSQL(stmt string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, stmt)
		return err
	}
}

// addColumnIfMissing returns an apply function that probes the table layout
// via PRAGMA table_info and runs the ALTER only when the column is absent.
// Fresh databases already get the column from the CREATE TABLE migration,
// so the probe keeps re-runs and new installs both safe.
func addColumnIfMissing(table, column, alter string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		has, err := hasColumn(ctx, tx, table, column)
		if err != nil {
			return err
		}
		if has {
			return nil
		}
		_, err = tx.ExecContext(ctx, alter)
		return err
	}
}

// hasColumn reports whether table currently declares the named column.
func hasColumn(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("table_info %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}
