package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:deedtrainer.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/deedtrainer?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'trainee',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS deeds (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  filename TEXT NOT NULL,
  file_key TEXT NOT NULL DEFAULT '',
  document_type TEXT NOT NULL DEFAULT '',
  grantor TEXT NOT NULL DEFAULT '',
  grantee TEXT NOT NULL DEFAULT '',
  recording_date TEXT NOT NULL DEFAULT '',
  dated_date TEXT NOT NULL DEFAULT '',
  recording_book TEXT NOT NULL DEFAULT '',
  recording_page TEXT NOT NULL DEFAULT '',
  instrument_number TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  deed_id INTEGER NOT NULL REFERENCES deeds(id) ON DELETE CASCADE,
  grantor TEXT NOT NULL DEFAULT '',
  grantee TEXT NOT NULL DEFAULT '',
  recording_date TEXT NOT NULL DEFAULT '',
  dated_date TEXT NOT NULL DEFAULT '',
  document_type TEXT NOT NULL DEFAULT '',
  total_score INTEGER NOT NULL DEFAULT 0,
  time_taken_seconds INTEGER NOT NULL DEFAULT 0,
  feedback TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, deed_id);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'trainee',
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS deeds (
  id BIGSERIAL PRIMARY KEY,
  filename TEXT NOT NULL,
  file_key TEXT NOT NULL DEFAULT '',
  document_type TEXT NOT NULL DEFAULT '',
  grantor TEXT NOT NULL DEFAULT '',
  grantee TEXT NOT NULL DEFAULT '',
  recording_date TEXT NOT NULL DEFAULT '',
  dated_date TEXT NOT NULL DEFAULT '',
  recording_book TEXT NOT NULL DEFAULT '',
  recording_page TEXT NOT NULL DEFAULT '',
  instrument_number TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
  deed_id BIGINT NOT NULL REFERENCES deeds(id) ON DELETE CASCADE,
  grantor TEXT NOT NULL DEFAULT '',
  grantee TEXT NOT NULL DEFAULT '',
  recording_date TEXT NOT NULL DEFAULT '',
  dated_date TEXT NOT NULL DEFAULT '',
  document_type TEXT NOT NULL DEFAULT '',
  total_score INTEGER NOT NULL DEFAULT 0,
  time_taken_seconds INTEGER NOT NULL DEFAULT 0,
  feedback TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_user ON attempts(user_id, deed_id);
`
