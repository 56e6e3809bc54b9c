package store

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// dialect identifies the SQL flavour behind a database URL.
type dialect string

const (
	dialectSQLite   dialect = "sqlite"
	dialectPostgres dialect = "postgres"
)

// driverNames maps a dialect to its registered database/sql driver.
var driverNames = map[dialect]string{
	dialectSQLite:   "sqlite",
	dialectPostgres: "pgx",
}

// SQLStore implements Store on top of a sqlx connection pool.
type SQLStore struct {
	db      *sqlx.DB
	dialect dialect
}

// parseDatabaseURL resolves a database URL to a dialect and the DSN the
// driver expects.
//
//	sqlite://todo_app.db      -> sqlite, "todo_app.db"
//	sqlite://:memory:         -> sqlite, ":memory:"
//	file:todo.db?cache=shared -> sqlite, unchanged
//	todo.db                   -> sqlite, unchanged
//	postgres://user@host/db   -> postgres, unchanged
func parseDatabaseURL(databaseURL string) (dialect, string, error) {
	switch {
	case databaseURL == "":
		return "", "", fmt.Errorf("empty database url")
	case strings.HasPrefix(databaseURL, "sqlite://"):
		return dialectSQLite, strings.TrimPrefix(databaseURL, "sqlite://"), nil
	case strings.HasPrefix(databaseURL, "sqlite:"):
		return dialectSQLite, strings.TrimPrefix(databaseURL, "sqlite:"), nil
	case strings.HasPrefix(databaseURL, "file:"), databaseURL == ":memory:":
		return dialectSQLite, databaseURL, nil
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"):
		return dialectPostgres, databaseURL, nil
	}

	if u, err := url.Parse(databaseURL); err == nil && len(u.Scheme) > 1 {
		return "", "", fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
	// A bare path is a SQLite file.
	return dialectSQLite, databaseURL, nil
}

// Open connects to the database named by databaseURL, applies
// dialect-specific connection settings, and runs any pending schema
// migrations.
func Open(ctx context.Context, databaseURL string) (*SQLStore, error) {
	d, dsn, err := parseDatabaseURL(databaseURL)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Open(driverNames[d], dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s db: %w", d, err)
	}

	if d == dialectSQLite {
		// Each ":memory:" connection is a separate database.
		db.SetMaxOpenConns(1)

		// Enable WAL mode for better concurrent read performance.
		if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enabling WAL mode: %w", err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to %s db: %w", d, err)
	}

	s := &SQLStore{db: db, dialect: d}
	if err := s.runMigrations(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying connection pool.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// Ping checks that the database is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("pinging db: %w", err)
	}
	return nil
}

// DB exposes the pool for connection statistics.
func (s *SQLStore) DB() *sqlx.DB {
	return s.db
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLStore) runMigrations(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaVersionDDL); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var currentVersion int
	err := s.db.GetContext(ctx, &currentVersion,
		"SELECT COALESCE(MAX(version), 0) FROM schema_version")
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		stmt, ok := m.sql[s.dialect]
		if !ok {
			return fmt.Errorf("migration v%d has no %s variant", m.version, s.dialect)
		}
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}
