// Package storemanager opens the relational store from a DSN, vends the
// repositories bound to it, and exposes schema administration (embedded
// goose migrations, table listing, table drop).
package storemanager

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/avolkov/authdb/internal/dbx"
	"github.com/avolkov/authdb/internal/migrations"
	"github.com/avolkov/authdb/internal/repositories/sessions"
	"github.com/avolkov/authdb/internal/repositories/users"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavor the repositories speak.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// RepositoryManager vends repositories bound to a DBTX, so callers can run
// them against the plain handle or inside a transaction.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
}

// Manager owns the *sql.DB handle and vends repositories bound to it.
// Each logical operation goes through the store's own single-statement
// atomicity; the Manager adds no locking of its own.
type Manager struct {
	db      *sql.DB
	dialect Dialect
}

// DialectFor derives the dialect from the DSN scheme: postgres:// and
// postgresql:// select PostgreSQL, anything else is treated as a SQLite
// path or URI.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to the store described by dsn. For SQLite the foreign_keys
// pragma is switched on so that session rows cascade-delete with their
// owning user.
func Open(ctx context.Context, dsn string) (*Manager, error) {
	dialect := DialectFor(dsn)

	driver := "sqlite"
	if dialect == DialectPostgres {
		driver = "pgx"
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db connect error: %w", err)
	}

	if dialect == DialectSQLite {
		// the pragma is per-connection, so the pool must stay on the one
		// connection it was applied to
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("db error: %w", err)
		}
	}

	return &Manager{db: db, dialect: dialect}, nil
}

// DB exposes the underlying handle for transaction composition via dbx.WithTx.
func (m *Manager) DB() *sql.DB { return m.db }

// Dialect reports the dialect the manager was opened with.
func (m *Manager) Dialect() Dialect { return m.dialect }

// Close releases the database handle.
func (m *Manager) Close() error { return m.db.Close() }

// Users returns a users.Repository bound to the provided DBTX.
func (m *Manager) Users(db dbx.DBTX) users.Repository {
	if m.dialect == DialectPostgres {
		return users.NewPostgresRepository(db)
	}
	return users.NewSQLiteRepository(db)
}

// Sessions returns a sessions.Repository bound to the provided DBTX.
func (m *Manager) Sessions(db dbx.DBTX) sessions.Repository {
	if m.dialect == DialectPostgres {
		return sessions.NewPostgresRepository(db)
	}
	return sessions.NewSQLiteRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations for the active
// dialect and applies them. Safe to run repeatedly.
func (m *Manager) RunMigrations(ctx context.Context) error {
	if m.dialect == DialectPostgres {
		goose.SetBaseFS(migrations.Postgres)
		if err := goose.SetDialect("pgx"); err != nil {
			return err
		}
		return gooseUpContext(ctx, m.db, "postgres")
	}

	goose.SetBaseFS(migrations.SQLite)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return gooseUpContext(ctx, m.db, "sqlite")
}

// Tables lists the user-visible table names in the store.
func (m *Manager) Tables(ctx context.Context) ([]string, error) {
	query := `SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`
	if m.dialect == DialectPostgres {
		query = `SELECT tablename FROM pg_catalog.pg_tables WHERE schemaname = 'public' ORDER BY tablename`
	}

	rows, err := m.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// identPattern restricts Drop to plain SQL identifiers; table names cannot
// be bound as statement parameters.
var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Drop removes the named table if it exists.
func (m *Manager) Drop(ctx context.Context, table string) error {
	if !identPattern.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	if _, err := m.db.ExecContext(ctx, fmt.Sprintf(`DROP TABLE IF EXISTS %s`, table)); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
