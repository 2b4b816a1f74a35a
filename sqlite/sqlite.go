// Package sqlite provides SQLite-based storage implementations for kitchensage services.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait up to 5 seconds on lock contention instead of failing immediately.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Cascading deletes of ingredients, directions and plan entries rely on this.
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// queryer is satisfied by both *DB and *sql.Tx so helpers can run inside
// or outside a transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS recipes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			rating INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL DEFAULT '',
			prep_time TEXT NOT NULL DEFAULT '',
			cook_time TEXT NOT NULL DEFAULT '',
			servings TEXT NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			total_minutes INTEGER,
			content_hash TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_recipes_name ON recipes(name);
		CREATE INDEX IF NOT EXISTS idx_recipes_content_hash ON recipes(content_hash);

		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS recipe_categories (
			recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			PRIMARY KEY (recipe_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_recipe_categories_category_id ON recipe_categories(category_id);

		CREATE TABLE IF NOT EXISTS ingredients (
			recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			is_header INTEGER NOT NULL DEFAULT 0,
			quantity TEXT NOT NULL DEFAULT '',
			unit TEXT NOT NULL DEFAULT '',
			name TEXT NOT NULL,
			PRIMARY KEY (recipe_id, position)
		);

		CREATE TABLE IF NOT EXISTS directions (
			recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			step INTEGER NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (recipe_id, step)
		);

		CREATE TABLE IF NOT EXISTS meal_plans (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS meal_plan_recipes (
			meal_plan_id TEXT NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
			recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			PRIMARY KEY (meal_plan_id, position)
		);

		CREATE INDEX IF NOT EXISTS idx_meal_plan_recipes_recipe_id ON meal_plan_recipes(recipe_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
