package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// SQLiteBackend keeps persisted tables in a local sqlite database. Default
// backend for single-machine deployments.
type SQLiteBackend struct {
	db *sql.DB
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLiteBackend, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// sqlite works best over a single connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	backend := &SQLiteBackend{db: db}

	if err := backend.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return backend, nil
}

func (b *SQLiteBackend) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}

	if _, err := b.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

// Table returns a handle for one named persisted table.
func (b *SQLiteBackend) Table(name string) TableStore {
	return &sqliteTable{db: b.db, name: name}
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	if b.db != nil {
		return b.db.Close()
	}
	return nil
}

type sqliteTable struct {
	db   *sql.DB
	name string
}

func (t *sqliteTable) ReadAllRows() ([][]string, error) {
	rows, err := t.db.Query(
		"SELECT cells FROM sheet_rows WHERE sheet = ? ORDER BY row_no", t.name)
	if err != nil {
		return nil, &TransportError{Op: "read", Table: t.name, Err: err}
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		var encoded string
		if err := rows.Scan(&encoded); err != nil {
			return nil, &TransportError{Op: "read", Table: t.name, Err: err}
		}
		var cells []string
		if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
			return nil, &TransportError{Op: "read", Table: t.name, Err: err}
		}
		out = append(out, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, &TransportError{Op: "read", Table: t.name, Err: err}
	}

	return out, nil
}

func (t *sqliteTable) ReplaceAllRows(newRows [][]string) error {
	tx, err := t.db.Begin()
	if err != nil {
		return &TransportError{Op: "replace", Table: t.name, Err: err}
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM sheet_rows WHERE sheet = ?", t.name); err != nil {
		return &TransportError{Op: "replace", Table: t.name, Err: err}
	}

	stmt, err := tx.Prepare(
		"INSERT INTO sheet_rows (sheet, row_no, cells) VALUES (?, ?, ?)")
	if err != nil {
		return &TransportError{Op: "replace", Table: t.name, Err: err}
	}
	defer stmt.Close()

	for i, cells := range newRows {
		encoded, err := json.Marshal(cells)
		if err != nil {
			return &TransportError{Op: "replace", Table: t.name, Err: err}
		}
		if _, err := stmt.Exec(t.name, i, string(encoded)); err != nil {
			return &TransportError{Op: "replace", Table: t.name, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &TransportError{Op: "replace", Table: t.name, Err: err}
	}

	return nil
}
