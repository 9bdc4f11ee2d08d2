package storage

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hailam/minishare/internal/board"
	"github.com/hailam/minishare/internal/share"
)

//go:embed schema.sql
var schemaSQL string

const sqliteFile = "positions.db"

// timeLayout is fixed-width so created_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps positions in a single SQLite table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates) positions.db in dir. An empty dir uses a
// private in-memory database.
func OpenSQLite(dir string) (*SQLiteStore, error) {
	dsn := ":memory:"
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		dsn = filepath.Join(dir, sqliteFile)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save stores b under its sharing code.
func (s *SQLiteStore) Save(name string, b board.Board) (*Position, error) {
	pos, err := newPosition(name, b)
	if err != nil {
		return nil, err
	}

	_, err = s.db.Exec(
		`INSERT INTO positions (code, id, name, placement, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (code) DO NOTHING`,
		pos.Code, pos.ID, pos.Name, pos.Placement, pos.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("insert position: %w", err)
	}

	return s.Get(pos.Code)
}

// Get loads the position saved under code.
func (s *SQLiteStore) Get(code string) (*Position, error) {
	if _, err := share.ValidateCode(code); err != nil {
		return nil, err
	}

	row := s.db.QueryRow(
		`SELECT code, id, name, placement, created_at FROM positions WHERE code = ?`, code)
	pos, err := scanPosition(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return pos, err
}

// List returns every saved position, oldest first.
func (s *SQLiteStore) List() ([]*Position, error) {
	rows, err := s.db.Query(
		`SELECT code, id, name, placement, created_at FROM positions ORDER BY created_at, code`)
	if err != nil {
		return nil, fmt.Errorf("query positions: %w", err)
	}
	defer rows.Close()

	var positions []*Position
	for rows.Next() {
		pos, err := scanPosition(rows)
		if err != nil {
			return nil, err
		}
		positions = append(positions, pos)
	}
	return positions, rows.Err()
}

// Delete removes the position saved under code.
func (s *SQLiteStore) Delete(code string) error {
	if _, err := share.ValidateCode(code); err != nil {
		return err
	}

	res, err := s.db.Exec(`DELETE FROM positions WHERE code = ?`, code)
	if err != nil {
		return fmt.Errorf("delete position: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPosition(row scanner) (*Position, error) {
	var pos Position
	var created string
	if err := row.Scan(&pos.Code, &pos.ID, &pos.Name, &pos.Placement, &created); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	pos.CreatedAt = t

	return &pos, nil
}
