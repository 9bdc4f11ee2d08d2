// Package storage keeps named positions keyed by their sharing code.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hailam/minishare/internal/board"
	"github.com/hailam/minishare/internal/share"
)

// ErrNotFound is returned when no position is stored under a code.
var ErrNotFound = errors.New("position not found")

// Position is a saved, named board.
type Position struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Placement string    `json:"placement"`
	CreatedAt time.Time `json:"created_at"`
}

// Board decodes the stored code back into a board.
func (p *Position) Board() (board.Board, error) {
	return share.Decode(p.Code)
}

// Store persists positions. Saving a board that is already stored returns
// the existing entry unchanged, since equal boards always share a code.
type Store interface {
	Save(name string, b board.Board) (*Position, error)
	Get(code string) (*Position, error)
	List() ([]*Position, error)
	Delete(code string) error
	Close() error
}

// Storage backends.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Open opens the store for backend (BackendBadger or BackendSQLite) in dir.
// An empty dir selects the platform data directory.
func Open(backend, dir string) (Store, error) {
	if dir == "" {
		var err error
		dir, err = GetDatabaseDir(backend)
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
	}

	switch backend {
	case BackendBadger:
		return OpenBadger(dir)
	case BackendSQLite:
		return OpenSQLite(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// newPosition encodes b and stamps a new entry.
func newPosition(name string, b board.Board) (*Position, error) {
	code, err := share.EncodeBoard(b)
	if err != nil {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate id: %w", err)
	}

	if name == "" {
		name = code
	}

	return &Position{
		ID:        id.String(),
		Code:      code,
		Name:      name,
		Placement: b.Placement(),
		CreatedAt: time.Now().UTC(),
	}, nil
}
