package storage

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/minishare/internal/board"
	"github.com/hailam/minishare/internal/share"
)

// Storage keys
const keyPrefix = "position/"

func positionKey(code string) []byte {
	return []byte(keyPrefix + code)
}

// BadgerStore wraps BadgerDB for persistent storage
type BadgerStore struct {
	db *badger.DB
}

// OpenBadger opens a BadgerDB store in dir. An empty dir keeps everything
// in memory.
func OpenBadger(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &BadgerStore{db: db}, nil
}

// Close closes the database
func (s *BadgerStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save stores b under its sharing code.
func (s *BadgerStore) Save(name string, b board.Board) (*Position, error) {
	pos, err := newPosition(name, b)
	if err != nil {
		return nil, err
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(pos.Code))
		if err == nil {
			// Already saved
			return item.Value(func(val []byte) error {
				return json.Unmarshal(val, pos)
			})
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		data, err := json.Marshal(pos)
		if err != nil {
			return err
		}
		return txn.Set(positionKey(pos.Code), data)
	})
	if err != nil {
		return nil, err
	}

	return pos, nil
}

// Get loads the position saved under code.
func (s *BadgerStore) Get(code string) (*Position, error) {
	if _, err := share.ValidateCode(code); err != nil {
		return nil, err
	}

	var pos Position
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(positionKey(code))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &pos)
		})
	})
	if err != nil {
		return nil, err
	}

	return &pos, nil
}

// List returns every saved position, oldest first.
func (s *BadgerStore) List() ([]*Position, error) {
	var positions []*Position

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			pos := &Position{}
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, pos)
			})
			if err != nil {
				return err
			}
			positions = append(positions, pos)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(positions, func(a, b *Position) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})

	return positions, nil
}

// Delete removes the position saved under code.
func (s *BadgerStore) Delete(code string) error {
	if _, err := share.ValidateCode(code); err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(positionKey(code))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return txn.Delete(positionKey(code))
	})
}
