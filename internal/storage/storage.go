package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/benbeisheim/chessrules-backend/internal/model"
	"github.com/dgraph-io/badger/v4"
)

const keyGamePrefix = "game/"

var ErrGameNotFound = errors.New("game record not found")

// storedGame is the value written for each game key
type storedGame struct {
	Record    model.GameRecord `json:"record"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens (or creates) the database in dir. With inMemory set, dir is
// ignored and nothing touches disk.
func Open(dir string, inMemory bool) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(id string) []byte {
	return []byte(keyGamePrefix + id)
}

// SaveGame writes the record, replacing any earlier one with the same id.
func (s *Storage) SaveGame(record model.GameRecord) error {
	data, err := json.Marshal(storedGame{Record: record, UpdatedAt: time.Now()})
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(record.ID), data)
	})
}

// LoadGame returns the stored record for id.
func (s *Storage) LoadGame(id string) (model.GameRecord, error) {
	var stored storedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrGameNotFound, id)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})

	return stored.Record, err
}

// DeleteGame removes a stored game. Deleting a missing game is not an error.
func (s *Storage) DeleteGame(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(id))
	})
}

// ListGameIDs returns the ids of every stored game in key order.
func (s *Storage) ListGameIDs() ([]string, error) {
	ids := make([]string, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyGamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			ids = append(ids, string(key[len(prefix):]))
		}
		return nil
	})

	return ids, err
}
