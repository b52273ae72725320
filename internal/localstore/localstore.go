// Package localstore persists the full user-state document to an embedded
// BadgerDB key-value store. It backs the local-fallback operating mode and
// the fully local session variant.
//
// The contract is deliberately small: one JSON document under a fixed key,
// replaced wholesale on every write. A missing or non-parseable value reads
// as absent so a corrupted record never blocks startup.
package localstore

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// StorageKey is the fixed slot for the user-state document.
const StorageKey = "soulquest-user-data"

type Store struct {
	db *badger.DB
}

// Open opens a persistent store at the given directory.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store with no disk persistence. Used in tests.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory local store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads the stored document. It returns (nil, nil) when no document
// exists and when the stored value does not parse: a corrupt record is
// treated as a first run, never as a read failure.
func (s *Store) Load() (*Document, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(StorageKey))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read local record: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("local record is corrupt, treating as absent", "error", err)
		return nil, nil
	}
	return &doc, nil
}

// Save replaces the stored document.
func (s *Store) Save(doc *Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode local record: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(StorageKey), raw)
	})
	if err != nil {
		return fmt.Errorf("failed to write local record: %w", err)
	}
	return nil
}

// putRaw writes arbitrary bytes under the storage key. Test hook for
// exercising the corrupt-record path.
func (s *Store) putRaw(raw []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(StorageKey), raw)
	})
}
