package storage

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes. Every record is namespaced by the fingerprint of the
// Zobrist tables that produced its position key, so keys from differently
// seeded tables never collide.
const (
	prefixPerft    = "perft/"
	prefixPosition = "pos/"
)

// ErrNotFound is returned when no record exists for a lookup.
var ErrNotFound = errors.New("storage: not found")

// PerftEntry is a cached perft node count for one position and depth.
type PerftEntry struct {
	FEN      string        `json:"fen"`
	Depth    int           `json:"depth"`
	Nodes    uint64        `json:"nodes"`
	Elapsed  time.Duration `json:"elapsed"`
	Recorded time.Time     `json:"recorded"`
}

// Position is an indexed position, looked up by its key.
type Position struct {
	FEN      string    `json:"fen"`
	Recorded time.Time `json:"recorded"`
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

// Open opens (creating if needed) a store in dir. An empty dir selects
// DatabaseDir.
func Open(dir string) (*Store, error) {
	if dir == "" {
		var err error
		if dir, err = DatabaseDir(); err != nil {
			return nil, err
		}
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that lives only as long as the process.
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(fingerprint, key uint64, depth int) []byte {
	k := make([]byte, 0, len(prefixPerft)+17)
	k = append(k, prefixPerft...)
	k = binary.BigEndian.AppendUint64(k, fingerprint)
	k = binary.BigEndian.AppendUint64(k, key)
	return append(k, byte(depth))
}

func positionKey(fingerprint, key uint64) []byte {
	k := make([]byte, 0, len(prefixPosition)+16)
	k = append(k, prefixPosition...)
	k = binary.BigEndian.AppendUint64(k, fingerprint)
	return binary.BigEndian.AppendUint64(k, key)
}

func (s *Store) put(k []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(k, data)
	})
}

func (s *Store) get(k []byte, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(k)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, v)
		})
	})
}

// PutPerft records a perft result. Depth must fit in a byte.
func (s *Store) PutPerft(fingerprint, key uint64, e PerftEntry) error {
	if e.Depth < 0 || e.Depth > 255 {
		return fmt.Errorf("perft depth %d out of range", e.Depth)
	}
	if e.Recorded.IsZero() {
		e.Recorded = time.Now()
	}
	return s.put(perftKey(fingerprint, key, e.Depth), e)
}

// GetPerft returns the cached result for a position and depth, or
// ErrNotFound.
func (s *Store) GetPerft(fingerprint, key uint64, depth int) (PerftEntry, error) {
	var e PerftEntry
	if depth < 0 || depth > 255 {
		return e, ErrNotFound
	}
	err := s.get(perftKey(fingerprint, key, depth), &e)
	return e, err
}

// PutPosition indexes fen under its position key.
func (s *Store) PutPosition(fingerprint, key uint64, fen string) error {
	return s.put(positionKey(fingerprint, key), Position{FEN: fen, Recorded: time.Now()})
}

// LookupPosition returns the FEN indexed under a position key, or
// ErrNotFound.
func (s *Store) LookupPosition(fingerprint, key uint64) (Position, error) {
	var p Position
	err := s.get(positionKey(fingerprint, key), &p)
	return p, err
}

// CountPerft returns how many perft entries are stored for a fingerprint.
func (s *Store) CountPerft(fingerprint uint64) (int, error) {
	prefix := binary.BigEndian.AppendUint64([]byte(prefixPerft), fingerprint)
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}
