package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Storage keys
const (
	keyOptions = "options:engine"
	keyStats   = "stats:search"
)

// ErrNotFound is returned when a key has never been written.
var ErrNotFound = errors.New("storage: not found")

// EngineOptions are the engine settings persisted between runs.
type EngineOptions struct {
	HashMB       int       `json:"hash_mb"`
	DefaultDepth int       `json:"default_depth"`
	MoveTimeMs   int       `json:"move_time_ms"`
	SavedAt      time.Time `json:"saved_at"`
}

// DefaultOptions returns the options used when nothing has been saved.
func DefaultOptions() *EngineOptions {
	return &EngineOptions{
		HashMB:       64,
		DefaultDepth: 6,
	}
}

// MoveTime returns the per-move budget as a duration.
func (o *EngineOptions) MoveTime() time.Duration {
	return time.Duration(o.MoveTimeMs) * time.Millisecond
}

// SearchStats accumulates over every search the engine has run.
type SearchStats struct {
	Searches     int       `json:"searches"`
	TotalNodes   uint64    `json:"total_nodes"`
	DeepestDepth int       `json:"deepest_depth"`
	LastSearch   time.Time `json:"last_search"`
}

// AverageNodes returns nodes per search, 0 before the first search.
func (s *SearchStats) AverageNodes() uint64 {
	if s.Searches == 0 {
		return 0
	}
	return s.TotalNodes / uint64(s.Searches)
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// Open opens or creates the database in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a database that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
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

func (s *Storage) get(key string, v any) error {
	return s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
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

func (s *Storage) put(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
}

// SaveOptions persists engine options.
func (s *Storage) SaveOptions(opts *EngineOptions) error {
	opts.SavedAt = time.Now()
	if err := s.put(keyOptions, opts); err != nil {
		return fmt.Errorf("saving options: %w", err)
	}
	return nil
}

// LoadOptions returns the saved options, or ErrNotFound with the defaults
// if none were ever saved.
func (s *Storage) LoadOptions() (*EngineOptions, error) {
	opts := DefaultOptions()
	if err := s.get(keyOptions, opts); err != nil {
		if errors.Is(err, ErrNotFound) {
			return opts, err
		}
		return opts, fmt.Errorf("loading options: %w", err)
	}
	return opts, nil
}

// LoadStats returns the cumulative search statistics, zero if none.
func (s *Storage) LoadStats() (*SearchStats, error) {
	stats := &SearchStats{}
	if err := s.get(keyStats, stats); err != nil && !errors.Is(err, ErrNotFound) {
		return stats, fmt.Errorf("loading stats: %w", err)
	}
	return stats, nil
}

// RecordSearch adds one finished search to the statistics.
func (s *Storage) RecordSearch(depth int, nodes uint64) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Searches++
	stats.TotalNodes += nodes
	stats.DeepestDepth = max(stats.DeepestDepth, depth)
	stats.LastSearch = time.Now()

	if err := s.put(keyStats, stats); err != nil {
		return fmt.Errorf("saving stats: %w", err)
	}
	return nil
}
