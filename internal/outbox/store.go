// Murmur - Social Feed and Threaded Discussion Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/murmur

package outbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/murmur/internal/events"
	"github.com/tomtom215/murmur/internal/logging"
	"github.com/tomtom215/murmur/internal/metrics"
)

// ErrClosed is returned by every operation after Close.
var ErrClosed = errors.New("outbox is closed")

const prefixPending = "pending:"

// Config configures the badger store.
type Config struct {
	// Path is the badger directory. Ignored when InMemory is set.
	Path string

	InMemory bool

	// SyncWrites fsyncs every write.
	SyncWrites bool
}

// Entry is one event waiting to be published.
type Entry struct {
	Key       string       `json:"-"`
	Event     events.Event `json:"event"`
	CreatedAt time.Time    `json:"created_at"`
	Attempts  int          `json:"attempts"`
	LastError string       `json:"last_error,omitempty"`
}

// Store is a badger-backed outbox.
type Store struct {
	db      *badger.DB
	mu      sync.RWMutex
	closed  bool
	pending atomic.Int64
	seq     atomic.Uint64
	now     func() time.Time
}

// Open opens or creates the outbox and counts what is already pending.
func Open(cfg Config) (*Store, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, fmt.Errorf("outbox path is required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.SyncWrites = cfg.SyncWrites
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	n, err := s.countPending()
	if err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, err
	}
	s.pending.Store(int64(n))
	metrics.SetOutboxPending(n)

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Int("pending", n).
		Msg("outbox opened")
	return s, nil
}

// Emit implements events.Emitter by persisting ev as a pending entry.
func (s *Store) Emit(_ context.Context, ev events.Event) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	entry := Entry{Event: ev, CreatedAt: s.now().UTC()}
	data, err := json.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("marshal outbox entry: %w", err)
	}

	// Timestamp then sequence keeps badger's key order equal to write order.
	key := fmt.Sprintf("%s%020d:%010d:%s", prefixPending, entry.CreatedAt.UnixNano(), s.seq.Add(1), ev.ID)
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	}); err != nil {
		return fmt.Errorf("write outbox entry: %w", err)
	}

	metrics.SetOutboxPending(int(s.pending.Add(1)))
	return nil
}

// Pending returns up to limit entries, oldest first. limit <= 0 returns all.
func (s *Store) Pending(_ context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	var entries []*Entry
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixPending)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			item := it.Item()
			entry := &Entry{Key: string(item.KeyCopy(nil))}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, entry)
			}); err != nil {
				return fmt.Errorf("decode outbox entry %s: %w", entry.Key, err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Confirm removes a published (or abandoned) entry.
func (s *Store) Confirm(_ context.Context, key string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		removed = true
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("confirm outbox entry %s: %w", key, err)
	}
	if removed {
		metrics.SetOutboxPending(int(s.pending.Add(-1)))
	}
	return nil
}

// RecordFailure bumps the attempt count of the entry and stores cause.
func (s *Store) RecordFailure(_ context.Context, entry *Entry, cause error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	entry.Attempts++
	if cause != nil {
		entry.LastError = cause.Error()
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal outbox entry: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(entry.Key), data)
	})
}

// Len returns the number of pending entries.
func (s *Store) Len() int {
	return int(s.pending.Load())
}

func (s *Store) countPending() (int, error) {
	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefixPending)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("count outbox entries: %w", err)
	}
	return n, nil
}

// Close flushes and closes badger.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
