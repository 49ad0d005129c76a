// Reelmatch - Multi-Signal Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package querylog

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/models"
)

const (
	badgerEntryPrefix = "rec:"
	badgerSequenceKey = "seq:recommendations"
	badgerSeqLease    = 64
)

// BadgerStore keeps the query log in an embedded BadgerDB.
// Keys are the entry prefix followed by a big-endian id, so iteration order
// is insertion order.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time

	mu     sync.RWMutex
	closed bool
}

// NewBadgerStore opens (creating if needed) a BadgerDB query log in dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("badger: directory is required")
	}

	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db for query log: %w", err)
	}

	seq, err := db.GetSequence([]byte(badgerSequenceKey), badgerSeqLease)
	if err != nil {
		closeQuietly(db)
		return nil, fmt.Errorf("badger sequence: %w", err)
	}

	return &BadgerStore{db: db, seq: seq, now: time.Now}, nil
}

func (s *BadgerStore) Backend() string { return BackendBadger }

// Record writes one entry in its own update transaction.
func (s *BadgerStore) Record(ctx context.Context, entry models.QueryLogEntry) (models.QueryLogEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.QueryLogEntry{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return models.QueryLogEntry{}, ErrClosed
	}

	next, err := s.seq.Next()
	if err != nil {
		return models.QueryLogEntry{}, fmt.Errorf("next id: %w", err)
	}
	// Sequences start at zero; ids start at one like the SQL backends.
	entry.ID = int64(next) + 1
	entry.CreatedAt = s.now().UTC().Truncate(time.Microsecond)

	data, err := json.Marshal(entry)
	if err != nil {
		return models.QueryLogEntry{}, fmt.Errorf("encode entry: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(badgerKey(entry.ID), data)
	})
	if err != nil {
		return models.QueryLogEntry{}, fmt.Errorf("store entry: %w", err)
	}
	return entry, nil
}

func (s *BadgerStore) List(ctx context.Context, opts ListOptions) ([]models.QueryLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}

	var entries []models.QueryLogEntry
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Reverse = opts.NewestFirst
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		prefix := []byte(badgerEntryPrefix)
		start := prefix
		if opts.NewestFirst {
			start = append([]byte(badgerEntryPrefix), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		}

		skipped := 0
		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if skipped < opts.Offset {
				skipped++
				continue
			}

			var e models.QueryLogEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("decode entry %x: %w", it.Item().Key(), err)
			}
			entries = append(entries, e)

			if opts.Limit > 0 && len(entries) >= opts.Limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *BadgerStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return 0, ErrClosed
	}

	n := 0
	err := s.db.View(func(txn *badger.Txn) error {
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.PrefetchValues = false
		it := txn.NewIterator(iterOpts)
		defer it.Close()

		prefix := []byte(badgerEntryPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			n++
		}
		return nil
	})
	return n, err
}

// Close releases the id lease and closes the database.
func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	relErr := s.seq.Release()
	if err := s.db.Close(); err != nil {
		return err
	}
	return relErr
}

func badgerKey(id int64) []byte {
	key := make([]byte, len(badgerEntryPrefix)+8)
	copy(key, badgerEntryPrefix)
	binary.BigEndian.PutUint64(key[len(badgerEntryPrefix):], uint64(id))
	return key
}
