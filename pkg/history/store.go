// Package history keeps verification results in a local bbolt database so
// that past runs can be listed and inspected from the CLI.
package history

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/VaticanUK/com-pact/pkg/verification"
)

var (
	runsBucket  = []byte("runs")
	orderBucket = []byte("runs_by_time")
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("verification run not found")

// Store is a bbolt-backed history of verification runs.
type Store struct {
	db *bolt.DB
	mu sync.RWMutex
}

// Open opens or creates the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{runsBucket, orderBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// orderKey sorts runs by start time, then by run ID.
func orderKey(r *verification.Result) []byte {
	key := make([]byte, 8, 8+len(r.RunID))
	binary.BigEndian.PutUint64(key, uint64(r.StartedAt.UnixNano()))
	return append(key, r.RunID...)
}

// Save records a run. Saving a run ID again replaces the earlier record.
func (s *Store) Save(r *verification.Result) error {
	if r == nil || r.RunID == "" {
		return errors.New("history: run has no ID")
	}
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal run: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		order := tx.Bucket(orderBucket)

		if old := runs.Get([]byte(r.RunID)); old != nil {
			var prev verification.Result
			if err := json.Unmarshal(old, &prev); err == nil {
				if err := order.Delete(orderKey(&prev)); err != nil {
					return err
				}
			}
		}
		if err := runs.Put([]byte(r.RunID), data); err != nil {
			return err
		}
		return order.Put(orderKey(r), []byte(r.RunID))
	})
}

// Get returns the run with the given ID.
func (s *Store) Get(id string) (*verification.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result verification.Result
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(runsBucket).Get([]byte(id))
		if data == nil {
			return ErrNotFound
		}
		return json.Unmarshal(data, &result)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Filter narrows List.
type Filter struct {
	Consumer string
	Provider string
	// Limit caps the number of runs returned. Zero means no cap.
	Limit int
}

func (f Filter) matches(r *verification.Result) bool {
	if f.Consumer != "" && f.Consumer != r.Consumer {
		return false
	}
	if f.Provider != "" && f.Provider != r.Provider {
		return false
	}
	return true
}

// List returns the runs matching f, newest first.
func (s *Store) List(f Filter) ([]*verification.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []*verification.Result
	err := s.db.View(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		c := tx.Bucket(orderBucket).Cursor()
		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			data := runs.Get(id)
			if data == nil {
				continue
			}
			var r verification.Result
			if err := json.Unmarshal(data, &r); err != nil {
				return fmt.Errorf("unmarshal run %s: %w", string(id), err)
			}
			if !f.matches(&r) {
				continue
			}
			results = append(results, &r)
			if f.Limit > 0 && len(results) >= f.Limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Prune deletes all but the newest keep runs and returns how many were
// removed.
func (s *Store) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	err := s.db.Update(func(tx *bolt.Tx) error {
		runs := tx.Bucket(runsBucket)
		order := tx.Bucket(orderBucket)

		var stale [][]byte
		seen := 0
		c := order.Cursor()
		for k, _ := c.Last(); k != nil; k, _ = c.Prev() {
			seen++
			if seen > keep {
				stale = append(stale, append([]byte(nil), k...))
			}
		}
		for _, k := range stale {
			id := order.Get(k)
			if err := runs.Delete(id); err != nil {
				return err
			}
			if err := order.Delete(k); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	return removed, err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
