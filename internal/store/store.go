// Package store persists the rating table and round history as JSON records
// under a data directory. The contract is deliberately loose: a missing or
// corrupt record loads as its empty value so the feature degrades to
// "starting fresh" instead of becoming unusable, and a failed save is the
// caller's warning, never a crash in the rating path.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/snapllm/arena/internal/models"
)

const (
	ratingsRecord = "ratings"
	historyRecord = "history"
)

// Store reads and writes named JSON records in a single directory.
// Concurrent writers from separate processes are last-write-wins; no
// locking or merge protocol is attempted.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates a store rooted at dir. The directory is created lazily on the
// first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the data directory backing this store.
func (s *Store) Dir() string {
	return s.dir
}

// LoadRatings returns the persisted rating table. A missing or unreadable
// record yields an empty table.
func (s *Store) LoadRatings() models.RatingTable {
	table := models.RatingTable{}
	// A failed decode may leave table partially filled; discard it so a
	// corrupt record never leaks half-parsed ratings back into the store.
	if !s.readRecord(ratingsRecord, &table) || table == nil {
		return models.RatingTable{}
	}
	return table
}

// SaveRatings persists the rating table, replacing the previous record.
func (s *Store) SaveRatings(table models.RatingTable) error {
	return s.writeRecord(ratingsRecord, table)
}

// LoadHistory returns the persisted round history in append order. A missing
// or unreadable record yields an empty history.
func (s *Store) LoadHistory() []models.ComparisonRound {
	var history []models.ComparisonRound
	if !s.readRecord(historyRecord, &history) {
		return nil
	}
	return history
}

// AppendRound appends a decided round to the history record. Rounds are
// immutable once appended; the history is never reordered or rewritten.
func (s *Store) AppendRound(round models.ComparisonRound) error {
	history := s.LoadHistory()
	return s.writeRecord(historyRecord, append(history, round))
}

// Reset deletes the selected records. Missing records are not an error.
func (s *Store) Reset(ratings, history bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []string
	if ratings {
		records = append(records, ratingsRecord)
	}
	if history {
		records = append(records, historyRecord)
	}

	for _, record := range records {
		if err := os.Remove(s.recordPath(record)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s record: %w", record, err)
		}
	}
	return nil
}

// readRecord loads a record into v, reporting whether it existed and parsed.
// On a false return v may hold a partial decode and must be discarded.
func (s *Store) readRecord(record string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.recordPath(record))
	if err != nil {
		// Missing record: start fresh, silently.
		return false
	}

	if err := json.Unmarshal(data, v); err != nil {
		slog.Warn("persisted record is corrupt, starting fresh",
			"record", record, "path", s.recordPath(record), "error", err)
		return false
	}
	return true
}

func (s *Store) writeRecord(record string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s record: %w", record, err)
	}

	if err := os.WriteFile(s.recordPath(record), data, 0644); err != nil {
		return fmt.Errorf("writing %s record: %w", record, err)
	}
	return nil
}

func (s *Store) recordPath(record string) string {
	return filepath.Join(s.dir, record+".json")
}
