// Package history keeps the calculator's list of completed calculations.
package history

import (
	"errors"
	"log/slog"

	"github.com/drake/tally/internal/logging"
)

// Store is the ordered history list, newest first.
// Like the calculator engine it is owned by the UI event loop.
type Store struct {
	storage Storage
	entries []string
	limit   int
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLimit caps the number of entries kept; the oldest are dropped.
// Zero means unlimited.
func WithLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger used for absorbed storage errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty store backed by storage.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		entries: make([]string, 0, 32),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record inserts entry at the front and persists the full list.
func (s *Store) Record(entry string) error {
	s.entries = append(s.entries, "")
	copy(s.entries[1:], s.entries)
	s.entries[0] = entry
	s.trim()
	return s.Persist()
}

// Persist writes the in-memory list to storage.
func (s *Store) Persist() error {
	if err := s.storage.Save(s.entries); err != nil {
		logging.LogError(s.logger, "history persist failed", err,
			slog.Int("entries", len(s.entries)))
		return err
	}
	return nil
}

// Restore appends the persisted entries, in stored order, to the list.
// A missing or malformed list restores nothing and is not an error.
func (s *Store) Restore() error {
	entries, err := s.storage.Load()
	if errors.Is(err, ErrMalformedHistory) {
		logging.LogError(s.logger, "ignoring malformed history", err)
		return nil
	}
	if err != nil {
		logging.LogError(s.logger, "history restore failed", err)
		return err
	}

	s.entries = append(s.entries, entries...)
	s.trim()
	return nil
}

// Clear empties the list and removes the persisted copy.
func (s *Store) Clear() error {
	s.entries = s.entries[:0]
	if err := s.storage.Clear(); err != nil {
		logging.LogError(s.logger, "history clear failed", err)
		return err
	}
	return nil
}

// Entries returns a copy of the list, newest first.
func (s *Store) Entries() []string {
	result := make([]string, len(s.entries))
	copy(result, s.entries)
	return result
}

// Len returns the number of entries.
func (s *Store) Len() int {
	return len(s.entries)
}

func (s *Store) trim() {
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
}
