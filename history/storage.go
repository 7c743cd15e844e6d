package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/drake/tally/kv"
)

// DefaultKey is the key the history list is stored under.
const DefaultKey = "calculatorHistory"

// ErrMalformedHistory is returned by Load when the stored value is not a
// JSON array of strings.
var ErrMalformedHistory = errors.New("history: malformed persisted history")

// Storage persists the ordered history list.
type Storage interface {
	Load() ([]string, error)
	Save(entries []string) error
	Clear() error
}

// KVStorage keeps the list as one JSON array under a fixed key.
type KVStorage struct {
	store kv.Store
	key   string
}

var _ Storage = (*KVStorage)(nil)

// NewKVStorage wraps store. An empty key means DefaultKey.
func NewKVStorage(store kv.Store, key string) *KVStorage {
	if key == "" {
		key = DefaultKey
	}
	return &KVStorage{store: store, key: key}
}

// Load returns nil for an absent key or a JSON null.
func (s *KVStorage) Load() ([]string, error) {
	raw, ok, err := s.store.Get(s.key)
	if errors.Is(err, kv.ErrCorrupt) {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", s.key, err)
	}
	if !ok {
		return nil, nil
	}

	var entries []string
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHistory, err)
	}
	return entries, nil
}

func (s *KVStorage) Save(entries []string) error {
	if entries == nil {
		entries = []string{}
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := s.store.Set(s.key, string(raw)); err != nil {
		return fmt.Errorf("save %s: %w", s.key, err)
	}
	return nil
}

func (s *KVStorage) Clear() error {
	if err := s.store.Remove(s.key); err != nil {
		return fmt.Errorf("remove %s: %w", s.key, err)
	}
	return nil
}
