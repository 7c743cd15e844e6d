// Package kv provides the string key-value stores backing persisted state.
package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrCorrupt is returned when a File's contents are not a JSON object of
// strings. Writes replace a corrupt file.
var ErrCorrupt = errors.New("kv: corrupt store file")

// Store is a string key-value store with local-storage semantics:
// Get reports absence with ok=false, Remove of a missing key is not an error.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Remove(key string) error
}

// Compile-time checks
var (
	_ Store = (*Memory)(nil)
	_ Store = (*File)(nil)
)

// Memory is an in-process Store.
type Memory struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// File is a Store kept as a single JSON object on disk.
// Every write rewrites the whole file via a temp file and rename.
type File struct {
	path string
	mu   sync.Mutex
}

// NewFile returns a store backed by path. The file is created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

func (f *File) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[key]
	return v, ok, nil
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadForWrite()
	if err != nil {
		return err
	}
	data[key] = value
	return f.save(data)
}

func (f *File) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		return f.save(make(map[string]string))
	}
	if err != nil {
		return err
	}
	if _, ok := data[key]; !ok {
		return nil
	}
	delete(data, key)
	return f.save(data)
}

// loadForWrite is load with a corrupt file treated as empty.
func (f *File) loadForWrite() (map[string]string, error) {
	data, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		return make(map[string]string), nil
	}
	return data, err
}

func (f *File) load() (map[string]string, error) {
	data := make(map[string]string)

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	if len(raw) == 0 {
		return data, nil
	}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrCorrupt, f.path, err)
	}
	return data, nil
}

func (f *File) save(data map[string]string) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".tally-kv-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
