// Package storage persists game state in a flat key/value store, one key per field.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrUnavailable is returned by backends that refuse reads or writes
var ErrUnavailable = errors.New("storage unavailable")

// ErrCorrupt is returned when a backing file cannot be decoded
var ErrCorrupt = errors.New("storage file corrupt")

// Backend is a string key/value store
type Backend interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryBackend keeps values in a map. FailWrites simulates a store that refuses writes,
// such as a browser in private mode.
type MemoryBackend struct {
	mu         sync.RWMutex
	values     map[string]string
	FailWrites bool
	FailReads  bool
}

// NewMemoryBackend returns an empty in-memory backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]string)}
}

// Get implements Backend
func (m *MemoryBackend) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads {
		return "", false, ErrUnavailable
	}
	v, ok := m.values[key]
	return v, ok, nil
}

// Set implements Backend
func (m *MemoryBackend) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fmt.Errorf("set %s: %w", key, ErrUnavailable)
	}
	m.values[key] = value
	return nil
}

// Remove implements Backend
func (m *MemoryBackend) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return fmt.Errorf("remove %s: %w", key, ErrUnavailable)
	}
	delete(m.values, key)
	return nil
}

// FileBackend stores every key in one JSON object on disk. The file is re-read on every Get so
// writes from another process are observed.
type FileBackend struct {
	path string
	mu   sync.Mutex
}

// NewFileBackend returns a backend persisting to path. The file is created on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path
func (f *FileBackend) Path() string {
	return f.path
}

func (f *FileBackend) load() (map[string]string, error) {
	values := make(map[string]string)
	b, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %v", f.path, ErrCorrupt, err)
	}
	return values, nil
}

func (f *FileBackend) save(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

// Get implements Backend
func (f *FileBackend) Get(key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// loadForWrite is load, except that a corrupt file is replaced rather than kept
func (f *FileBackend) loadForWrite() (map[string]string, error) {
	values, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		return make(map[string]string), nil
	}
	return values, err
}

// Set implements Backend
func (f *FileBackend) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.loadForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

// Remove implements Backend
func (f *FileBackend) Remove(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.loadForWrite()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}
