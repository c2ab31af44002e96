package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrEmptyPath is returned when a File store is created without a path.
var ErrEmptyPath = errors.New("prefs: file path cannot be empty")

// File is a Store backed by a single JSON file. The whole file is rewritten
// on every Set via a temp-file rename, so a crash mid-write never leaves a
// truncated preferences file behind.
type File struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
}

// NewFile creates a file-backed store at path. A missing file is treated as
// an empty store; parent directories are created on first write. An existing
// but unreadable or malformed file is an error, so the caller can decide
// whether to start fresh.
func NewFile(path string) (*File, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	f := &File{
		path:   path,
		values: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return f, nil
		}
		return nil, fmt.Errorf("prefs: reading %q: %w", path, err)
	}

	if err := json.Unmarshal(data, &f.values); err != nil {
		return nil, fmt.Errorf("prefs: parsing %q: %w", path, err)
	}

	return f, nil
}

func (f *File) Get(key string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.values[key]
	return v, ok
}

func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.values[key]
	f.values[key] = value

	if err := f.flush(); err != nil {
		// Keep memory and disk consistent on failure.
		if had {
			f.values[key] = prev
		} else {
			delete(f.values, key)
		}
		return err
	}

	return nil
}

func (f *File) flush() error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("prefs: creating directory for %q: %w", f.path, err)
	}

	data, err := json.MarshalIndent(f.values, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: encoding preferences: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("prefs: writing %q: %w", tmp, err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("prefs: replacing %q: %w", f.path, err)
	}

	return nil
}
