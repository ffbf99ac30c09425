package cache

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pyvenv/ape/internal/venv"
)

// FormatVersion is the current cache document version.
const FormatVersion = 1

var (
	// ErrRead means the cache file is missing or unreadable.
	ErrRead = errors.New("reading cache")
	// ErrFormat means the cache file exists but does not parse.
	ErrFormat = errors.New("parsing cache")
	// ErrWrite means the cache could not be persisted.
	ErrWrite = errors.New("writing cache")
)

// File is the on-disk cache document.
type File struct {
	Version      int                `json:"version"`
	ScanID       string             `json:"scan_id,omitempty"`
	ScannedAt    time.Time          `json:"scanned_at"`
	Root         string             `json:"root,omitempty"`
	Environments []venv.Environment `json:"environments"`
}

// Store reads and writes the scan cache. It holds no lock: concurrent
// processes writing the same file race, and the last writer wins.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the cache file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the cache file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Load returns the cached environments in the order they were saved.
func (s *Store) Load() ([]venv.Environment, error) {
	f, err := s.LoadFile()
	if err != nil {
		return nil, err
	}
	return f.Environments, nil
}

// LoadFile reads the whole cache document. Errors wrap ErrRead or ErrFormat.
// A bare JSON array of environments, as written by earlier releases, is
// accepted and reported as version 0.
func (s *Store) LoadFile() (*File, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var envs []venv.Environment
		if err := json.Unmarshal(trimmed, &envs); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFormat, err)
		}
		if envs == nil {
			envs = []venv.Environment{}
		}
		return &File{Version: 0, Environments: envs}, nil
	}

	var f File
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if f.Version < 1 || f.Version > FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrFormat, f.Version)
	}
	if f.Environments == nil {
		f.Environments = []venv.Environment{}
	}
	return &f, nil
}

// Save replaces the cache with envs. root records what was scanned and may
// be empty.
func (s *Store) Save(envs []venv.Environment, root string) error {
	if envs == nil {
		envs = []venv.Environment{}
	}
	f := File{
		Version:      FormatVersion,
		ScanID:       uuid.NewString(),
		ScannedAt:    time.Now().UTC(),
		Root:         root,
		Environments: envs,
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshaling: %w", ErrWrite, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %w", ErrWrite, err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}

// Clear deletes the cache file. removed is false when there was nothing to delete.
func (s *Store) Clear() (removed bool, err error) {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("removing cache: %w", err)
	}
	return true, nil
}
