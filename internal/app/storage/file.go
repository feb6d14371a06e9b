package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists entries as a single JSON document on disk.
// Every write rewrites the file through a temp-file rename so a crashed
// write never leaves a truncated document behind.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewFileStore loads (or creates) the store file under dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create storage directory")
	}

	s := &FileStore{
		path:    filepath.Join(dir, "state.json"),
		entries: make(map[string]string),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "read storage file")
	}

	if err := json.Unmarshal(raw, &s.entries); err != nil {
		// A corrupt state file is discarded rather than blocking startup.
		s.entries = make(map[string]string)
	}

	return s, nil
}

func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value
	return s.flushLocked()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)
	return s.flushLocked()
}

func (s *FileStore) flushLocked() error {
	raw, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode storage entries")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write storage file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace storage file")
	}
	return nil
}
