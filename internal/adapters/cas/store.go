package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"go.trai.ch/rbwasm/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store is the index of completed builds, persisted as a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.BuildRecord
}

// NewStore creates a new Store backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.BuildRecord),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read build index"), "path", s.path)
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to unmarshal build index"), "path", s.path)
	}

	return nil
}

func (s *Store) save() error {
	s.mu.RLock()
	data, err := json.MarshalIndent(s.cache, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build index")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create directory for build index")
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return zerr.Wrap(err, "failed to write build index")
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.Wrap(err, "failed to write build index")
	}
	if err := tmp.Close(); err != nil {
		return zerr.Wrap(err, "failed to write build index")
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return zerr.Wrap(err, "failed to write build index")
	}
	return nil
}

// Get returns the record stored under key, or nil if there is none.
func (s *Store) Get(key string) *domain.BuildRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.cache[key]
	if !ok {
		return nil
	}
	return &record
}

// List returns every record ordered by key.
func (s *Store) List() []domain.BuildRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]domain.BuildRecord, 0, len(s.cache))
	for _, key := range slices.Sorted(maps.Keys(s.cache)) {
		records = append(records, s.cache[key])
	}
	return records
}

// Put stores the record under its key and persists the index.
func (s *Store) Put(record domain.BuildRecord) error {
	s.mu.Lock()
	s.cache[record.Key] = record
	s.mu.Unlock()

	return s.save()
}
