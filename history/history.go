// Package history keeps past benchmark runs on disk and compares them.
package history

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/goccy/go-json"

	"github.com/weiihann/modelbench/harness"
)

// ErrNotEnoughRuns is returned by Last when the store holds too few runs.
var ErrNotEnoughRuns = errors.New("not enough runs in history")

// Run is one recorded benchmark execution.
type Run struct {
	Timestamp  time.Time        `json:"timestamp"`
	Fixture    string           `json:"fixture"`
	Iterations int              `json:"iterations"`
	Results    []harness.Result `json:"results"`
}

// Store persists runs.
type Store interface {
	Save(run Run) error
	LoadAll() ([]Run, error)
}

// FileStore keeps every run in a single JSON array file.
type FileStore struct {
	path string
}

// NewFileStore creates the parent directory of path if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create history dir %s: %w", dir, err)
	}

	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Save appends run to the file.
func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}

	return nil
}

// LoadAll returns every stored run, oldest first. A missing file is an
// empty history.
func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("read history: %w", err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("decode history %s: %w", s.path, err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

// Last returns the n most recent runs from store, oldest first.
func Last(store Store, n int) ([]Run, error) {
	runs, err := store.LoadAll()
	if err != nil {
		return nil, err
	}

	if len(runs) < n {
		return nil, fmt.Errorf("%w: have %d, need %d", ErrNotEnoughRuns, len(runs), n)
	}

	return runs[len(runs)-n:], nil
}
