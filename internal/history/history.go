// Package history remembers the last cursor position per file so a reopened
// file starts where it was left.
package history

import (
	"errors"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zjrosen/caret/internal/textbuf"
)

// ErrNotFound is returned when no entry exists for a path.
var ErrNotFound = errors.New("history entry not found")

// Entry is the remembered state of one file.
type Entry struct {
	ID        string // stable across updates of the same path
	Path      string // absolute, cleaned
	Position  textbuf.Position
	Session   string // editing session that last wrote the entry
	UpdatedAt time.Time
}

// Repository defines the persistence interface for history entries.
type Repository interface {
	// Find returns the entry for path or ErrNotFound.
	Find(path string) (Entry, error)

	// Save inserts or updates the entry for e.Path. A new entry gets an ID.
	Save(e Entry) (Entry, error)

	// List returns entries ordered by UpdatedAt, newest first. A limit of 0
	// returns every entry.
	List(limit int) ([]Entry, error)

	// Prune keeps the keep most recently updated entries and deletes the rest.
	Prune(keep int) (int, error)

	// Close releases any resources held by the repository.
	Close() error
}

// NormalizePath returns the key entries are stored under.
func NormalizePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}

// NewSessionID returns an identifier for one editing session.
func NewSessionID() string {
	return uuid.NewString()
}

// MemoryRepository is an in-process Repository.
type MemoryRepository struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{entries: make(map[string]Entry), now: time.Now}
}

func (r *MemoryRepository) Find(path string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[path]
	if !ok {
		return Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *MemoryRepository) Save(e Entry) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.entries[e.Path]; ok {
		e.ID = old.ID
	} else if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = r.now()
	}
	r.entries[e.Path] = e
	return e, nil
}

func (r *MemoryRepository) List(limit int) ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *MemoryRepository) Prune(keep int) (int, error) {
	all, _ := r.List(0)
	if len(all) <= keep {
		return 0, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range all[keep:] {
		delete(r.entries, e.Path)
	}
	return len(all) - keep, nil
}

func (r *MemoryRepository) Close() error { return nil }
