// Package testutil seeds cursor history repositories for tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/history"
)

// Builder accumulates history entries and saves them in order.
type Builder struct {
	t       *testing.T
	repo    history.Repository
	entries []history.Entry
}

// NewBuilder creates a builder for the given repository.
func NewBuilder(t *testing.T, repo history.Repository) *Builder {
	t.Helper()
	return &Builder{t: t, repo: repo}
}

// WithEntry adds an entry for path with optional configuration.
func (b *Builder) WithEntry(path string, opts ...EntryOption) *Builder {
	e := defaultEntry(path)
	for _, opt := range opts {
		opt(&e)
	}
	b.entries = append(b.entries, e)
	return b
}

// Build saves all accumulated entries and returns them as stored.
func (b *Builder) Build() []history.Entry {
	b.t.Helper()
	saved := make([]history.Entry, 0, len(b.entries))
	for _, e := range b.entries {
		got, err := b.repo.Save(e)
		require.NoError(b.t, err, "saving %s", e.Path)
		saved = append(saved, got)
	}
	return saved
}
