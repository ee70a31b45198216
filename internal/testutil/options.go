package testutil

import (
	"time"

	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/textbuf"
)

// EntryOption configures an entry added with WithEntry.
type EntryOption func(*history.Entry)

func defaultEntry(path string) history.Entry {
	return history.Entry{Path: path, UpdatedAt: BaseTime}
}

// Position sets the remembered cursor position.
func Position(line, character int) EntryOption {
	return func(e *history.Entry) {
		e.Position = textbuf.Pos(line, character)
	}
}

// Session sets the session that wrote the entry.
func Session(id string) EntryOption {
	return func(e *history.Entry) {
		e.Session = id
	}
}

// UpdatedAt sets the entry timestamp.
func UpdatedAt(at time.Time) EntryOption {
	return func(e *history.Entry) {
		e.UpdatedAt = at
	}
}
