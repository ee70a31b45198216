// Package clipboard wraps the system clipboard behind an interface so the
// editor view can be tested without one.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"
)

// Clipboard defines the clipboard operations the editor uses.
type Clipboard interface {
	Copy(text string) error
	Paste() (string, error)
}

// System implements Clipboard using the system clipboard.
type System struct{}

// Copy writes text to the system clipboard.
func (System) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// Paste reads the system clipboard.
func (System) Paste() (string, error) {
	return clipboard.ReadAll()
}

// Available reports whether a system clipboard backend exists.
func Available() bool {
	return !clipboard.Unsupported
}

// Memory is an in-process clipboard used in tests and when no system
// clipboard is available.
type Memory struct {
	mu   sync.Mutex
	text string
}

// Copy stores text.
func (m *Memory) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Paste returns the last copied text.
func (m *Memory) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

// Default returns the system clipboard when one is available and an
// in-memory clipboard otherwise.
func Default() Clipboard {
	if Available() {
		return System{}
	}
	return &Memory{}
}
