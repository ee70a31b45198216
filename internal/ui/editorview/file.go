package editorview

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/caret/internal/log"
)

// SavedMsg reports the result of writing the document.
type SavedMsg struct {
	Revision int
	Text     string
	Err      error
}

// FileChangedMsg is sent when the watcher sees the file change on disk.
type FileChangedMsg struct{}

// diskContentMsg carries the file content read after a FileChangedMsg.
type diskContentMsg struct {
	Text string
	Err  error
}

// pasteMsg carries clipboard content read off the update loop.
type pasteMsg struct {
	Text string
	Err  error
}

// ReadFile loads path. A missing file reads as empty so new files can be
// created by saving.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the user
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteFile atomically replaces path with text, keeping the existing file
// mode when there is one.
func WriteFile(path, text string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := tmp.WriteString(text); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		cleanup()
		return fmt.Errorf("setting file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		cleanup()
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

func (m Model) saveCmd() tea.Cmd {
	path := m.path
	text := m.ctrl.Text()
	rev := m.ctrl.Revision()
	return func() tea.Msg {
		err := WriteFile(path, text)
		if err != nil {
			log.ErrorErr(log.CatBuffer, "Save failed", err, "path", path)
		} else {
			log.Info(log.CatBuffer, "Saved", "path", path, "bytes", len(text))
		}
		return SavedMsg{Revision: rev, Text: text, Err: err}
	}
}

func (m Model) readDiskCmd() tea.Cmd {
	path := m.path
	return func() tea.Msg {
		text, err := ReadFile(path)
		return diskContentMsg{Text: text, Err: err}
	}
}

func (m Model) pasteCmd() tea.Cmd {
	clip := m.clip
	return func() tea.Msg {
		text, err := clip.Paste()
		return pasteMsg{Text: text, Err: err}
	}
}
