// Package editorview is the bubbletea front end for an editor.Controller:
// it maps keys onto controller operations and renders the document with its
// cursor, selection, gutter and status line.
package editorview

import (
	"errors"
	"path/filepath"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/caret/internal/cachemanager"
	"github.com/zjrosen/caret/internal/clipboard"
	"github.com/zjrosen/caret/internal/config"
	"github.com/zjrosen/caret/internal/editor"
	"github.com/zjrosen/caret/internal/flags"
	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/keys"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/pubsub"
	"github.com/zjrosen/caret/internal/ui/styles"
)

// Default terminal size used until the first tea.WindowSizeMsg.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Options configures a Model. Only Text is required; nil collaborators are
// replaced by inert defaults.
type Options struct {
	Path      string // file being edited, empty for an unnamed buffer
	Text      string
	TabSize   int
	Keys      keys.KeyMap
	UI        config.UIConfig
	Clipboard clipboard.Clipboard
	Flags     *flags.Registry
	History   history.Repository
	Session   string
	Changes   <-chan struct{}  // signals from a watcher.Watcher
	Logs      *log.LogListener // nil unless debug logging is on
}

// Model is the editor view. It is a value type like every bubbletea model;
// the controller and caches are shared pointers.
type Model struct {
	ctrl *editor.Controller

	path    string
	keys    keys.KeyMap
	ui      config.UIConfig
	theme   styles.Theme
	help    help.Model
	clip    clipboard.Clipboard
	flags   *flags.Registry
	history history.Repository
	session string
	changes <-chan struct{}
	logs    *log.LogListener

	width, height int
	top, left     int // first visible line and display column

	savedRevision int
	diskText      string // file content as last loaded or saved
	pendingDisk   *string
	quitArmed     bool
	quitting      bool

	status     string
	statusKind statusKind
	lastLog    string

	lines *cachemanager.ReadThroughCache[renderKey, string, renderInput]
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

// New creates a Model editing opts.Text.
func New(opts Options) Model {
	if opts.Clipboard == nil {
		opts.Clipboard = &clipboard.Memory{}
	}
	if len(opts.Keys.Save.Keys()) == 0 {
		opts.Keys = keys.DefaultKeyMap()
	}

	h := help.New()
	h.ShowAll = false

	m := Model{
		ctrl:    editor.New(editor.Config{Text: opts.Text, TabSize: opts.TabSize}),
		path:    opts.Path,
		keys:    opts.Keys,
		ui:      opts.UI,
		theme:   styles.NewTheme(opts.UI.SelectionColor, opts.UI.CursorColor),
		help:    h,
		clip:    opts.Clipboard,
		flags:   opts.Flags,
		history: opts.History,
		session: opts.Session,
		changes: opts.Changes,
		logs:    opts.Logs,
		width:   defaultWidth,
		height:  defaultHeight,
		lines: cachemanager.NewReadThroughCache[renderKey, string, renderInput](
			cachemanager.NewInMemoryCacheManager[renderKey, string]("lines", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
			renderPlainLine,
			0,
		),
	}
	m.diskText = m.ctrl.Text()
	m.restoreCursor()
	m.savedRevision = m.ctrl.Revision()
	return m
}

// Init starts listening for file changes and log lines.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.waitForChange(), m.waitForLog())
}

// Controller exposes the underlying controller.
func (m Model) Controller() *editor.Controller {
	return m.ctrl
}

// Text returns the document text.
func (m Model) Text() string {
	return m.ctrl.Text()
}

// Path returns the edited file path.
func (m Model) Path() string {
	return m.path
}

// Dirty reports whether the document changed since it was loaded or saved.
func (m Model) Dirty() bool {
	return m.ctrl.Revision() != m.savedRevision
}

// Status returns the transient status message.
func (m Model) Status() string {
	return m.status
}

// Quitting reports whether the model has asked the program to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

func (m *Model) setStatus(kind statusKind, msg string) {
	m.status = msg
	m.statusKind = kind
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return FileChangedMsg{}
	}
}

func (m Model) waitForLog() tea.Cmd {
	if m.logs == nil {
		return nil
	}
	return m.logs.Listen()
}

// restoreCursor moves the caret to the position remembered for this file.
func (m *Model) restoreCursor() {
	if m.history == nil || m.path == "" || !m.flags.Enabled(flags.FlagRememberCursor) {
		return
	}
	key, err := history.NormalizePath(m.path)
	if err != nil {
		return
	}
	entry, err := m.history.Find(key)
	if errors.Is(err, history.ErrNotFound) {
		return
	}
	if err != nil {
		log.ErrorErr(log.CatHistory, "Failed to load cursor", err, "path", key)
		return
	}
	m.ctrl.SetCursorPosition(entry.Position)
	log.Debug(log.CatHistory, "Restored cursor", "path", key, "cursor", m.ctrl.CursorPosition())
}

// rememberCursor stores the caret position for this file.
func (m Model) rememberCursor() {
	if m.history == nil || m.path == "" || !m.flags.Enabled(flags.FlagRememberCursor) {
		return
	}
	key, err := history.NormalizePath(m.path)
	if err != nil {
		return
	}
	if _, err := m.history.Save(history.Entry{
		Path:     key,
		Position: m.ctrl.CursorPosition(),
		Session:  m.session,
	}); err != nil {
		log.ErrorErr(log.CatHistory, "Failed to save cursor", err, "path", key)
	}
}

func (m Model) displayName() string {
	if m.path == "" {
		return "[No Name]"
	}
	return filepath.Base(m.path)
}

var _ tea.Model = Model{}

// logEvent is the message produced by the log listener.
type logEvent = pubsub.Event[string]
