// Package editor implements the cursor and selection engine behind an editor
// widget.
//
// A Controller owns a textbuf.Buffer and a selection.Span and turns discrete
// commands (character, word and line movement, selection, insertion, deletion,
// tab handling) into buffer mutations while keeping the cursor inside the
// buffer. Every public operation runs synchronously and, once its state is
// committed, notifies subscribed Observers: CodeChanged first when the text
// changed, then CursorMoved when the cursor or selection changed.
//
// The Controller is not safe for concurrent use.
package editor

import (
	"github.com/zjrosen/caret/internal/grapheme"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/selection"
	"github.com/zjrosen/caret/internal/textbuf"
)

// DefaultTabSize is the tab stop width used when Config.TabSize is unset.
const DefaultTabSize = 4

// Config defines the initial state of a Controller.
type Config struct {
	// Text is the initial document. Empty means one empty line.
	Text string

	// TabSize is the tab stop width for InsertTab. Values below 1 use DefaultTabSize.
	TabSize int
}

// Controller is the cursor/selection state machine over a text buffer.
type Controller struct {
	buf       *textbuf.Buffer
	sel       *selection.Span
	cursor    textbuf.Position
	preferred int  // column restored by vertical moves
	selecting bool // cursor moves extend the selection
	tabSize   int
	revision  int

	subs []*subscription

	// Notification batching for the outermost public call.
	depth       int
	textChanged bool
	forceMoved  bool
	before      snapshot
}

type snapshot struct {
	cursor textbuf.Position
	anchor textbuf.Position
	active textbuf.Position
}

// New creates a Controller with the cursor at the document start.
func New(cfg Config) *Controller {
	tabSize := cfg.TabSize
	if tabSize < 1 {
		tabSize = DefaultTabSize
	}
	return &Controller{
		buf:     textbuf.New(cfg.Text),
		sel:     selection.New(),
		tabSize: tabSize,
	}
}

// SetSource replaces the document and resets the cursor, the preferred
// column and the selection mode.
func (c *Controller) SetSource(text string) {
	defer c.batch()()

	c.buf.SetText(text)
	c.textChanged = true
	c.forceMoved = true
	c.selecting = false
	c.place(textbuf.Pos(0, 0), true)

	log.Debug(log.CatEditor, "source set", "lines", c.buf.LineCount(), "ending", c.buf.LineEnding())
}

// TabSize returns the tab stop width.
func (c *Controller) TabSize() int {
	return c.tabSize
}

// SetTabSize changes the tab stop width. Values below 1 are ignored.
func (c *Controller) SetTabSize(n int) {
	if n < 1 {
		return
	}
	c.tabSize = n
}

// Revision counts the content changes since the Controller was created.
func (c *Controller) Revision() int {
	return c.revision
}

// LineCount returns the number of lines; never less than 1.
func (c *Controller) LineCount() int {
	return c.buf.LineCount()
}

// LineLength returns the character count of line. Panics if line is out of range.
func (c *Controller) LineLength(line int) int {
	return c.buf.LineLength(line)
}

// Line returns the content of line. Panics if line is out of range.
func (c *Controller) Line(line int) string {
	return c.buf.AtLine(line)
}

// Lines returns a copy of every line.
func (c *Controller) Lines() []string {
	return c.buf.Lines()
}

// Text returns the document joined with its line ending.
func (c *Controller) Text() string {
	return c.buf.Text()
}

// LineEnding returns the line ending detected by the last SetSource.
func (c *Controller) LineEnding() textbuf.LineEnding {
	return c.buf.LineEnding()
}

// CursorPosition returns the caret position.
func (c *Controller) CursorPosition() textbuf.Position {
	return c.cursor
}

// CursorDisplayColumn returns the terminal cell offset of the caret within
// its line, counting wide characters as two cells.
func (c *Controller) CursorDisplayColumn() int {
	return grapheme.StringDisplayWidth(grapheme.Head(c.buf.AtLine(c.cursor.Line), c.cursor.Character))
}

// LastCharacterPosition returns the end of the last line.
func (c *Controller) LastCharacterPosition() textbuf.Position {
	last := c.buf.LineCount() - 1
	return textbuf.Pos(last, c.buf.LineLength(last))
}

// SetCursorPosition moves the caret to pos, clamped into the buffer.
func (c *Controller) SetCursorPosition(pos textbuf.Position) {
	defer c.batch()()
	c.place(c.clamp(pos), true)
}

// SetCursorLine moves the caret to line, keeping the column where the new
// line allows. Both are clamped. The preferred column is left alone.
func (c *Controller) SetCursorLine(line int) {
	defer c.batch()()
	c.place(c.clamp(textbuf.Pos(line, c.cursor.Character)), false)
}

// SetCursorCharacter moves the caret to column on the current line, clamped.
func (c *Controller) SetCursorCharacter(column int) {
	defer c.batch()()
	c.place(c.clamp(textbuf.Pos(c.cursor.Line, column)), true)
}

// IsSelecting reports whether cursor moves extend the selection.
func (c *Controller) IsSelecting() bool {
	return c.selecting
}

// HasSelection reports whether the selection covers at least one character.
func (c *Controller) HasSelection() bool {
	return c.sel.HasSelection()
}

// SelectionSpan returns the selection in document order.
func (c *Controller) SelectionSpan() textbuf.Span {
	return c.sel.Normalized()
}

// SelectionText returns the selected text, or "" when nothing is selected.
func (c *Controller) SelectionText() string {
	return c.buf.SectionString(c.sel.Normalized())
}

// SetSelectionMode enters or leaves selection extension. Leaving collapses
// the selection onto the cursor.
func (c *Controller) SetSelectionMode(active bool) {
	defer c.batch()()

	c.selecting = active
	if !active {
		c.sel.SetBoth(c.cursor)
	}
}

// SelectAll selects the whole document and moves the caret to its end.
// The selection mode flag is not changed.
func (c *Controller) SelectAll() {
	defer c.batch()()

	end := c.LastCharacterPosition()
	c.cursor = end
	c.preferred = end.Character
	c.sel.SetRange(textbuf.Pos(0, 0), end)
}

// SelectRange selects from anchor to active, both clamped into the buffer,
// and moves the caret to active.
func (c *Controller) SelectRange(anchor, active textbuf.Position) {
	defer c.batch()()

	anchor = c.clamp(anchor)
	active = c.clamp(active)
	c.cursor = active
	c.preferred = active.Character
	c.sel.SetRange(anchor, active)
}

// place moves the caret and updates the selection for the current mode.
func (c *Controller) place(pos textbuf.Position, capture bool) {
	c.cursor = pos
	if capture {
		c.preferred = pos.Character
	}
	if c.selecting {
		c.sel.SetEnd(pos)
	} else {
		c.sel.SetBoth(pos)
	}
}

func (c *Controller) clamp(pos textbuf.Position) textbuf.Position {
	pos.Line = max(0, min(pos.Line, c.buf.LineCount()-1))
	pos.Character = max(0, min(pos.Character, c.buf.LineLength(pos.Line)))
	return pos
}

func (c *Controller) snapshot() snapshot {
	return snapshot{cursor: c.cursor, anchor: c.sel.Anchor(), active: c.sel.Active()}
}

// batch opens a notification scope. Nested scopes collapse into the
// outermost one, which notifies observers when it closes:
//
//	defer c.batch()()
func (c *Controller) batch() func() {
	if c.depth == 0 {
		c.textChanged = false
		c.forceMoved = false
		c.before = c.snapshot()
	}
	c.depth++
	return func() {
		c.depth--
		if c.depth == 0 {
			c.flush()
		}
	}
}

func (c *Controller) flush() {
	if c.textChanged {
		c.revision++
		c.notifyCodeChanged()
	}
	if c.forceMoved || c.snapshot() != c.before {
		c.notifyCursorMoved(c.cursor)
	}
}
