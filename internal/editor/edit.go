package editor

import (
	"strings"

	"github.com/zjrosen/caret/internal/charclass"
	"github.com/zjrosen/caret/internal/grapheme"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/textbuf"
)

// DeleteCurrentSelection removes the selected text, moves the caret to where
// the selection started and leaves selection mode. No-op without a selection.
func (c *Controller) DeleteCurrentSelection() {
	defer c.batch()()
	c.deleteSelection()
}

// deleteSelection reports whether a selection was removed.
func (c *Controller) deleteSelection() bool {
	if !c.sel.HasSelection() {
		return false
	}

	span := c.sel.Normalized()
	c.buf.RemoveRange(span.Start.Line, span.End.Line, span.Start.Character, span.End.Character)
	c.edited(span.Start)

	log.Debug(log.CatEditor, "selection deleted", "span", span)
	return true
}

// edited records a content change and moves the caret to pos. Selection mode
// ends and the selection collapses onto pos, so no end of it can point past
// text that the mutation removed.
func (c *Controller) edited(pos textbuf.Position) {
	c.textChanged = true
	c.selecting = false
	c.place(pos, true)
}

// InsertText replaces any selection with text, which may contain line
// breaks, and moves the caret to the end of the inserted text.
func (c *Controller) InsertText(text string) {
	defer c.batch()()

	c.deleteSelection()
	if text == "" {
		return
	}
	c.edited(c.buf.InsertAt(c.cursor.Line, c.cursor.Character, text))
}

// InsertLine replaces any selection with a line break and moves the caret to
// the start of the new line.
func (c *Controller) InsertLine() {
	defer c.batch()()

	c.deleteSelection()
	c.buf.InsertLineAtColumn(c.cursor.Line, c.cursor.Character)
	c.edited(textbuf.Pos(c.cursor.Line+1, 0))
}

// InsertTab inserts spaces up to the next tab stop.
func (c *Controller) InsertTab() {
	defer c.batch()()

	c.deleteSelection()
	n := c.tabSize - c.cursor.Character%c.tabSize
	c.InsertText(strings.Repeat(" ", n))
}

// DeleteCurrentCharacterBackwards removes the selection, or else the
// character before the caret, joining lines at a line start.
func (c *Controller) DeleteCurrentCharacterBackwards() {
	defer c.batch()()

	if c.deleteSelection() {
		return
	}
	c.removeBackward()
}

func (c *Controller) removeBackward() {
	pos, ok := c.buf.RemoveBackwardsAt(c.cursor.Line, c.cursor.Character, 1)
	if ok {
		c.edited(pos)
	}
}

// DeleteCurrentCharacterForwards removes the selection, or else the
// character after the caret, joining lines at a line end.
func (c *Controller) DeleteCurrentCharacterForwards() {
	defer c.batch()()

	if c.deleteSelection() {
		return
	}
	if c.buf.RemoveForwardsAt(c.cursor.Line, c.cursor.Character, 1) {
		c.edited(c.cursor)
	}
}

// DeleteCommonCharacterGroupBackwards removes the selection, or else the
// word run before the caret. When the run next to the caret is not
// whitespace, whitespace separating it from the previous word is kept.
// At a line start it joins the line with the one above.
func (c *Controller) DeleteCommonCharacterGroupBackwards() {
	defer c.batch()()

	if c.deleteSelection() {
		return
	}

	line, col := c.cursor.Line, c.cursor.Character
	if col == 0 {
		c.removeBackward()
		return
	}

	clusters := grapheme.Split(c.buf.AtLine(line))
	last := col - 1
	start := c.leftBoundary().Character
	if charclass.Classify(clusters[last]) != charclass.Whitespace {
		for start < last && charclass.IsSpace(clusters[start]) {
			start++
		}
	}

	c.buf.RemoveRangeInLine(line, start, last)
	c.edited(textbuf.Pos(line, start))
}

// DeleteCommonCharacterGroupForwards removes the selection, or else the word
// run after the caret. When the run next to the caret is not whitespace,
// whitespace separating it from the next word is kept, mirroring the
// backward delete: "foo bar" at 0 becomes " bar", not "bar". At a line end it
// joins the line with the one below.
func (c *Controller) DeleteCommonCharacterGroupForwards() {
	defer c.batch()()

	if c.deleteSelection() {
		return
	}

	line, col := c.cursor.Line, c.cursor.Character
	if col == c.buf.LineLength(line) {
		if c.buf.RemoveNewLineIntoBelow(line) {
			c.edited(c.cursor)
		}
		return
	}

	clusters := grapheme.Split(c.buf.AtLine(line))
	end := c.rightBoundary().Character
	if charclass.Classify(clusters[col]) != charclass.Whitespace {
		for end-1 > col && charclass.IsSpace(clusters[end-1]) {
			end--
		}
	}

	c.buf.RemoveRangeInLine(line, col, end-1)
	c.edited(c.cursor)
}
