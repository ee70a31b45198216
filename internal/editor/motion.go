package editor

import "github.com/zjrosen/caret/internal/textbuf"

// MoveCursorLeft steps one character left, wrapping to the end of the
// previous line. No-op at the document start.
func (c *Controller) MoveCursorLeft() {
	defer c.batch()()

	switch {
	case c.cursor.IsStart():
		return
	case c.cursor.Character == 0:
		prev := c.cursor.Line - 1
		c.place(textbuf.Pos(prev, c.buf.LineLength(prev)), true)
	default:
		c.place(textbuf.Pos(c.cursor.Line, c.cursor.Character-1), true)
	}
}

// MoveCursorRight steps one character right, wrapping to the start of the
// next line. No-op at the document end.
func (c *Controller) MoveCursorRight() {
	defer c.batch()()

	line, col := c.cursor.Line, c.cursor.Character
	if col < c.buf.LineLength(line) {
		c.place(textbuf.Pos(line, col+1), true)
		return
	}
	if line == c.buf.LineCount()-1 {
		return
	}
	c.place(textbuf.Pos(line+1, 0), true)
}

// MoveCursorUp moves to the previous line at the preferred column.
func (c *Controller) MoveCursorUp() {
	c.MoveCursorToLine(c.cursor.Line - 1)
}

// MoveCursorDown moves to the next line at the preferred column.
func (c *Controller) MoveCursorDown() {
	c.MoveCursorToLine(c.cursor.Line + 1)
}

// MoveCursorToLine moves vertically to line, landing on the preferred column
// or the line end when the line is shorter. The preferred column is kept so
// a later move onto a long enough line restores it. No-op when line is the
// current line or out of range.
func (c *Controller) MoveCursorToLine(line int) {
	defer c.batch()()

	if line == c.cursor.Line || line < 0 || line >= c.buf.LineCount() {
		return
	}
	c.place(textbuf.Pos(line, min(c.preferred, c.buf.LineLength(line))), false)
}

// MoveCursorLineStart jumps to column 0.
func (c *Controller) MoveCursorLineStart() {
	defer c.batch()()
	c.place(textbuf.Pos(c.cursor.Line, 0), true)
}

// MoveCursorLineEnd jumps to the end of the current line.
func (c *Controller) MoveCursorLineEnd() {
	defer c.batch()()
	c.place(textbuf.Pos(c.cursor.Line, c.buf.LineLength(c.cursor.Line)), true)
}

// MoveCursorDocumentStart jumps to (0,0).
func (c *Controller) MoveCursorDocumentStart() {
	defer c.batch()()
	c.place(textbuf.Pos(0, 0), true)
}

// MoveCursorDocumentEnd jumps to the end of the last line.
func (c *Controller) MoveCursorDocumentEnd() {
	defer c.batch()()
	c.place(c.LastCharacterPosition(), true)
}

// MoveCursorLeftWord jumps to the start of the word run left of the caret.
func (c *Controller) MoveCursorLeftWord() {
	defer c.batch()()
	c.place(c.leftBoundary(), true)
}

// MoveCursorNextWord jumps past the word run right of the caret.
func (c *Controller) MoveCursorNextWord() {
	defer c.batch()()
	c.place(c.rightBoundary(), true)
}
