// Package textbuf provides the line-oriented text store behind the editor.
//
// A Buffer holds an ordered list of lines without line-break characters and
// always contains at least one line. Columns are grapheme indices (see package
// grapheme). Out-of-range line or column arguments are programming errors and
// panic; boundary conditions a user can reach (deleting before the document
// start, merging past the last line) are no-ops.
package textbuf

import (
	"fmt"
	"strings"

	"github.com/zjrosen/caret/internal/grapheme"
)

// LineEnding identifies the line-break sequence used by Text.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
	CR
)

// Sequence returns the characters of the line ending.
func (e LineEnding) Sequence() string {
	switch e {
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	default:
		return "\n"
	}
}

func (e LineEnding) String() string {
	switch e {
	case CRLF:
		return "crlf"
	case CR:
		return "cr"
	default:
		return "lf"
	}
}

// Buffer is an ordered sequence of lines.
type Buffer struct {
	lines  []string
	ending LineEnding
}

// New returns a buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetText(text)
	return b
}

// SetText replaces the whole content. The line ending used by Text is taken
// from the first line break in text.
func (b *Buffer) SetText(text string) {
	b.lines, b.ending = splitLines(text)
}

// Text returns the content joined with the buffer's line ending.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, b.ending.Sequence())
}

// LineEnding returns the line ending detected by the last SetText.
func (b *Buffer) LineEnding() LineEnding {
	return b.ending
}

// LineCount returns the number of lines; never less than 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the grapheme count of line.
func (b *Buffer) LineLength(line int) int {
	b.checkLine(line)
	return grapheme.Count(b.lines[line])
}

// AtLine returns the content of line.
func (b *Buffer) AtLine(line int) string {
	b.checkLine(line)
	return b.lines[line]
}

// Lines returns a copy of all lines.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// InsertAt inserts text (which may contain line breaks) before the character
// at (line, column) and returns the caret position just after the inserted text.
func (b *Buffer) InsertAt(line, column int, text string) Position {
	b.checkPosition(line, column)
	if text == "" {
		return Pos(line, column)
	}

	current := b.lines[line]
	head := grapheme.Head(current, column)
	tail := grapheme.Tail(current, column)

	parts, _ := splitLines(text)
	if len(parts) == 1 {
		inserted := head + parts[0]
		b.lines[line] = inserted + tail
		return Pos(line, grapheme.Count(inserted))
	}

	last := len(parts) - 1
	repl := make([]string, 0, len(parts))
	repl = append(repl, head+parts[0])
	repl = append(repl, parts[1:last]...)
	repl = append(repl, parts[last]+tail)
	b.replaceLines(line, line, repl)

	return Pos(line+last, grapheme.Count(parts[last]))
}

// InsertLineAtColumn splits line at column, moving the suffix onto a new
// line inserted directly below.
func (b *Buffer) InsertLineAtColumn(line, column int) {
	b.checkPosition(line, column)
	current := b.lines[line]
	b.replaceLines(line, line, []string{
		grapheme.Head(current, column),
		grapheme.Tail(current, column),
	})
}

// RemoveRange deletes everything from (startLine, startCol) up to
// (endLine, endCol), joining the head of the first line with the tail of the
// last. The endpoints are normalized, so they may be given in either order.
// Reports whether anything was removed.
func (b *Buffer) RemoveRange(startLine, endLine, startCol, endCol int) bool {
	b.checkPosition(startLine, startCol)
	b.checkPosition(endLine, endCol)

	span := NewSpan(Pos(startLine, startCol), Pos(endLine, endCol))
	if span.IsEmpty() {
		return false
	}

	head := grapheme.Head(b.lines[span.Start.Line], span.Start.Character)
	tail := grapheme.Tail(b.lines[span.End.Line], span.End.Character)
	b.replaceLines(span.Start.Line, span.End.Line, []string{head + tail})
	return true
}

// RemoveRangeInLine deletes the characters start through end, both inclusive,
// within a single line. An inverted range is a no-op.
func (b *Buffer) RemoveRangeInLine(line, start, end int) bool {
	b.checkLine(line)
	if end < start {
		return false
	}
	length := grapheme.Count(b.lines[line])
	if start < 0 || end >= length {
		panic(fmt.Sprintf("textbuf: range [%d, %d] out of bounds for line %d of length %d", start, end, line, length))
	}

	b.lines[line] = grapheme.DeleteRange(b.lines[line], start, end+1)
	return true
}

// RemoveBackwardsAt deletes count characters before (line, column). A line
// break counts as one character. If fewer than count characters precede the
// position nothing is removed. Returns the caret position after the removal.
func (b *Buffer) RemoveBackwardsAt(line, column, count int) (Position, bool) {
	b.checkPosition(line, column)
	origin := Pos(line, column)

	target, ok := b.walkBackward(origin, count)
	if !ok {
		return origin, false
	}
	b.RemoveRange(target.Line, line, target.Character, column)
	return target, true
}

// RemoveForwardsAt deletes count characters after (line, column). A line
// break counts as one character. If fewer than count characters follow the
// position nothing is removed.
func (b *Buffer) RemoveForwardsAt(line, column, count int) bool {
	b.checkPosition(line, column)

	target, ok := b.walkForward(Pos(line, column), count)
	if !ok {
		return false
	}
	return b.RemoveRange(line, target.Line, column, target.Character)
}

// RemoveNewLineIntoBelow joins line with the line below it. No-op on the
// last line.
func (b *Buffer) RemoveNewLineIntoBelow(line int) bool {
	b.checkLine(line)
	if line == len(b.lines)-1 {
		return false
	}
	b.replaceLines(line, line+1, []string{b.lines[line] + b.lines[line+1]})
	return true
}

// SectionString returns the text covered by span, with intermediate line
// breaks written using the buffer's line ending.
func (b *Buffer) SectionString(span Span) string {
	span = NewSpan(span.Start, span.End)
	b.checkPosition(span.Start.Line, span.Start.Character)
	b.checkPosition(span.End.Line, span.End.Character)

	if span.Start.Line == span.End.Line {
		return grapheme.Slice(b.lines[span.Start.Line], span.Start.Character, span.End.Character)
	}

	sep := b.ending.Sequence()
	var sb strings.Builder
	sb.WriteString(grapheme.Tail(b.lines[span.Start.Line], span.Start.Character))
	for i := span.Start.Line + 1; i < span.End.Line; i++ {
		sb.WriteString(sep)
		sb.WriteString(b.lines[i])
	}
	sb.WriteString(sep)
	sb.WriteString(grapheme.Head(b.lines[span.End.Line], span.End.Character))
	return sb.String()
}

// walkBackward finds the position count characters before p.
func (b *Buffer) walkBackward(p Position, count int) (Position, bool) {
	if count <= 0 {
		return p, false
	}
	for count > 0 {
		switch {
		case p.Character > 0:
			step := min(p.Character, count)
			p.Character -= step
			count -= step
		case p.Line > 0:
			p.Line--
			p.Character = grapheme.Count(b.lines[p.Line])
			count--
		default:
			return p, false
		}
	}
	return p, true
}

// walkForward finds the position count characters after p.
func (b *Buffer) walkForward(p Position, count int) (Position, bool) {
	if count <= 0 {
		return p, false
	}
	for count > 0 {
		length := grapheme.Count(b.lines[p.Line])
		switch {
		case p.Character < length:
			step := min(length-p.Character, count)
			p.Character += step
			count -= step
		case p.Line < len(b.lines)-1:
			p.Line++
			p.Character = 0
			count--
		default:
			return p, false
		}
	}
	return p, true
}

// replaceLines substitutes lines[first..last] (inclusive) with repl.
func (b *Buffer) replaceLines(first, last int, repl []string) {
	out := make([]string, 0, len(b.lines)-(last-first+1)+len(repl))
	out = append(out, b.lines[:first]...)
	out = append(out, repl...)
	out = append(out, b.lines[last+1:]...)
	if len(out) == 0 {
		out = []string{""}
	}
	b.lines = out
}

func (b *Buffer) checkLine(line int) {
	if line < 0 || line >= len(b.lines) {
		panic(fmt.Sprintf("textbuf: line %d out of range [0, %d)", line, len(b.lines)))
	}
}

func (b *Buffer) checkPosition(line, column int) {
	b.checkLine(line)
	if length := grapheme.Count(b.lines[line]); column < 0 || column > length {
		panic(fmt.Sprintf("textbuf: column %d out of range [0, %d] on line %d", column, length, line))
	}
}

// splitLines breaks text on \r\n, \n and \r. It returns at least one line and
// the first line ending encountered (LF when there is none).
func splitLines(text string) ([]string, LineEnding) {
	ending := LF
	found := false
	lines := make([]string, 0, strings.Count(text, "\n")+1)

	start := 0
	for i := 0; i < len(text); i++ {
		var e LineEnding
		switch text[i] {
		case '\n':
			e = LF
		case '\r':
			e = CR
			if i+1 < len(text) && text[i+1] == '\n' {
				e = CRLF
			}
		default:
			continue
		}

		lines = append(lines, text[start:i])
		if e == CRLF {
			i++
		}
		start = i + 1
		if !found {
			ending = e
			found = true
		}
	}
	lines = append(lines, text[start:])
	return lines, ending
}
