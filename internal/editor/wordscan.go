package editor

import (
	"github.com/zjrosen/caret/internal/charclass"
	"github.com/zjrosen/caret/internal/grapheme"
	"github.com/zjrosen/caret/internal/textbuf"
)

// wordScan holds the state of one word-boundary scan. A jump skips at most
// one whitespace run, then stops at the edge of the next run of a single
// category. Crossing a line break counts as the whitespace run.
type wordScan struct {
	target   charclass.Category // Whitespace means not chosen yet
	previous charclass.Category
	consumed bool // a whitespace run has been passed
}

func newWordScan(first string, crossedLine bool) *wordScan {
	return &wordScan{
		target:   charclass.Whitespace,
		previous: charclass.Classify(first),
		consumed: crossedLine,
	}
}

// include reports whether cluster belongs to the run being scanned.
func (s *wordScan) include(cluster string) bool {
	cat := charclass.Classify(cluster)

	if cat == charclass.Whitespace {
		if s.previous != charclass.Whitespace && s.consumed {
			return false
		}
		s.consumed = true
	} else {
		if cat != s.previous && s.previous == charclass.Whitespace &&
			s.consumed && s.target != charclass.Whitespace {
			return false
		}
		if s.target == charclass.Whitespace {
			s.target = cat
		}
		if cat != s.target {
			return false
		}
	}

	s.previous = cat
	return true
}

// leftBoundary returns the position a leftward word jump from the caret lands on.
func (c *Controller) leftBoundary() textbuf.Position {
	line, col := c.cursor.Line, c.cursor.Character

	crossed := false
	if col == 0 {
		if line == 0 {
			return textbuf.Pos(0, 0)
		}
		line--
		col = c.buf.LineLength(line)
		crossed = true
	}
	if col == 0 {
		return textbuf.Pos(line, 0)
	}

	clusters := grapheme.Split(c.buf.AtLine(line))
	i := col - 1
	scan := newWordScan(clusters[i], crossed)
	for i >= 0 && scan.include(clusters[i]) {
		i--
	}
	return textbuf.Pos(line, i+1)
}

// rightBoundary returns the position a rightward word jump from the caret lands on.
func (c *Controller) rightBoundary() textbuf.Position {
	line, col := c.cursor.Line, c.cursor.Character

	crossed := false
	if col == c.buf.LineLength(line) {
		if line == c.buf.LineCount()-1 {
			return c.cursor
		}
		line++
		col = 0
		crossed = true
	}

	clusters := grapheme.Split(c.buf.AtLine(line))
	if len(clusters) == 0 {
		return textbuf.Pos(line, 0)
	}

	i := col
	scan := newWordScan(clusters[i], crossed)
	for i < len(clusters) && scan.include(clusters[i]) {
		i++
	}
	return textbuf.Pos(line, i)
}
