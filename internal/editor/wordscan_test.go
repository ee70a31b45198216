package editor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/textbuf"
)

func TestRightBoundary(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start textbuf.Position
		want  textbuf.Position
	}{
		{"word then space stops before next word", "abc def", textbuf.Pos(0, 0), textbuf.Pos(0, 4)},
		{"leading space is skipped", "abc def", textbuf.Pos(0, 3), textbuf.Pos(0, 7)},
		{"several spaces count as one run", "a    b", textbuf.Pos(0, 1), textbuf.Pos(0, 6)},
		{"category change stops", "foo.bar", textbuf.Pos(0, 0), textbuf.Pos(0, 3)},
		{"punctuation run", "foo...bar", textbuf.Pos(0, 3), textbuf.Pos(0, 6)},
		{"underscore and digits join identifiers", "a_1b2 x", textbuf.Pos(0, 0), textbuf.Pos(0, 6)},
		{"crossing a line break consumes the whitespace run", "ab\n  cd", textbuf.Pos(0, 2), textbuf.Pos(1, 4)},
		{"crossing into an empty line", "ab\n\ncd", textbuf.Pos(0, 2), textbuf.Pos(1, 0)},
		{"crossing stops at a category change", "ab\ncd ef", textbuf.Pos(0, 2), textbuf.Pos(1, 2)},
		{"last line end stays", "ab", textbuf.Pos(0, 2), textbuf.Pos(0, 2)},
		{"tab is not whitespace", "a\tb", textbuf.Pos(0, 0), textbuf.Pos(0, 1)},
		{"no-break space is whitespace", "a\u00a0b", textbuf.Pos(0, 1), textbuf.Pos(0, 3)},
		{"other letters are general", "ab日本", textbuf.Pos(0, 0), textbuf.Pos(0, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.text, tt.start)
			require.Equal(t, tt.want, c.rightBoundary())
		})
	}
}

func TestLeftBoundary(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		start textbuf.Position
		want  textbuf.Position
	}{
		{"word and the space before it", "abc def", textbuf.Pos(0, 7), textbuf.Pos(0, 3)},
		{"space then word", "abc def", textbuf.Pos(0, 4), textbuf.Pos(0, 0)},
		{"space run stops at the previous word", "abc  def", textbuf.Pos(0, 8), textbuf.Pos(0, 3)},
		{"category change stops", "foo.bar", textbuf.Pos(0, 7), textbuf.Pos(0, 4)},
		{"indent is consumed with the word", "    foo", textbuf.Pos(0, 7), textbuf.Pos(0, 0)},
		{"crossing to previous line end", "abc def\nghi", textbuf.Pos(1, 0), textbuf.Pos(0, 4)},
		{"crossing into an empty line", "ab\n\ncd", textbuf.Pos(2, 0), textbuf.Pos(1, 0)},
		{"document start stays", "ab", textbuf.Pos(0, 0), textbuf.Pos(0, 0)},
		{"mid word", "hello", textbuf.Pos(0, 3), textbuf.Pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.text, tt.start)
			require.Equal(t, tt.want, c.leftBoundary())
		})
	}
}
