package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/textbuf"
)

// ============================================================================
// Insertion
// ============================================================================

func TestInsertText_MultiLineIntoEmpty(t *testing.T) {
	c := New(Config{})
	c.InsertText("a\nb")

	require.Equal(t, []string{"a", "b"}, c.Lines())
	require.Equal(t, textbuf.Pos(1, 1), c.CursorPosition())
}

func TestInsertText_MidLine(t *testing.T) {
	c := newTestController(t, "held", textbuf.Pos(0, 3))
	c.InsertText("lo wor")

	require.Equal(t, "hello word", c.Text())
	require.Equal(t, textbuf.Pos(0, 9), c.CursorPosition())
}

func TestInsertText_ReplacesSelection(t *testing.T) {
	c := New(Config{Text: "one two three"})
	c.SelectRange(textbuf.Pos(0, 4), textbuf.Pos(0, 7))

	c.InsertText("2")
	assert.Equal(t, "one 2 three", c.Text())
	assert.Equal(t, textbuf.Pos(0, 5), c.CursorPosition())
	assert.False(t, c.HasSelection())
	assert.False(t, c.IsSelecting())
}

func TestInsertText_EmptyStillDeletesSelection(t *testing.T) {
	c := New(Config{Text: "abc"})
	c.SelectAll()
	c.InsertText("")

	require.Equal(t, "", c.Text())
	require.Equal(t, textbuf.Pos(0, 0), c.CursorPosition())
}

func TestInsertLine(t *testing.T) {
	c := newTestController(t, "abcdef", textbuf.Pos(0, 2))
	c.InsertLine()

	require.Equal(t, []string{"ab", "cdef"}, c.Lines())
	require.Equal(t, textbuf.Pos(1, 0), c.CursorPosition())

	c.MoveCursorLineEnd()
	c.InsertLine()
	require.Equal(t, []string{"ab", "cdef", ""}, c.Lines())
	require.Equal(t, textbuf.Pos(2, 0), c.CursorPosition())
}

func TestInsertLine_ReplacesSelection(t *testing.T) {
	c := New(Config{Text: "abXXcd"})
	c.SelectRange(textbuf.Pos(0, 2), textbuf.Pos(0, 4))
	c.InsertLine()

	require.Equal(t, []string{"ab", "cd"}, c.Lines())
	require.Equal(t, textbuf.Pos(1, 0), c.CursorPosition())
}

func TestInsertTab(t *testing.T) {
	tests := []struct {
		name    string
		tabSize int
		column  int
		want    string
	}{
		{"line start", 4, 0, "    abcdef"},
		{"mid stop", 4, 1, "a   bcdef"},
		{"just before stop", 4, 3, "abc def"},
		{"on a stop", 4, 4, "abcd    ef"},
		{"tab size two", 2, 2, "ab  cdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(Config{Text: "abcdef", TabSize: tt.tabSize})
			c.SetCursorCharacter(tt.column)
			c.InsertTab()
			require.Equal(t, tt.want, c.Text())
			require.Zero(t, c.CursorPosition().Character%tt.tabSize)
		})
	}
}

func TestInsertTab_ReplacesSelectionFirst(t *testing.T) {
	c := New(Config{Text: "abcdef"})
	c.SelectRange(textbuf.Pos(0, 6), textbuf.Pos(0, 1))
	c.InsertTab()

	require.Equal(t, "a   ", c.Text())
	require.Equal(t, textbuf.Pos(0, 4), c.CursorPosition())
}

// ============================================================================
// Edits in selection mode
// ============================================================================

func TestEdit_InSelectionModeKeepsSelectionInBounds(t *testing.T) {
	c := New(Config{Text: "abc"})
	c.MoveCursorDocumentEnd()
	c.SetSelectionMode(true)
	c.MoveCursorLeft()
	c.MoveCursorRight()

	c.DeleteCurrentCharacterBackwards()
	require.Equal(t, "ab", c.Text())
	require.False(t, c.IsSelecting())
	require.Equal(t, textbuf.Span{Start: textbuf.Pos(0, 2), End: textbuf.Pos(0, 2)}, c.SelectionSpan())

	c.DeleteCurrentCharacterBackwards()
	require.Equal(t, "a", c.Text())
	require.Equal(t, "", c.SelectionText())
}

func TestEdit_JoinInSelectionModeKeepsSelectionInBounds(t *testing.T) {
	c := newTestController(t, "a\nb", textbuf.Pos(1, 0))
	c.SetSelectionMode(true)

	c.DeleteCurrentCharacterBackwards()
	require.Equal(t, []string{"ab"}, c.Lines())
	require.Equal(t, "", c.SelectionText())
	require.Equal(t, textbuf.Pos(0, 1), c.SelectionSpan().Start)
}

func TestEdit_EveryMutationLeavesSelectionMode(t *testing.T) {
	tests := []struct {
		name  string
		start textbuf.Position
		edit  func(c *Controller)
	}{
		{"insert text", textbuf.Pos(0, 3), func(c *Controller) { c.InsertText("x") }},
		{"insert line", textbuf.Pos(0, 3), (*Controller).InsertLine},
		{"insert tab", textbuf.Pos(0, 3), (*Controller).InsertTab},
		{"delete backward", textbuf.Pos(0, 3), (*Controller).DeleteCurrentCharacterBackwards},
		{"delete forward", textbuf.Pos(0, 3), (*Controller).DeleteCurrentCharacterForwards},
		{"word backward", textbuf.Pos(0, 3), (*Controller).DeleteCommonCharacterGroupBackwards},
		{"word forward", textbuf.Pos(0, 3), (*Controller).DeleteCommonCharacterGroupForwards},
		{"join below", textbuf.Pos(0, 7), (*Controller).DeleteCommonCharacterGroupForwards},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, "abc def\nghi", tt.start)
			c.SetSelectionMode(true)

			tt.edit(c)
			assert.False(t, c.IsSelecting())
			assert.False(t, c.HasSelection())
			assert.Equal(t, c.CursorPosition(), c.SelectionSpan().Start)
		})
	}
}

func TestInsertText_TypingAfterShiftMotionAppends(t *testing.T) {
	c := New(Config{Text: "x"})
	c.MoveCursorDocumentEnd()
	c.SetSelectionMode(true)
	c.MoveCursorRight()

	c.InsertText("a")
	c.InsertText("b")
	c.InsertText("c")
	require.Equal(t, "xabc", c.Text())
	require.Equal(t, textbuf.Pos(0, 4), c.CursorPosition())
}

// ============================================================================
// Selection deletion
// ============================================================================

func TestDeleteCurrentSelection_MultiLine(t *testing.T) {
	c := New(Config{Text: "first\nsecond\nthird"})
	c.SelectRange(textbuf.Pos(2, 2), textbuf.Pos(0, 3))
	c.SetSelectionMode(true)

	c.DeleteCurrentSelection()
	assert.Equal(t, []string{"firird"}, c.Lines())
	assert.Equal(t, textbuf.Pos(0, 3), c.CursorPosition())
	assert.False(t, c.HasSelection())
	assert.False(t, c.IsSelecting())
}

func TestDeleteCurrentSelection_NoSelectionIsNoop(t *testing.T) {
	c := newTestController(t, "abc", textbuf.Pos(0, 1))
	c.SetSelectionMode(true)

	c.DeleteCurrentSelection()
	assert.Equal(t, "abc", c.Text())
	assert.True(t, c.IsSelecting(), "mode stays when nothing was deleted")
}

// ============================================================================
// Character deletion
// ============================================================================

func TestDeleteCurrentCharacterBackwards(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		start     textbuf.Position
		wantLines []string
		wantPos   textbuf.Position
	}{
		{"within line", "abc", textbuf.Pos(0, 2), []string{"ac"}, textbuf.Pos(0, 1)},
		{"joins with previous line", "ab\ncd", textbuf.Pos(1, 0), []string{"abcd"}, textbuf.Pos(0, 2)},
		{"document start is a no-op", "ab", textbuf.Pos(0, 0), []string{"ab"}, textbuf.Pos(0, 0)},
		{"removes a whole cluster", "aéb", textbuf.Pos(0, 2), []string{"ab"}, textbuf.Pos(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.text, tt.start)
			c.DeleteCurrentCharacterBackwards()
			require.Equal(t, tt.wantLines, c.Lines())
			require.Equal(t, tt.wantPos, c.CursorPosition())
		})
	}
}

func TestDeleteCurrentCharacterForwards(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		start     textbuf.Position
		wantLines []string
	}{
		{"within line", "abc", textbuf.Pos(0, 1), []string{"ac"}},
		{"joins with next line", "ab\ncd", textbuf.Pos(0, 2), []string{"abcd"}},
		{"document end is a no-op", "ab", textbuf.Pos(0, 2), []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.text, tt.start)
			c.DeleteCurrentCharacterForwards()
			require.Equal(t, tt.wantLines, c.Lines())
			require.Equal(t, tt.start, c.CursorPosition())
		})
	}
}

func TestDeleteCharacter_SelectionOnly(t *testing.T) {
	c := New(Config{Text: "abcdef"})
	c.SelectRange(textbuf.Pos(0, 2), textbuf.Pos(0, 4))
	c.DeleteCurrentCharacterBackwards()
	require.Equal(t, "abef", c.Text(), "only the selection is removed")

	c.SelectRange(textbuf.Pos(0, 0), textbuf.Pos(0, 1))
	c.DeleteCurrentCharacterForwards()
	require.Equal(t, "bef", c.Text())
}

// ============================================================================
// Word deletion
// ============================================================================

func TestDeleteCommonCharacterGroupBackwards(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		start     textbuf.Position
		wantLines []string
		wantPos   textbuf.Position
	}{
		{"keeps indentation", "    foo", textbuf.Pos(0, 7), []string{"    "}, textbuf.Pos(0, 4)},
		{"keeps separating space", "foo bar", textbuf.Pos(0, 7), []string{"foo "}, textbuf.Pos(0, 4)},
		{"mid word", "foobar", textbuf.Pos(0, 3), []string{"bar"}, textbuf.Pos(0, 0)},
		{"trailing whitespace goes with the word", "foo   ", textbuf.Pos(0, 6), []string{""}, textbuf.Pos(0, 0)},
		{"spaces after a short word", "ab   ", textbuf.Pos(0, 5), []string{""}, textbuf.Pos(0, 0)},
		{"punctuation run", "a.b...", textbuf.Pos(0, 6), []string{"a.b"}, textbuf.Pos(0, 3)},
		{"line start joins lines", "ab\ncd", textbuf.Pos(1, 0), []string{"abcd"}, textbuf.Pos(0, 2)},
		{"document start is a no-op", "ab", textbuf.Pos(0, 0), []string{"ab"}, textbuf.Pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.text, tt.start)
			c.DeleteCommonCharacterGroupBackwards()
			require.Equal(t, tt.wantLines, c.Lines())
			require.Equal(t, tt.wantPos, c.CursorPosition())
		})
	}
}

func TestDeleteCommonCharacterGroupForwards(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		start     textbuf.Position
		wantLines []string
	}{
		{"keeps separating space", "foo bar", textbuf.Pos(0, 0), []string{" bar"}},
		{"whitespace then word", "foo   bar", textbuf.Pos(0, 3), []string{"foo"}},
		{"category change", "foo.bar", textbuf.Pos(0, 0), []string{".bar"}},
		{"word at line end", "ab cd", textbuf.Pos(0, 3), []string{"ab "}},
		{"line end joins lines", "ab\ncd", textbuf.Pos(0, 2), []string{"abcd"}},
		{"document end is a no-op", "ab", textbuf.Pos(0, 2), []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestController(t, tt.text, tt.start)
			c.DeleteCommonCharacterGroupForwards()
			require.Equal(t, tt.wantLines, c.Lines())
			require.Equal(t, tt.start, c.CursorPosition())
		})
	}
}

func TestDeleteWord_SelectionOnly(t *testing.T) {
	c := New(Config{Text: "one two"})
	c.SelectRange(textbuf.Pos(0, 0), textbuf.Pos(0, 4))
	c.DeleteCommonCharacterGroupBackwards()
	require.Equal(t, "two", c.Text())

	c.SelectRange(textbuf.Pos(0, 1), textbuf.Pos(0, 2))
	c.DeleteCommonCharacterGroupForwards()
	require.Equal(t, "to", c.Text())
}
