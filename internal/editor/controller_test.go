package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/textbuf"
)

// newTestController creates a controller holding text with the caret at pos.
func newTestController(t *testing.T, text string, pos textbuf.Position) *Controller {
	t.Helper()
	c := New(Config{Text: text})
	c.SetCursorPosition(pos)
	require.Equal(t, pos, c.CursorPosition(), "test setup placed caret out of bounds")
	return c
}

// recorder collects notifications in the order they fire.
type recorder struct {
	events []string
	moves  []textbuf.Position
}

func (r *recorder) CodeChanged() {
	r.events = append(r.events, "code")
}

func (r *recorder) CursorMoved(pos textbuf.Position) {
	r.events = append(r.events, "cursor")
	r.moves = append(r.moves, pos)
}

func TestNew_Defaults(t *testing.T) {
	c := New(Config{})
	assert.Equal(t, 1, c.LineCount())
	assert.Equal(t, 0, c.LineLength(0))
	assert.Equal(t, textbuf.Pos(0, 0), c.CursorPosition())
	assert.Equal(t, DefaultTabSize, c.TabSize())
	assert.False(t, c.HasSelection())
	assert.False(t, c.IsSelecting())
	assert.Equal(t, 0, c.Revision())
}

func TestNew_WithText(t *testing.T) {
	c := New(Config{Text: "one\r\ntwo", TabSize: 8})
	assert.Equal(t, []string{"one", "two"}, c.Lines())
	assert.Equal(t, "two", c.Line(1))
	assert.Equal(t, textbuf.CRLF, c.LineEnding())
	assert.Equal(t, "one\r\ntwo", c.Text())
	assert.Equal(t, 8, c.TabSize())
	assert.Equal(t, textbuf.Pos(1, 3), c.LastCharacterPosition())
}

func TestSetTabSize_IgnoresNonPositive(t *testing.T) {
	c := New(Config{})
	c.SetTabSize(2)
	require.Equal(t, 2, c.TabSize())
	c.SetTabSize(0)
	c.SetTabSize(-3)
	require.Equal(t, 2, c.TabSize())
}

func TestSetSource_ResetsState(t *testing.T) {
	c := newTestController(t, "abc\ndef", textbuf.Pos(1, 2))
	c.SetSelectionMode(true)
	c.MoveCursorLeft()
	require.True(t, c.HasSelection())

	rec := &recorder{}
	c.Subscribe(rec)
	c.SetSource("xyz")

	assert.Equal(t, []string{"xyz"}, c.Lines())
	assert.Equal(t, textbuf.Pos(0, 0), c.CursorPosition())
	assert.False(t, c.HasSelection())
	assert.False(t, c.IsSelecting())
	assert.Equal(t, []string{"code", "cursor"}, rec.events)

	// Preferred column is reset too.
	c.SetSource("abcdef\nabcdef")
	c.MoveCursorDown()
	assert.Equal(t, textbuf.Pos(1, 0), c.CursorPosition())
}

func TestSetSource_AlwaysReportsCursor(t *testing.T) {
	c := New(Config{Text: "abc"})
	rec := &recorder{}
	c.Subscribe(rec)

	c.SetSource("abc")
	assert.Equal(t, []string{"code", "cursor"}, rec.events)
	assert.Equal(t, []textbuf.Position{textbuf.Pos(0, 0)}, rec.moves)
}

func TestSetCursorPosition_Clamps(t *testing.T) {
	c := New(Config{Text: "abc\nde"})

	tests := []struct {
		name string
		in   textbuf.Position
		want textbuf.Position
	}{
		{"inside", textbuf.Pos(0, 2), textbuf.Pos(0, 2)},
		{"line end", textbuf.Pos(1, 2), textbuf.Pos(1, 2)},
		{"past line end", textbuf.Pos(1, 9), textbuf.Pos(1, 2)},
		{"past last line", textbuf.Pos(7, 1), textbuf.Pos(1, 1)},
		{"negative", textbuf.Pos(-1, -5), textbuf.Pos(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetCursorPosition(tt.in)
			require.Equal(t, tt.want, c.CursorPosition())
		})
	}
}

func TestSetCursorLine_KeepsPreferredColumn(t *testing.T) {
	c := newTestController(t, "abcdef\nab\nabcdef", textbuf.Pos(0, 5))

	c.SetCursorLine(1)
	require.Equal(t, textbuf.Pos(1, 2), c.CursorPosition())

	c.MoveCursorDown()
	require.Equal(t, textbuf.Pos(2, 5), c.CursorPosition())
}

func TestSetCursorCharacter(t *testing.T) {
	c := newTestController(t, "abcdef\nab", textbuf.Pos(1, 0))

	c.SetCursorCharacter(99)
	require.Equal(t, textbuf.Pos(1, 2), c.CursorPosition())

	c.MoveCursorUp()
	require.Equal(t, textbuf.Pos(0, 2), c.CursorPosition())
}

func TestCursorDisplayColumn(t *testing.T) {
	c := newTestController(t, "a中b", textbuf.Pos(0, 2))
	assert.Equal(t, 3, c.CursorDisplayColumn())

	c.MoveCursorLineEnd()
	assert.Equal(t, 4, c.CursorDisplayColumn())
}

func TestSelectionMode_ExtendsAndCollapses(t *testing.T) {
	c := newTestController(t, "hello world", textbuf.Pos(0, 0))

	c.SetSelectionMode(true)
	for range 5 {
		c.MoveCursorRight()
	}
	require.True(t, c.HasSelection())
	require.Equal(t, textbuf.NewSpan(textbuf.Pos(0, 0), textbuf.Pos(0, 5)), c.SelectionSpan())
	require.Equal(t, "hello", c.SelectionText())

	c.SetSelectionMode(false)
	require.False(t, c.HasSelection())
	require.Equal(t, "", c.SelectionText())
	require.Equal(t, textbuf.Pos(0, 5), c.CursorPosition())
}

func TestSelectionMode_BackwardSelectionIsNormalized(t *testing.T) {
	c := newTestController(t, "one\ntwo\nthree", textbuf.Pos(2, 3))

	c.SetSelectionMode(true)
	c.MoveCursorUp()
	c.MoveCursorLineStart()

	span := c.SelectionSpan()
	require.Equal(t, textbuf.Pos(1, 0), span.Start)
	require.Equal(t, textbuf.Pos(2, 3), span.End)
	require.Equal(t, "two\nthr", c.SelectionText())
}

func TestSelectAll(t *testing.T) {
	c := newTestController(t, "abc\ndef", textbuf.Pos(0, 1))

	c.SelectAll()
	require.True(t, c.HasSelection())
	require.False(t, c.IsSelecting(), "mode flag untouched")
	require.Equal(t, textbuf.Pos(1, 3), c.CursorPosition())
	require.Equal(t, "abc\ndef", c.SelectionText())

	// A plain move collapses the selection.
	c.MoveCursorLeft()
	require.False(t, c.HasSelection())
}

func TestSelectAll_EmptyDocument(t *testing.T) {
	c := New(Config{})
	c.SelectAll()
	require.False(t, c.HasSelection())
	require.Equal(t, "", c.SelectionText())
}

func TestSelectRange_Clamps(t *testing.T) {
	c := New(Config{Text: "abc\ndef"})
	c.SelectRange(textbuf.Pos(1, 99), textbuf.Pos(0, 1))

	require.Equal(t, textbuf.Pos(0, 1), c.CursorPosition())
	require.Equal(t, textbuf.NewSpan(textbuf.Pos(0, 1), textbuf.Pos(1, 3)), c.SelectionSpan())
	require.Equal(t, "bc\ndef", c.SelectionText())
}

func TestObserver_Order(t *testing.T) {
	c := newTestController(t, "abc", textbuf.Pos(0, 3))
	rec := &recorder{}
	c.Subscribe(rec)

	c.InsertText("d")
	require.Equal(t, []string{"code", "cursor"}, rec.events)
	require.Equal(t, []textbuf.Position{textbuf.Pos(0, 4)}, rec.moves)
	require.Equal(t, 1, c.Revision())
}

func TestObserver_SeesCommittedState(t *testing.T) {
	c := newTestController(t, "abc", textbuf.Pos(0, 3))

	var seenText string
	var seenCursor textbuf.Position
	c.Subscribe(ObserverFuncs{
		OnCodeChanged: func() { seenText = c.Text() },
		OnCursorMoved: func(textbuf.Position) { seenCursor = c.CursorPosition() },
	})

	c.InsertText("\nxy")
	require.Equal(t, "abc\nxy", seenText)
	require.Equal(t, textbuf.Pos(1, 2), seenCursor)
}

func TestObserver_OnePairPerOperation(t *testing.T) {
	c := newTestController(t, "hello world", textbuf.Pos(0, 0))
	c.SelectAll()

	rec := &recorder{}
	c.Subscribe(rec)

	// Deleting the selection and inserting fire as one notification pair.
	c.InsertTab()
	require.Equal(t, []string{"code", "cursor"}, rec.events)
	require.Equal(t, "    ", c.Text())
}

func TestObserver_NoEventsForNoop(t *testing.T) {
	c := New(Config{Text: "abc"})
	rec := &recorder{}
	c.Subscribe(rec)

	c.MoveCursorLeft()
	c.DeleteCurrentCharacterBackwards()
	c.MoveCursorUp()
	c.InsertText("")
	c.DeleteCurrentSelection()

	require.Empty(t, rec.events)
	require.Equal(t, 0, c.Revision())
}

func TestObserver_SelectionOnlyChangeReportsCursor(t *testing.T) {
	c := newTestController(t, "abc", textbuf.Pos(0, 3))
	c.SetSelectionMode(true)
	c.MoveCursorLeft()

	rec := &recorder{}
	c.Subscribe(rec)

	// Caret stays, selection collapses.
	c.SetSelectionMode(false)
	require.Equal(t, []string{"cursor"}, rec.events)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	c := New(Config{Text: "abc"})
	first := &recorder{}
	second := &recorder{}
	unsubscribe := c.Subscribe(first)
	c.Subscribe(second)

	c.MoveCursorRight()
	unsubscribe()
	unsubscribe()
	c.MoveCursorRight()

	require.Len(t, first.moves, 1)
	require.Len(t, second.moves, 2)
}

func TestSubscribe_UnsubscribeDuringNotification(t *testing.T) {
	c := New(Config{Text: "abc"})
	calls := 0
	var unsubscribe func()
	unsubscribe = c.Subscribe(ObserverFuncs{OnCursorMoved: func(textbuf.Position) {
		calls++
		unsubscribe()
	}})
	after := &recorder{}
	c.Subscribe(after)

	c.MoveCursorRight()
	c.MoveCursorRight()

	require.Equal(t, 1, calls)
	require.Len(t, after.moves, 2)
}

func TestObserverFuncs_NilCallbacks(t *testing.T) {
	c := New(Config{Text: "abc"})
	c.Subscribe(ObserverFuncs{})
	require.NotPanics(t, func() { c.InsertText("x") })
}
