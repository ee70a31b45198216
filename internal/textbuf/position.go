package textbuf

import "fmt"

// Position is a caret location. Character is a grapheme index in the line;
// Character equal to the line length is the end-of-line caret.
type Position struct {
	Line      int
	Character int
}

// Pos is shorthand for Position{Line: line, Character: character}.
func Pos(line, character int) Position {
	return Position{Line: line, Character: character}
}

// Compare orders positions by line, then character.
// Returns -1 if p < o, 0 if equal, 1 if p > o.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Character < o.Character:
		return -1
	case p.Character > o.Character:
		return 1
	default:
		return 0
	}
}

// Before reports whether p sorts strictly before o.
func (p Position) Before(o Position) bool {
	return p.Compare(o) < 0
}

// IsStart reports whether p is the document start (0,0).
func (p Position) IsStart() bool {
	return p.Line == 0 && p.Character == 0
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Line, p.Character)
}

// Span is a half-open range [Start, End) with Start <= End.
type Span struct {
	Start Position
	End   Position
}

// NewSpan returns the span covering a and b in document order.
func NewSpan(a, b Position) Span {
	if b.Before(a) {
		a, b = b, a
	}
	return Span{Start: a, End: b}
}

// IsEmpty reports whether the span covers no characters.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether the character at p lies inside the span.
func (s Span) Contains(p Position) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}

func (s Span) String() string {
	return fmt.Sprintf("[%s-%s)", s.Start, s.End)
}
