// Package selection tracks the anchor and active ends of a text selection.
package selection

import "github.com/zjrosen/caret/internal/textbuf"

// Span is a selection between a fixed anchor and a moving active end.
// When both ends are equal there is no selection and the span is just the caret.
type Span struct {
	anchor textbuf.Position
	active textbuf.Position
}

// New returns a collapsed span at the document start.
func New() *Span {
	return &Span{}
}

// SetBoth collapses the span onto pos.
func (s *Span) SetBoth(pos textbuf.Position) {
	s.anchor = pos
	s.active = pos
}

// SetStart moves the anchor.
func (s *Span) SetStart(pos textbuf.Position) {
	s.anchor = pos
}

// SetEnd moves the active end. Returns true if it changed.
func (s *Span) SetEnd(pos textbuf.Position) bool {
	if s.active == pos {
		return false
	}
	s.active = pos
	return true
}

// SetRange sets both ends in one step.
func (s *Span) SetRange(anchor, active textbuf.Position) {
	s.anchor = anchor
	s.active = active
}

// Anchor returns the fixed end.
func (s *Span) Anchor() textbuf.Position {
	return s.anchor
}

// Active returns the moving end.
func (s *Span) Active() textbuf.Position {
	return s.active
}

// HasSelection reports whether the span covers at least one character.
func (s *Span) HasSelection() bool {
	return s.anchor != s.active
}

// IsBackward reports whether the active end sits before the anchor.
func (s *Span) IsBackward() bool {
	return s.active.Before(s.anchor)
}

// Normalized returns the span in document order regardless of drag direction.
func (s *Span) Normalized() textbuf.Span {
	return textbuf.NewSpan(s.anchor, s.active)
}
