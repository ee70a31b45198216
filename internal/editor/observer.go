package editor

import "github.com/zjrosen/caret/internal/textbuf"

// Observer receives change notifications from a Controller. Methods are
// called synchronously after the operation has committed its state, so the
// Controller can be queried from inside them.
type Observer interface {
	// CodeChanged is called when the document text changed.
	CodeChanged()
	// CursorMoved is called with the new caret position when the caret or
	// the selection changed.
	CursorMoved(pos textbuf.Position)
}

// ObserverFuncs adapts optional callbacks to an Observer.
type ObserverFuncs struct {
	OnCodeChanged func()
	OnCursorMoved func(pos textbuf.Position)
}

func (f ObserverFuncs) CodeChanged() {
	if f.OnCodeChanged != nil {
		f.OnCodeChanged()
	}
}

func (f ObserverFuncs) CursorMoved(pos textbuf.Position) {
	if f.OnCursorMoved != nil {
		f.OnCursorMoved(pos)
	}
}

type subscription struct {
	observer Observer
}

// Subscribe registers o and returns a function that removes it. Observers
// are notified in registration order.
func (c *Controller) Subscribe(o Observer) (unsubscribe func()) {
	sub := &subscription{observer: o}
	c.subs = append(c.subs, sub)

	return func() {
		for i, s := range c.subs {
			if s == sub {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notifyCodeChanged() {
	for _, s := range c.observers() {
		s.observer.CodeChanged()
	}
}

func (c *Controller) notifyCursorMoved(pos textbuf.Position) {
	for _, s := range c.observers() {
		s.observer.CursorMoved(pos)
	}
}

// observers returns a snapshot so callbacks may subscribe or unsubscribe.
func (c *Controller) observers() []*subscription {
	out := make([]*subscription, len(c.subs))
	copy(out, c.subs)
	return out
}
