package script

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/caret/internal/editor"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/textbuf"
	"github.com/zjrosen/caret/internal/tracing"
)

type field string

const (
	fieldTo     field = "to"
	fieldAnchor field = "anchor"
	fieldText   field = "text"
	fieldActive field = "active"
)

type opSpec struct {
	needs []field
	run   func(c *editor.Controller, st Step)
}

// ops maps script op names to controller operations.
var ops = map[string]opSpec{
	"set_source": {needs: []field{fieldText}, run: func(c *editor.Controller, st Step) {
		c.SetSource(*st.Text)
	}},
	"move_cursor": {needs: []field{fieldTo}, run: func(c *editor.Controller, st Step) {
		c.SetCursorPosition(st.To.pos())
	}},
	"move_left":           {run: simple((*editor.Controller).MoveCursorLeft)},
	"move_right":          {run: simple((*editor.Controller).MoveCursorRight)},
	"move_up":             {run: simple((*editor.Controller).MoveCursorUp)},
	"move_down":           {run: simple((*editor.Controller).MoveCursorDown)},
	"move_line_start":     {run: simple((*editor.Controller).MoveCursorLineStart)},
	"move_line_end":       {run: simple((*editor.Controller).MoveCursorLineEnd)},
	"move_document_start": {run: simple((*editor.Controller).MoveCursorDocumentStart)},
	"move_document_end":   {run: simple((*editor.Controller).MoveCursorDocumentEnd)},
	"move_left_word":      {run: simple((*editor.Controller).MoveCursorLeftWord)},
	"move_next_word":      {run: simple((*editor.Controller).MoveCursorNextWord)},
	"set_selection_mode": {needs: []field{fieldActive}, run: func(c *editor.Controller, st Step) {
		c.SetSelectionMode(*st.Active)
	}},
	"select_all": {run: simple((*editor.Controller).SelectAll)},
	"select_range": {needs: []field{fieldAnchor, fieldTo}, run: func(c *editor.Controller, st Step) {
		c.SelectRange(st.Anchor.pos(), st.To.pos())
	}},
	"delete_selection": {run: simple((*editor.Controller).DeleteCurrentSelection)},
	"insert_text": {needs: []field{fieldText}, run: func(c *editor.Controller, st Step) {
		c.InsertText(*st.Text)
	}},
	"insert_line":          {run: simple((*editor.Controller).InsertLine)},
	"insert_tab":           {run: simple((*editor.Controller).InsertTab)},
	"delete_backward":      {run: simple((*editor.Controller).DeleteCurrentCharacterBackwards)},
	"delete_forward":       {run: simple((*editor.Controller).DeleteCurrentCharacterForwards)},
	"delete_word_backward": {run: simple((*editor.Controller).DeleteCommonCharacterGroupBackwards)},
	"delete_word_forward":  {run: simple((*editor.Controller).DeleteCommonCharacterGroupForwards)},
}

func simple(fn func(*editor.Controller)) func(*editor.Controller, Step) {
	return func(c *editor.Controller, _ Step) { fn(c) }
}

// OpNames returns the known op names in sorted order.
func OpNames() []string {
	return slices.Sorted(maps.Keys(ops))
}

// Run applies every step to c in order. Scripts from Parse are already
// validated; Run validates again so hand-built scripts fail the same way.
func (s *Script) Run(c *editor.Controller) error {
	return s.RunTraced(context.Background(), nil, c)
}

// RunTraced is Run with a span per step under a script.replay span. A nil
// tracer disables tracing.
func (s *Script) RunTraced(ctx context.Context, tracer trace.Tracer, c *editor.Controller) error {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	ctx, root := tracer.Start(ctx, tracing.SpanReplay, trace.WithAttributes(
		attribute.String(tracing.AttrScriptName, s.Name),
		attribute.Int(tracing.AttrScriptSteps, len(s.Steps)),
	))
	defer root.End()

	if err := s.Validate(); err != nil {
		root.RecordError(err)
		root.SetStatus(codes.Error, err.Error())
		return err
	}

	for i, st := range s.Steps {
		times := max(st.Repeat, 1)
		s.runStep(ctx, tracer, c, i, st, times)
		log.Debug(log.CatScript, "step applied", "index", i, "op", st.Op, "repeat", times, "cursor", c.CursorPosition())
	}
	root.SetAttributes(cursorAttributes(c)...)
	return nil
}

func (s *Script) runStep(ctx context.Context, tracer trace.Tracer, c *editor.Controller, index int, st Step, times int) {
	_, span := tracer.Start(ctx, tracing.SpanStepPrefix+st.Op, trace.WithAttributes(
		attribute.Int(tracing.AttrStepIndex, index),
		attribute.String(tracing.AttrStepOp, st.Op),
		attribute.Int(tracing.AttrStepRepeat, times),
	))
	defer span.End()

	if span.IsRecording() {
		unsubscribe := c.Subscribe(editor.ObserverFuncs{
			OnCodeChanged: func() { span.AddEvent(tracing.EventCodeChanged) },
			OnCursorMoved: func(pos textbuf.Position) {
				span.AddEvent(tracing.EventCursorMoved, trace.WithAttributes(
					attribute.Int(tracing.AttrCursorLine, pos.Line),
					attribute.Int(tracing.AttrCursorCharacter, pos.Character),
				))
			},
		})
		defer unsubscribe()
	}

	for range times {
		ops[st.Op].run(c, st)
	}
	span.SetAttributes(cursorAttributes(c)...)
}

func cursorAttributes(c *editor.Controller) []attribute.KeyValue {
	pos := c.CursorPosition()
	return []attribute.KeyValue{
		attribute.Int(tracing.AttrCursorLine, pos.Line),
		attribute.Int(tracing.AttrCursorCharacter, pos.Character),
		attribute.Int(tracing.AttrRevision, c.Revision()),
		attribute.Int(tracing.AttrLineCount, c.LineCount()),
	}
}

// Replay creates a controller, runs the script on it and checks Expect.
// The controller is returned even when the expectation fails so callers can
// show the actual state.
func (s *Script) Replay(input *string, observer editor.Observer) (*editor.Controller, error) {
	return s.ReplayTraced(context.Background(), nil, input, observer)
}

// ReplayTraced is Replay with spans recorded on tracer.
func (s *Script) ReplayTraced(ctx context.Context, tracer trace.Tracer, input *string, observer editor.Observer) (*editor.Controller, error) {
	c := s.NewController(input)
	if observer != nil {
		unsubscribe := c.Subscribe(observer)
		defer unsubscribe()
	}

	if err := s.RunTraced(ctx, tracer, c); err != nil {
		return c, fmt.Errorf("running script: %w", err)
	}
	if input == nil {
		if err := s.Check(c); err != nil {
			log.Warn(log.CatScript, "expectation failed", "script", s.Name, "error", err)
			return c, err
		}
	}
	return c, nil
}
