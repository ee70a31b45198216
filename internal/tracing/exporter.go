package tracing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

var errExporterClosed = errors.New("trace exporter is shut down")

// FileExporter appends replay spans to a JSONL file, one SpanRecord per line.
type FileExporter struct {
	mu  sync.Mutex
	enc *json.Encoder
	f   *os.File
}

// NewFileExporter opens path for appending, creating parent directories.
func NewFileExporter(path string) (*FileExporter, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- path comes from config
	if err != nil {
		return nil, fmt.Errorf("open trace file: %w", err)
	}
	return &FileExporter{enc: json.NewEncoder(f), f: f}, nil
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *FileExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	if len(spans) == 0 {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return errExporterClosed
	}
	for _, span := range spans {
		if err := e.enc.Encode(recordOf(span)); err != nil {
			return fmt.Errorf("write span %s: %w", span.Name(), err)
		}
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter. Calling it twice is allowed.
func (e *FileExporter) Shutdown(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.f == nil {
		return nil
	}
	err := e.f.Close()
	e.f, e.enc = nil, nil
	return err
}

// Cursor is a caret position in a trace record.
type Cursor struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// SpanRecord is one line of the trace file: a script.replay span or one of
// its step.<op> children, flattened to the fields a replay records.
type SpanRecord struct {
	Trace  string `json:"trace"`
	Span   string `json:"span"`
	Parent string `json:"parent,omitempty"`
	Name   string `json:"name"`

	Script string `json:"script,omitempty"`
	Steps  int    `json:"steps,omitempty"`

	Index  *int   `json:"index,omitempty"`
	Op     string `json:"op,omitempty"`
	Repeat int    `json:"repeat,omitempty"`

	Cursor   *Cursor `json:"cursor,omitempty"`
	Revision int     `json:"revision"`
	Lines    int     `json:"lines,omitempty"`

	DurationUs int64         `json:"duration_us"`
	Error      string        `json:"error,omitempty"`
	Events     []EventRecord `json:"events,omitempty"`
}

// EventRecord is a notification seen during a step. Cursor is set for
// cursor.moved events.
type EventRecord struct {
	Name   string  `json:"name"`
	Cursor *Cursor `json:"cursor,omitempty"`
}

// attrs indexes a span's attributes by key.
type attrs map[attribute.Key]attribute.Value

func attrsOf(kvs []attribute.KeyValue) attrs {
	out := make(attrs, len(kvs))
	for _, kv := range kvs {
		out[kv.Key] = kv.Value
	}
	return out
}

func (a attrs) intValue(key string) (int, bool) {
	v, ok := a[attribute.Key(key)]
	if !ok || v.Type() != attribute.INT64 {
		return 0, false
	}
	return int(v.AsInt64()), true
}

func (a attrs) stringValue(key string) string {
	v, ok := a[attribute.Key(key)]
	if !ok || v.Type() != attribute.STRING {
		return ""
	}
	return v.AsString()
}

func (a attrs) cursor() *Cursor {
	line, ok := a.intValue(AttrCursorLine)
	if !ok {
		return nil
	}
	char, _ := a.intValue(AttrCursorCharacter)
	return &Cursor{Line: line, Character: char}
}

func recordOf(span sdktrace.ReadOnlySpan) SpanRecord {
	a := attrsOf(span.Attributes())
	r := SpanRecord{
		Trace:      span.SpanContext().TraceID().String(),
		Span:       span.SpanContext().SpanID().String(),
		Name:       span.Name(),
		Script:     a.stringValue(AttrScriptName),
		Op:         a.stringValue(AttrStepOp),
		Cursor:     a.cursor(),
		DurationUs: span.EndTime().Sub(span.StartTime()).Microseconds(),
	}
	if span.Parent().IsValid() {
		r.Parent = span.Parent().SpanID().String()
	}
	r.Steps, _ = a.intValue(AttrScriptSteps)
	r.Repeat, _ = a.intValue(AttrStepRepeat)
	r.Revision, _ = a.intValue(AttrRevision)
	r.Lines, _ = a.intValue(AttrLineCount)
	if i, ok := a.intValue(AttrStepIndex); ok {
		r.Index = &i
	}
	if span.Status().Code == codes.Error {
		r.Error = span.Status().Description
	}

	for _, evt := range span.Events() {
		r.Events = append(r.Events, EventRecord{
			Name:   evt.Name,
			Cursor: attrsOf(evt.Attributes).cursor(),
		})
	}
	return r
}
