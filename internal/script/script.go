// Package script loads yaml editing scripts and replays them against an
// editor.Controller. Scripts drive the engine headlessly for `caret replay`
// and double as executable examples.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/caret/internal/editor"
	"github.com/zjrosen/caret/internal/textbuf"
)

var (
	// ErrUnknownOp is returned for a step whose op is not recognised.
	ErrUnknownOp = errors.New("unknown op")
	// ErrInvalidStep is returned for a step missing a required field or
	// carrying an invalid value.
	ErrInvalidStep = errors.New("invalid step")
	// ErrExpectation is returned when the final state differs from expect.
	ErrExpectation = errors.New("expectation failed")
)

// MaxRepeat is the largest repeat count a step may carry.
const MaxRepeat = 10000

// Script is the root structure of a script file.
type Script struct {
	Name    string  `yaml:"name"`
	Text    *string `yaml:"text"`     // initial document, nil means empty
	TabSize int     `yaml:"tab_size"` // 0 uses the editor default
	Steps   []Step  `yaml:"steps"`
	Expect  *Expect `yaml:"expect"`
}

// Step is one operation. Which fields are required depends on Op.
type Step struct {
	Op     string    `yaml:"op"`
	To     *Position `yaml:"to"`     // move_cursor target, select_range active end
	Anchor *Position `yaml:"anchor"` // select_range anchor
	Text   *string   `yaml:"text"`   // insert_text and set_source
	Active *bool     `yaml:"active"` // set_selection_mode
	Repeat int       `yaml:"repeat"` // 0 means once
}

// Position is a (line, character) pair in a script.
type Position struct {
	Line      int `yaml:"line"`
	Character int `yaml:"character"`
}

func (p Position) pos() textbuf.Position {
	return textbuf.Pos(p.Line, p.Character)
}

// Expect describes the state a script must end in. Unset fields are not checked.
type Expect struct {
	Lines     []string  `yaml:"lines"`
	Cursor    *Position `yaml:"cursor"`
	Selection *string   `yaml:"selection"`
}

// Parse decodes and validates a script. Unknown yaml fields are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is supplied by the user
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// LoadFS reads and parses the script name from fsys.
func LoadFS(fsys fs.FS, name string) (*Script, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

// Validate checks every step for a known op and its required fields.
func (s *Script) Validate() error {
	if s.TabSize < 0 {
		return fmt.Errorf("tab_size %d: %w", s.TabSize, ErrInvalidStep)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, st.Op, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	spec, ok := ops[st.Op]
	if !ok {
		return ErrUnknownOp
	}
	if st.Repeat < 0 {
		return fmt.Errorf("repeat must not be negative: %w", ErrInvalidStep)
	}
	if st.Repeat > MaxRepeat {
		return fmt.Errorf("repeat %d exceeds %d: %w", st.Repeat, MaxRepeat, ErrInvalidStep)
	}
	for _, f := range spec.needs {
		if !st.has(f) {
			return fmt.Errorf("missing %q: %w", f, ErrInvalidStep)
		}
	}
	return nil
}

func (st Step) has(f field) bool {
	switch f {
	case fieldTo:
		return st.To != nil
	case fieldAnchor:
		return st.Anchor != nil
	case fieldText:
		return st.Text != nil
	case fieldActive:
		return st.Active != nil
	}
	return false
}

// NewController creates a controller holding the script's initial text.
// A non-nil input replaces that text.
func (s *Script) NewController(input *string) *editor.Controller {
	text := ""
	switch {
	case input != nil:
		text = *input
	case s.Text != nil:
		text = *s.Text
	}
	return editor.New(editor.Config{Text: text, TabSize: s.TabSize})
}

// Check compares the controller's state with Expect.
func (s *Script) Check(c *editor.Controller) error {
	if s.Expect == nil {
		return nil
	}

	var problems []string
	if s.Expect.Lines != nil {
		if got := c.Lines(); !equalLines(got, s.Expect.Lines) {
			problems = append(problems, fmt.Sprintf("lines: got %q, want %q", got, s.Expect.Lines))
		}
	}
	if s.Expect.Cursor != nil {
		if got, want := c.CursorPosition(), s.Expect.Cursor.pos(); got != want {
			problems = append(problems, fmt.Sprintf("cursor: got %s, want %s", got, want))
		}
	}
	if s.Expect.Selection != nil {
		if got := c.SelectionText(); got != *s.Expect.Selection {
			problems = append(problems, fmt.Sprintf("selection: got %q, want %q", got, *s.Expect.Selection))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrExpectation, strings.Join(problems, "; "))
	}
	return nil
}

func equalLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
