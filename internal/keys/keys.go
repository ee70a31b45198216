// Package keys contains keybinding definitions for the editor view.
package keys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings for the editor.
type KeyMap struct {
	// Navigation
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	WordLeft  key.Binding
	WordRight key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	DocStart  key.Binding
	DocEnd    key.Binding

	// Selection
	SelectLeft      key.Binding
	SelectRight     key.Binding
	SelectUp        key.Binding
	SelectDown      key.Binding
	SelectWordLeft  key.Binding
	SelectWordRight key.Binding
	SelectLineStart key.Binding
	SelectLineEnd   key.Binding
	SelectDocStart  key.Binding
	SelectDocEnd    key.Binding
	SelectAll       key.Binding
	ClearSelection  key.Binding

	// Editing
	Newline            key.Binding
	Tab                key.Binding
	DeleteBackward     key.Binding
	DeleteForward      key.Binding
	DeleteWordBackward key.Binding
	DeleteWordForward  key.Binding

	// Clipboard
	Copy  key.Binding
	Cut   key.Binding
	Paste key.Binding

	// General
	Save       key.Binding
	Reload     key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Navigation
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "right"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		WordLeft: key.NewBinding(
			key.WithKeys("ctrl+left", "alt+left", "alt+b"),
			key.WithHelp("ctrl+←", "word left"),
		),
		WordRight: key.NewBinding(
			key.WithKeys("ctrl+right", "alt+right", "alt+f"),
			key.WithHelp("ctrl+→", "word right"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "line end"),
		),
		DocStart: key.NewBinding(
			key.WithKeys("ctrl+home"),
			key.WithHelp("ctrl+home", "document start"),
		),
		DocEnd: key.NewBinding(
			key.WithKeys("ctrl+end"),
			key.WithHelp("ctrl+end", "document end"),
		),

		// Selection
		SelectLeft: key.NewBinding(
			key.WithKeys("shift+left"),
			key.WithHelp("shift+←", "select left"),
		),
		SelectRight: key.NewBinding(
			key.WithKeys("shift+right"),
			key.WithHelp("shift+→", "select right"),
		),
		SelectUp: key.NewBinding(
			key.WithKeys("shift+up"),
			key.WithHelp("shift+↑", "select up"),
		),
		SelectDown: key.NewBinding(
			key.WithKeys("shift+down"),
			key.WithHelp("shift+↓", "select down"),
		),
		SelectWordLeft: key.NewBinding(
			key.WithKeys("ctrl+shift+left"),
			key.WithHelp("ctrl+shift+←", "select word left"),
		),
		SelectWordRight: key.NewBinding(
			key.WithKeys("ctrl+shift+right"),
			key.WithHelp("ctrl+shift+→", "select word right"),
		),
		SelectLineStart: key.NewBinding(
			key.WithKeys("shift+home"),
			key.WithHelp("shift+home", "select to line start"),
		),
		SelectLineEnd: key.NewBinding(
			key.WithKeys("shift+end"),
			key.WithHelp("shift+end", "select to line end"),
		),
		SelectDocStart: key.NewBinding(
			key.WithKeys("ctrl+shift+home"),
			key.WithHelp("ctrl+shift+home", "select to document start"),
		),
		SelectDocEnd: key.NewBinding(
			key.WithKeys("ctrl+shift+end"),
			key.WithHelp("ctrl+shift+end", "select to document end"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "select all"),
		),
		ClearSelection: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear selection"),
		),

		// Editing
		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		DeleteBackward: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete left"),
		),
		DeleteForward: key.NewBinding(
			key.WithKeys("delete", "ctrl+d"),
			key.WithHelp("del", "delete right"),
		),
		DeleteWordBackward: key.NewBinding(
			key.WithKeys("ctrl+w", "alt+backspace"),
			key.WithHelp("ctrl+w", "delete word left"),
		),
		DeleteWordForward: key.NewBinding(
			key.WithKeys("alt+delete", "alt+d"),
			key.WithHelp("alt+del", "delete word right"),
		),

		// Clipboard
		Copy: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "copy"),
		),
		Cut: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cut"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),

		// General
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload from disk"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.ToggleHelp}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.WordLeft, k.WordRight, k.LineStart, k.LineEnd, k.DocStart, k.DocEnd},        // Navigation
		{k.SelectLeft, k.SelectRight, k.SelectWordLeft, k.SelectAll, k.ClearSelection}, // Selection
		{k.Tab, k.DeleteWordBackward, k.DeleteWordForward},                             // Editing
		{k.Copy, k.Cut, k.Paste},                                                       // Clipboard
		{k.Save, k.Reload, k.ToggleHelp, k.Quit},                                       // General
	}
}

// actions maps the config name of every binding to its field.
func (k *KeyMap) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"left":                  &k.Left,
		"right":                 &k.Right,
		"up":                    &k.Up,
		"down":                  &k.Down,
		"word_left":             &k.WordLeft,
		"word_right":            &k.WordRight,
		"line_start":            &k.LineStart,
		"line_end":              &k.LineEnd,
		"document_start":        &k.DocStart,
		"document_end":          &k.DocEnd,
		"select_left":           &k.SelectLeft,
		"select_right":          &k.SelectRight,
		"select_up":             &k.SelectUp,
		"select_down":           &k.SelectDown,
		"select_word_left":      &k.SelectWordLeft,
		"select_word_right":     &k.SelectWordRight,
		"select_line_start":     &k.SelectLineStart,
		"select_line_end":       &k.SelectLineEnd,
		"select_document_start": &k.SelectDocStart,
		"select_document_end":   &k.SelectDocEnd,
		"select_all":            &k.SelectAll,
		"clear_selection":       &k.ClearSelection,
		"newline":               &k.Newline,
		"tab":                   &k.Tab,
		"delete_backward":       &k.DeleteBackward,
		"delete_forward":        &k.DeleteForward,
		"delete_word_backward":  &k.DeleteWordBackward,
		"delete_word_forward":   &k.DeleteWordForward,
		"copy":                  &k.Copy,
		"cut":                   &k.Cut,
		"paste":                 &k.Paste,
		"save":                  &k.Save,
		"reload":                &k.Reload,
		"toggle_help":           &k.ToggleHelp,
		"quit":                  &k.Quit,
	}
}

// Actions returns the sorted names accepted by ApplyOverrides.
func Actions() []string {
	km := DefaultKeyMap()
	names := make([]string, 0, len(km.actions()))
	for name := range km.actions() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyOverrides returns a copy of k with the keys of each named action
// replaced. Values are comma separated key names, for example "ctrl+q,esc".
// The help text keeps its description and shows the first key.
func (k KeyMap) ApplyOverrides(overrides map[string]string) (KeyMap, error) {
	actions := k.actions()
	for name, spec := range overrides {
		binding, ok := actions[name]
		if !ok {
			return k, fmt.Errorf("unknown key action %q", name)
		}

		var keys []string
		for _, part := range strings.Split(spec, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keys = append(keys, part)
			}
		}
		if len(keys) == 0 {
			return k, fmt.Errorf("key action %q: no keys given", name)
		}

		desc := binding.Help().Desc
		*binding = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(keys[0], desc),
		)
	}
	return k, nil
}
