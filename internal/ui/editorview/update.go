package editorview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/caret/internal/flags"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/textbuf"
)

// textZoneID marks the document area for mouse hit testing.
const textZoneID = "caret-text"

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		m.scrollToCursor()
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		m.scrollToCursor()
		return m, nil

	case pasteMsg:
		if msg.Err != nil {
			m.setStatus(statusError, "paste failed: "+msg.Err.Error())
			return m, nil
		}
		if msg.Text != "" {
			m.ctrl.InsertText(normalizeNewlines(msg.Text))
		}
		m.scrollToCursor()
		return m, nil

	case SavedMsg:
		if msg.Err != nil {
			m.setStatus(statusError, "save failed: "+msg.Err.Error())
			return m, nil
		}
		m.savedRevision = msg.Revision
		m.diskText = msg.Text
		m.pendingDisk = nil
		m.setStatus(statusOK, fmt.Sprintf("saved %d lines", m.ctrl.LineCount()))
		return m, nil

	case FileChangedMsg:
		return m, tea.Batch(m.readDiskCmd(), m.waitForChange())

	case diskContentMsg:
		if msg.Err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to read changed file", msg.Err, "path", m.path)
			return m, nil
		}
		if msg.Text == m.diskText {
			return m, nil
		}
		text := msg.Text
		m.pendingDisk = &text
		reload := m.keys.Reload.Help().Key
		m.setStatus(statusWarn, "file changed on disk, "+reload+" to reload")
		return m, nil

	case logEvent:
		m.lastLog = strings.TrimSpace(msg.Payload)
		return m, m.waitForLog()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if !key.Matches(msg, m.keys.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.Dirty() && !m.quitArmed {
			m.quitArmed = true
			m.setStatus(statusWarn, "unsaved changes, "+m.keys.Quit.Help().Key+" again to quit")
			return nil
		}
		m.rememberCursor()
		m.quitting = true
		return tea.Quit

	case key.Matches(msg, m.keys.Save):
		if m.path == "" {
			m.setStatus(statusError, "no file name")
			return nil
		}
		return m.saveCmd()

	case key.Matches(msg, m.keys.Reload):
		if m.pendingDisk == nil {
			return nil
		}
		m.reload(*m.pendingDisk)
		return nil

	case key.Matches(msg, m.keys.ToggleHelp):
		m.help.ShowAll = !m.help.ShowAll
		return nil

	case key.Matches(msg, m.keys.Copy):
		m.copySelection(false)
		return nil
	case key.Matches(msg, m.keys.Cut):
		m.copySelection(true)
		return nil
	case key.Matches(msg, m.keys.Paste):
		return m.pasteCmd()

	case key.Matches(msg, m.keys.SelectAll):
		m.ctrl.SelectAll()
		return nil
	case key.Matches(msg, m.keys.ClearSelection):
		m.ctrl.SetSelectionMode(false)
		return nil
	}

	if move, extend, ok := m.motionFor(msg); ok {
		m.move(extend, move)
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Newline):
		m.ctrl.InsertLine()
	case key.Matches(msg, m.keys.Tab):
		m.ctrl.InsertTab()
	case key.Matches(msg, m.keys.DeleteWordBackward):
		m.ctrl.DeleteCommonCharacterGroupBackwards()
	case key.Matches(msg, m.keys.DeleteWordForward):
		m.ctrl.DeleteCommonCharacterGroupForwards()
	case key.Matches(msg, m.keys.DeleteBackward):
		m.ctrl.DeleteCurrentCharacterBackwards()
	case key.Matches(msg, m.keys.DeleteForward):
		m.ctrl.DeleteCurrentCharacterForwards()
	case (msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace) && !msg.Alt:
		m.ctrl.InsertText(normalizeNewlines(string(msg.Runes)))
	}
	return nil
}

// motionFor returns the controller motion bound to msg and whether it
// extends the selection.
func (m Model) motionFor(msg tea.KeyMsg) (func(), bool, bool) {
	c := m.ctrl
	bindings := []struct {
		plain, extend key.Binding
		move          func()
	}{
		{m.keys.Left, m.keys.SelectLeft, c.MoveCursorLeft},
		{m.keys.Right, m.keys.SelectRight, c.MoveCursorRight},
		{m.keys.Up, m.keys.SelectUp, c.MoveCursorUp},
		{m.keys.Down, m.keys.SelectDown, c.MoveCursorDown},
		{m.keys.WordLeft, m.keys.SelectWordLeft, c.MoveCursorLeftWord},
		{m.keys.WordRight, m.keys.SelectWordRight, c.MoveCursorNextWord},
		{m.keys.LineStart, m.keys.SelectLineStart, c.MoveCursorLineStart},
		{m.keys.LineEnd, m.keys.SelectLineEnd, c.MoveCursorLineEnd},
		{m.keys.DocStart, m.keys.SelectDocStart, c.MoveCursorDocumentStart},
		{m.keys.DocEnd, m.keys.SelectDocEnd, c.MoveCursorDocumentEnd},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.extend) {
			return b.move, true, true
		}
		if key.Matches(msg, b.plain) {
			return b.move, false, true
		}
	}
	return nil, false, false
}

// move runs a motion, entering selection mode first for shifted motions and
// leaving it for plain ones.
func (m *Model) move(extend bool, motion func()) {
	if extend != m.ctrl.IsSelecting() {
		m.ctrl.SetSelectionMode(extend)
	}
	motion()
}

func (m *Model) copySelection(cut bool) {
	if !m.ctrl.HasSelection() {
		return
	}
	text := m.ctrl.SelectionText()
	if err := m.clip.Copy(text); err != nil {
		m.setStatus(statusError, "copy failed: "+err.Error())
		return
	}
	if cut {
		m.ctrl.DeleteCurrentSelection()
	}
	m.setStatus(statusInfo, fmt.Sprintf("copied %d characters", len([]rune(text))))
}

// reload replaces the document with text from disk, keeping the caret where
// the new text allows.
func (m *Model) reload(text string) {
	pos := m.ctrl.CursorPosition()
	m.ctrl.SetSource(text)
	m.ctrl.SetCursorPosition(pos)
	m.savedRevision = m.ctrl.Revision()
	m.diskText = text
	m.pendingDisk = nil
	m.setStatus(statusOK, "reloaded from disk")
	log.Info(log.CatBuffer, "Reloaded", "path", m.path)
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	if !m.flags.Enabled(flags.FlagMouse) || msg.Button != tea.MouseButtonLeft {
		return
	}
	z := zone.Get(textZoneID)
	if z == nil || !z.InBounds(msg) {
		return
	}
	x, y := z.Pos(msg)
	pos := m.positionAt(x, y)

	switch msg.Action {
	case tea.MouseActionPress:
		if m.ctrl.IsSelecting() {
			m.ctrl.SetSelectionMode(false)
		}
		m.ctrl.SetCursorPosition(pos)
	case tea.MouseActionMotion:
		if !m.ctrl.IsSelecting() {
			m.ctrl.SetSelectionMode(true)
		}
		m.ctrl.SetCursorPosition(pos)
	}
}

// positionAt maps a cell inside the text area to a document position.
func (m Model) positionAt(x, y int) textbuf.Position {
	line := m.top + y
	if line >= m.ctrl.LineCount() {
		return m.ctrl.LastCharacterPosition()
	}
	col := x - m.gutterWidth() + m.left
	return textbuf.Pos(line, columnAtDisplay(m.ctrl.Line(line), col))
}

// scrollToCursor adjusts the viewport so the caret is visible.
func (m *Model) scrollToCursor() {
	pos := m.ctrl.CursorPosition()
	rows := m.textHeight()
	if pos.Line < m.top {
		m.top = pos.Line
	} else if pos.Line >= m.top+rows {
		m.top = pos.Line - rows + 1
	}
	m.top = max(0, min(m.top, m.ctrl.LineCount()-1))

	cols := m.textWidth()
	x := displayColumn(m.ctrl.Line(pos.Line), pos.Character)
	if x < m.left {
		m.left = x
	} else if x >= m.left+cols {
		m.left = x - cols + 1
	}
	m.left = max(0, m.left)
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "\r\n", "\n"), "\r", "\n")
}
