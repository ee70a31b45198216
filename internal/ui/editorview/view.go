package editorview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/caret/internal/flags"
	"github.com/zjrosen/caret/internal/grapheme"
	"github.com/zjrosen/caret/internal/textbuf"
)

// renderKey identifies a rendered line in the cache.
type renderKey string

// renderInput is what a plain line rendering depends on.
type renderInput struct {
	line  string
	left  int
	width int
}

func (in renderInput) key() renderKey {
	return renderKey(strconv.Itoa(in.left) + ":" + strconv.Itoa(in.width) + ":" + in.line)
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	mouse := m.flags.Enabled(flags.FlagMouse)
	area := m.renderText()
	if mouse {
		area = zone.Mark(textZoneID, area)
	}

	rows := []string{area}
	if m.ui.ShowStatusBar {
		rows = append(rows, m.renderStatus())
	}
	if m.ui.ShowHelp {
		rows = append(rows, m.help.View(m.keys))
	}

	out := strings.Join(rows, "\n")
	if mouse {
		out = zone.Scan(out)
	}
	return out
}

func (m Model) renderText() string {
	cursor := m.ctrl.CursorPosition()
	span := m.ctrl.SelectionSpan()
	hasSelection := m.ctrl.HasSelection()
	width := m.textWidth()

	rows := make([]string, 0, m.textHeight())
	for r := range m.textHeight() {
		i := m.top + r
		if i >= m.ctrl.LineCount() {
			rows = append(rows, m.theme.Muted.Render("~"))
			continue
		}

		var body string
		if i == cursor.Line || (hasSelection && i >= span.Start.Line && i <= span.End.Line) {
			body = m.renderActiveLine(i, cursor, span, hasSelection)
		} else {
			in := renderInput{line: m.ctrl.Line(i), left: m.left, width: width}
			body = m.theme.Text.Render(m.lines.Get(in.key(), in))
		}
		rows = append(rows, m.renderGutter(i, cursor.Line)+body)
	}
	return strings.Join(rows, "\n")
}

// renderPlainLine returns the visible cells of a line with no styling.
func renderPlainLine(in renderInput) string {
	var b strings.Builder
	x := 0
	limit := in.left + in.width
	for _, cluster := range grapheme.Split(in.line) {
		cell, w := displayCell(cluster)
		if x >= in.left && x+w <= limit {
			b.WriteString(cell)
		}
		x += w
		if x >= limit {
			break
		}
	}
	return b.String()
}

// renderActiveLine renders a line holding the cursor or part of the selection.
func (m Model) renderActiveLine(i int, cursor textbuf.Position, span textbuf.Span, hasSelection bool) string {
	line := m.ctrl.Line(i)
	clusters := grapheme.Split(line)
	limit := m.left + m.textWidth()

	var b strings.Builder
	x := 0
	for col, cluster := range clusters {
		cell, w := displayCell(cluster)
		if x >= m.left && x+w <= limit {
			pos := textbuf.Pos(i, col)
			switch {
			case pos == cursor:
				b.WriteString(m.theme.Cursor.Render(cell))
			case hasSelection && span.Contains(pos):
				b.WriteString(m.theme.Selection.Render(cell))
			default:
				b.WriteString(m.theme.Text.Render(cell))
			}
		}
		x += w
		if x >= limit {
			return b.String()
		}
	}

	if x >= m.left {
		end := textbuf.Pos(i, len(clusters))
		switch {
		case end == cursor:
			b.WriteString(m.theme.Cursor.Render(" "))
		case hasSelection && i < span.End.Line && span.Contains(end):
			// The selected line break.
			b.WriteString(m.theme.Selection.Render(" "))
		}
	}
	return b.String()
}

func (m Model) renderGutter(line, cursorLine int) string {
	w := m.gutterWidth()
	if w == 0 {
		return ""
	}
	num := fmt.Sprintf("%*d ", w-1, line+1)
	if line == cursorLine {
		return m.theme.GutterActive.Render(num)
	}
	return m.theme.Gutter.Render(num)
}

func (m Model) renderStatus() string {
	bar := m.theme.StatusBar

	left := bar.Render(" " + m.displayName())
	if m.Dirty() {
		left += m.theme.StatusDirty.Render(" [+]")
	}

	pos := m.ctrl.CursorPosition()
	right := fmt.Sprintf("Ln %d, Col %d", pos.Line+1, pos.Character+1)
	if m.ctrl.HasSelection() {
		right += fmt.Sprintf(" (%d selected)", grapheme.Count(m.ctrl.SelectionText()))
	}
	right = bar.Render(right + "  " + strings.ToUpper(m.ctrl.LineEnding().String()) + " ")

	room := m.width - ansi.StringWidth(left) - ansi.StringWidth(right) - 2
	msg := ""
	if room > 0 {
		msg = m.statusMessage(room)
	}

	used := ansi.StringWidth(left) + ansi.StringWidth(msg) + ansi.StringWidth(right)
	gap := bar.Render(strings.Repeat(" ", max(0, m.width-used)))
	return left + msg + gap + right
}

// statusMessage renders the transient status, or the last log line when
// there is none, truncated to room cells.
func (m Model) statusMessage(room int) string {
	text := m.status
	style := m.theme.StatusBar
	switch m.statusKind {
	case statusOK:
		style = m.theme.StatusOK
	case statusWarn:
		style = m.theme.StatusDirty
	case statusError:
		style = m.theme.StatusError
	}
	if text == "" {
		if m.lastLog == "" {
			return ""
		}
		text = m.lastLog
		style = m.theme.StatusBar.Foreground(m.theme.Muted.GetForeground())
	}
	return style.Render("  " + truncate.StringWithTail(text, uint(room), "…"))
}

// gutterWidth is the number of cells taken by line numbers and their padding.
func (m Model) gutterWidth() int {
	if !m.ui.ShowLineNumbers {
		return 0
	}
	return len(strconv.Itoa(m.ctrl.LineCount())) + 1
}

func (m Model) textWidth() int {
	return max(1, m.width-m.gutterWidth())
}

func (m Model) textHeight() int {
	rows := m.height
	if m.ui.ShowStatusBar {
		rows--
	}
	if m.ui.ShowHelp {
		rows -= lipgloss.Height(m.help.View(m.keys))
	}
	return max(1, rows)
}

// displayCell returns how a cluster is drawn and how many cells it takes.
// Tabs and control characters are shown as one cell.
func displayCell(cluster string) (string, int) {
	if cluster == "\t" {
		return " ", 1
	}
	w := grapheme.DisplayWidth(cluster)
	if w <= 0 {
		return "·", 1
	}
	return cluster, w
}

// displayColumn returns the cell offset of grapheme column col in line.
func displayColumn(line string, col int) int {
	x := 0
	for i, cluster := range grapheme.Split(line) {
		if i >= col {
			break
		}
		_, w := displayCell(cluster)
		x += w
	}
	return x
}

// columnAtDisplay returns the grapheme column whose cell covers x.
// Positions past the end map to the line end.
func columnAtDisplay(line string, x int) int {
	if x <= 0 {
		return 0
	}
	cur := 0
	clusters := grapheme.Split(line)
	for i, cluster := range clusters {
		_, w := displayCell(cluster)
		if x < cur+w {
			return i
		}
		cur += w
	}
	return len(clusters)
}
