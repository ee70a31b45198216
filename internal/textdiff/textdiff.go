// Package textdiff compares documents line by line for replay output.
package textdiff

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Kind classifies a diff line.
type Kind int

const (
	Same Kind = iota
	Removed
	Added
)

// Line is one line of a line-level diff.
type Line struct {
	Kind Kind
	Text string
}

// Lines returns the line diff turning want into got.
func Lines(want, got []string) []Line {
	dmp := diffmatchpatch.New()

	a, b, index := dmp.DiffLinesToChars(joinLines(want), joinLines(got))
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, index)

	var out []Line
	for _, d := range diffs {
		kind := Same
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = Removed
		case diffmatchpatch.DiffInsert:
			kind = Added
		}
		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}
			out = append(out, Line{Kind: kind, Text: strings.TrimSuffix(text, "\n")})
		}
	}
	return out
}

// Changed reports whether the diff holds any added or removed line.
func Changed(lines []Line) bool {
	for _, l := range lines {
		if l.Kind != Same {
			return true
		}
	}
	return false
}

// Styles colors rendered diff lines.
type Styles struct {
	Same    lipgloss.Style
	Removed lipgloss.Style
	Added   lipgloss.Style
}

// DefaultStyles returns red removals and green additions.
func DefaultStyles() Styles {
	return Styles{
		Same:    lipgloss.NewStyle(),
		Removed: lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B91C1C", Dark: "#F87171"}),
		Added:   lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#15803D", Dark: "#4ADE80"}),
	}
}

// Render formats lines with "-", "+" and " " prefixes.
func Render(lines []Line, s Styles) string {
	var b strings.Builder
	for _, l := range lines {
		switch l.Kind {
		case Removed:
			b.WriteString(s.Removed.Render("- " + l.Text))
		case Added:
			b.WriteString(s.Added.Render("+ " + l.Text))
		default:
			b.WriteString(s.Same.Render("  " + l.Text))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Every line is terminated so the last line compares like the others.
func joinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
