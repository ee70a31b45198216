// Package styles contains Lip Gloss style definitions for the editor view.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Semantic color names - Text hierarchy
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1F2335", Dark: "#C0CAF5"} // Document text
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#8990B3", Dark: "#565F89"} // Gutter, hints, log line

	// Semantic color names - Status
	StatusBarBgColor   = lipgloss.AdaptiveColor{Light: "#E1E2E7", Dark: "#1F2335"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#8C6C3E", Dark: "#E0AF68"} // Unsaved changes, disk changes
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#F52A65", Dark: "#F7768E"} // Save failures
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#587539", Dark: "#9ECE6A"} // Saved

	// Current line number in the gutter
	GutterActiveColor = lipgloss.AdaptiveColor{Light: "#3760BF", Dark: "#737AA2"}
)

// Theme holds the styles the editor view renders with. Selection and cursor
// colors come from configuration.
type Theme struct {
	Text         lipgloss.Style
	Selection    lipgloss.Style
	Cursor       lipgloss.Style
	Gutter       lipgloss.Style
	GutterActive lipgloss.Style
	StatusBar    lipgloss.Style
	StatusDirty  lipgloss.Style
	StatusError  lipgloss.Style
	StatusOK     lipgloss.Style
	Muted        lipgloss.Style
}

// Fallbacks used when a configured color is empty.
const (
	DefaultSelectionColor = "#3B4261"
	DefaultCursorColor    = "#C0CAF5"
)

// NewTheme returns the editor theme for the given selection background and
// cursor colors. Empty colors use the defaults.
func NewTheme(selectionColor, cursorColor string) Theme {
	if selectionColor == "" {
		selectionColor = DefaultSelectionColor
	}
	if cursorColor == "" {
		cursorColor = DefaultCursorColor
	}

	statusBar := lipgloss.NewStyle().Background(StatusBarBgColor).Foreground(TextPrimaryColor)
	return Theme{
		Text:         lipgloss.NewStyle().Foreground(TextPrimaryColor),
		Selection:    lipgloss.NewStyle().Background(lipgloss.Color(selectionColor)).Foreground(TextPrimaryColor),
		Cursor:       lipgloss.NewStyle().Background(lipgloss.Color(cursorColor)).Foreground(lipgloss.Color("#1A1B26")),
		Gutter:       lipgloss.NewStyle().Foreground(TextMutedColor),
		GutterActive: lipgloss.NewStyle().Foreground(GutterActiveColor).Bold(true),
		StatusBar:    statusBar,
		StatusDirty:  statusBar.Foreground(StatusWarningColor).Bold(true),
		StatusError:  statusBar.Foreground(StatusErrorColor),
		StatusOK:     statusBar.Foreground(StatusSuccessColor),
		Muted:        lipgloss.NewStyle().Foreground(TextMutedColor),
	}
}
