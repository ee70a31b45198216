package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestNewTheme_UsesConfiguredColors(t *testing.T) {
	theme := NewTheme("#112233", "#445566")

	require.Equal(t, lipgloss.Color("#112233"), theme.Selection.GetBackground())
	require.Equal(t, lipgloss.Color("#445566"), theme.Cursor.GetBackground())
}

func TestNewTheme_EmptyColorsFallBack(t *testing.T) {
	theme := NewTheme("", "")

	require.Equal(t, lipgloss.Color(DefaultSelectionColor), theme.Selection.GetBackground())
	require.Equal(t, lipgloss.Color(DefaultCursorColor), theme.Cursor.GetBackground())
}

func TestNewTheme_StatusStylesShareBackground(t *testing.T) {
	theme := NewTheme("", "")
	bg := theme.StatusBar.GetBackground()

	require.Equal(t, bg, theme.StatusDirty.GetBackground())
	require.Equal(t, bg, theme.StatusError.GetBackground())
	require.Equal(t, bg, theme.StatusOK.GetBackground())
}
