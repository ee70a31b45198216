package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_Plain(t *testing.T) {
	r, err := New(60, StylePlain)
	require.NoError(t, err)
	require.Equal(t, 60, r.Width())

	out, err := r.Render("# Examples\n\n- **next-word**: jump over words\n")
	require.NoError(t, err)
	require.Contains(t, out, "Examples")
	require.Contains(t, out, "next-word")
	// The notty style is ASCII only, so strong text keeps its markers.
	require.Contains(t, out, "**next-word**")
}

func TestRender_WrapsAtWidth(t *testing.T) {
	r, err := New(20, StylePlain)
	require.NoError(t, err)

	out, err := r.Render(strings.Repeat("word ", 20))
	require.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		require.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20)
	}
}

func TestNew_UnknownStyle(t *testing.T) {
	_, err := New(40, "no-such-style")
	require.Error(t, err)
}
