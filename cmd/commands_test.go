package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/config"
	"github.com/zjrosen/caret/internal/flags"
	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/script"
	"github.com/zjrosen/caret/internal/testutil"
)

func TestExampleListMarkdown(t *testing.T) {
	doc, err := exampleListMarkdown()
	require.NoError(t, err)
	for _, name := range script.ExampleNames() {
		assert.Contains(t, doc, "**"+name+"**")
	}
	assert.Contains(t, doc, "Word delete keeps indentation")
}

func TestExampleSourceMarkdown(t *testing.T) {
	doc, err := exampleSourceMarkdown("delete-word")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "# delete-word\n\n```yaml\n"))
	assert.Contains(t, doc, "op: delete_word_backward")

	_, err = exampleSourceMarkdown("nope")
	require.ErrorContains(t, err, "unknown example")
}

func TestExamplesCommand(t *testing.T) {
	var out bytes.Buffer
	examplesCmd.SetOut(&out)
	t.Cleanup(func() { examplesCmd.SetOut(nil) })
	examplesStyle = "notty"

	require.NoError(t, examplesCmd.RunE(examplesCmd, nil))
	assert.Contains(t, out.String(), "next-word")
}

func TestConfigSetAndPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	saved := cfgFile
	cfgFile = path
	t.Cleanup(func() { cfgFile = saved })

	require.Equal(t, path, configFilePath())

	var out bytes.Buffer
	configInitCmd.SetOut(&out)
	configSetCmd.SetOut(&out)
	t.Cleanup(func() {
		configInitCmd.SetOut(nil)
		configSetCmd.SetOut(nil)
	})

	require.NoError(t, configInitCmd.RunE(configInitCmd, nil))
	require.ErrorContains(t, configInitCmd.RunE(configInitCmd, nil), "already exists")

	require.NoError(t, configSetCmd.RunE(configSetCmd, []string{"editor.tab_size", "2"}))
	assert.Contains(t, out.String(), "set editor.tab_size in "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tab_size: 2")
	assert.Contains(t, string(data), "# Caret Configuration", "comments are kept")
}

func TestHistoryCommands(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg = config.Defaults()
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")

	require.NoError(t, withHistory(func(repo history.Repository) error {
		testutil.NewBuilder(t, repo).WithRecentFiles(3).Build()
		return nil
	}))

	var out bytes.Buffer
	historyListCmd.SetOut(&out)
	historyPruneCmd.SetOut(&out)
	t.Cleanup(func() {
		historyListCmd.SetOut(nil)
		historyPruneCmd.SetOut(nil)
	})

	historyLimit = 0
	require.NoError(t, historyListCmd.RunE(historyListCmd, nil))
	listing := out.String()
	assert.Contains(t, listing, "PATH")
	newest := strings.Index(listing, testutil.RecentFilePath(2))
	oldest := strings.Index(listing, testutil.RecentFilePath(0))
	assert.True(t, newest >= 0 && newest < oldest, "newest first")
	assert.Contains(t, listing, "3:5")

	out.Reset()
	historyKeep = 1
	require.NoError(t, historyPruneCmd.RunE(historyPruneCmd, nil))
	assert.Equal(t, "removed 2 entries\n", out.String())

	historyKeep = -1
	require.Error(t, historyPruneCmd.RunE(historyPruneCmd, nil))
}

func TestHistoryDisabled(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	cfg = config.Defaults()
	cfg.History.Path = ""

	err := withHistory(func(history.Repository) error { return nil })
	require.ErrorContains(t, err, "history is disabled")
}

func TestPrintHistory_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printHistory(&out, nil))
	assert.Equal(t, "no history\n", out.String())
}

func TestNewEditSession(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo"), 0o600))

	c := config.Defaults()
	c.History.Path = filepath.Join(dir, "history.db")
	c.Editor.TabSize = 2
	c.Keys = map[string]string{"quit": "ctrl+q,esc"}
	c.Flags = map[string]bool{"no-such-flag": true}

	s, err := newEditSession(context.Background(), c, path)
	require.NoError(t, err)
	t.Cleanup(s.Close)

	assert.Equal(t, "one\ntwo", s.model.Text())
	assert.Equal(t, 2, s.model.Controller().TabSize())
	assert.NotNil(t, s.db, "history opened")
	assert.NotNil(t, s.watcher, "watch-file is on by default")
	assert.True(t, s.flags.Enabled(flags.FlagMouse))
	assert.Equal(t, []string{"no-such-flag"}, s.flags.Unknown())
}

func TestNewEditSession_UnnamedBuffer(t *testing.T) {
	s, err := newEditSession(context.Background(), config.Defaults(), "")
	require.NoError(t, err)
	t.Cleanup(s.Close)

	assert.Empty(t, s.model.Text())
	assert.Nil(t, s.db)
	assert.Nil(t, s.watcher)
}

func TestNewEditSession_BadKeys(t *testing.T) {
	c := config.Defaults()
	c.Keys = map[string]string{"fly": "ctrl+f"}
	_, err := newEditSession(context.Background(), c, "")
	require.ErrorContains(t, err, "invalid key configuration")
}
