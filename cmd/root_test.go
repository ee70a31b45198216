package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/caret/internal/config"
	"github.com/zjrosen/caret/internal/flags"
)

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
editor:
  tab_size: 2
ui:
  show_help: false
keys:
  quit: "ctrl+q,esc"
flags:
  mouse: false
`), 0o600))

	got, err := loadConfig(viper.New(), path)
	require.NoError(t, err)
	require.Equal(t, 2, got.Editor.TabSize)
	require.False(t, got.UI.ShowHelp)
	require.True(t, got.UI.ShowStatusBar, "unset values keep their defaults")
	require.Equal(t, "ctrl+q,esc", got.Keys["quit"])
	require.Equal(t, map[string]bool{flags.FlagMouse: false}, got.Flags)
	require.NoError(t, got.Validate())
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_WritesUserDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	require.Equal(t, config.Defaults().Editor, got.Editor)

	_, err = os.Stat(filepath.Join(home, ".config", "caret", "config.yaml"))
	require.NoError(t, err, "default config written on first run")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [unclosed"), 0o600))

	_, err := loadConfig(viper.New(), path)
	require.Error(t, err)
}

func TestSetup_RejectsInvalidConfig(t *testing.T) {
	t.Setenv("CARET_DEBUG", "")
	saved, savedErr := cfg, cfgErr
	t.Cleanup(func() { cfg, cfgErr = saved, savedErr })

	cfg = config.Defaults()
	cfg.Editor.TabSize = 0
	cfgErr = nil
	require.ErrorContains(t, setup(rootCmd, nil), "invalid configuration")

	cfg = config.Defaults()
	require.NoError(t, setup(rootCmd, nil), "logging stays off without --debug")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"edit", "replay", "examples", "config", "history"} {
		require.True(t, names[want], "missing command %s", want)
	}
}

func TestSetVersion(t *testing.T) {
	saved := rootCmd.Version
	t.Cleanup(func() { SetVersion(saved) })

	SetVersion("1.2.3")
	require.Equal(t, "1.2.3", rootCmd.Version)
}
