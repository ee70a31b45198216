// Package cmd wires caret's cobra commands.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/caret/internal/config"
	"github.com/zjrosen/caret/internal/log"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in the buffer.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

// localConfigPath is checked before the user config.
const localConfigPath = ".caret/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "caret [file]",
	Short: "A small terminal text editor",
	Long: `caret edits a single text file in the terminal.

The cursor moves by grapheme cluster, remembers its column across short lines
and jumps by word the way most desktop editors do. Shift with any motion
extends the selection.

Scripts of editor operations can be replayed without a terminal; see
'caret replay' and 'caret examples'.`,
	Version:           version,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: setup,
	RunE:              runEdit,
	SilenceUsage:      true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/caret/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write a debug log (also enabled by CARET_DEBUG)")
	rootCmd.Flags().Int("tab-size", 0, "spaces per tab stop (overrides config)")
}

func initConfig() {
	cfg, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig reads the config file into v and decodes it over the defaults.
func loadConfig(v *viper.Viper, explicit string) (config.Config, error) {
	setDefaults(v)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		// Config lookup order:
		// 1. .caret/config.yaml (current directory)
		// 2. ~/.config/caret/config.yaml (user config)
		if _, err := os.Stat(localConfigPath); err == nil {
			v.SetConfigFile(localConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "caret"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Defaults(), fmt.Errorf("reading config: %w", err)
		}
		// No config file found anywhere - create the user default.
		if defaultPath := config.DefaultConfigPath(); explicit == "" && defaultPath != "" {
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				v.SetConfigFile(defaultPath)
				_ = v.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	out := config.Defaults()
	if err := v.Unmarshal(&out); err != nil {
		return out, fmt.Errorf("decoding config: %w", err)
	}
	return out, nil
}

func setDefaults(v *viper.Viper) {
	d := config.Defaults()
	v.SetDefault("editor.tab_size", d.Editor.TabSize)
	v.SetDefault("ui.show_status_bar", d.UI.ShowStatusBar)
	v.SetDefault("ui.show_line_numbers", d.UI.ShowLineNumbers)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("ui.selection_color", d.UI.SelectionColor)
	v.SetDefault("ui.cursor_color", d.UI.CursorColor)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("history.path", d.History.Path)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
}

// logCleanup closes the debug log after the command finishes.
var logCleanup = func() {}

// setup validates the loaded config and starts debug logging.
func setup(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !debugFlag && os.Getenv("CARET_DEBUG") == "" {
		return nil
	}
	logPath := os.Getenv("CARET_LOG")
	if logPath == "" {
		logPath = cfg.Log.Path
	}
	cleanup, err := log.InitWithTeaLog(logPath, "caret")
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	logCleanup = cleanup

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	log.SetMinLevel(level)
	log.Info(log.CatConfig, "caret starting", "version", version, "command", cmd.Name(),
		"config", viper.ConfigFileUsed(), "logPath", logPath)
	return nil
}

// Execute runs the root command
func Execute() error {
	defer func() { logCleanup() }()
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
