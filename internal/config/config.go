// Package config provides configuration types and defaults for caret.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/zjrosen/caret/internal/log"
)

// MaxTabSize bounds editor.tab_size.
const MaxTabSize = 16

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Config holds all configuration options for caret.
type Config struct {
	Editor  EditorConfig      `mapstructure:"editor"`
	UI      UIConfig          `mapstructure:"ui"`
	Log     LogConfig         `mapstructure:"log"`
	History HistoryConfig     `mapstructure:"history"`
	Tracing TracingConfig     `mapstructure:"tracing"`
	Keys    map[string]string `mapstructure:"keys"`  // action name -> comma separated keys
	Flags   map[string]bool   `mapstructure:"flags"` // feature flags, see internal/flags
}

// EditorConfig holds editing behaviour options.
type EditorConfig struct {
	TabSize int `mapstructure:"tab_size"` // spaces per tab stop
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowStatusBar   bool   `mapstructure:"show_status_bar"`
	ShowLineNumbers bool   `mapstructure:"show_line_numbers"`
	ShowHelp        bool   `mapstructure:"show_help"`
	SelectionColor  string `mapstructure:"selection_color"` // hex color e.g. "#3B4261"
	CursorColor     string `mapstructure:"cursor_color"`
}

// LogConfig holds debug logging options. Logging only starts with --debug
// or CARET_DEBUG set.
type LogConfig struct {
	Path  string `mapstructure:"path"`
	Level string `mapstructure:"level"` // debug (default), info, warn, error
}

// HistoryConfig controls where remembered cursor positions are stored.
// An empty path disables the history.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// TracingConfig configures span export for script replays.
type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	Exporter     string  `mapstructure:"exporter"` // none, file, stdout or otlp
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Editor: EditorConfig{
			TabSize: 4,
		},
		UI: UIConfig{
			ShowStatusBar:   true,
			ShowLineNumbers: true,
			ShowHelp:        true,
			SelectionColor:  "#3B4261",
			CursorColor:     "#C0CAF5",
		},
		Log: LogConfig{
			Path:  "caret-debug.log",
			Level: "debug",
		},
		History: HistoryConfig{
			Path: DefaultHistoryPath(),
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "caret-traces.jsonl",
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: map[string]bool{},
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if err := ValidateEditor(c.Editor); err != nil {
		return err
	}
	if err := ValidateUI(c.UI); err != nil {
		return err
	}
	if err := ValidateLog(c.Log); err != nil {
		return err
	}
	if err := ValidateTracing(c.Tracing); err != nil {
		return err
	}
	for action, keys := range c.Keys {
		if strings.TrimSpace(keys) == "" {
			return fmt.Errorf("keys.%s: at least one key is required", action)
		}
	}
	return nil
}

// ValidateEditor checks editor configuration for errors.
func ValidateEditor(e EditorConfig) error {
	if e.TabSize < 1 || e.TabSize > MaxTabSize {
		return fmt.Errorf("editor.tab_size must be between 1 and %d, got %d", MaxTabSize, e.TabSize)
	}
	return nil
}

// ValidateUI checks ui configuration for errors.
// Empty colors are valid and fall back to the defaults.
func ValidateUI(ui UIConfig) error {
	if ui.SelectionColor != "" && !hexColorPattern.MatchString(ui.SelectionColor) {
		return fmt.Errorf("ui.selection_color: invalid hex color %q", ui.SelectionColor)
	}
	if ui.CursorColor != "" && !hexColorPattern.MatchString(ui.CursorColor) {
		return fmt.Errorf("ui.cursor_color: invalid hex color %q", ui.CursorColor)
	}
	return nil
}

// ValidateLog checks log configuration for errors.
func ValidateLog(l LogConfig) error {
	if l.Level == "" {
		return nil
	}
	if _, err := log.ParseLevel(l.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
func ValidateTracing(t TracingConfig) error {
	switch t.Exporter {
	case "", "none", "stdout", "otlp":
	case "file":
		if t.Enabled && t.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required for the file exporter")
		}
	default:
		return fmt.Errorf("tracing.exporter: unsupported exporter %q", t.Exporter)
	}
	if t.SampleRate < 0 || t.SampleRate > 1 {
		return fmt.Errorf("tracing.sample_rate must be between 0 and 1, got %g", t.SampleRate)
	}
	return nil
}

// DefaultHistoryPath returns ~/.config/caret/history.db, or an empty
// string when the home directory is unavailable.
func DefaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "caret", "history.db")
}

// DefaultConfigPath returns ~/.config/caret/config.yaml, or an empty
// string when the home directory is unavailable.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "caret", "config.yaml")
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# Caret Configuration

# Editing behaviour
editor:
  tab_size: 4              # Spaces inserted up to the next tab stop (1-16)

# UI settings
ui:
  show_status_bar: true    # Show "Ln x, Col y" status line
  show_line_numbers: true  # Show a line number gutter
  show_help: true          # Show key help below the status line
  selection_color: "#3B4261"
  cursor_color: "#C0CAF5"

# Debug logging (enabled with --debug or CARET_DEBUG=1)
log:
  path: caret-debug.log
  level: debug             # debug, info, warn or error

# Remembered cursor positions, restored when a file is reopened.
# history:
#   path: ~/.config/caret/history.db

# Span export for "caret replay --trace"
tracing:
  enabled: false
  exporter: file           # none, file, stdout or otlp
  file_path: caret-traces.jsonl
  otlp_endpoint: localhost:4317
  sample_rate: 1.0

# Feature flags
# flags:
#   watch-file: true       # Notice when the open file changes on disk
#   mouse: true            # Click to place the cursor
#   remember-cursor: true  # Restore the last cursor position per file

# Key overrides: action name -> comma separated keys
# keys:
#   save: "ctrl+s"
#   quit: "ctrl+q,esc"
#   delete_word_backward: "ctrl+w,alt+backspace"
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
