package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/caret/internal/clipboard"
	"github.com/zjrosen/caret/internal/config"
	"github.com/zjrosen/caret/internal/flags"
	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/infrastructure/sqlite"
	"github.com/zjrosen/caret/internal/keys"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/ui/editorview"
	"github.com/zjrosen/caret/internal/watcher"
)

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Edit a file (the default command)",
	Long: `Open a file in the editor. A missing file starts empty and is created on save.

Examples:
  caret notes.txt
  caret edit notes.txt
  caret edit --tab-size 2 main.go`,
	Args: cobra.MaximumNArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().Int("tab-size", 0, "spaces per tab stop (overrides config)")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	if size, _ := cmd.Flags().GetInt("tab-size"); size > 0 {
		cfg.Editor.TabSize = size
	}
	var path string
	if len(args) == 1 {
		path = args[0]
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	env, err := newEditSession(ctx, cfg, path)
	if err != nil {
		return err
	}
	defer env.Close()

	zone.NewGlobal()
	defer zone.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if env.flags.Enabled(flags.FlagMouse) {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(env.model, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// editSession holds the model and the resources it borrows.
type editSession struct {
	model   editorview.Model
	flags   *flags.Registry
	db      *sqlite.DB
	watcher *watcher.Watcher
}

// newEditSession loads path and builds the editor model from cfg.
func newEditSession(ctx context.Context, cfg config.Config, path string) (*editSession, error) {
	var text string
	if path != "" {
		var err error
		if text, err = editorview.ReadFile(path); err != nil {
			return nil, err
		}
	}

	km, err := keys.DefaultKeyMap().ApplyOverrides(cfg.Keys)
	if err != nil {
		return nil, fmt.Errorf("invalid key configuration: %w", err)
	}

	reg := flags.New(cfg.Flags)
	for _, name := range reg.Unknown() {
		log.Warn(log.CatConfig, "Unknown feature flag", "flag", name)
	}

	s := &editSession{flags: reg}
	opts := editorview.Options{
		Path:      path,
		Text:      text,
		TabSize:   cfg.Editor.TabSize,
		Keys:      km,
		UI:        cfg.UI,
		Clipboard: clipboard.Default(),
		Flags:     reg,
		Session:   history.NewSessionID(),
		Logs:      log.NewListener(ctx),
	}

	if path != "" && cfg.History.Path != "" {
		db, err := sqlite.NewDB(cfg.History.Path)
		if err != nil {
			// History is a convenience; editing continues without it.
			log.ErrorErr(log.CatHistory, "Failed to open history", err, "path", cfg.History.Path)
		} else {
			s.db = db
			opts.History = db.Cursors()
		}
	}

	if path != "" && reg.Enabled(flags.FlagWatchFile) {
		if w, err := startWatcher(path); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to watch file", err, "path", path)
		} else {
			s.watcher = w.watcher
			opts.Changes = w.changes
		}
	}

	s.model = editorview.New(opts)
	log.Info(log.CatBuffer, "Opened", "path", path, "lines", s.model.Controller().LineCount())
	return s, nil
}

type startedWatcher struct {
	watcher *watcher.Watcher
	changes <-chan struct{}
}

func startWatcher(path string) (startedWatcher, error) {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return startedWatcher{}, err
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		return startedWatcher{}, err
	}
	return startedWatcher{watcher: w, changes: changes}, nil
}

// Close stops the watcher and closes the history database.
func (s *editSession) Close() {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			log.ErrorErr(log.CatWatcher, "Failed to stop watcher", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "closing history:", err)
		}
	}
}
