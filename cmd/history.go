package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/zjrosen/caret/internal/history"
	"github.com/zjrosen/caret/internal/infrastructure/sqlite"
)

var (
	historyLimit int
	historyKeep  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage remembered cursor positions",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List remembered files, most recent first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withHistory(func(repo history.Repository) error {
			entries, err := repo.List(historyLimit)
			if err != nil {
				return err
			}
			return printHistory(cmd.OutOrStdout(), entries)
		})
	},
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Forget all but the most recently edited files",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if historyKeep < 0 {
			return errors.New("--keep must not be negative")
		}
		return withHistory(func(repo history.Repository) error {
			n, err := repo.Prune(historyKeep)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "removed %d entries\n", n)
			return err
		})
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show (0 for all)")
	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 100, "number of entries to keep")
	historyCmd.AddCommand(historyListCmd, historyPruneCmd)
	rootCmd.AddCommand(historyCmd)
}

// withHistory opens the configured history database for fn.
func withHistory(fn func(history.Repository) error) error {
	if cfg.History.Path == "" {
		return errors.New("history is disabled (history.path is empty)")
	}
	db, err := sqlite.NewDB(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	return fn(db.Cursors())
}

func printHistory(out io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "no history")
		return err
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("UPDATED", "CURSOR", "PATH")
	for _, e := range entries {
		t.Row(
			e.UpdatedAt.Local().Format(time.DateTime),
			fmt.Sprintf("%d:%d", e.Position.Line+1, e.Position.Character+1),
			e.Path,
		)
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}
