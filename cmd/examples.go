package cmd

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zjrosen/caret/internal/script"
	"github.com/zjrosen/caret/internal/ui/markdown"
)

var (
	examplesStyle string
	examplesWidth int
)

var examplesCmd = &cobra.Command{
	Use:   "examples [name]",
	Short: "List the built-in scripts",
	Long: `List the scripts shipped with caret, or show the source of one of them.
Every example can be run with 'caret replay --example NAME'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var doc string
		var err error
		if len(args) == 1 {
			doc, err = exampleSourceMarkdown(args[0])
		} else {
			doc, err = exampleListMarkdown()
		}
		if err != nil {
			return err
		}

		r, err := markdown.New(examplesWidth, examplesStyle)
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		out, err := r.Render(doc)
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

func init() {
	examplesCmd.Flags().StringVar(&examplesStyle, "style", markdown.StyleAuto, "glamour style: auto, notty, dark, light")
	examplesCmd.Flags().IntVar(&examplesWidth, "width", 80, "word wrap width")
	rootCmd.AddCommand(examplesCmd)
}

func exampleListMarkdown() (string, error) {
	var b strings.Builder
	b.WriteString("# Examples\n\n")
	for _, name := range script.ExampleNames() {
		s, err := script.LoadExample(name)
		if err != nil {
			return "", fmt.Errorf("example %s: %w", name, err)
		}
		fmt.Fprintf(&b, "- **%s**: %s (%d steps)\n", name, s.Name, len(s.Steps))
	}
	b.WriteString("\nRun one with `caret replay --example NAME`.\n")
	return b.String(), nil
}

func exampleSourceMarkdown(name string) (string, error) {
	data, err := fs.ReadFile(script.ExamplesFS(), name+".yaml")
	if err != nil {
		return "", fmt.Errorf("unknown example %q (available: %s)", name, strings.Join(script.ExampleNames(), ", "))
	}
	return fmt.Sprintf("# %s\n\n```yaml\n%s```\n", name, data), nil
}
