package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/caret/internal/config"
	"github.com/zjrosen/caret/internal/editor"
	"github.com/zjrosen/caret/internal/log"
	"github.com/zjrosen/caret/internal/script"
	"github.com/zjrosen/caret/internal/textbuf"
	"github.com/zjrosen/caret/internal/textdiff"
	"github.com/zjrosen/caret/internal/tracing"
	"github.com/zjrosen/caret/internal/ui/editorview"
)

var (
	replayExample  string
	replayInput    string
	replayDiff     bool
	replayEvents   bool
	replayTrace    bool
	replayExporter string
)

var replayCmd = &cobra.Command{
	Use:   "replay [script.yaml]",
	Short: "Run an editing script without a terminal",
	Long: `Replay a yaml script of editor operations and print the resulting document
and cursor. When the script has an expect section the final state is checked
and a mismatch exits with an error.

Examples:
  # Run a script file
  caret replay steps.yaml

  # Run a built-in example (see 'caret examples')
  caret replay --example next-word

  # Apply a script to a file instead of the script's own text
  caret replay steps.yaml --input notes.txt --diff

  # Print notifications and record spans
  caret replay --example delete-word --events --trace`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&replayExample, "example", "e", "", "run the named built-in example")
	replayCmd.Flags().StringVarP(&replayInput, "input", "i", "", "file to use as the initial text (skips expect)")
	replayCmd.Flags().BoolVar(&replayDiff, "diff", false, "print a line diff against the initial text")
	replayCmd.Flags().BoolVar(&replayEvents, "events", false, "print change notifications as they fire")
	replayCmd.Flags().BoolVar(&replayTrace, "trace", false, "record spans (overrides tracing.enabled)")
	replayCmd.Flags().StringVar(&replayExporter, "trace-exporter", "", "span exporter: file, stdout or otlp (overrides config)")
	rootCmd.AddCommand(replayCmd)
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := loadReplayScript(args, replayExample)
	if err != nil {
		return err
	}

	var input *string
	if replayInput != "" {
		text, err := editorview.ReadFile(replayInput)
		if err != nil {
			return err
		}
		input = &text
	}

	provider, err := tracing.NewProvider(replayTracingConfig(cfg.Tracing, replayTrace, replayExporter))
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "Failed to flush spans", err)
		}
	}()

	out := cmd.OutOrStdout()
	return replay(cmd.Context(), out, s, input, replayOptions{
		diff:   replayDiff,
		events: replayEvents,
		tracer: provider,
	})
}

// loadReplayScript reads the script named by the argument or the example flag.
func loadReplayScript(args []string, example string) (*script.Script, error) {
	switch {
	case example != "" && len(args) > 0:
		return nil, errors.New("give either a script file or --example, not both")
	case example != "":
		s, err := script.LoadExample(example)
		if err != nil {
			return nil, fmt.Errorf("%w (available: %s)", err, strings.Join(script.ExampleNames(), ", "))
		}
		return s, nil
	case len(args) == 1:
		return script.Load(args[0])
	default:
		return nil, errors.New("a script file or --example is required")
	}
}

// replayTracingConfig maps the tracing config section onto the provider
// config, applying command line overrides.
func replayTracingConfig(tc config.TracingConfig, force bool, exporter string) tracing.Config {
	out := tracing.DefaultConfig()
	out.Enabled = tc.Enabled || force
	out.Exporter = tc.Exporter
	out.FilePath = tc.FilePath
	out.OTLPEndpoint = tc.OTLPEndpoint
	out.SampleRate = tc.SampleRate
	if exporter != "" {
		out.Exporter = exporter
	}
	return out
}

type replayOptions struct {
	diff   bool
	events bool
	tracer *tracing.Provider
}

// replay runs s and writes the outcome to out.
func replay(ctx context.Context, out io.Writer, s *script.Script, input *string, opts replayOptions) error {
	initial := s.NewController(input).Lines()

	var observer editor.Observer
	if opts.events {
		observer = eventPrinter{out: out}
	}

	var tracer trace.Tracer
	if opts.tracer != nil {
		tracer = opts.tracer.Tracer()
	}
	c, err := s.ReplayTraced(ctx, tracer, input, observer)

	if opts.diff {
		_, _ = fmt.Fprint(out, textdiff.Render(textdiff.Lines(initial, c.Lines()), textdiff.DefaultStyles()))
	} else {
		_, _ = fmt.Fprintln(out, c.Text())
	}
	printCursor(out, c)

	if errors.Is(err, script.ErrExpectation) && s.Expect != nil && s.Expect.Lines != nil {
		if d := textdiff.Lines(s.Expect.Lines, c.Lines()); textdiff.Changed(d) {
			_, _ = fmt.Fprintln(out, "expected lines:")
			_, _ = fmt.Fprint(out, textdiff.Render(d, textdiff.DefaultStyles()))
		}
	}
	return err
}

func printCursor(out io.Writer, c *editor.Controller) {
	pos := c.CursorPosition()
	_, _ = fmt.Fprintf(out, "cursor: %d:%d\n", pos.Line, pos.Character)
	if c.HasSelection() {
		span := c.SelectionSpan()
		_, _ = fmt.Fprintf(out, "selection: %d:%d-%d:%d %q\n",
			span.Start.Line, span.Start.Character, span.End.Line, span.End.Character, c.SelectionText())
	}
}

// eventPrinter writes controller notifications as they fire.
type eventPrinter struct {
	out io.Writer
}

func (p eventPrinter) CodeChanged() {
	_, _ = fmt.Fprintln(p.out, "event: code changed")
}

func (p eventPrinter) CursorMoved(pos textbuf.Position) {
	_, _ = fmt.Fprintf(p.out, "event: cursor moved %d:%d\n", pos.Line, pos.Character)
}
