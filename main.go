package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fivemoreminix/notepad/pkg/engine"
	"github.com/fivemoreminix/notepad/pkg/logging"
	"github.com/fivemoreminix/notepad/pkg/script"
	"github.com/fivemoreminix/notepad/ui"
)

var theme = ui.Theme{}

// newClipboard is replaced in tests.
var newClipboard = NewClipboard

var errNoScript = errors.New("no script given: pass a file or pipe one on stdin")

const (
	formatQuoted = "quoted"
	formatRaw    = "raw"
	formatYAML   = "yaml"
)

type options struct {
	format  string
	view    bool
	copy    bool
	verbose bool
	quiet   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "notepad [script.yaml]",
		Short: "Evaluate an edit script and print every buffer snapshot",
		Long: `notepad applies a list of edit commands (append, move, backspace, insert,
select) to an empty text buffer, and prints the buffer after each command
that changed it. The script is read from the file argument, or from stdin.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", formatQuoted, "output format: quoted, raw or yaml")
	flags.BoolVar(&opts.view, "view", false, "step through the evaluation in the terminal instead of printing")
	flags.BoolVar(&opts.copy, "copy", false, "copy the final snapshot to the system clipboard")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only log errors")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	switch opts.format {
	case formatQuoted, formatRaw, formatYAML:
	default:
		return fmt.Errorf("unknown format %q: expected quoted, raw or yaml", opts.format)
	}

	var logger logging.Logger
	switch {
	case opts.quiet:
		logger = logging.NewQuietLogger(cmd.ErrOrStderr())
	case opts.verbose:
		logger = logging.NewVerboseLogger(cmd.ErrOrStderr())
	default:
		logger = logging.NewDefaultLogger(cmd.ErrOrStderr())
	}

	commands, name, err := readScript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	logger = logger.With("script", name)

	e := engine.New(engine.WithSkipHandler(func(s engine.Skip) {
		logger.Warn("skipped command before any content", "index", s.Index, "command", fmt.Sprint(s.Command))
	}))
	for _, c := range commands {
		e.Apply(c)
	}
	snapshots := e.Snapshots()
	logger.Debug("evaluated script", "commands", len(commands), "snapshots", len(snapshots))

	if opts.copy {
		copyText(e.Text(), logger)
	}

	if opts.view {
		return view(e.Steps())
	}
	return writeSnapshots(cmd.OutOrStdout(), snapshots, opts.format)
}

// readScript decodes the script named by args, or the one on in. A terminal
// on in is refused, since nothing would ever be read from it.
func readScript(in io.Reader, args []string) ([]engine.Command, string, error) {
	if len(args) > 0 && args[0] != "-" {
		path := args[0]
		file, err := os.Open(path)
		if err != nil {
			return nil, path, fmt.Errorf("open script: %w", err)
		}
		defer file.Close()

		commands, err := script.Decode(file)
		if err != nil {
			return nil, path, fmt.Errorf("%s: %w", path, err)
		}
		return commands, path, nil
	}

	if f, ok := in.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		return nil, "stdin", errNoScript
	}
	commands, err := script.Decode(in)
	if err != nil {
		return nil, "stdin", fmt.Errorf("stdin: %w", err)
	}
	return commands, "stdin", nil
}

func writeSnapshots(w io.Writer, snapshots []string, format string) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(snapshots); err != nil {
			return fmt.Errorf("write snapshots: %w", err)
		}
		return enc.Close()
	}

	for _, s := range snapshots {
		if format == formatQuoted {
			s = strconv.Quote(s)
		}
		if _, err := fmt.Fprintln(w, s); err != nil {
			return fmt.Errorf("write snapshots: %w", err)
		}
	}
	return nil
}

// copyText puts text on the system clipboard. Failing to do so is only a
// warning: the snapshots are still printed.
func copyText(text string, logger logging.Logger) {
	clip, err := newClipboard()
	if err != nil {
		logger.Warn("system clipboard unavailable, final snapshot not copied", "err", err)
		return
	}
	if err := clip.Write(text); err != nil {
		logger.Warn("could not copy final snapshot", "err", err)
		return
	}
	logger.Debug("copied final snapshot", "method", clip.Method)
}

func view(steps []engine.Step) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer s.Fini() // Useful for handling panics

	ui.Run(s, steps, &theme)
	return nil
}
