package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

// builtins are handled by the shell itself.
var builtins = []string{"exit", "quit", "history", "clear"}

// Executor runs one parsed command line.
type Executor func(ctx context.Context, args []string) error

// Config configures a REPL.
type Config struct {
	In  io.Reader
	Out io.Writer

	// Exec runs a command line. Required.
	Exec Executor
	// Report prints an error returned by Exec. Defaults to "Error: ..." on Out.
	Report func(error)
	// Prompt returns the prompt shown before each line.
	Prompt func() string
	// Commands feeds the completer.
	Commands []string
	// HistoryFile persists the history; empty keeps it in memory.
	HistoryFile string
	Logger      logger.Logger
}

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	exec      Executor
	report    func(error)
	prompt    func() string
	completer *Completer
	history   *History
	logger    logger.Logger
}

// New creates a REPL.
func New(cfg Config) *REPL {
	r := &REPL{
		input:     cfg.In,
		output:    cfg.Out,
		exec:      cfg.Exec,
		report:    cfg.Report,
		prompt:    cfg.Prompt,
		completer: NewCompleter(cfg.Commands),
		history:   NewHistory(cfg.HistoryFile, DefaultHistorySize),
		logger:    cfg.Logger,
	}
	if r.input == nil {
		r.input = os.Stdin
	}
	if r.output == nil {
		r.output = os.Stdout
	}
	if r.prompt == nil {
		r.prompt = func() string { return "> " }
	}
	if r.report == nil {
		r.report = func(err error) { fmt.Fprintf(r.output, "Error: %v\n", err) }
	}
	if r.logger == nil {
		r.logger = logger.Default()
	}
	return r
}

// History returns the line history.
func (r *REPL) History() *History {
	return r.history
}

// Run starts the REPL loop. It returns nil on exit, quit or end of input,
// and ctx.Err() when ctx is cancelled.
func (r *REPL) Run(ctx context.Context) error {
	if r.exec == nil {
		return errors.New("repl: no executor")
	}
	if err := r.history.Load(); err != nil {
		r.logger.Warn("loading history failed", "error", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			r.logger.Warn("saving history failed", "error", err)
		}
	}()

	lines := make(chan string)
	readErr := make(chan error, 1)
	next := make(chan struct{})
	go r.read(lines, readErr, next)
	defer close(next)

	for {
		fmt.Fprint(r.output, r.prompt())

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.output)
			return ctx.Err()
		case err := <-readErr:
			fmt.Fprintln(r.output)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case line = <-lines:
		}

		if done := r.handle(ctx, line); done {
			return nil
		}
		select {
		case next <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// read delivers one line per request so commands that prompt can read the
// same input in between.
func (r *REPL) read(lines chan<- string, readErr chan<- error, next <-chan struct{}) {
	reader := bufio.NewReader(r.input)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			readErr <- err
			return
		}
		lines <- line
		if _, ok := <-next; !ok {
			return
		}
	}
}

// handle processes one line and reports whether the shell should exit.
func (r *REPL) handle(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if prefix, ok := strings.CutSuffix(line, "?"); ok {
		r.printCompletions(prefix)
		return false
	}

	r.history.Add(line)

	switch line {
	case "exit", "quit":
		return true
	case "history":
		for i, e := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, e)
		}
		return false
	case "clear":
		fmt.Fprint(r.output, "\033[H\033[2J")
		return false
	}

	if err := r.execute(ctx, line); err != nil {
		r.report(err)
	}
	return false
}

func (r *REPL) execute(ctx context.Context, line string) error {
	args, err := SplitArgs(line)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return nil
	}
	r.logger.Debug("repl exec", "command", args[0], "args", len(args)-1)
	return r.exec(ctx, args)
}

func (r *REPL) printCompletions(prefix string) {
	suggestions := r.completer.Complete(prefix)
	if len(suggestions) == 0 {
		fmt.Fprintln(r.output, "no matching commands")
		return
	}
	for _, s := range suggestions {
		fmt.Fprintln(r.output, "  "+s)
	}
}
