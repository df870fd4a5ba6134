package command

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync/atomic"

	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/cli/config"
	"github.com/TrailGuard-io/mobile-app/internal/cli/output"
	"github.com/TrailGuard-io/mobile-app/internal/cli/repl"
	"github.com/TrailGuard-io/mobile-app/internal/infra/confloader"
	"github.com/TrailGuard-io/mobile-app/internal/session"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

// HistoryFileName is the shell history file, next to the config file.
const HistoryFileName = "history"

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"repl"},
		Usage:   "Start an interactive shell sharing one session",
		Description: "Type commands without the program name. End a prefix with \"?\" " +
			"to list matching commands; exit, quit or Ctrl-D leaves the shell.",
		Action: shell,
	}
}

func shell(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if rt.inShell {
		return errors.New("already in the shell")
	}
	_, store, err := rt.connect(c.Context)
	if err != nil {
		return err
	}

	shellRT := *rt
	shellRT.inShell = true

	var signedIn atomic.Bool
	signedIn.Store(store.Snapshot().HasToken())
	unsubscribe := store.OnChange(func(s session.Snapshot) {
		was := signedIn.Swap(s.HasToken())
		if was && !s.HasToken() {
			rt.Printer.Warn("session ended, run `login` to sign in again")
		}
	})
	defer unsubscribe()

	if w := rt.Conn.CertWatcher(); w != nil {
		w.StartAsync()
	}
	if stop := watchConfig(&shellRT); stop != nil {
		defer stop()
	}

	r := repl.New(repl.Config{
		In:          rt.In,
		Out:         rt.Printer.Out,
		Exec:        shellRT.executor(c.App),
		Report:      func(err error) { reportLine(rt.Printer, err) },
		Prompt:      func() string { return prompt(store) },
		Commands:    commandPaths(c.App.Commands),
		HistoryFile: filepath.Join(config.BaseDir(rt.ConfigPath), HistoryFileName),
		Logger:      rt.Logger,
	})

	rt.Printer.Info("TrailGuard shell, type `help` for commands and `exit` to leave")
	err = r.Run(c.Context)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// executor runs one shell line as a fresh app invocation that reuses rt.
func (rt *Runtime) executor(parent *cli.App) repl.Executor {
	return func(ctx context.Context, args []string) error {
		app := App()
		app.Writer = parent.Writer
		app.ErrWriter = parent.ErrWriter
		app.Reader = rt.In
		app.Before = rt.lineBefore
		app.After = nil
		app.HideVersion = true
		return app.RunContext(ctx, append([]string{AppName}, args...))
	}
}

// lineBefore installs rt for one shell line, honouring per-line output
// flags such as "-o json".
func (rt *Runtime) lineBefore(c *cli.Context) error {
	line := *rt
	if c.IsSet("output") || c.IsSet("wide") || c.Bool("no-color") {
		format := rt.Printer.Format
		if c.IsSet("output") {
			f, err := output.ParseFormat(c.String("output"))
			if err != nil {
				return err
			}
			format = f
		}
		color := rt.Config.Output.Color && !c.Bool("no-color")
		line.Printer = output.NewPrinter(rt.Printer.Out, rt.Printer.Err, format, c.Bool("wide") || rt.Printer.Wide, color)
	}
	c.App.Metadata[metaRuntime] = &line
	return nil
}

// watchConfig applies log level changes of the config file while the
// shell runs. It returns a stop function, or nil when watching failed.
func watchConfig(rt *Runtime) func() {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(rt.Logger))
	if err != nil {
		rt.Logger.Debug("config watch unavailable", "error", err)
		return nil
	}
	if err := w.Watch(rt.ConfigPath); err != nil {
		rt.Logger.Debug("config watch unavailable", "path", rt.ConfigPath, "error", err)
		_ = w.Stop()
		return nil
	}
	w.OnChange(func(path string) {
		cfg, err := config.Load(path, nil)
		if err == nil {
			err = cfg.Verify()
		}
		if err != nil {
			rt.Logger.Warn("ignoring invalid config change", "path", path, "error", err)
			return
		}
		if logger.GetLevel() != cfg.Log.Level {
			logger.SetLevel(cfg.Log.Level)
			rt.Logger.Info("log level changed", "level", cfg.Log.Level)
		}
	})
	w.StartAsync()
	return func() { _ = w.Stop() }
}

func reportLine(p *output.Printer, err error) {
	msg, _ := Describe(err)
	if msg != "" {
		p.Error("%s", msg)
	}
}

// prompt reflects the authentication state.
func prompt(store *session.Store) string {
	snap := store.Snapshot()
	switch {
	case snap.Identity != "" && snap.HasToken():
		return "trailguard (" + snap.Identity + ")> "
	case snap.HasToken():
		return "trailguard*> "
	default:
		return "trailguard> "
	}
}

// commandPaths lists "cmd" and "cmd sub" for every visible command.
func commandPaths(cmds []*cli.Command) []string {
	var out []string
	for _, cmd := range cmds {
		if cmd.Hidden {
			continue
		}
		out = append(out, cmd.Name)
		for _, sub := range cmd.Subcommands {
			if !sub.Hidden {
				out = append(out, cmd.Name+" "+sub.Name)
			}
		}
	}
	out = append(out, "help")
	sort.Strings(out)
	return out
}
