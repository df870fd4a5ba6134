package command

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/cli/config"
	"github.com/TrailGuard-io/mobile-app/internal/cli/connection"
	"github.com/TrailGuard-io/mobile-app/internal/cli/output"
	"github.com/TrailGuard-io/mobile-app/internal/infra/buildinfo"
	"github.com/TrailGuard-io/mobile-app/internal/infra/shutdown"
	"github.com/TrailGuard-io/mobile-app/internal/session"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
)

// AppName is the binary name.
const AppName = "trailguard-cli"

const metaRuntime = "runtime"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:                 AppName,
		Usage:                "TrailGuard command-line client",
		Version:              buildinfo.String(),
		Flags:                globalFlags(),
		Commands:             commands(),
		EnableBashCompletion: true,
		// Waypoints are LAT,LNG pairs; repeat the flag instead.
		DisableSliceFlagSeparator: true,
		Metadata:                  map[string]any{},
		Before:                    before,
		After:                     after,
		// Errors are reported by Report so the exit code reflects the
		// error category.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

func commands() []*cli.Command {
	return []*cli.Command{
		LoginCommand(),
		RegisterCommand(),
		LogoutCommand(),
		WhoamiCommand(),
		RescueCommand(),
		TeamCommand(),
		ExpeditionCommand(),
		SubscriptionCommand(),
		ConfigCommand(),
		SystemCommand(),
		ShellCommand(),
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path",
			EnvVars: []string{"TRAILGUARD_CONFIG"},
			Value:   config.DefaultConfigPath(),
		},
		&cli.StringFlag{
			Name:  "api-url",
			Usage: "API base URL, including the /api prefix",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-request timeout (e.g., 10s)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:    "wide",
			Aliases: []string{"w"},
			Usage:   "Show wide output (more columns)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "Disable colored notices",
		},
	}
}

// Runtime is the state shared by every command of one process.
type Runtime struct {
	ConfigPath string
	Config     *config.CLIConfig
	Logger     logger.Logger
	Printer    *output.Printer
	Conn       *connection.Manager
	Shutdown   *shutdown.Handler
	In         *bufio.Reader

	// ttyFD is the input descriptor when it is a terminal, otherwise -1.
	ttyFD   int
	inShell bool
}

// flagOverrides maps explicitly set global flags onto config keys.
func flagOverrides(c *cli.Context) map[string]any {
	o := map[string]any{}
	if c.IsSet("api-url") {
		o["api.base_url"] = c.String("api-url")
	}
	if c.IsSet("timeout") {
		o["api.timeout"] = c.Duration("timeout").String()
	}
	if c.IsSet("output") {
		o["output.format"] = c.String("output")
	}
	if c.Bool("no-color") {
		o["output.color"] = false
	}
	if c.Bool("verbose") {
		o["log.level"] = "debug"
	}
	return o
}

func before(c *cli.Context) error {
	path := c.String("config")
	cfg, err := config.Load(path, flagOverrides(c))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Verify(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: c.App.ErrWriter,
	})
	if err != nil {
		return err
	}
	logger.SetDefault(log)

	rt := &Runtime{
		ConfigPath: path,
		Config:     cfg,
		Logger:     log,
		Printer:    output.NewPrinter(c.App.Writer, c.App.ErrWriter, format, c.Bool("wide"), cfg.Output.Color),
		Conn:       connection.NewManager(log),
		Shutdown:   shutdown.NewHandler(shutdown.DefaultTimeout, log),
		In:         bufio.NewReader(c.App.Reader),
		ttyFD:      -1,
	}
	if f, ok := c.App.Reader.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rt.ttyFD = int(f.Fd())
	}
	rt.Shutdown.OnClose("connection", rt.Conn.Close)

	ctx, cancel := rt.Shutdown.Context(c.Context)
	rt.Shutdown.OnClose("signals", func() error {
		cancel()
		return nil
	})
	c.Context = ctx

	c.App.Metadata[metaRuntime] = rt
	return nil
}

func after(c *cli.Context) error {
	rt, ok := c.App.Metadata[metaRuntime].(*Runtime)
	if !ok {
		return nil
	}
	return rt.Shutdown.Shutdown()
}

// runtimeFrom returns the runtime installed by the Before hook.
func runtimeFrom(c *cli.Context) (*Runtime, error) {
	rt, ok := c.App.Metadata[metaRuntime].(*Runtime)
	if !ok {
		return nil, fmt.Errorf("%s: runtime not initialized", AppName)
	}
	return rt, nil
}

// connect opens the session storage and API client on first use.
func (rt *Runtime) connect(ctx context.Context) (*api.Client, *session.Store, error) {
	if err := rt.Conn.Open(ctx, rt.Config); err != nil {
		return nil, nil, err
	}
	client, err := rt.Conn.Client()
	if err != nil {
		return nil, nil, err
	}
	store, err := rt.Conn.Store()
	if err != nil {
		return nil, nil, err
	}
	return client, store, nil
}

// clientFor returns the API client. Commands that need a session fail
// with domain.ErrNotLoggedIn before any request is sent.
func clientFor(c *cli.Context, needSession bool) (*Runtime, *api.Client, error) {
	rt, err := runtimeFrom(c)
	if err != nil {
		return nil, nil, err
	}
	client, store, err := rt.connect(c.Context)
	if err != nil {
		return nil, nil, err
	}
	if needSession {
		if _, err := store.RequireToken(); err != nil {
			return nil, nil, err
		}
	}
	return rt, client, nil
}

// call runs fn behind a spinner.
func call[T any](rt *Runtime, msg string, fn func() (T, error)) (T, error) {
	sp := rt.Printer.Spinner(msg).Start()
	defer sp.Stop()
	return fn()
}

// readLine prints prompt and reads one line from the shared input.
func (rt *Runtime) readLine(prompt string) (string, error) {
	fmt.Fprint(rt.Printer.Err, prompt)
	line, err := rt.In.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readSecret reads a line without echo when the input is a terminal.
func (rt *Runtime) readSecret(prompt string) (string, error) {
	if rt.ttyFD < 0 {
		return rt.readLine(prompt)
	}
	fmt.Fprint(rt.Printer.Err, prompt)
	b, err := term.ReadPassword(rt.ttyFD)
	fmt.Fprintln(rt.Printer.Err)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// confirm asks a yes/no question. Anything but y/yes is a no.
func (rt *Runtime) confirm(question string) bool {
	answer, err := rt.readLine(question + " [y/N]: ")
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
