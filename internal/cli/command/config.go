package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/cli/config"
	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:    "config",
		Aliases: []string{"cfg"},
		Usage:   "CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "Show the effective configuration",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "file",
						Usage: "Show only the file and defaults, without environment and flags",
					},
				},
				Action: configShow,
			},
			{
				Name:   "path",
				Usage:  "Print the config file path",
				Action: configPath,
			},
			{
				Name:      "set",
				Usage:     "Change a key in the config file",
				ArgsUsage: "KEY VALUE",
				Action:    configSet,
			},
			{
				Name:   "validate",
				Usage:  "Validate the config file",
				Action: configValidate,
			},
			{
				Name:   "keys",
				Usage:  "List settable keys",
				Action: configKeys,
			},
		},
	}
}

// displayValues formats every key for display, masking secrets.
func displayValues(cfg *config.CLIConfig) map[string]string {
	values := config.Values(cfg)
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = config.FormatValue(k, v)
	}
	return out
}

func configShow(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	cfg := rt.Config
	if c.Bool("file") {
		if cfg, err = config.LoadFile(rt.ConfigPath); err != nil {
			return err
		}
	}
	return rt.Printer.Print(displayValues(cfg))
}

func configPath(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(rt.Printer.Out, rt.ConfigPath)
	return err
}

func configSet(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if c.NArg() != 2 {
		return domain.ErrMissingArgument.WithDetails("usage: config set KEY VALUE")
	}
	key, value := c.Args().Get(0), c.Args().Get(1)

	cfg, err := config.Set(rt.ConfigPath, key, value)
	if err != nil {
		return err
	}
	rt.Printer.Success("%s = %s", key, config.FormatValue(key, config.Values(cfg)[key]))
	rt.Printer.Hint("saved to %s", rt.ConfigPath)
	return nil
}

func configValidate(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	cfg, err := config.LoadFile(rt.ConfigPath)
	if err != nil {
		return err
	}
	if err := cfg.Verify(); err != nil {
		return fmt.Errorf("%s: %w", rt.ConfigPath, err)
	}
	rt.Printer.Success("%s is valid", rt.ConfigPath)
	return nil
}

func configKeys(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	for _, k := range config.Keys() {
		if _, err := fmt.Fprintln(rt.Printer.Out, k); err != nil {
			return err
		}
	}
	return nil
}
