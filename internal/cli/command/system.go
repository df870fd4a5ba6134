package command

import (
	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/cli/output"
	"github.com/TrailGuard-io/mobile-app/internal/infra/buildinfo"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/logger"
	"github.com/TrailGuard-io/mobile-app/internal/telemetry/metric"
)

// SystemCommand returns the system subcommand group.
func SystemCommand() *cli.Command {
	return &cli.Command{
		Name:    "system",
		Aliases: []string{"sys"},
		Usage:   "Client diagnostics",
		Subcommands: []*cli.Command{
			{
				Name:   "version",
				Usage:  "Show build information",
				Action: systemVersion,
			},
			{
				Name:   "status",
				Usage:  "Show the client status",
				Action: systemStatus,
			},
			{
				Name:   "metrics",
				Usage:  "Show request metrics of this process",
				Action: systemMetrics,
			},
		},
	}
}

func systemVersion(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	return rt.Printer.Print(buildinfo.Get())
}

// statusView summarizes the local client state.
type statusView struct {
	Version  string `json:"version"`
	BaseURL  string `json:"baseUrl"`
	Timeout  string `json:"timeout"`
	Config   string `json:"config"`
	Storage  string `json:"storage"`
	Session  string `json:"session"`
	Identity string `json:"identity,omitempty"`
	LogLevel string `json:"logLevel"`
}

func systemStatus(c *cli.Context) error {
	rt, client, err := clientFor(c, false)
	if err != nil {
		return err
	}
	store, err := rt.Conn.Store()
	if err != nil {
		return err
	}

	snap := store.Snapshot()
	return rt.Printer.Print(statusView{
		Version:  buildinfo.Get().Version,
		BaseURL:  client.BaseURL(),
		Timeout:  client.Timeout().String(),
		Config:   rt.ConfigPath,
		Storage:  rt.Config.Storage.Engine,
		Session:  snap.State.String(),
		Identity: snap.Identity,
		LogLevel: logger.GetLevel(),
	})
}

type sampleList []metric.Sample

func (l sampleList) Table(bool) *output.Table {
	t := output.NewTable("METRIC", "LABELS", "VALUE")
	for _, s := range l {
		t.AddRow(s.Name, output.Cell(s.Labels), output.Cell(s.Value))
	}
	return t
}

func systemMetrics(c *cli.Context) error {
	rt, _, err := clientFor(c, false)
	if err != nil {
		return err
	}
	samples, err := rt.Conn.Metrics().Samples()
	if err != nil {
		return err
	}
	return rt.Printer.Print(sampleList(samples))
}
