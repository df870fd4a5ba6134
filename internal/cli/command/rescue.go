package command

import (
	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// RescueCommand returns the rescue subcommand group.
func RescueCommand() *cli.Command {
	return &cli.Command{
		Name:    "rescue",
		Aliases: []string{"sos"},
		Usage:   "File and track rescue requests",
		Subcommands: []*cli.Command{
			{
				Name:   "mine",
				Usage:  "List your rescue requests",
				Action: rescueMine,
			},
			{
				Name:   "all",
				Usage:  "List every rescue request (rescuers)",
				Action: rescueAll,
			},
			{
				Name:  "request",
				Usage: "Request a rescue at a position",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:     "lat",
						Usage:    "Latitude in decimal degrees",
						Required: true,
					},
					&cli.Float64Flag{
						Name:     "lng",
						Usage:    "Longitude in decimal degrees",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "message",
						Aliases: []string{"m"},
						Usage:   "What happened",
					},
				},
				Action: rescueRequest,
			},
			{
				Name:      "status",
				Usage:     "Change the status of a rescue request",
				ArgsUsage: "RESCUE_ID STATUS",
				Description: "STATUS is one of pending, in_progress, resolved, cancelled. " +
					"Other values are passed to the server as given.",
				Action: rescueStatus,
			},
		},
	}
}

func rescueMine(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	list, err := call(rt, "Loading rescues", func() ([]domain.Rescue, error) {
		return client.MyRescues(c.Context)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(rescueList(list))
}

func rescueAll(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	list, err := call(rt, "Loading rescues", func() ([]domain.Rescue, error) {
		return client.AllRescues(c.Context)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(rescueList(list))
}

func rescueRequest(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	r, err := call(rt, "Sending rescue request", func() (*domain.Rescue, error) {
		return client.RequestRescue(c.Context, c.Float64("lat"), c.Float64("lng"), domain.String(c.String("message")))
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(r)
	}
	rt.Printer.Success("rescue request #%d sent, status %s", r.ID, r.Status)
	return nil
}

func rescueStatus(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "rescue id")
	if err != nil {
		return err
	}
	status := domain.RescueStatus(c.Args().Get(1))

	r, err := call(rt, "Updating rescue", func() (*domain.Rescue, error) {
		return client.UpdateRescueStatus(c.Context, id, status)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(r)
	}
	rt.Printer.Success("rescue #%d is now %s", r.ID, r.Status)
	return nil
}
