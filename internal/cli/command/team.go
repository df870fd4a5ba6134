package command

import (
	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// TeamCommand returns the team subcommand group.
func TeamCommand() *cli.Command {
	return &cli.Command{
		Name:    "team",
		Aliases: []string{"teams"},
		Usage:   "Manage teams",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List teams",
				Action:  listTeams,
			},
			{
				Name:      "get",
				Usage:     "Show a team",
				ArgsUsage: "TEAM_ID",
				Action:    teamGet,
			},
			{
				Name:  "create",
				Usage: "Create a team",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Aliases:  []string{"n"},
						Usage:    "Team name",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "description",
						Aliases: []string{"d"},
						Usage:   "Team description",
					},
					&cli.BoolFlag{
						Name:  "public",
						Usage: "Anyone can join",
					},
					&cli.IntFlag{
						Name:  "max-members",
						Value: 10,
						Usage: "Member limit",
					},
				},
				Action: teamCreate,
			},
			{
				Name:      "update",
				Usage:     "Change a team",
				ArgsUsage: "TEAM_ID",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "New name"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "New description"},
					&cli.BoolFlag{Name: "public", Usage: "Anyone can join (--public=false to close)"},
					&cli.IntFlag{Name: "max-members", Usage: "New member limit"},
				},
				Action: teamUpdate,
			},
			{
				Name:      "join",
				Usage:     "Join a public team",
				ArgsUsage: "TEAM_ID",
				Action:    teamJoin,
			},
			{
				Name:      "leave",
				Usage:     "Leave a team",
				ArgsUsage: "TEAM_ID",
				Action:    teamLeave,
			},
			{
				Name:      "messages",
				Aliases:   []string{"chat"},
				Usage:     "Show the team chat",
				ArgsUsage: "TEAM_ID",
				Action:    teamMessages,
			},
			{
				Name:      "send",
				Usage:     "Post to the team chat",
				ArgsUsage: "TEAM_ID MESSAGE...",
				Action:    teamSend,
			},
		},
	}
}

func listTeams(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	list, err := call(rt, "Loading teams", func() ([]domain.Team, error) {
		return client.Teams(c.Context)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(teamList(list))
}

func teamGet(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "team id")
	if err != nil {
		return err
	}
	team, err := call(rt, "Loading team", func() (*domain.Team, error) {
		return client.Team(c.Context, id)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(teamDetail{team})
}

func teamCreate(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	params := domain.TeamParams{
		Name:        c.String("name"),
		Description: domain.String(c.String("description")),
		IsPublic:    c.Bool("public"),
		MaxMembers:  c.Int("max-members"),
	}
	team, err := call(rt, "Creating team", func() (*domain.Team, error) {
		return client.CreateTeam(c.Context, params)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(team)
	}
	rt.Printer.Success("team %q created (#%d)", team.Name, team.ID)
	return nil
}

func teamUpdate(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "team id")
	if err != nil {
		return err
	}

	var u domain.TeamUpdate
	if c.IsSet("name") {
		name := c.String("name")
		u.Name = &name
	}
	if c.IsSet("description") {
		desc := c.String("description")
		u.Description = &desc
	}
	if c.IsSet("public") {
		public := c.Bool("public")
		u.IsPublic = &public
	}
	if c.IsSet("max-members") {
		limit := c.Int("max-members")
		u.MaxMembers = &limit
	}

	team, err := call(rt, "Updating team", func() (*domain.Team, error) {
		return client.UpdateTeam(c.Context, id, u)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(team)
	}
	rt.Printer.Success("team #%d updated", team.ID)
	return nil
}

func teamJoin(c *cli.Context) error {
	return ackAction(c, "team id", "Joining team", "joined team #%d", func(client *api.Client, id int64) (*domain.Ack, error) {
		return client.JoinTeam(c.Context, id)
	})
}

func teamLeave(c *cli.Context) error {
	return ackAction(c, "team id", "Leaving team", "left team #%d", func(client *api.Client, id int64) (*domain.Ack, error) {
		return client.LeaveTeam(c.Context, id)
	})
}

// ackAction runs a membership action on the resource named by the first
// argument and reports the server's message, or done when it sent none.
func ackAction(c *cli.Context, idName, spin, done string, fn func(*api.Client, int64) (*domain.Ack, error)) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, idName)
	if err != nil {
		return err
	}
	ack, err := call(rt, spin, func() (*domain.Ack, error) { return fn(client, id) })
	if err != nil {
		return err
	}

	if rt.Printer.Machine() {
		return rt.Printer.Print(ack)
	}
	if ack.Message != "" {
		rt.Printer.Success("%s", ack.Message)
		return nil
	}
	rt.Printer.Success(done, id)
	return nil
}

func teamMessages(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "team id")
	if err != nil {
		return err
	}
	msgs, err := call(rt, "Loading messages", func() ([]domain.Message, error) {
		return client.TeamMessages(c.Context, id)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(messageList(msgs))
}

func teamSend(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "team id")
	if err != nil {
		return err
	}
	msg, err := call(rt, "Sending message", func() (*domain.Message, error) {
		return client.SendTeamMessage(c.Context, id, restArgs(c, 1))
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(msg)
	}
	rt.Printer.Success("message #%d posted", msg.ID)
	return nil
}
