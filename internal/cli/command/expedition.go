package command

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/api"
	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// ExpeditionCommand returns the expedition subcommand group.
func ExpeditionCommand() *cli.Command {
	return &cli.Command{
		Name:    "expedition",
		Aliases: []string{"exp"},
		Usage:   "Plan and join expeditions",
		Subcommands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List expeditions",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "difficulty", Usage: "beginner, intermediate, advanced or expert"},
					&cli.StringFlag{Name: "status", Usage: "planned, active, completed or cancelled"},
					&cli.Int64Flag{Name: "team", Usage: "Only expeditions of this team"},
				},
				Action: listExpeditions,
			},
			{
				Name:      "get",
				Usage:     "Show an expedition",
				ArgsUsage: "EXPEDITION_ID",
				Action:    expeditionGet,
			},
			{
				Name:   "create",
				Usage:  "Plan an expedition",
				Flags:  expeditionFlags(true),
				Action: expeditionCreate,
			},
			{
				Name:      "update",
				Usage:     "Change an expedition; unset flags keep their current value",
				ArgsUsage: "EXPEDITION_ID",
				Flags:     expeditionFlags(false),
				Action:    expeditionUpdate,
			},
			{
				Name:      "join",
				Usage:     "Ask to join an expedition",
				ArgsUsage: "EXPEDITION_ID",
				Action:    expeditionJoin,
			},
			{
				Name:      "leave",
				Usage:     "Leave an expedition",
				ArgsUsage: "EXPEDITION_ID",
				Action:    expeditionLeave,
			},
			{
				Name:      "member-status",
				Usage:     "Confirm or cancel a participant",
				ArgsUsage: "EXPEDITION_ID MEMBER_ID STATUS",
				Action:    expeditionMemberStatus,
			},
			{
				Name:      "messages",
				Aliases:   []string{"chat"},
				Usage:     "Show the expedition chat",
				ArgsUsage: "EXPEDITION_ID",
				Action:    expeditionMessages,
			},
			{
				Name:      "send",
				Usage:     "Post to the expedition chat",
				ArgsUsage: "EXPEDITION_ID MESSAGE...",
				Action:    expeditionSend,
			},
		},
	}
}

func expeditionFlags(create bool) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Title", Required: create},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Description"},
		&cli.StringFlag{Name: "start", Usage: "Start date (2006-01-02 or RFC 3339)", Required: create},
		&cli.StringFlag{Name: "end", Usage: "End date (2006-01-02 or RFC 3339)"},
		&cli.StringFlag{Name: "difficulty", Value: string(domain.DifficultyIntermediate), Usage: "beginner, intermediate, advanced or expert"},
		&cli.IntFlag{Name: "max-participants", Value: 10, Usage: "Participant limit"},
		&cli.Float64Flag{Name: "cost", Usage: "Cost per participant"},
		&cli.BoolFlag{Name: "premium", Usage: "Only for premium subscribers"},
		&cli.Int64Flag{Name: "team", Usage: "Owning team id"},
		&cli.StringFlag{Name: "from", Usage: "Start position as LAT,LNG"},
		&cli.StringFlag{Name: "to", Usage: "End position as LAT,LNG"},
		&cli.StringSliceFlag{Name: "waypoint", Usage: "Route point as LAT,LNG[,NAME] (repeatable)"},
	}
}

// parseDate accepts a calendar date or an RFC 3339 timestamp.
func parseDate(flag, s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, s, time.Local)
	if err != nil {
		return time.Time{}, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("--%s %q is not a date", flag, s))
	}
	return t, nil
}

// parsePoint parses "LAT,LNG[,NAME]".
func parsePoint(flag, s string) (domain.RoutePoint, error) {
	parts := strings.SplitN(s, ",", 3)
	bad := domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("--%s %q is not LAT,LNG", flag, s))
	if len(parts) < 2 {
		return domain.RoutePoint{}, bad
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.RoutePoint{}, bad
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.RoutePoint{}, bad
	}
	p := domain.RoutePoint{Lat: lat, Lng: lng}
	if len(parts) == 3 {
		p.Name = domain.String(strings.TrimSpace(parts[2]))
	}
	return p, nil
}

// applyExpeditionFlags overlays the flags the user set onto p.
func applyExpeditionFlags(c *cli.Context, p *domain.ExpeditionParams) error {
	if c.IsSet("title") {
		p.Title = c.String("title")
	}
	if c.IsSet("description") {
		p.Description = domain.String(c.String("description"))
	}
	if c.IsSet("start") {
		t, err := parseDate("start", c.String("start"))
		if err != nil {
			return err
		}
		p.StartDate = t
	}
	if c.IsSet("end") {
		t, err := parseDate("end", c.String("end"))
		if err != nil {
			return err
		}
		p.EndDate = &t
	}
	if c.IsSet("difficulty") || p.Difficulty == "" {
		p.Difficulty = domain.Difficulty(c.String("difficulty"))
	}
	if c.IsSet("max-participants") || p.MaxParticipants == 0 {
		p.MaxParticipants = c.Int("max-participants")
	}
	if c.IsSet("cost") {
		cost := c.Float64("cost")
		p.Cost = &cost
	}
	if c.IsSet("premium") {
		p.IsPremium = c.Bool("premium")
	}
	if c.IsSet("team") {
		team := c.Int64("team")
		p.TeamID = &team
	}
	if c.IsSet("from") {
		pt, err := parsePoint("from", c.String("from"))
		if err != nil {
			return err
		}
		p.StartLat, p.StartLng = &pt.Lat, &pt.Lng
	}
	if c.IsSet("to") {
		pt, err := parsePoint("to", c.String("to"))
		if err != nil {
			return err
		}
		p.EndLat, p.EndLng = &pt.Lat, &pt.Lng
	}
	if c.IsSet("waypoint") {
		p.Route = nil
		for _, raw := range c.StringSlice("waypoint") {
			pt, err := parsePoint("waypoint", raw)
			if err != nil {
				return err
			}
			p.Route = append(p.Route, pt)
		}
	}
	return nil
}

// paramsOf turns an existing expedition into update parameters.
func paramsOf(e *domain.Expedition) domain.ExpeditionParams {
	return domain.ExpeditionParams{
		Title:           e.Title,
		Description:     e.Description,
		StartDate:       e.StartDate,
		EndDate:         e.EndDate,
		Difficulty:      e.Difficulty,
		MaxParticipants: e.MaxParticipants,
		Cost:            e.Cost,
		IsPremium:       e.IsPremium,
		StartLat:        e.StartLat,
		StartLng:        e.StartLng,
		EndLat:          e.EndLat,
		EndLng:          e.EndLng,
		Route:           e.Route,
		TeamID:          e.TeamID,
	}
}

func listExpeditions(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	filter := domain.ExpeditionFilter{
		Difficulty: domain.Difficulty(c.String("difficulty")),
		Status:     domain.ExpeditionStatus(c.String("status")),
		TeamID:     c.Int64("team"),
	}
	list, err := call(rt, "Loading expeditions", func() ([]domain.Expedition, error) {
		return client.Expeditions(c.Context, filter)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(expeditionList(list))
}

func expeditionGet(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "expedition id")
	if err != nil {
		return err
	}
	exp, err := call(rt, "Loading expedition", func() (*domain.Expedition, error) {
		return client.Expedition(c.Context, id)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(exp)
}

func expeditionCreate(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	var params domain.ExpeditionParams
	if err := applyExpeditionFlags(c, &params); err != nil {
		return err
	}
	exp, err := call(rt, "Creating expedition", func() (*domain.Expedition, error) {
		return client.CreateExpedition(c.Context, params)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(exp)
	}
	rt.Printer.Success("expedition %q planned (#%d)", exp.Title, exp.ID)
	return nil
}

func expeditionUpdate(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "expedition id")
	if err != nil {
		return err
	}

	exp, err := call(rt, "Updating expedition", func() (*domain.Expedition, error) {
		current, err := client.Expedition(c.Context, id)
		if err != nil {
			return nil, err
		}
		params := paramsOf(current)
		if err := applyExpeditionFlags(c, &params); err != nil {
			return nil, err
		}
		return client.UpdateExpedition(c.Context, id, params)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(exp)
	}
	rt.Printer.Success("expedition #%d updated", exp.ID)
	return nil
}

func expeditionJoin(c *cli.Context) error {
	return ackAction(c, "expedition id", "Joining expedition", "asked to join expedition #%d", func(client *api.Client, id int64) (*domain.Ack, error) {
		return client.JoinExpedition(c.Context, id)
	})
}

func expeditionLeave(c *cli.Context) error {
	return ackAction(c, "expedition id", "Leaving expedition", "left expedition #%d", func(client *api.Client, id int64) (*domain.Ack, error) {
		return client.LeaveExpedition(c.Context, id)
	})
}

func expeditionMemberStatus(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "expedition id")
	if err != nil {
		return err
	}
	memberID, err := idArg(c, 1, "member id")
	if err != nil {
		return err
	}
	status := domain.MemberStatus(c.Args().Get(2))

	m, err := call(rt, "Updating participant", func() (*domain.ExpeditionMember, error) {
		return client.UpdateMemberStatus(c.Context, id, memberID, status)
	})
	if err != nil {
		return err
	}
	if rt.Printer.Machine() {
		return rt.Printer.Print(m)
	}
	rt.Printer.Success("participant #%d is now %s", m.ID, m.Status)
	return nil
}

func expeditionMessages(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "expedition id")
	if err != nil {
		return err
	}
	msgs, err := call(rt, "Loading messages", func() ([]domain.Message, error) {
		return client.ExpeditionMessages(c.Context, id)
	})
	if err != nil {
		return err
	}
	return rt.Printer.Print(messageList(msgs))
}

func expeditionSend(c *cli.Context) error {
	rt, client, err := clientFor(c, true)
	if err != nil {
		return err
	}
	id, err := idArg(c, 0, "expedition id")
	if err != nil {
		return err
	}
	msg, err := call(rt, "Sending message", func() (*domain.Message, error) {
		return client.SendExpeditionMessage(c.Context, id, restArgs(c, 1))
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
