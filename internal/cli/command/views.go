package command

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/TrailGuard-io/mobile-app/internal/cli/output"
	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// idArg parses the positional argument at i as a resource id.
func idArg(c *cli.Context, i int, name string) (int64, error) {
	raw := c.Args().Get(i)
	if raw == "" {
		return 0, domain.ErrMissingArgument.WithDetails(name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("%s %q is not a number", name, raw))
	}
	if err := domain.ValidateID(name, id); err != nil {
		return 0, err
	}
	return id, nil
}

// restArgs joins the positional arguments from i on.
func restArgs(c *cli.Context, i int) string {
	args := c.Args().Slice()
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}

func userCell(u *domain.User) string {
	if u == nil {
		return "-"
	}
	return u.DisplayName()
}

type rescueList []domain.Rescue

func (l rescueList) Table(wide bool) *output.Table {
	headers := []string{"ID", "STATUS", "LAT", "LNG", "CREATED", "MESSAGE"}
	if wide {
		headers = append(headers, "USER")
	}
	t := output.NewTable(headers...)
	for _, r := range l {
		msg := output.Cell(r.Message)
		if !wide {
			msg = output.Truncate(msg, 40)
		}
		row := []string{
			output.Cell(r.ID),
			string(r.Status),
			output.Cell(r.Latitude),
			output.Cell(r.Longitude),
			output.Cell(r.CreatedAt),
			msg,
		}
		if wide {
			row = append(row, userCell(r.User))
		}
		t.AddRow(row...)
	}
	return t
}

type teamList []domain.Team

func (l teamList) Table(wide bool) *output.Table {
	headers := []string{"ID", "NAME", "PUBLIC", "MEMBERS", "OWNER"}
	if wide {
		headers = append(headers, "EXPEDITIONS", "CREATED", "DESCRIPTION")
	}
	t := output.NewTable(headers...)
	for i := range l {
		tm := &l[i]
		row := []string{
			output.Cell(tm.ID),
			tm.Name,
			output.Cell(tm.IsPublic),
			fmt.Sprintf("%d/%d", tm.MemberCount(), tm.MaxMembers),
			userCell(tm.Owner),
		}
		if wide {
			expeditions := "-"
			if tm.Count != nil {
				expeditions = strconv.Itoa(tm.Count.Expeditions)
			}
			row = append(row, expeditions, output.Cell(tm.CreatedAt), output.Cell(tm.Description))
		}
		t.AddRow(row...)
	}
	return t
}

// teamDetail renders one team with its members.
type teamDetail struct {
	*domain.Team
}

func (d teamDetail) Table(wide bool) *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("id", output.Cell(d.ID))
	t.AddRow("name", d.Name)
	t.AddRow("description", output.Cell(d.Description))
	t.AddRow("public", output.Cell(d.IsPublic))
	t.AddRow("members", fmt.Sprintf("%d/%d", d.MemberCount(), d.MaxMembers))
	t.AddRow("joinable", output.Cell(d.Joinable()))
	t.AddRow("owner", userCell(d.Owner))
	t.AddRow("created", output.Cell(d.CreatedAt))
	if wide {
		for _, m := range d.Members {
			t.AddRow("member", fmt.Sprintf("%s (%s)", userCell(m.User), m.Role))
		}
	}
	return t
}

type expeditionList []domain.Expedition

func (l expeditionList) Table(wide bool) *output.Table {
	headers := []string{"ID", "TITLE", "DIFFICULTY", "STATUS", "START", "PARTICIPANTS"}
	if wide {
		headers = append(headers, "END", "TEAM", "COST", "PREMIUM")
	}
	t := output.NewTable(headers...)
	for _, e := range l {
		participants := strconv.Itoa(len(e.Members))
		if e.Count != nil {
			participants = strconv.Itoa(e.Count.Members)
		}
		row := []string{
			output.Cell(e.ID),
			output.Truncate(e.Title, 32),
			string(e.Difficulty),
			string(e.Status),
			output.Cell(e.StartDate),
			participants + "/" + strconv.Itoa(e.MaxParticipants),
		}
		if wide {
			team := "-"
			if e.Team != nil {
				team = e.Team.Name
			}
			row = append(row, output.Cell(e.EndDate), team, output.Cell(e.Cost), output.Cell(e.IsPremium))
		}
		t.AddRow(row...)
	}
	return t
}

type messageList []domain.Message

func (l messageList) Table(wide bool) *output.Table {
	t := output.NewTable("ID", "AUTHOR", "SENT", "CONTENT")
	for _, m := range l {
		content := m.Content
		if !wide {
			content = output.Truncate(strings.ReplaceAll(content, "\n", " "), 60)
		}
		t.AddRow(output.Cell(m.ID), userCell(m.Author), output.Cell(m.CreatedAt), content)
	}
	return t
}

// planList keeps the plan map for JSON and YAML and sorts it by key for
// tables.
type planList map[string]domain.SubscriptionPlan

func (l planList) Table(wide bool) *output.Table {
	headers := []string{"PLAN", "NAME", "PRICE", "DAYS"}
	if wide {
		headers = append(headers, "FEATURES")
	}
	keys := make([]string, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := output.NewTable(headers...)
	for _, k := range keys {
		p := l[k]
		row := []string{k, p.Name, output.Cell(p.Price), strconv.Itoa(p.Duration)}
		if wide {
			row = append(row, strings.Join(p.Features, ", "))
		}
		t.AddRow(row...)
	}
	return t
}

type subscriptionList []domain.Subscription

func (l subscriptionList) Table(bool) *output.Table {
	t := output.NewTable("ID", "TYPE", "STATUS", "START", "END", "AMOUNT")
	for _, s := range l {
		t.AddRow(
			output.Cell(s.ID),
			string(s.Type),
			string(s.Status),
			output.Cell(s.StartDate),
			output.Cell(s.EndDate),
			fmt.Sprintf("%s %s", output.Cell(s.Amount), s.Currency),
		)
	}
	return t
}

// currentView flattens the paywall summary.
type currentView struct {
	*domain.CurrentSubscription
}

func (v currentView) Table(bool) *output.Table {
	t := output.NewTable("FIELD", "VALUE")
	t.AddRow("plan", v.CurrentPlan)
	if s := v.Subscription; s != nil {
		t.AddRow("status", string(s.Status))
		t.AddRow("started", output.Cell(s.StartDate))
		t.AddRow("renews", output.Cell(s.EndDate))
		t.AddRow("amount", fmt.Sprintf("%s %s", output.Cell(s.Amount), s.Currency))
	}
	return t
}
