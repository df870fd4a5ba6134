package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// Teams lists all teams.
func (c *Client) Teams(ctx context.Context) ([]domain.Team, error) {
	var out []domain.Team
	if err := c.get(ctx, "/teams", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Team returns one team with its members.
func (c *Client) Team(ctx context.Context, id int64) (*domain.Team, error) {
	if err := domain.ValidateID("team id", id); err != nil {
		return nil, err
	}
	var out domain.Team
	if err := c.get(ctx, teamPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTeam creates a team owned by the signed-in user.
func (c *Client) CreateTeam(ctx context.Context, p domain.TeamParams) (*domain.Team, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out domain.Team
	if err := c.post(ctx, "/teams", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTeam applies a partial update.
func (c *Client) UpdateTeam(ctx context.Context, id int64, u domain.TeamUpdate) (*domain.Team, error) {
	if err := domain.ValidateID("team id", id); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	var out domain.Team
	if err := c.put(ctx, teamPath(id, ""), u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JoinTeam adds the signed-in user to a team.
func (c *Client) JoinTeam(ctx context.Context, id int64) (*domain.Ack, error) {
	return c.teamAction(ctx, id, "join")
}

// LeaveTeam removes the signed-in user from a team.
func (c *Client) LeaveTeam(ctx context.Context, id int64) (*domain.Ack, error) {
	return c.teamAction(ctx, id, "leave")
}

// TeamMessages returns the team chat.
func (c *Client) TeamMessages(ctx context.Context, id int64) ([]domain.Message, error) {
	if err := domain.ValidateID("team id", id); err != nil {
		return nil, err
	}
	var out []domain.Message
	if err := c.get(ctx, teamPath(id, "messages"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendTeamMessage posts to the team chat.
func (c *Client) SendTeamMessage(ctx context.Context, id int64, content string) (*domain.Message, error) {
	if err := domain.ValidateID("team id", id); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	var out domain.Message
	if err := c.post(ctx, teamPath(id, "messages"), messageBody{Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) teamAction(ctx context.Context, id int64, action string) (*domain.Ack, error) {
	if err := domain.ValidateID("team id", id); err != nil {
		return nil, err
	}
	var out domain.Ack
	if err := c.post(ctx, teamPath(id, action), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func teamPath(id int64, sub string) string {
	if sub == "" {
		return fmt.Sprintf("/teams/%d", id)
	}
	return fmt.Sprintf("/teams/%d/%s", id, sub)
}

type messageBody struct {
	Content string `json:"content"`
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return domain.ErrMissingArgument.WithDetails("message content")
	}
	return nil
}
