package api

import (
	"context"
	"fmt"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// Expeditions lists expeditions matching filter. A zero filter lists all.
func (c *Client) Expeditions(ctx context.Context, filter domain.ExpeditionFilter) ([]domain.Expedition, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	var out []domain.Expedition
	if err := c.get(ctx, "/expeditions", filter.Query(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Expedition returns one expedition with its members.
func (c *Client) Expedition(ctx context.Context, id int64) (*domain.Expedition, error) {
	if err := domain.ValidateID("expedition id", id); err != nil {
		return nil, err
	}
	var out domain.Expedition
	if err := c.get(ctx, expeditionPath(id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateExpedition plans a new expedition.
func (c *Client) CreateExpedition(ctx context.Context, p domain.ExpeditionParams) (*domain.Expedition, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out domain.Expedition
	if err := c.post(ctx, "/expeditions", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExpedition replaces the editable fields of an expedition.
func (c *Client) UpdateExpedition(ctx context.Context, id int64, p domain.ExpeditionParams) (*domain.Expedition, error) {
	if err := domain.ValidateID("expedition id", id); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	var out domain.Expedition
	if err := c.put(ctx, expeditionPath(id, ""), p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// JoinExpedition requests a place on an expedition.
func (c *Client) JoinExpedition(ctx context.Context, id int64) (*domain.Ack, error) {
	return c.expeditionAction(ctx, id, "join")
}

// LeaveExpedition gives up a place on an expedition.
func (c *Client) LeaveExpedition(ctx context.Context, id int64) (*domain.Ack, error) {
	return c.expeditionAction(ctx, id, "leave")
}

// UpdateMemberStatus confirms or cancels a participant. Only the organiser
// may do this; the backend enforces it.
func (c *Client) UpdateMemberStatus(ctx context.Context, id, memberID int64, status domain.MemberStatus) (*domain.ExpeditionMember, error) {
	if err := domain.ValidateID("expedition id", id); err != nil {
		return nil, err
	}
	if err := domain.ValidateID("member id", memberID); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown member status %q", status))
	}

	body := struct {
		Status domain.MemberStatus `json:"status"`
	}{status}

	var out domain.ExpeditionMember
	path := fmt.Sprintf("/expeditions/%d/members/%d/status", id, memberID)
	if err := c.post(ctx, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExpeditionMessages returns the expedition chat.
func (c *Client) ExpeditionMessages(ctx context.Context, id int64) ([]domain.Message, error) {
	if err := domain.ValidateID("expedition id", id); err != nil {
		return nil, err
	}
	var out []domain.Message
	if err := c.get(ctx, expeditionPath(id, "messages"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendExpeditionMessage posts to the expedition chat.
func (c *Client) SendExpeditionMessage(ctx context.Context, id int64, content string) (*domain.Message, error) {
	if err := domain.ValidateID("expedition id", id); err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}
	var out domain.Message
	if err := c.post(ctx, expeditionPath(id, "messages"), messageBody{Content: content}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) expeditionAction(ctx context.Context, id int64, action string) (*domain.Ack, error) {
	if err := domain.ValidateID("expedition id", id); err != nil {
		return nil, err
	}
	var out domain.Ack
	if err := c.post(ctx, expeditionPath(id, action), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func expeditionPath(id int64, sub string) string {
	if sub == "" {
		return fmt.Sprintf("/expeditions/%d", id)
	}
	return fmt.Sprintf("/expeditions/%d/%s", id, sub)
}
