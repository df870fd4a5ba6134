package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// MyRescues lists rescue requests filed by the signed-in user.
func (c *Client) MyRescues(ctx context.Context) ([]domain.Rescue, error) {
	var out []domain.Rescue
	if err := c.get(ctx, "/rescue/my", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AllRescues lists every rescue request visible to the user.
func (c *Client) AllRescues(ctx context.Context) ([]domain.Rescue, error) {
	var out []domain.Rescue
	if err := c.get(ctx, "/rescue/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequestRescue files a rescue request at the given position.
// message is optional and omitted from the body when nil.
func (c *Client) RequestRescue(ctx context.Context, lat, lng float64, message *string) (*domain.Rescue, error) {
	req := domain.RescueRequest{Latitude: lat, Longitude: lng, Message: message}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out domain.Rescue
	if err := c.post(ctx, "/rescue/request", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateRescueStatus moves a rescue to a new status. The backend decides
// which transitions are allowed.
func (c *Client) UpdateRescueStatus(ctx context.Context, id int64, status domain.RescueStatus) (*domain.Rescue, error) {
	if err := domain.ValidateID("rescue id", id); err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(status)) == "" {
		return nil, domain.ErrMissingArgument.WithDetails("status")
	}

	body := struct {
		Status domain.RescueStatus `json:"status"`
	}{status}

	var out domain.Rescue
	if err := c.patch(ctx, fmt.Sprintf("/rescue/%d/status", id), body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
