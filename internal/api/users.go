package api

import (
	"context"
	"errors"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

var errMissingToken = errors.New("response has no token")

// Me returns the profile of the signed-in user.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.get(ctx, "/users/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
