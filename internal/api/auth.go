package api

import (
	"context"

	"github.com/TrailGuard-io/mobile-app/internal/core/domain"
)

// Login exchanges credentials for a bearer token. It does not touch the
// session; the caller stores the token.
//
// A wrong password is a 401 like any other, so it also clears whatever
// session was held before.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	creds := domain.Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var out domain.LoginResponse
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &DecodeError{Method: "POST", Path: "/auth/login", Err: errMissingToken}
	}
	return &out, nil
}

// Register creates an account. name is optional.
func (c *Client) Register(ctx context.Context, email, password string, name *string) (*domain.RegisterResponse, error) {
	creds := domain.Credentials{Email: email, Password: password, Name: name}
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	var out domain.RegisterResponse
	if err := c.post(ctx, "/auth/register", creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
