package domain

import (
	"net/mail"
	"strings"
)

// User is an account as returned by the backend.
type User struct {
	ID               int64   `json:"id"`
	Email            string  `json:"email"`
	Name             *string `json:"name,omitempty"`
	SubscriptionType *string `json:"subscriptionType,omitempty"`
	Avatar           *string `json:"avatar,omitempty"`
	Bio              *string `json:"bio,omitempty"`
	Phone            *string `json:"phone,omitempty"`
}

// DisplayName returns the user's name, falling back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// RegisterResponse is the body of a successful registration. Depending on
// the backend version it carries a token, the created user, or only a message.
type RegisterResponse struct {
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// Ack is the body of actions that only confirm success.
type Ack struct {
	Message string `json:"message,omitempty"`
}

// Credentials are the inputs of login and registration.
type Credentials struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name,omitempty"`
}

// Validate checks that both email and password are present.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Email) == "" {
		return ErrMissingArgument.WithDetails("email")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ErrInvalidArgument.WithDetails("email").WithCause(err)
	}
	if c.Password == "" {
		return ErrMissingArgument.WithDetails("password")
	}
	return nil
}

// String returns a pointer to s, or nil when s is empty.
// It builds optional payload fields from flag values.
func String(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
