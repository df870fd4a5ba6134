package domain

import (
	"strings"
	"time"
)

// Counts carries the aggregate counters the backend attaches to lists.
type Counts struct {
	Members     int `json:"members"`
	Expeditions int `json:"expeditions"`
}

// Team is a group of users that plan expeditions together.
type Team struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	IsPublic    bool         `json:"isPublic"`
	MaxMembers  int          `json:"maxMembers"`
	OwnerID     int64        `json:"ownerId"`
	Owner       *User        `json:"owner,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Members     []TeamMember `json:"members,omitempty"`
	Count       *Counts      `json:"_count,omitempty"`
}

// MemberCount returns the number of members reported by the backend.
func (t *Team) MemberCount() int {
	if t.Count != nil {
		return t.Count.Members
	}
	return len(t.Members)
}

// Joinable reports whether the team accepts new members.
func (t *Team) Joinable() bool {
	return t.IsPublic && t.MemberCount() < t.MaxMembers
}

// TeamMember links a user to a team.
type TeamMember struct {
	ID       int64     `json:"id"`
	TeamID   int64     `json:"teamId"`
	UserID   int64     `json:"userId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
	User     *User     `json:"user,omitempty"`
}

// TeamParams is the body of team creation.
type TeamParams struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	IsPublic    bool    `json:"isPublic"`
	MaxMembers  int     `json:"maxMembers"`
}

// Validate checks the creation parameters.
func (p TeamParams) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrMissingArgument.WithDetails("name")
	}
	if p.MaxMembers < 1 {
		return ErrInvalidArgument.WithDetails("maxMembers must be at least 1")
	}
	return nil
}

// TeamUpdate is the body of a partial team update. Nil fields are left
// unchanged by the backend.
type TeamUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
	MaxMembers  *int    `json:"maxMembers,omitempty"`
}

// Validate rejects an empty update and out-of-range values.
func (u TeamUpdate) Validate() error {
	if u.Name == nil && u.Description == nil && u.IsPublic == nil && u.MaxMembers == nil {
		return ErrMissingArgument.WithDetails("nothing to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return ErrInvalidArgument.WithDetails("name cannot be empty")
	}
	if u.MaxMembers != nil && *u.MaxMembers < 1 {
		return ErrInvalidArgument.WithDetails("maxMembers must be at least 1")
	}
	return nil
}

// Message is a chat message posted to a team or an expedition.
type Message struct {
	ID           int64     `json:"id"`
	Content      string    `json:"content"`
	AuthorID     int64     `json:"authorId"`
	Author       *User     `json:"author,omitempty"`
	TeamID       *int64    `json:"teamId,omitempty"`
	ExpeditionID *int64    `json:"expeditionId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}
