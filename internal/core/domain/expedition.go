package domain

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Difficulty grades an expedition.
type Difficulty string

// Expedition difficulties.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
	DifficultyExpert       Difficulty = "expert"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return true
	}
	return false
}

// ExpeditionStatus is the lifecycle state of an expedition.
type ExpeditionStatus string

// Expedition statuses.
const (
	ExpeditionPlanned   ExpeditionStatus = "planned"
	ExpeditionActive    ExpeditionStatus = "active"
	ExpeditionCompleted ExpeditionStatus = "completed"
	ExpeditionCancelled ExpeditionStatus = "cancelled"
)

// Valid reports whether s is a known expedition status.
func (s ExpeditionStatus) Valid() bool {
	switch s {
	case ExpeditionPlanned, ExpeditionActive, ExpeditionCompleted, ExpeditionCancelled:
		return true
	}
	return false
}

// MemberStatus is the state of an expedition participant.
type MemberStatus string

// Expedition member statuses.
const (
	MemberPending   MemberStatus = "pending"
	MemberConfirmed MemberStatus = "confirmed"
	MemberCancelled MemberStatus = "cancelled"
)

// Valid reports whether s is a known member status.
func (s MemberStatus) Valid() bool {
	switch s {
	case MemberPending, MemberConfirmed, MemberCancelled:
		return true
	}
	return false
}

// RoutePoint is a waypoint of an expedition route.
type RoutePoint struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name *string `json:"name,omitempty"`
}

// Expedition is a planned trip.
type Expedition struct {
	ID              int64              `json:"id"`
	Title           string             `json:"title"`
	Description     *string            `json:"description,omitempty"`
	StartDate       time.Time          `json:"startDate"`
	EndDate         *time.Time         `json:"endDate,omitempty"`
	Difficulty      Difficulty         `json:"difficulty"`
	MaxParticipants int                `json:"maxParticipants"`
	Cost            *float64           `json:"cost,omitempty"`
	IsPremium       bool               `json:"isPremium"`
	Status          ExpeditionStatus   `json:"status"`
	StartLat        *float64           `json:"startLat,omitempty"`
	StartLng        *float64           `json:"startLng,omitempty"`
	EndLat          *float64           `json:"endLat,omitempty"`
	EndLng          *float64           `json:"endLng,omitempty"`
	Route           []RoutePoint       `json:"route,omitempty"`
	CreatorID       int64              `json:"creatorId"`
	Creator         *User              `json:"creator,omitempty"`
	TeamID          *int64             `json:"teamId,omitempty"`
	Team            *Team              `json:"team,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	Members         []ExpeditionMember `json:"members,omitempty"`
	Count           *Counts            `json:"_count,omitempty"`
}

// ExpeditionMember links a participant to an expedition.
type ExpeditionMember struct {
	ID           int64        `json:"id"`
	ExpeditionID int64        `json:"expeditionId"`
	UserID       int64        `json:"userId"`
	Status       MemberStatus `json:"status"`
	JoinedAt     time.Time    `json:"joinedAt"`
	User         *User        `json:"user,omitempty"`
}

// ExpeditionParams is the body of expedition creation and update.
type ExpeditionParams struct {
	Title           string       `json:"title"`
	Description     *string      `json:"description,omitempty"`
	StartDate       time.Time    `json:"startDate"`
	EndDate         *time.Time   `json:"endDate,omitempty"`
	Difficulty      Difficulty   `json:"difficulty"`
	MaxParticipants int          `json:"maxParticipants"`
	Cost            *float64     `json:"cost,omitempty"`
	IsPremium       bool         `json:"isPremium"`
	StartLat        *float64     `json:"startLat,omitempty"`
	StartLng        *float64     `json:"startLng,omitempty"`
	EndLat          *float64     `json:"endLat,omitempty"`
	EndLng          *float64     `json:"endLng,omitempty"`
	Route           []RoutePoint `json:"route,omitempty"`
	TeamID          *int64       `json:"teamId,omitempty"`
}

// Validate checks the parameters before they are sent.
func (p ExpeditionParams) Validate() error {
	if strings.TrimSpace(p.Title) == "" {
		return ErrMissingArgument.WithDetails("title")
	}
	if p.StartDate.IsZero() {
		return ErrMissingArgument.WithDetails("startDate")
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return ErrInvalidArgument.WithDetails("endDate is before startDate")
	}
	if !p.Difficulty.Valid() {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown difficulty %q", p.Difficulty))
	}
	if p.MaxParticipants < 1 {
		return ErrInvalidArgument.WithDetails("maxParticipants must be at least 1")
	}
	if p.Cost != nil && *p.Cost < 0 {
		return ErrInvalidArgument.WithDetails("cost cannot be negative")
	}
	if p.StartLat != nil && p.StartLng != nil {
		if err := ValidateCoordinates(*p.StartLat, *p.StartLng); err != nil {
			return err
		}
	}
	if p.EndLat != nil && p.EndLng != nil {
		if err := ValidateCoordinates(*p.EndLat, *p.EndLng); err != nil {
			return err
		}
	}
	for _, pt := range p.Route {
		if err := ValidateCoordinates(pt.Lat, pt.Lng); err != nil {
			return err
		}
	}
	return nil
}

// ExpeditionFilter narrows an expedition listing. Zero fields are omitted.
type ExpeditionFilter struct {
	Difficulty Difficulty
	Status     ExpeditionStatus
	TeamID     int64
}

// Query encodes the filter as URL query parameters.
func (f ExpeditionFilter) Query() url.Values {
	q := url.Values{}
	if f.Difficulty != "" {
		q.Set("difficulty", string(f.Difficulty))
	}
	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.TeamID != 0 {
		q.Set("teamId", strconv.FormatInt(f.TeamID, 10))
	}
	return q
}

// Validate rejects unknown enum values.
func (f ExpeditionFilter) Validate() error {
	if f.Difficulty != "" && !f.Difficulty.Valid() {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown difficulty %q", f.Difficulty))
	}
	if f.Status != "" && !f.Status.Valid() {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("unknown status %q", f.Status))
	}
	if f.TeamID < 0 {
		return ErrInvalidArgument.WithDetails("teamId cannot be negative")
	}
	return nil
}
