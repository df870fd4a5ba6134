package domain

import (
	"fmt"
	"time"
)

// RescueStatus is the triage state of a rescue request.
// The backend owns the transitions; the client only forwards values.
type RescueStatus string

// Well-known rescue statuses.
const (
	RescuePending    RescueStatus = "pending"
	RescueInProgress RescueStatus = "in_progress"
	RescueResolved   RescueStatus = "resolved"
	RescueCancelled  RescueStatus = "cancelled"
)

// Rescue is a rescue request filed from the field.
type Rescue struct {
	ID        int64        `json:"id"`
	Latitude  float64      `json:"latitude"`
	Longitude float64      `json:"longitude"`
	Message   *string      `json:"message"`
	Status    RescueStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
	UserID    *int64       `json:"userId,omitempty"`
	User      *User        `json:"user,omitempty"`
}

// RescueRequest is the body of a new rescue request.
type RescueRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Message   *string `json:"message,omitempty"`
}

// Validate checks the coordinates.
func (r RescueRequest) Validate() error {
	return ValidateCoordinates(r.Latitude, r.Longitude)
}

// ValidateCoordinates checks that a position is a valid WGS84 coordinate.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("latitude %v out of range [-90, 90]", lat))
	}
	if lng < -180 || lng > 180 {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("longitude %v out of range [-180, 180]", lng))
	}
	return nil
}

// ValidateID checks that a resource identifier is positive.
func ValidateID(name string, id int64) error {
	if id <= 0 {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("%s must be positive, got %d", name, id))
	}
	return nil
}
