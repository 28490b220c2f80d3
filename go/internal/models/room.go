package models

import (
	"time"

	"github.com/google/uuid"
)

// RoomStatus defines the lifecycle status of a draft room.
type RoomStatus string

const (
	RoomStatusPending  RoomStatus = "PENDING"
	RoomStatusDrafting RoomStatus = "DRAFTING"
	RoomStatusComplete RoomStatus = "COMPLETE"
)

// Role identifies the privilege level a requester acts under.
type Role string

const (
	RoleParticipant  Role = "participant"
	RoleCommissioner Role = "commissioner"
)

// RoomSettings holds the draft configuration for a room.
// DraftOrder is the round-1 participant sequence; once set it is immutable
// for the lifetime of the draft. Rounds of 0 means the draft is open-ended.
type RoomSettings struct {
	Rounds     int         `json:"rounds"`
	DraftOrder []uuid.UUID `json:"draft_order,omitempty"`
}

// Room represents a draft room instance.
type Room struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Status         RoomStatus   `json:"status"`
	CommissionerID uuid.UUID    `json:"commissioner_id"`
	Settings       RoomSettings `json:"settings"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}
