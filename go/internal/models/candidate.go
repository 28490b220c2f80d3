package models

import (
	"github.com/google/uuid"
)

// Candidate is a draftable item from a room's fixed catalog. TeamID is the
// external-team affiliation the roster constraint is enforced against.
// Name, Role and Score are informational only; engine logic never reads them.
type Candidate struct {
	ID     uuid.UUID `json:"id"`
	RoomID uuid.UUID `json:"room_id"`
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
	Role   string    `json:"role,omitempty"`
	Score  float64   `json:"score,omitempty"`
}
