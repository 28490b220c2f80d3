package models

import (
	"github.com/google/uuid"
)

// Participant occupies one fixed slot in a room's initial draft order.
// Slot is 0-based and immutable for the lifetime of the draft.
type Participant struct {
	ID          uuid.UUID `json:"id"`
	RoomID      uuid.UUID `json:"room_id"`
	DisplayName string    `json:"display_name"`
	Slot        int       `json:"slot"`
}
