package room

import (
	"errors"

	"github.com/google/uuid"
)

// ErrRoomNotFound is returned when a room id does not exist.
var ErrRoomNotFound = errors.New("room not found")

// ErrOrderAlreadySet is returned when a draft order is provisioned twice.
// The order is immutable once set.
var ErrOrderAlreadySet = errors.New("draft order already set")

// ParticipantSeed describes one participant at room creation time. Slot is
// implied by position in the CreateRoomRequest slice.
type ParticipantSeed struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
}

// CreateRoomRequest represents a request to create a new draft room.
type CreateRoomRequest struct {
	ID             uuid.UUID         `json:"id"`
	Name           string            `json:"name"`
	CommissionerID uuid.UUID         `json:"commissioner_id"`
	Rounds         int               `json:"rounds"`
	Participants   []ParticipantSeed `json:"participants"`
}
