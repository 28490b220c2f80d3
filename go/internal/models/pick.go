package models

import (
	"time"

	"github.com/google/uuid"
)

// Pick represents a single accepted pick in a room's ledger.
// Sequence is 1-based and contiguous across the ledger; Round and Pick are
// derived from Sequence at commit time and stored for convenience.
type Pick struct {
	ID            uuid.UUID `json:"id"`
	RoomID        uuid.UUID `json:"room_id"`
	Sequence      int       `json:"sequence"`
	Round         int       `json:"round"`
	Pick          int       `json:"pick"` // pick number in the round
	ParticipantID uuid.UUID `json:"participant_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	PickedAt      time.Time `json:"picked_at"`
}
