package ledger

import (
	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// AppendPickRequest represents a request to append a pick to a room's ledger.
type AppendPickRequest struct {
	RoomID        uuid.UUID `json:"room_id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
}

// DraftState is the read-side view of a room's draft, derived entirely from
// a ledger snapshot plus the order resolver. OnClock and UpNext are nil once
// the draft is complete.
type DraftState struct {
	RoomID      uuid.UUID         `json:"room_id"`
	Status      models.RoomStatus `json:"status"`
	Picks       []models.Pick     `json:"picks"`
	OnClock     *uuid.UUID        `json:"on_clock,omitempty"`
	UpNext      *uuid.UUID        `json:"up_next,omitempty"`
	Round       int               `json:"round"`
	PickInRound int               `json:"pick_in_round"`
	TotalPicks  int               `json:"total_picks"` // 0 when open-ended
}
