package events

import (
	"time"
)

// Event payload types shared between the ledger, outbox and gateway packages.

// Event type names as they appear on the wire.
const (
	TypeLedgerChanged  = "LedgerChanged"
	TypePickMade       = "PickMade"
	TypePickUndone     = "PickUndone"
	TypeDraftCompleted = "DraftCompleted"
)

// LedgerChangedPayload is the canonical change notification: emitted on
// every successful append or undo. Receivers must treat it as a hint to
// re-fetch the snapshot; NewLength is informational, not authoritative.
type LedgerChangedPayload struct {
	RoomID    string    `json:"room_id"`
	NewLength int       `json:"new_length"`
	ChangedAt time.Time `json:"changed_at"`
}

// PickMadePayload is the payload for a PickMade event.
type PickMadePayload struct {
	PickID        string    `json:"pick_id"`
	RoomID        string    `json:"room_id"`
	ParticipantID string    `json:"participant_id"`
	CandidateID   string    `json:"candidate_id"`
	Sequence      int       `json:"sequence"`
	Round         int       `json:"round"`
	Pick          int       `json:"pick"`
	PickedAt      time.Time `json:"picked_at"`
}

// PickUndonePayload is the payload for a PickUndone event.
type PickUndonePayload struct {
	PickID        string    `json:"pick_id"`
	RoomID        string    `json:"room_id"`
	ParticipantID string    `json:"participant_id"`
	CandidateID   string    `json:"candidate_id"`
	Sequence      int       `json:"sequence"`
	NewLength     int       `json:"new_length"`
	UndoneAt      time.Time `json:"undone_at"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event.
type DraftCompletedPayload struct {
	RoomID      string    `json:"room_id"`
	TotalPicks  int       `json:"total_picks"`
	CompletedAt time.Time `json:"completed_at"`
}
