package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// DirectSink broadcasts ledger mutations straight to connected WebSocket
// clients, skipping the outbox and the broker. Used in memory store mode
// where the process is the only writer; delivery is best-effort.
type DirectSink struct {
	cm *ConnectionManager
}

func NewDirectSink(cm *ConnectionManager) *DirectSink {
	return &DirectSink{cm: cm}
}

func (s *DirectSink) PickMade(ctx context.Context, pick models.Pick, newLength int) error {
	if err := s.broadcast(pick.RoomID, EventTypeLedgerChanged, events.LedgerChangedPayload{
		RoomID:    pick.RoomID.String(),
		NewLength: newLength,
		ChangedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	return s.broadcast(pick.RoomID, EventTypePickMade, events.PickMadePayload{
		PickID:        pick.ID.String(),
		RoomID:        pick.RoomID.String(),
		ParticipantID: pick.ParticipantID.String(),
		CandidateID:   pick.CandidateID.String(),
		Sequence:      pick.Sequence,
		Round:         pick.Round,
		Pick:          pick.Pick,
		PickedAt:      pick.PickedAt,
	})
}

func (s *DirectSink) PickUndone(ctx context.Context, pick models.Pick, newLength int) error {
	if err := s.broadcast(pick.RoomID, EventTypeLedgerChanged, events.LedgerChangedPayload{
		RoomID:    pick.RoomID.String(),
		NewLength: newLength,
		ChangedAt: time.Now().UTC(),
	}); err != nil {
		return err
	}
	return s.broadcast(pick.RoomID, EventTypePickUndone, events.PickUndonePayload{
		PickID:        pick.ID.String(),
		RoomID:        pick.RoomID.String(),
		ParticipantID: pick.ParticipantID.String(),
		CandidateID:   pick.CandidateID.String(),
		Sequence:      pick.Sequence,
		NewLength:     newLength,
		UndoneAt:      time.Now().UTC(),
	})
}

func (s *DirectSink) DraftCompleted(ctx context.Context, roomID uuid.UUID, totalPicks int) error {
	return s.broadcast(roomID, EventTypeDraftCompleted, events.DraftCompletedPayload{
		RoomID:      roomID.String(),
		TotalPicks:  totalPicks,
		CompletedAt: time.Now().UTC(),
	})
}

func (s *DirectSink) broadcast(roomID uuid.UUID, eventType EventType, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}

	s.cm.BroadcastToRoom(roomID, &RoomEvent{
		ID:        uuid.New().String(),
		RoomID:    roomID.String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
	return nil
}
