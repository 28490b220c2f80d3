package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// Sink adapts the outbox App to the ledger's event sink. Every mutation
// produces a LedgerChanged row plus a detail row; the relay delivers both.
type Sink struct {
	app *App
}

func NewSink(app *App) *Sink {
	return &Sink{app: app}
}

func (s *Sink) PickMade(ctx context.Context, pick models.Pick, newLength int) error {
	if err := s.insertLedgerChanged(ctx, pick.RoomID, newLength); err != nil {
		return err
	}

	payload, err := json.Marshal(events.PickMadePayload{
		PickID:        pick.ID.String(),
		RoomID:        pick.RoomID.String(),
		ParticipantID: pick.ParticipantID.String(),
		CandidateID:   pick.CandidateID.String(),
		Sequence:      pick.Sequence,
		Round:         pick.Round,
		Pick:          pick.Pick,
		PickedAt:      pick.PickedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal PickMade payload: %w", err)
	}
	return s.app.InsertPickMadeEvent(ctx, pick.RoomID, payload)
}

func (s *Sink) PickUndone(ctx context.Context, pick models.Pick, newLength int) error {
	if err := s.insertLedgerChanged(ctx, pick.RoomID, newLength); err != nil {
		return err
	}

	payload, err := json.Marshal(events.PickUndonePayload{
		PickID:        pick.ID.String(),
		RoomID:        pick.RoomID.String(),
		ParticipantID: pick.ParticipantID.String(),
		CandidateID:   pick.CandidateID.String(),
		Sequence:      pick.Sequence,
		NewLength:     newLength,
		UndoneAt:      time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal PickUndone payload: %w", err)
	}
	return s.app.InsertPickUndoneEvent(ctx, pick.RoomID, payload)
}

func (s *Sink) DraftCompleted(ctx context.Context, roomID uuid.UUID, totalPicks int) error {
	payload, err := json.Marshal(events.DraftCompletedPayload{
		RoomID:      roomID.String(),
		TotalPicks:  totalPicks,
		CompletedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal DraftCompleted payload: %w", err)
	}
	return s.app.InsertDraftCompletedEvent(ctx, roomID, payload)
}

func (s *Sink) insertLedgerChanged(ctx context.Context, roomID uuid.UUID, newLength int) error {
	payload, err := json.Marshal(events.LedgerChangedPayload{
		RoomID:    roomID.String(),
		NewLength: newLength,
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal LedgerChanged payload: %w", err)
	}
	return s.app.InsertLedgerChangedEvent(ctx, roomID, payload)
}
