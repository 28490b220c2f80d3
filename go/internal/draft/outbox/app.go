package outbox

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/rs/zerolog/log"
)

// OutboxRepository defines what the app layer needs from the repository.
type OutboxRepository interface {
	InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload []byte) error
	FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error)
	FetchEventByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error)
	MarkEventSent(ctx context.Context, id uuid.UUID) error
}

// App handles outbox business logic.
type App struct {
	repo OutboxRepository
}

// NewApp creates a new outbox App.
func NewApp(repo OutboxRepository) *App {
	return &App{
		repo: repo,
	}
}

// InsertLedgerChangedEvent inserts a LedgerChanged event into the outbox.
func (a *App) InsertLedgerChangedEvent(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return a.insert(ctx, roomID, events.TypeLedgerChanged, payload)
}

// InsertPickMadeEvent inserts a PickMade event into the outbox.
func (a *App) InsertPickMadeEvent(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return a.insert(ctx, roomID, events.TypePickMade, payload)
}

// InsertPickUndoneEvent inserts a PickUndone event into the outbox.
func (a *App) InsertPickUndoneEvent(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return a.insert(ctx, roomID, events.TypePickUndone, payload)
}

// InsertDraftCompletedEvent inserts a DraftCompleted event into the outbox.
func (a *App) InsertDraftCompletedEvent(ctx context.Context, roomID uuid.UUID, payload []byte) error {
	return a.insert(ctx, roomID, events.TypeDraftCompleted, payload)
}

// FetchUnsentEvents returns outbox events that have not been published yet.
func (a *App) FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	return a.repo.FetchUnsentEvents(ctx, limit)
}

// FetchEventByID returns a single unsent outbox event.
func (a *App) FetchEventByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	return a.repo.FetchEventByID(ctx, id)
}

// MarkEventSent records that an event has been published.
func (a *App) MarkEventSent(ctx context.Context, id uuid.UUID) error {
	return a.repo.MarkEventSent(ctx, id)
}

func (a *App) insert(ctx context.Context, roomID uuid.UUID, eventType string, payload []byte) error {
	if !json.Valid(payload) {
		return fmt.Errorf("invalid %s payload: not valid JSON", eventType)
	}

	if err := a.repo.InsertEvent(ctx, roomID, eventType, payload); err != nil {
		return fmt.Errorf("failed to insert %s event: %w", eventType, err)
	}

	log.Info().
		Str("room_id", roomID.String()).
		Str("event_type", eventType).
		Msg("outbox event inserted")

	return nil
}
