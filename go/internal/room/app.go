package room

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// App handles room business logic.
type App struct {
	repo RoomRepository
}

// NewApp creates a new room App.
func NewApp(repo RoomRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateRoom provisions a room and its participants. Participants receive
// 0-based slots in the order they appear in the request; the draft order is
// supplied later via SetDraftOrder.
func (a *App) CreateRoom(ctx context.Context, req CreateRoomRequest) (*models.Room, error) {
	if err := a.validateCreateRoomRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	id := req.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	now := time.Now().UTC()
	room := models.Room{
		ID:             id,
		Name:           req.Name,
		Status:         models.RoomStatusPending,
		CommissionerID: req.CommissionerID,
		Settings: models.RoomSettings{
			Rounds: req.Rounds,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	participants := make([]models.Participant, len(req.Participants))
	for i, seed := range req.Participants {
		participants[i] = models.Participant{
			ID:          seed.ID,
			RoomID:      id,
			DisplayName: seed.DisplayName,
			Slot:        i,
		}
	}

	if err := a.repo.CreateRoom(ctx, room, participants); err != nil {
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	log.Printf("Created room %s with %d participants", room.ID, len(participants))
	return &room, nil
}

// SetDraftOrder provisions the immutable round-1 participant sequence for a
// room. It may be called exactly once, before any pick is accepted; the
// order must be a permutation of the room's participants.
func (a *App) SetDraftOrder(ctx context.Context, roomID uuid.UUID, draftOrder []uuid.UUID) (*models.Room, error) {
	room, err := a.repo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	if len(room.Settings.DraftOrder) > 0 {
		return nil, ErrOrderAlreadySet
	}
	if len(draftOrder) == 0 {
		return nil, fmt.Errorf("draft order must not be empty")
	}

	participants, err := a.repo.GetParticipantsByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	if err := validatePermutation(draftOrder, participants); err != nil {
		return nil, err
	}

	room.Settings.DraftOrder = draftOrder
	room.Status = models.RoomStatusDrafting
	room.UpdatedAt = time.Now().UTC()

	if err := a.repo.UpdateRoom(ctx, *room); err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}

	log.Printf("Set draft order for room %s (%d slots)", roomID, len(draftOrder))
	return room, nil
}

// GetRoom retrieves a room by ID.
func (a *App) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	room, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	return room, nil
}

// GetParticipants retrieves a room's participants ordered by slot.
func (a *App) GetParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	participants, err := a.repo.GetParticipantsByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	return participants, nil
}

// UpdateRoomStatus updates a room's lifecycle status.
func (a *App) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error {
	room, err := a.repo.GetRoom(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get room: %w", err)
	}

	room.Status = status
	room.UpdatedAt = time.Now().UTC()

	if err := a.repo.UpdateRoom(ctx, *room); err != nil {
		return fmt.Errorf("failed to update room status: %w", err)
	}
	return nil
}

func (a *App) validateCreateRoomRequest(req CreateRoomRequest) error {
	if req.Name == "" {
		return fmt.Errorf("name is required")
	}
	if req.CommissionerID == uuid.Nil {
		return fmt.Errorf("commissioner_id is required")
	}
	if len(req.Participants) == 0 {
		return fmt.Errorf("at least one participant is required")
	}
	if req.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative")
	}
	seen := make(map[uuid.UUID]bool, len(req.Participants))
	for _, p := range req.Participants {
		if p.ID == uuid.Nil {
			return fmt.Errorf("participant id is required")
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate participant id %s", p.ID)
		}
		seen[p.ID] = true
	}
	return nil
}

func validatePermutation(draftOrder []uuid.UUID, participants []models.Participant) error {
	if len(draftOrder) != len(participants) {
		return fmt.Errorf("draft order has %d entries, room has %d participants", len(draftOrder), len(participants))
	}
	known := make(map[uuid.UUID]bool, len(participants))
	for _, p := range participants {
		known[p.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(draftOrder))
	for _, id := range draftOrder {
		if !known[id] {
			return fmt.Errorf("unknown participant %s in draft order", id)
		}
		if seen[id] {
			return fmt.Errorf("participant %s appears twice in draft order", id)
		}
		seen[id] = true
	}
	return nil
}
