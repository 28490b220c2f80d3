package room

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// RoomRepository defines what the room app layer needs from the room store.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room models.Room, participants []models.Participant) error
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	UpdateRoom(ctx context.Context, room models.Room) error
	GetParticipantsByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error)
}
