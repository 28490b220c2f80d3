package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// Repository defines what the ledger app needs from the pick store.
// AppendPick and DeleteTailPick must each be atomic; the app serializes
// calls per room, so implementations never see concurrent mutations for
// the same room.
type Repository interface {
	AppendPick(ctx context.Context, pick models.Pick) error
	DeleteTailPick(ctx context.Context, roomID uuid.UUID, sequence int) error
	GetPicksByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error)
	CountPicks(ctx context.Context, roomID uuid.UUID) (int, error)
}
