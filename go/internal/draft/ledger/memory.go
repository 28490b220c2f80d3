package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// MemoryRepository is an in-process pick store. It backs single-node
// deployments and the test suite. Reads return copies so snapshots stay
// internally consistent after later mutations.
type MemoryRepository struct {
	mu    sync.RWMutex
	picks map[uuid.UUID][]models.Pick
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		picks: make(map[uuid.UUID][]models.Pick),
	}
}

func (r *MemoryRepository) AppendPick(ctx context.Context, pick models.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.picks[pick.RoomID]
	if pick.Sequence != len(existing)+1 {
		return fmt.Errorf("sequence %d does not extend ledger of length %d", pick.Sequence, len(existing))
	}
	r.picks[pick.RoomID] = append(existing, pick)
	return nil
}

func (r *MemoryRepository) DeleteTailPick(ctx context.Context, roomID uuid.UUID, sequence int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing := r.picks[roomID]
	if len(existing) == 0 || existing[len(existing)-1].Sequence != sequence {
		return fmt.Errorf("sequence %d is not the ledger tail", sequence)
	}
	r.picks[roomID] = existing[:len(existing)-1]
	return nil
}

func (r *MemoryRepository) GetPicksByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	existing := r.picks[roomID]
	out := make([]models.Pick, len(existing))
	copy(out, existing)
	return out, nil
}

func (r *MemoryRepository) CountPicks(ctx context.Context, roomID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.picks[roomID]), nil
}
