package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// MemoryRepository is an in-process catalog store for single-node deployments
// and tests.
type MemoryRepository struct {
	mu         sync.RWMutex
	candidates map[uuid.UUID][]models.Candidate
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		candidates: make(map[uuid.UUID][]models.Candidate),
	}
}

func (r *MemoryRepository) CreateCandidates(ctx context.Context, roomID uuid.UUID, candidates []models.Candidate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.candidates[roomID] = append(r.candidates[roomID], candidates...)
	return nil
}

func (r *MemoryRepository) GetCandidate(ctx context.Context, roomID, candidateID uuid.UUID) (*models.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.candidates[roomID] {
		if c.ID == candidateID {
			out := c
			return &out, nil
		}
	}
	return nil, ErrCandidateNotFound
}

func (r *MemoryRepository) ListCandidatesByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.Candidate(nil), r.candidates[roomID]...), nil
}

func (r *MemoryRepository) CountCandidates(ctx context.Context, roomID uuid.UUID) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.candidates[roomID]), nil
}
