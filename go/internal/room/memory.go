package room

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// MemoryRepository is an in-process room store for single-node deployments
// and tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	rooms        map[uuid.UUID]models.Room
	participants map[uuid.UUID][]models.Participant
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		rooms:        make(map[uuid.UUID]models.Room),
		participants: make(map[uuid.UUID][]models.Participant),
	}
}

func (r *MemoryRepository) CreateRoom(ctx context.Context, room models.Room, participants []models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[room.ID]; exists {
		return fmt.Errorf("room %s already exists", room.ID)
	}
	r.rooms[room.ID] = room
	r.participants[room.ID] = append([]models.Participant(nil), participants...)
	return nil
}

func (r *MemoryRepository) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room.Settings.DraftOrder = append([]uuid.UUID(nil), room.Settings.DraftOrder...)
	return &room, nil
}

func (r *MemoryRepository) UpdateRoom(ctx context.Context, room models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[room.ID]; !ok {
		return ErrRoomNotFound
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *MemoryRepository) GetParticipantsByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	participants, ok := r.participants[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	out := append([]models.Participant(nil), participants...)
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })
	return out, nil
}
