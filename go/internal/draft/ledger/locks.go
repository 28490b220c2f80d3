package ledger

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// roomLocks hands out a weighted-1 semaphore per room. Semaphores support
// context-bounded acquisition, which is how a contended room surfaces as
// ErrBusy instead of an unbounded wait. Rooms never contend with each other.
type roomLocks struct {
	mu   sync.Mutex
	sems map[uuid.UUID]*semaphore.Weighted
}

func newRoomLocks() *roomLocks {
	return &roomLocks{
		sems: make(map[uuid.UUID]*semaphore.Weighted),
	}
}

func (l *roomLocks) sem(roomID uuid.UUID) *semaphore.Weighted {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.sems[roomID]
	if !ok {
		s = semaphore.NewWeighted(1)
		l.sems[roomID] = s
	}
	return s
}

// acquire takes the room's critical section, waiting at most maxWait.
// The returned release function must be called exactly once.
func (l *roomLocks) acquire(ctx context.Context, roomID uuid.UUID, maxWait time.Duration) (func(), error) {
	s := l.sem(roomID)

	waitCtx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	if err := s.Acquire(waitCtx, 1); err != nil {
		return nil, ErrBusy
	}
	return func() { s.Release(1) }, nil
}
