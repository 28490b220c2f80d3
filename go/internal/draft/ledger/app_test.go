package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRooms struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]*models.Room
}

func (f *fakeRooms) GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return nil, errors.New("room not found")
	}
	copy := *room
	return &copy, nil
}

func (f *fakeRooms) UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	room, ok := f.rooms[id]
	if !ok {
		return errors.New("room not found")
	}
	room.Status = status
	return nil
}

type fakeCatalog struct {
	candidates map[uuid.UUID]models.Candidate
}

func (f *fakeCatalog) GetCandidate(ctx context.Context, roomID, candidateID uuid.UUID) (*models.Candidate, error) {
	c, ok := f.candidates[candidateID]
	if !ok {
		return nil, errors.New("candidate not found")
	}
	return &c, nil
}

func (f *fakeCatalog) CandidateIndex(ctx context.Context, roomID uuid.UUID) (map[uuid.UUID]models.Candidate, error) {
	return f.candidates, nil
}

type captureSink struct {
	mu        sync.Mutex
	made      []models.Pick
	undone    []models.Pick
	completed []uuid.UUID
}

func (s *captureSink) PickMade(ctx context.Context, pick models.Pick, newLength int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.made = append(s.made, pick)
	return nil
}

func (s *captureSink) PickUndone(ctx context.Context, pick models.Pick, newLength int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.undone = append(s.undone, pick)
	return nil
}

func (s *captureSink) DraftCompleted(ctx context.Context, roomID uuid.UUID, totalPicks int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.completed = append(s.completed, roomID)
	return nil
}

type fixture struct {
	app          *App
	rooms        *fakeRooms
	sink         *captureSink
	clock        *clockwork.FakeClock
	roomID       uuid.UUID
	participants []uuid.UUID
	// candidates[i] belong to teams[i%len(teams)]
	candidates []models.Candidate
}

// newFixture builds a room with numParticipants slots and a catalog of
// numCandidates candidates spread across numTeams affiliations.
func newFixture(t *testing.T, numParticipants, rounds, numCandidates, numTeams int) *fixture {
	t.Helper()

	roomID := uuid.New()
	participants := make([]uuid.UUID, numParticipants)
	for i := range participants {
		participants[i] = uuid.New()
	}

	teams := make([]uuid.UUID, numTeams)
	for i := range teams {
		teams[i] = uuid.New()
	}

	candidates := make([]models.Candidate, numCandidates)
	index := make(map[uuid.UUID]models.Candidate, numCandidates)
	for i := range candidates {
		c := models.Candidate{
			ID:     uuid.New(),
			RoomID: roomID,
			TeamID: teams[i%numTeams],
		}
		candidates[i] = c
		index[c.ID] = c
	}

	rooms := &fakeRooms{rooms: map[uuid.UUID]*models.Room{
		roomID: {
			ID:     roomID,
			Status: models.RoomStatusDrafting,
			Settings: models.RoomSettings{
				Rounds:     rounds,
				DraftOrder: participants,
			},
		},
	}}

	sink := &captureSink{}
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC))

	app := NewApp(NewMemoryRepository(), rooms, &fakeCatalog{candidates: index}, sink)
	app.clock = clock

	return &fixture{
		app:          app,
		rooms:        rooms,
		sink:         sink,
		clock:        clock,
		roomID:       roomID,
		participants: participants,
		candidates:   candidates,
	}
}

func (f *fixture) append(participantIdx, candidateIdx int) (*models.Pick, error) {
	return f.app.AppendPick(context.Background(), AppendPickRequest{
		RoomID:        f.roomID,
		ParticipantID: f.participants[participantIdx],
		CandidateID:   f.candidates[candidateIdx].ID,
	})
}

func TestAppendPickHappyPath(t *testing.T) {
	f := newFixture(t, 4, 0, 8, 8)

	pick, err := f.append(0, 0)
	require.NoError(t, err)

	assert.Equal(t, 1, pick.Sequence)
	assert.Equal(t, 1, pick.Round)
	assert.Equal(t, 1, pick.Pick)
	assert.Equal(t, f.participants[0], pick.ParticipantID)
	assert.Equal(t, f.clock.Now().UTC(), pick.PickedAt)

	require.Len(t, f.sink.made, 1)
	assert.Equal(t, pick.ID, f.sink.made[0].ID)
}

func TestAppendPickOutOfTurn(t *testing.T) {
	f := newFixture(t, 4, 0, 8, 8)

	_, err := f.append(1, 0)
	assert.ErrorIs(t, err, ErrOutOfTurn)

	picks, err := f.app.Snapshot(context.Background(), f.roomID)
	require.NoError(t, err)
	assert.Empty(t, picks, "failed append must leave no partial state")
}

func TestAppendPickFollowsDoubleReversalOrder(t *testing.T) {
	f := newFixture(t, 4, 0, 24, 24)

	// Rounds 1-5 for [A B C D]: forward, reverse, reverse, forward, reverse.
	wantOrder := []int{
		0, 1, 2, 3,
		3, 2, 1, 0,
		3, 2, 1, 0,
		0, 1, 2, 3,
		3, 2, 1, 0,
	}

	for i, idx := range wantOrder {
		pick, err := f.append(idx, i)
		require.NoError(t, err, "pick %d by participant %d", i+1, idx)
		assert.Equal(t, i+1, pick.Sequence)
	}
}

func TestAppendPickAlreadyDrafted(t *testing.T) {
	f := newFixture(t, 2, 0, 6, 6)

	_, err := f.append(0, 0)
	require.NoError(t, err)

	_, err = f.append(1, 0)
	assert.ErrorIs(t, err, ErrAlreadyDrafted)
}

func TestAppendPickTeamConflict(t *testing.T) {
	// Two candidates, one team: candidate 0 and 1 share an affiliation.
	f := newFixture(t, 2, 0, 4, 2)

	_, err := f.append(0, 0)
	require.NoError(t, err)
	_, err = f.append(1, 1)
	require.NoError(t, err)

	// Round 2 reverses, participant 1 is on the clock again and already
	// holds candidate 1 from team index 1. Candidate 3 shares that team.
	_, err = f.append(1, 3)
	assert.ErrorIs(t, err, ErrTeamConflict)

	// A candidate from the other team is fine.
	_, err = f.append(1, 2)
	assert.NoError(t, err)
}

func TestAppendPickNoDraftOrder(t *testing.T) {
	f := newFixture(t, 2, 0, 2, 2)
	f.rooms.rooms[f.roomID].Settings.DraftOrder = nil

	_, err := f.append(0, 0)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestSequenceContiguity(t *testing.T) {
	f := newFixture(t, 3, 0, 12, 12)

	// Interleave appends and undos, then verify sequences are exactly 1..L.
	script := []struct {
		undo           bool
		participantIdx int
		candidateIdx   int
	}{
		{false, 0, 0},
		{false, 1, 1},
		{true, 0, 0},
		{false, 1, 2},
		{false, 2, 3},
		{false, 2, 4}, // round 2 reverses
		{true, 0, 0},
		{false, 2, 5},
	}

	for i, step := range script {
		if step.undo {
			_, err := f.app.UndoLastPick(context.Background(), f.roomID, models.RoleCommissioner)
			require.NoError(t, err, "step %d", i)
			continue
		}
		_, err := f.append(step.participantIdx, step.candidateIdx)
		require.NoError(t, err, "step %d", i)
	}

	picks, err := f.app.Snapshot(context.Background(), f.roomID)
	require.NoError(t, err)
	require.Len(t, picks, 4)
	for i, p := range picks {
		assert.Equal(t, i+1, p.Sequence)
	}

	// Global candidate uniqueness across the surviving picks.
	seen := map[uuid.UUID]bool{}
	for _, p := range picks {
		assert.False(t, seen[p.CandidateID], "candidate drafted twice")
		seen[p.CandidateID] = true
	}
}

func TestConcurrentAppendsSingleSlot(t *testing.T) {
	const k = 16
	f := newFixture(t, 4, 0, k, k)

	// K distinct participants race for the single on-clock slot.
	// Exactly one append commits; every loser gets OutOfTurn.
	var wg sync.WaitGroup
	errs := make([]error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.app.AppendPick(context.Background(), AppendPickRequest{
				RoomID:        f.roomID,
				ParticipantID: f.participants[i%4],
				CandidateID:   f.candidates[i].ID,
			})
		}(i)
	}
	wg.Wait()

	var successes, outOfTurn int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, ErrOutOfTurn):
			outOfTurn++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, k-1, outOfTurn)

	picks, err := f.app.Snapshot(context.Background(), f.roomID)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, f.participants[0], picks[0].ParticipantID)
}

func TestConcurrentAppendsSameParticipant(t *testing.T) {
	const k = 8
	f := newFixture(t, 4, 0, k, k)

	// The on-clock participant submits K distinct candidates at once.
	// After the first commit the clock moves on, so the rest are out of turn.
	var wg sync.WaitGroup
	errs := make([]error, k)
	for i := 0; i < k; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.append(0, i)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrOutOfTurn)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestUndoDiscipline(t *testing.T) {
	f := newFixture(t, 2, 0, 6, 6)

	_, err := f.app.UndoLastPick(context.Background(), f.roomID, models.RoleCommissioner)
	assert.ErrorIs(t, err, ErrEmptyLedger)

	first, err := f.append(0, 0)
	require.NoError(t, err)

	// Non-privileged requester never changes the ledger.
	_, err = f.app.UndoLastPick(context.Background(), f.roomID, models.RoleParticipant)
	assert.ErrorIs(t, err, ErrForbidden)
	picks, err := f.app.Snapshot(context.Background(), f.roomID)
	require.NoError(t, err)
	assert.Len(t, picks, 1)

	undone, err := f.app.UndoLastPick(context.Background(), f.roomID, models.RoleCommissioner)
	require.NoError(t, err)
	assert.Equal(t, first.ID, undone.ID)
	require.Len(t, f.sink.undone, 1)

	// The same participant is back on the clock; a new pick restores the
	// length with a different tail.
	replacement, err := f.append(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, replacement.Sequence)
	assert.NotEqual(t, undone.ID, replacement.ID)
	assert.NotEqual(t, undone.CandidateID, replacement.CandidateID)
}

func TestAppendPickBusy(t *testing.T) {
	f := newFixture(t, 2, 0, 2, 2)
	f.app.lockWait = 20 * time.Millisecond

	release, err := f.app.locks.acquire(context.Background(), f.roomID, time.Second)
	require.NoError(t, err)
	defer release()

	_, err = f.append(0, 0)
	assert.ErrorIs(t, err, ErrBusy)
}

func TestDraftCompletion(t *testing.T) {
	f := newFixture(t, 2, 1, 4, 4)

	_, err := f.append(0, 0)
	require.NoError(t, err)
	_, err = f.append(1, 1)
	require.NoError(t, err)

	room, err := f.rooms.GetRoom(context.Background(), f.roomID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusComplete, room.Status)
	assert.Equal(t, []uuid.UUID{f.roomID}, f.sink.completed)

	_, err = f.append(0, 2)
	assert.ErrorIs(t, err, ErrDraftComplete)

	// Undo reopens the room and frees the slot.
	_, err = f.app.UndoLastPick(context.Background(), f.roomID, models.RoleCommissioner)
	require.NoError(t, err)
	room, err = f.rooms.GetRoom(context.Background(), f.roomID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomStatusDrafting, room.Status)

	_, err = f.append(1, 2)
	assert.NoError(t, err)
}

func TestDraftState(t *testing.T) {
	f := newFixture(t, 4, 2, 10, 10)

	_, err := f.append(0, 0)
	require.NoError(t, err)
	_, err = f.append(1, 1)
	require.NoError(t, err)

	state, err := f.app.DraftState(context.Background(), f.roomID)
	require.NoError(t, err)

	assert.Len(t, state.Picks, 2)
	require.NotNil(t, state.OnClock)
	require.NotNil(t, state.UpNext)
	assert.Equal(t, f.participants[2], *state.OnClock)
	assert.Equal(t, f.participants[3], *state.UpNext)
	assert.Equal(t, 1, state.Round)
	assert.Equal(t, 3, state.PickInRound)
	assert.Equal(t, 8, state.TotalPicks)
}
