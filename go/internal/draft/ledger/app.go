package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/mcdev12/draftroom/go/internal/draft/order"
	"github.com/mcdev12/draftroom/go/internal/draft/roster"
	"github.com/mcdev12/draftroom/go/internal/draft/turn"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/rs/zerolog/log"
)

const defaultLockWait = 2 * time.Second

// RoomApp defines what the ledger app needs from the room application.
type RoomApp interface {
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	UpdateRoomStatus(ctx context.Context, id uuid.UUID, status models.RoomStatus) error
}

// CatalogApp defines what the ledger app needs from the candidate catalog.
type CatalogApp interface {
	GetCandidate(ctx context.Context, roomID, candidateID uuid.UUID) (*models.Candidate, error)
	CandidateIndex(ctx context.Context, roomID uuid.UUID) (map[uuid.UUID]models.Candidate, error)
}

// EventSink receives change notifications after successful mutations.
// Delivery is at-least-once and advisory: sink failures are logged, never
// rolled back, and observers must re-fetch the snapshot rather than trust
// event ordering.
type EventSink interface {
	PickMade(ctx context.Context, pick models.Pick, newLength int) error
	PickUndone(ctx context.Context, pick models.Pick, newLength int) error
	DraftCompleted(ctx context.Context, roomID uuid.UUID, totalPicks int) error
}

// App owns the authoritative pick ledger per room. Every mutation runs
// under that room's critical section: the length read, the turn check, the
// roster check and the durable write are indivisible with respect to any
// other append or undo for the same room.
type App struct {
	repo     Repository
	rooms    RoomApp
	catalog  CatalogApp
	sink     EventSink
	clock    clockwork.Clock
	locks    *roomLocks
	lockWait time.Duration
}

// NewApp creates a new ledger App.
func NewApp(repo Repository, rooms RoomApp, catalog CatalogApp, sink EventSink) *App {
	return &App{
		repo:     repo,
		rooms:    rooms,
		catalog:  catalog,
		sink:     sink,
		clock:    clockwork.NewRealClock(),
		locks:    newRoomLocks(),
		lockWait: defaultLockWait,
	}
}

// AppendPick validates and commits the next pick for a room.
func (a *App) AppendPick(ctx context.Context, req AppendPickRequest) (*models.Pick, error) {
	room, err := a.rooms.GetRoom(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	draftOrder := room.Settings.DraftOrder
	if len(draftOrder) == 0 {
		return nil, ErrInvalidConfiguration
	}

	// Catalog is immutable for the draft's lifetime, safe to read unlocked.
	candidate, err := a.catalog.GetCandidate(ctx, req.RoomID, req.CandidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	index, err := a.catalog.CandidateIndex(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate index: %w", err)
	}

	release, err := a.locks.acquire(ctx, req.RoomID, a.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	// Freshest snapshot, read under the room lock.
	picks, err := a.repo.GetPicksByRoom(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	length := len(picks)

	totalPicks := room.Settings.Rounds * len(draftOrder)
	if totalPicks > 0 && length >= totalPicks {
		return nil, ErrDraftComplete
	}

	if err := turn.Validate(req.ParticipantID, length, draftOrder); err != nil {
		return nil, err
	}

	switch roster.Check(req.ParticipantID, *candidate, picks, index) {
	case roster.AlreadyDrafted:
		return nil, ErrAlreadyDrafted
	case roster.TeamConflict:
		return nil, ErrTeamConflict
	}

	round, pickInRound := order.RoundAndPick(length+1, len(draftOrder))
	pick := models.Pick{
		ID:            uuid.New(),
		RoomID:        req.RoomID,
		Sequence:      length + 1,
		Round:         round,
		Pick:          pickInRound,
		ParticipantID: req.ParticipantID,
		CandidateID:   req.CandidateID,
		PickedAt:      a.clock.Now().UTC(),
	}

	if err := a.repo.AppendPick(ctx, pick); err != nil {
		return nil, fmt.Errorf("failed to append pick: %w", err)
	}
	newLength := length + 1

	log.Info().
		Str("room_id", req.RoomID.String()).
		Str("participant_id", req.ParticipantID.String()).
		Str("candidate_id", req.CandidateID.String()).
		Int("sequence", pick.Sequence).
		Msg("pick committed")

	if totalPicks > 0 && newLength == totalPicks {
		if err := a.rooms.UpdateRoomStatus(ctx, req.RoomID, models.RoomStatusComplete); err != nil {
			log.Error().Err(err).Str("room_id", req.RoomID.String()).Msg("failed to mark room complete")
		}
		if err := a.sink.DraftCompleted(ctx, req.RoomID, totalPicks); err != nil {
			log.Error().Err(err).Str("room_id", req.RoomID.String()).Msg("failed to emit DraftCompleted")
		}
	}

	if err := a.sink.PickMade(ctx, pick, newLength); err != nil {
		log.Error().Err(err).Str("room_id", req.RoomID.String()).Msg("failed to emit PickMade")
	}

	return &pick, nil
}

// UndoLastPick removes the tail pick from a room's ledger. Only the
// commissioner role may undo, and only the single most recent pick.
func (a *App) UndoLastPick(ctx context.Context, roomID uuid.UUID, requester models.Role) (*models.Pick, error) {
	if requester != models.RoleCommissioner {
		return nil, ErrForbidden
	}

	room, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	release, err := a.locks.acquire(ctx, roomID, a.lockWait)
	if err != nil {
		return nil, err
	}
	defer release()

	picks, err := a.repo.GetPicksByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	if len(picks) == 0 {
		return nil, ErrEmptyLedger
	}

	tail := picks[len(picks)-1]
	if err := a.repo.DeleteTailPick(ctx, roomID, tail.Sequence); err != nil {
		return nil, fmt.Errorf("failed to delete tail pick: %w", err)
	}
	newLength := len(picks) - 1

	log.Info().
		Str("room_id", roomID.String()).
		Int("sequence", tail.Sequence).
		Msg("tail pick undone")

	if room.Status == models.RoomStatusComplete {
		if err := a.rooms.UpdateRoomStatus(ctx, roomID, models.RoomStatusDrafting); err != nil {
			log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to reopen room")
		}
	}

	if err := a.sink.PickUndone(ctx, tail, newLength); err != nil {
		log.Error().Err(err).Str("room_id", roomID.String()).Msg("failed to emit PickUndone")
	}

	return &tail, nil
}

// Snapshot returns the full ordered ledger for a room. It never takes the
// room's mutation lock; the repository serves a consistent recent view.
func (a *App) Snapshot(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error) {
	picks, err := a.repo.GetPicksByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return picks, nil
}

// DraftState derives the read-side view of a room from a snapshot.
func (a *App) DraftState(ctx context.Context, roomID uuid.UUID) (*DraftState, error) {
	room, err := a.rooms.GetRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	picks, err := a.Snapshot(ctx, roomID)
	if err != nil {
		return nil, err
	}

	state := &DraftState{
		RoomID: roomID,
		Status: room.Status,
		Picks:  picks,
	}

	draftOrder := room.Settings.DraftOrder
	if len(draftOrder) == 0 {
		return state, nil
	}
	state.TotalPicks = room.Settings.Rounds * len(draftOrder)

	length := len(picks)
	if state.TotalPicks > 0 && length >= state.TotalPicks {
		state.Round, state.PickInRound = order.RoundAndPick(length, len(draftOrder))
		return state, nil
	}

	onClock, err := turn.OnClock(length, draftOrder)
	if err != nil {
		return nil, err
	}
	upNext, err := turn.UpNext(length, draftOrder)
	if err != nil {
		return nil, err
	}
	state.OnClock = &onClock
	state.UpNext = &upNext
	state.Round, state.PickInRound = order.RoundAndPick(length+1, len(draftOrder))

	return state, nil
}
