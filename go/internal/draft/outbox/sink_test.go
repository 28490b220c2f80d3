package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/events"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type insertedEvent struct {
	roomID    uuid.UUID
	eventType string
	payload   []byte
}

type fakeRepo struct {
	inserted []insertedEvent
}

func (f *fakeRepo) InsertEvent(ctx context.Context, roomID uuid.UUID, eventType string, payload []byte) error {
	f.inserted = append(f.inserted, insertedEvent{roomID: roomID, eventType: eventType, payload: payload})
	return nil
}

func (f *fakeRepo) FetchUnsentEvents(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	return nil, nil
}

func (f *fakeRepo) FetchEventByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	return nil, nil
}

func (f *fakeRepo) MarkEventSent(ctx context.Context, id uuid.UUID) error {
	return nil
}

func TestSinkPickMade(t *testing.T) {
	repo := &fakeRepo{}
	sink := NewSink(NewApp(repo))

	pick := models.Pick{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		Sequence:      3,
		Round:         2,
		Pick:          1,
		ParticipantID: uuid.New(),
		CandidateID:   uuid.New(),
		PickedAt:      time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC),
	}

	err := sink.PickMade(context.Background(), pick, 3)
	require.NoError(t, err)

	require.Len(t, repo.inserted, 2)
	assert.Equal(t, events.TypeLedgerChanged, repo.inserted[0].eventType)
	assert.Equal(t, events.TypePickMade, repo.inserted[1].eventType)

	var changed events.LedgerChangedPayload
	require.NoError(t, json.Unmarshal(repo.inserted[0].payload, &changed))
	assert.Equal(t, pick.RoomID.String(), changed.RoomID)
	assert.Equal(t, 3, changed.NewLength)

	var made events.PickMadePayload
	require.NoError(t, json.Unmarshal(repo.inserted[1].payload, &made))
	assert.Equal(t, pick.ID.String(), made.PickID)
	assert.Equal(t, 3, made.Sequence)
}

func TestSinkPickUndone(t *testing.T) {
	repo := &fakeRepo{}
	sink := NewSink(NewApp(repo))

	pick := models.Pick{
		ID:            uuid.New(),
		RoomID:        uuid.New(),
		Sequence:      5,
		ParticipantID: uuid.New(),
		CandidateID:   uuid.New(),
	}

	err := sink.PickUndone(context.Background(), pick, 4)
	require.NoError(t, err)

	require.Len(t, repo.inserted, 2)
	assert.Equal(t, events.TypeLedgerChanged, repo.inserted[0].eventType)
	assert.Equal(t, events.TypePickUndone, repo.inserted[1].eventType)

	var undone events.PickUndonePayload
	require.NoError(t, json.Unmarshal(repo.inserted[1].payload, &undone))
	assert.Equal(t, 4, undone.NewLength)
}

func TestAppRejectsInvalidPayload(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)

	err := app.InsertLedgerChangedEvent(context.Background(), uuid.New(), []byte("{not json"))
	assert.Error(t, err)
	assert.Empty(t, repo.inserted)
}
