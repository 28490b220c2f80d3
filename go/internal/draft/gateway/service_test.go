package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/catalog"
	"github.com/mcdev12/draftroom/go/internal/draft/ledger"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopSink struct{}

func (nopSink) PickMade(ctx context.Context, pick models.Pick, newLength int) error   { return nil }
func (nopSink) PickUndone(ctx context.Context, pick models.Pick, newLength int) error { return nil }
func (nopSink) DraftCompleted(ctx context.Context, roomID uuid.UUID, totalPicks int) error {
	return nil
}

// newTestServer wires memory-backed apps behind the HTTP API.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ledgerRepo := ledger.NewMemoryRepository()
	roomApp := room.NewApp(room.NewMemoryRepository())
	catalogApp := catalog.NewApp(catalog.NewMemoryRepository(), ledgerRepo)
	ledgerApp := ledger.NewApp(ledgerRepo, roomApp, catalogApp, nopSink{})

	mux := http.NewServeMux()
	NewService(roomApp, catalogApp, ledgerApp).RegisterRoutes(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body interface{}, headers map[string]string) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

// provisionRoom creates a room with two participants, loads a four-candidate
// catalog on distinct teams and sets the draft order.
func provisionRoom(t *testing.T, srv *httptest.Server, rounds int) (roomID uuid.UUID, participants []uuid.UUID, candidates []uuid.UUID) {
	t.Helper()

	participants = []uuid.UUID{uuid.New(), uuid.New()}
	createResp := postJSON(t, srv.URL+"/api/rooms", room.CreateRoomRequest{
		Name:           "test room",
		CommissionerID: uuid.New(),
		Rounds:         rounds,
		Participants: []room.ParticipantSeed{
			{ID: participants[0], DisplayName: "P0"},
			{ID: participants[1], DisplayName: "P1"},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, createResp.StatusCode)

	var created models.Room
	decodeBody(t, createResp, &created)
	roomID = created.ID

	seeds := make([]catalog.CandidateSeed, 4)
	candidates = make([]uuid.UUID, 4)
	for i := range seeds {
		candidates[i] = uuid.New()
		seeds[i] = catalog.CandidateSeed{
			ID:     candidates[i],
			TeamID: uuid.New(),
			Name:   fmt.Sprintf("Candidate %d", i),
		}
	}
	catalogResp := postJSON(t, srv.URL+"/api/rooms/"+roomID.String()+"/catalog", map[string]interface{}{
		"candidates": seeds,
	}, nil)
	require.Equal(t, http.StatusCreated, catalogResp.StatusCode)
	catalogResp.Body.Close()

	orderResp := postJSON(t, srv.URL+"/api/rooms/"+roomID.String()+"/order", map[string]interface{}{
		"draft_order": participants,
	}, nil)
	require.Equal(t, http.StatusOK, orderResp.StatusCode)
	orderResp.Body.Close()

	return roomID, participants, candidates
}

func submitPick(t *testing.T, srv *httptest.Server, roomID, participantID, candidateID uuid.UUID) *http.Response {
	t.Helper()
	return postJSON(t, srv.URL+"/api/rooms/"+roomID.String()+"/picks", map[string]string{
		"participant_id": participantID.String(),
		"candidate_id":   candidateID.String(),
	}, nil)
}

func TestSubmitPickFlow(t *testing.T) {
	srv := newTestServer(t)
	roomID, participants, candidates := provisionRoom(t, srv, 2)

	resp := submitPick(t, srv, roomID, participants[0], candidates[0])
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var pick models.Pick
	decodeBody(t, resp, &pick)
	assert.Equal(t, 1, pick.Sequence)
	assert.Equal(t, participants[0], pick.ParticipantID)

	// Round-1 order: participant 1 is next.
	resp = submitPick(t, srv, roomID, participants[1], candidates[1])
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestSubmitPickOutOfTurn(t *testing.T) {
	srv := newTestServer(t)
	roomID, participants, candidates := provisionRoom(t, srv, 2)

	resp := submitPick(t, srv, roomID, participants[1], candidates[0])
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body errorResponse
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Error, "not on the clock")
}

func TestSubmitPickBadRequest(t *testing.T) {
	srv := newTestServer(t)
	roomID, _, _ := provisionRoom(t, srv, 2)

	resp := postJSON(t, srv.URL+"/api/rooms/"+roomID.String()+"/picks", map[string]string{}, nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestSubmitPickRoomNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp := submitPick(t, srv, uuid.New(), uuid.New(), uuid.New())
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestUndoRequiresCommissioner(t *testing.T) {
	srv := newTestServer(t)
	roomID, participants, candidates := provisionRoom(t, srv, 2)

	resp := submitPick(t, srv, roomID, participants[0], candidates[0])
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	undoURL := srv.URL + "/api/rooms/" + roomID.String() + "/picks/undo"

	resp = postJSON(t, undoURL, nil, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, undoURL, nil, map[string]string{"X-Draft-Role": "commissioner"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var undone models.Pick
	decodeBody(t, resp, &undone)
	assert.Equal(t, 1, undone.Sequence)

	// Ledger is empty again, a further undo conflicts.
	resp = postJSON(t, undoURL, nil, map[string]string{"X-Draft-Role": "commissioner"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestGetDraftState(t *testing.T) {
	srv := newTestServer(t)
	roomID, participants, candidates := provisionRoom(t, srv, 2)

	resp := submitPick(t, srv, roomID, participants[0], candidates[0])
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	stateResp, err := http.Get(srv.URL + "/api/rooms/" + roomID.String() + "/state")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, stateResp.StatusCode)

	var state ledger.DraftState
	decodeBody(t, stateResp, &state)
	assert.Equal(t, roomID, state.RoomID)
	require.Len(t, state.Picks, 1)
	require.NotNil(t, state.OnClock)
	assert.Equal(t, participants[1], *state.OnClock)
	assert.Equal(t, 4, state.TotalPicks)
}

func TestListAvailableCandidates(t *testing.T) {
	srv := newTestServer(t)
	roomID, participants, candidates := provisionRoom(t, srv, 2)

	resp := submitPick(t, srv, roomID, participants[0], candidates[0])
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	availResp, err := http.Get(srv.URL + "/api/rooms/" + roomID.String() + "/candidates?available=true")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, availResp.StatusCode)

	var available []models.Candidate
	decodeBody(t, availResp, &available)
	assert.Len(t, available, 3)
	for _, c := range available {
		assert.NotEqual(t, candidates[0], c.ID)
	}
}

func TestSetDraftOrderConflict(t *testing.T) {
	srv := newTestServer(t)
	roomID, participants, _ := provisionRoom(t, srv, 2)

	resp := postJSON(t, srv.URL+"/api/rooms/"+roomID.String()+"/order", map[string]interface{}{
		"draft_order": participants,
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestParseEventPayloadRoundTrip(t *testing.T) {
	event := &RoomEvent{
		ID:     uuid.New().String(),
		RoomID: uuid.New().String(),
		Type:   EventTypeLedgerChanged,
		Data:   json.RawMessage(`{"room_id":"r","new_length":3}`),
	}

	payload, err := ParseEventPayload(event)
	require.NoError(t, err)
	require.NotNil(t, payload)
}
