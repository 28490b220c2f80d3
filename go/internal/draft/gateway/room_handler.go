package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/catalog"
	"github.com/mcdev12/draftroom/go/internal/room"
)

// HandleCreateRoom handles POST /api/rooms.
func (s *Service) HandleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req room.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.rooms.CreateRoom(r.Context(), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleGetRoom handles GET /api/rooms/{id}.
func (s *Service) HandleGetRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	got, err := s.rooms.GetRoom(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, got)
}

// HandleGetParticipants handles GET /api/rooms/{id}/participants.
func (s *Service) HandleGetParticipants(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	participants, err := s.rooms.GetParticipants(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, participants)
}

// HandleSetDraftOrder handles POST /api/rooms/{id}/order. The order is a
// one-shot provisioning call; repeats are rejected.
func (s *Service) HandleSetDraftOrder(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req struct {
		DraftOrder []uuid.UUID `json:"draft_order"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.rooms.SetDraftOrder(r.Context(), roomID, req.DraftOrder)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HandleLoadCatalog handles POST /api/rooms/{id}/catalog.
func (s *Service) HandleLoadCatalog(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req struct {
		Candidates []catalog.CandidateSeed `json:"candidates"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	candidates, err := s.catalog.LoadCatalog(r.Context(), catalog.LoadCatalogRequest{
		RoomID:     roomID,
		Candidates: req.Candidates,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidates)
}

// HandleListCandidates handles GET /api/rooms/{id}/candidates. With
// ?available=true only undrafted candidates are returned.
func (s *Service) HandleListCandidates(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var (
		candidates interface{}
		err        error
	)
	if r.URL.Query().Get("available") == "true" {
		candidates, err = s.catalog.ListAvailableForRoom(r.Context(), roomID)
	} else {
		candidates, err = s.catalog.ListCandidates(r.Context(), roomID)
	}
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}
