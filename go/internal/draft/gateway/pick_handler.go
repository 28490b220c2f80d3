package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/draft/ledger"
)

// HandleSubmitPick handles POST /api/rooms/{id}/picks.
func (s *Service) HandleSubmitPick(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	var req struct {
		ParticipantID uuid.UUID `json:"participant_id"`
		CandidateID   uuid.UUID `json:"candidate_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ParticipantID == uuid.Nil || req.CandidateID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "participant_id and candidate_id are required")
		return
	}

	pick, err := s.ledger.AppendPick(r.Context(), ledger.AppendPickRequest{
		RoomID:        roomID,
		ParticipantID: req.ParticipantID,
		CandidateID:   req.CandidateID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, pick)
}

// HandleUndoLastPick handles POST /api/rooms/{id}/picks/undo. Only the most
// recent pick can be removed, and only by a commissioner.
func (s *Service) HandleUndoLastPick(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	undone, err := s.ledger.UndoLastPick(r.Context(), roomID, roleFromRequest(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, undone)
}

// HandleGetPicks handles GET /api/rooms/{id}/picks.
func (s *Service) HandleGetPicks(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	picks, err := s.ledger.Snapshot(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, picks)
}

// HandleGetDraftState handles GET /api/rooms/{id}/state.
func (s *Service) HandleGetDraftState(w http.ResponseWriter, r *http.Request) {
	roomID, ok := roomIDFromPath(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid room id")
		return
	}

	state, err := s.ledger.DraftState(r.Context(), roomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}
