package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/catalog"
	"github.com/mcdev12/draftroom/go/internal/draft/ledger"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/mcdev12/draftroom/go/internal/room"
	"github.com/rs/zerolog/log"
)

// RoomService defines what the gateway needs from the room application.
type RoomService interface {
	CreateRoom(ctx context.Context, req room.CreateRoomRequest) (*models.Room, error)
	SetDraftOrder(ctx context.Context, roomID uuid.UUID, draftOrder []uuid.UUID) (*models.Room, error)
	GetRoom(ctx context.Context, id uuid.UUID) (*models.Room, error)
	GetParticipants(ctx context.Context, roomID uuid.UUID) ([]models.Participant, error)
}

// CatalogService defines what the gateway needs from the catalog application.
type CatalogService interface {
	LoadCatalog(ctx context.Context, req catalog.LoadCatalogRequest) ([]models.Candidate, error)
	ListCandidates(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error)
	ListAvailableForRoom(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error)
}

// LedgerService defines what the gateway needs from the ledger application.
type LedgerService interface {
	AppendPick(ctx context.Context, req ledger.AppendPickRequest) (*models.Pick, error)
	UndoLastPick(ctx context.Context, roomID uuid.UUID, requester models.Role) (*models.Pick, error)
	Snapshot(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error)
	DraftState(ctx context.Context, roomID uuid.UUID) (*ledger.DraftState, error)
}

// Service exposes the draft room HTTP API.
type Service struct {
	rooms   RoomService
	catalog CatalogService
	ledger  LedgerService
}

// NewService creates a new gateway service.
func NewService(rooms RoomService, catalogSvc CatalogService, ledgerSvc LedgerService) *Service {
	return &Service{
		rooms:   rooms,
		catalog: catalogSvc,
		ledger:  ledgerSvc,
	}
}

// RegisterRoutes registers the HTTP API routes with a mux.
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/rooms", s.HandleCreateRoom)
	mux.HandleFunc("GET /api/rooms/{id}", s.HandleGetRoom)
	mux.HandleFunc("GET /api/rooms/{id}/participants", s.HandleGetParticipants)
	mux.HandleFunc("POST /api/rooms/{id}/order", s.HandleSetDraftOrder)
	mux.HandleFunc("POST /api/rooms/{id}/catalog", s.HandleLoadCatalog)
	mux.HandleFunc("GET /api/rooms/{id}/candidates", s.HandleListCandidates)
	mux.HandleFunc("GET /api/rooms/{id}/state", s.HandleGetDraftState)
	mux.HandleFunc("GET /api/rooms/{id}/picks", s.HandleGetPicks)
	mux.HandleFunc("POST /api/rooms/{id}/picks", s.HandleSubmitPick)
	mux.HandleFunc("POST /api/rooms/{id}/picks/undo", s.HandleUndoLastPick)
}

// errorResponse is the JSON error body shape.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeDomainError maps domain sentinels to HTTP status codes. Busy gets a
// Retry-After so well-behaved clients back off instead of hammering the lock.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrBusy):
		w.Header().Set("Retry-After", "1")
		writeError(w, http.StatusServiceUnavailable, "room is busy, retry shortly")
	case errors.Is(err, ledger.ErrForbidden):
		writeError(w, http.StatusForbidden, "commissioner role required")
	case errors.Is(err, room.ErrRoomNotFound):
		writeError(w, http.StatusNotFound, "room not found")
	case errors.Is(err, catalog.ErrCandidateNotFound):
		writeError(w, http.StatusNotFound, "candidate not found")
	case errors.Is(err, ledger.ErrOutOfTurn):
		writeError(w, http.StatusConflict, "participant is not on the clock")
	case errors.Is(err, ledger.ErrAlreadyDrafted):
		writeError(w, http.StatusConflict, "candidate already drafted")
	case errors.Is(err, ledger.ErrTeamConflict):
		writeError(w, http.StatusConflict, "participant already holds a candidate from this team")
	case errors.Is(err, ledger.ErrDraftComplete):
		writeError(w, http.StatusConflict, "draft is complete")
	case errors.Is(err, ledger.ErrEmptyLedger):
		writeError(w, http.StatusConflict, "no picks to undo")
	case errors.Is(err, room.ErrOrderAlreadySet):
		writeError(w, http.StatusConflict, "draft order already set")
	case errors.Is(err, catalog.ErrCatalogAlreadyLoaded):
		writeError(w, http.StatusConflict, "catalog already loaded")
	case errors.Is(err, ledger.ErrInvalidConfiguration):
		writeError(w, http.StatusBadRequest, "room has no draft order configured")
	default:
		log.Error().Err(err).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// roomIDFromPath parses the {id} path segment.
func roomIDFromPath(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// roleFromRequest resolves the requester's privilege level. Anything other
// than an explicit commissioner header acts as a plain participant.
func roleFromRequest(r *http.Request) models.Role {
	if r.Header.Get("X-Draft-Role") == string(models.RoleCommissioner) {
		return models.RoleCommissioner
	}
	return models.RoleParticipant
}
