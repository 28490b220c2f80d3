package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrCandidateNotFound is returned when a candidate does not exist in a
	// room's catalog.
	ErrCandidateNotFound = errors.New("candidate not found")

	// ErrCatalogAlreadyLoaded is returned when a room's catalog has already
	// been provisioned. The catalog is immutable once loaded.
	ErrCatalogAlreadyLoaded = errors.New("catalog already loaded for room")
)

// CandidateSeed describes one catalog entry at provisioning time.
type CandidateSeed struct {
	ID     uuid.UUID `json:"id"`
	TeamID uuid.UUID `json:"team_id"`
	Name   string    `json:"name"`
	Role   string    `json:"role,omitempty"`
	Score  float64   `json:"score,omitempty"`
}

// LoadCatalogRequest provisions the fixed candidate catalog for a room.
type LoadCatalogRequest struct {
	RoomID     uuid.UUID       `json:"room_id"`
	Candidates []CandidateSeed `json:"candidates"`
}
