package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// CatalogRepository defines what the catalog app layer needs from the store.
type CatalogRepository interface {
	CreateCandidates(ctx context.Context, roomID uuid.UUID, candidates []models.Candidate) error
	GetCandidate(ctx context.Context, roomID, candidateID uuid.UUID) (*models.Candidate, error)
	ListCandidatesByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error)
	CountCandidates(ctx context.Context, roomID uuid.UUID) (int, error)
}
