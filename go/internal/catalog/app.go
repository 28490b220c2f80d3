package catalog

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
)

// PickReader exposes the picks already recorded for a room. The catalog app
// uses it to compute availability; it never mutates the ledger.
type PickReader interface {
	GetPicksByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error)
}

// App handles candidate catalog business logic.
type App struct {
	repo  CatalogRepository
	picks PickReader
}

// NewApp creates a new catalog App.
func NewApp(repo CatalogRepository, picks PickReader) *App {
	return &App{
		repo:  repo,
		picks: picks,
	}
}

// LoadCatalog provisions the fixed candidate catalog for a room. It may be
// called exactly once per room; the catalog is immutable for the room's
// lifetime.
func (a *App) LoadCatalog(ctx context.Context, req LoadCatalogRequest) ([]models.Candidate, error) {
	if err := a.validateLoadCatalogRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	existing, err := a.repo.CountCandidates(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("failed to count candidates: %w", err)
	}
	if existing > 0 {
		return nil, ErrCatalogAlreadyLoaded
	}

	candidates := make([]models.Candidate, len(req.Candidates))
	for i, seed := range req.Candidates {
		id := seed.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		candidates[i] = models.Candidate{
			ID:     id,
			RoomID: req.RoomID,
			TeamID: seed.TeamID,
			Name:   seed.Name,
			Role:   seed.Role,
			Score:  seed.Score,
		}
	}

	if err := a.repo.CreateCandidates(ctx, req.RoomID, candidates); err != nil {
		return nil, fmt.Errorf("failed to create candidates: %w", err)
	}

	log.Printf("Loaded catalog for room %s (%d candidates)", req.RoomID, len(candidates))
	return candidates, nil
}

// GetCandidate retrieves a single candidate from a room's catalog.
func (a *App) GetCandidate(ctx context.Context, roomID, candidateID uuid.UUID) (*models.Candidate, error) {
	candidate, err := a.repo.GetCandidate(ctx, roomID, candidateID)
	if err != nil {
		return nil, err
	}
	return candidate, nil
}

// CandidateIndex returns the room's full catalog keyed by candidate ID.
func (a *App) CandidateIndex(ctx context.Context, roomID uuid.UUID) (map[uuid.UUID]models.Candidate, error) {
	candidates, err := a.repo.ListCandidatesByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	index := make(map[uuid.UUID]models.Candidate, len(candidates))
	for _, c := range candidates {
		index[c.ID] = c
	}
	return index, nil
}

// ListCandidates returns the room's full catalog.
func (a *App) ListCandidates(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error) {
	candidates, err := a.repo.ListCandidatesByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, nil
}

// ListAvailableForRoom returns the catalog entries not yet claimed by any
// recorded pick, in catalog order.
func (a *App) ListAvailableForRoom(ctx context.Context, roomID uuid.UUID) ([]models.Candidate, error) {
	candidates, err := a.repo.ListCandidatesByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	picks, err := a.picks.GetPicksByRoom(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to get picks: %w", err)
	}

	drafted := make(map[uuid.UUID]bool, len(picks))
	for _, p := range picks {
		drafted[p.CandidateID] = true
	}

	available := make([]models.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if !drafted[c.ID] {
			available = append(available, c)
		}
	}
	return available, nil
}

func (a *App) validateLoadCatalogRequest(req LoadCatalogRequest) error {
	if req.RoomID == uuid.Nil {
		return fmt.Errorf("room_id is required")
	}
	if len(req.Candidates) == 0 {
		return fmt.Errorf("at least one candidate is required")
	}
	seen := make(map[uuid.UUID]bool, len(req.Candidates))
	for _, c := range req.Candidates {
		if c.Name == "" {
			return fmt.Errorf("candidate name is required")
		}
		if c.TeamID == uuid.Nil {
			return fmt.Errorf("candidate %q has no team", c.Name)
		}
		if c.ID != uuid.Nil {
			if seen[c.ID] {
				return fmt.Errorf("duplicate candidate id %s", c.ID)
			}
			seen[c.ID] = true
		}
	}
	return nil
}
