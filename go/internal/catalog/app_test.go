package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/draftroom/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePicks struct {
	picks []models.Pick
}

func (f *fakePicks) GetPicksByRoom(ctx context.Context, roomID uuid.UUID) ([]models.Pick, error) {
	return f.picks, nil
}

func TestLoadCatalogOnce(t *testing.T) {
	app := NewApp(NewMemoryRepository(), &fakePicks{})
	roomID := uuid.New()

	req := LoadCatalogRequest{
		RoomID: roomID,
		Candidates: []CandidateSeed{
			{TeamID: uuid.New(), Name: "Alpha", Score: 9.1},
			{TeamID: uuid.New(), Name: "Beta", Score: 7.4},
		},
	}

	candidates, err := app.LoadCatalog(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, candidates, 2)
	for _, c := range candidates {
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.Equal(t, roomID, c.RoomID)
	}

	_, err = app.LoadCatalog(context.Background(), req)
	assert.ErrorIs(t, err, ErrCatalogAlreadyLoaded)
}

func TestLoadCatalogValidation(t *testing.T) {
	app := NewApp(NewMemoryRepository(), &fakePicks{})
	dup := uuid.New()

	cases := []struct {
		name string
		req  LoadCatalogRequest
	}{
		{
			name: "missing room",
			req: LoadCatalogRequest{
				Candidates: []CandidateSeed{{TeamID: uuid.New(), Name: "Alpha"}},
			},
		},
		{
			name: "empty catalog",
			req:  LoadCatalogRequest{RoomID: uuid.New()},
		},
		{
			name: "candidate without team",
			req: LoadCatalogRequest{
				RoomID:     uuid.New(),
				Candidates: []CandidateSeed{{Name: "Alpha"}},
			},
		},
		{
			name: "duplicate candidate id",
			req: LoadCatalogRequest{
				RoomID: uuid.New(),
				Candidates: []CandidateSeed{
					{ID: dup, TeamID: uuid.New(), Name: "Alpha"},
					{ID: dup, TeamID: uuid.New(), Name: "Beta"},
				},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := app.LoadCatalog(context.Background(), tc.req)
			assert.Error(t, err)
		})
	}
}

func TestListAvailableForRoom(t *testing.T) {
	picks := &fakePicks{}
	app := NewApp(NewMemoryRepository(), picks)
	roomID := uuid.New()

	candidates, err := app.LoadCatalog(context.Background(), LoadCatalogRequest{
		RoomID: roomID,
		Candidates: []CandidateSeed{
			{TeamID: uuid.New(), Name: "Alpha"},
			{TeamID: uuid.New(), Name: "Beta"},
			{TeamID: uuid.New(), Name: "Gamma"},
		},
	})
	require.NoError(t, err)

	available, err := app.ListAvailableForRoom(context.Background(), roomID)
	require.NoError(t, err)
	assert.Len(t, available, 3)

	picks.picks = []models.Pick{{RoomID: roomID, CandidateID: candidates[1].ID}}

	available, err = app.ListAvailableForRoom(context.Background(), roomID)
	require.NoError(t, err)
	require.Len(t, available, 2)
	for _, c := range available {
		assert.NotEqual(t, candidates[1].ID, c.ID)
	}
}

func TestGetCandidateNotFound(t *testing.T) {
	app := NewApp(NewMemoryRepository(), &fakePicks{})

	_, err := app.GetCandidate(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrCandidateNotFound)
}
